package impl

import (
	"context"
	"log/slog"
	"testing"

	"rolodex/internal/domain/entity"
	"rolodex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.DiscardHandler)
}

// --- Repository mocks ---

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) CreateContact(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *mockContactRepository) FindContactByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactRepository) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *mockContactRepository) UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContactRepository) DeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *mockContactRepository) RemoveGroupFromContacts(ctx context.Context, groupID uuid.UUID) error {
	return m.Called(ctx, groupID).Error(0)
}

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) CreateGroup(ctx context.Context, group *entity.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepository) FindGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *mockGroupRepository) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Group), args.Error(1)
}

func (m *mockGroupRepository) UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *mockGroupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// --- Transaction manager fake ---

// fakeTransactionManager runs the callback directly against the given
// repositories, without any real transaction.
type fakeTransactionManager struct {
	contactRepo repository.ContactRepository
	groupRepo   repository.GroupRepository
}

func (tm *fakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeRepositoryFactory{
		contactRepo: tm.contactRepo,
		groupRepo:   tm.groupRepo,
	})
}

type fakeRepositoryFactory struct {
	contactRepo repository.ContactRepository
	groupRepo   repository.GroupRepository
}

func (f *fakeRepositoryFactory) NewContactRepository() repository.ContactRepository {
	return f.contactRepo
}

func (f *fakeRepositoryFactory) NewGroupRepository() repository.GroupRepository {
	return f.groupRepo
}
