package impl

import (
	"context"
	"testing"

	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/entity"
	"rolodex/internal/domain/repository"
	"rolodex/internal/search"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactService(t *testing.T) (usecase.ContactUsecase, *mockContactRepository) {
	t.Helper()

	repo := new(mockContactRepository)
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return NewContactService(repo, search.NewEngine(0, 0, search.Weights{}), testLogger(t)), repo
}

func TestContactService_CreateContact_GeneratesID(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()

	var createdID uuid.UUID
	repo.On("CreateContact", ctx, mock.AnythingOfType("*entity.Contact")).
		Run(func(args mock.Arguments) {
			contact := args.Get(1).(*entity.Contact)
			createdID = contact.ID
		}).
		Return(nil)
	repo.On("FindContactByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&entity.Contact{FirstName: "John", LastName: "Doe"}, nil)

	contact, err := service.CreateContact(ctx, &usecase.CreateContactInput{
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.NotNil(t, contact)
	assert.NotEqual(t, uuid.Nil, createdID)
}

func TestContactService_CreateContact_KeepsClientID(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("CreateContact", ctx, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.ID == id
	})).Return(nil)
	repo.On("FindContactByID", ctx, id).
		Return(&entity.Contact{ID: id, FirstName: "John", LastName: "Doe"}, nil)

	contact, err := service.CreateContact(ctx, &usecase.CreateContactInput{
		ID:        id,
		FirstName: "John",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, id, contact.ID)
}

func TestContactService_CreateContact_DuplicateBecomesConflict(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()

	repo.On("CreateContact", ctx, mock.AnythingOfType("*entity.Contact")).
		Return(repository.ErrDuplicateContact)

	_, err := service.CreateContact(ctx, &usecase.CreateContactInput{
		FirstName: "John",
		LastName:  "Doe",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrConflict.ErrorCode(), appErr.ErrorCode())
}

func TestContactService_GetContact_NotFound(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("FindContactByID", ctx, id).Return(nil, repository.ErrContactNotFound)

	_, err := service.GetContact(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_UpdateContact_EmptyPatchIsRead(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()
	id := uuid.New()
	existing := &entity.Contact{ID: id, FirstName: "John", LastName: "Doe"}

	// No UpdateContact expectation: an empty patch must not hit the write path.
	repo.On("FindContactByID", ctx, id).Return(existing, nil)

	contact, err := service.UpdateContact(ctx, id, &entity.ContactPatch{})
	require.NoError(t, err)
	assert.Equal(t, existing, contact)
}

func TestContactService_UpdateContact_AppliesPatch(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()
	id := uuid.New()

	company := "Acme"
	patch := &entity.ContactPatch{Company: &company}
	updated := &entity.Contact{ID: id, FirstName: "John", LastName: "Doe", Company: "Acme"}
	repo.On("UpdateContact", ctx, id, patch).Return(updated, nil)

	contact, err := service.UpdateContact(ctx, id, patch)
	require.NoError(t, err)
	assert.Equal(t, "Acme", contact.Company)
}

func TestContactService_BulkDeleteContacts(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	repo.On("DeleteContacts", ctx, ids).Return(nil)

	require.NoError(t, service.BulkDeleteContacts(ctx, ids))
}

func TestContactService_SearchContacts_RanksAndFilters(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()

	john := &entity.Contact{ID: uuid.New(), FirstName: "John", LastName: "Doe"}
	grace := &entity.Contact{ID: uuid.New(), FirstName: "Grace", LastName: "Hopper"}
	repo.On("ListContacts", ctx).Return([]*entity.Contact{john, grace}, nil)

	contacts, err := service.SearchContacts(ctx, &usecase.SearchContactsInput{Text: "john"})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, john.ID, contacts[0].ID)
}

func TestContactService_SearchContacts_RepositoryFailure(t *testing.T) {
	service, repo := newContactService(t)
	ctx := context.Background()

	repo.On("ListContacts", ctx).Return(nil, errors.New("db down"))

	_, err := service.SearchContacts(ctx, &usecase.SearchContactsInput{Text: "john"})
	require.Error(t, err)
}
