package impl

import (
	"context"
	"testing"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGroupService(t *testing.T) (usecase.GroupUsecase, *mockGroupRepository, *mockContactRepository) {
	t.Helper()

	groupRepo := new(mockGroupRepository)
	contactRepo := new(mockContactRepository)
	t.Cleanup(func() {
		groupRepo.AssertExpectations(t)
		contactRepo.AssertExpectations(t)
	})
	tm := &fakeTransactionManager{contactRepo: contactRepo, groupRepo: groupRepo}

	return NewGroupService(groupRepo, tm, testLogger(t)), groupRepo, contactRepo
}

func TestGroupService_CreateGroup(t *testing.T) {
	service, groupRepo, _ := newGroupService(t)
	ctx := context.Background()

	groupRepo.On("CreateGroup", ctx, mock.MatchedBy(func(g *entity.Group) bool {
		return g.Name == "Family" && g.ID != uuid.Nil
	})).Return(nil)

	group, err := service.CreateGroup(ctx, &usecase.CreateGroupInput{Name: "Family", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "Family", group.Name)
	assert.NotEqual(t, uuid.Nil, group.ID)
}

func TestGroupService_CreateGroup_DuplicateName(t *testing.T) {
	service, groupRepo, _ := newGroupService(t)
	ctx := context.Background()

	groupRepo.On("CreateGroup", ctx, mock.AnythingOfType("*entity.Group")).
		Return(repository.ErrDuplicateGroup)

	_, err := service.CreateGroup(ctx, &usecase.CreateGroupInput{Name: "Family"})
	require.ErrorIs(t, err, domainerrors.ErrGroupAlreadyExists)
}

func TestGroupService_UpdateGroup_NotFound(t *testing.T) {
	service, groupRepo, _ := newGroupService(t)
	ctx := context.Background()
	id := uuid.New()

	name := "Work"
	groupRepo.On("UpdateGroup", ctx, id, mock.AnythingOfType("*entity.GroupPatch")).
		Return(nil, repository.ErrGroupNotFound)

	_, err := service.UpdateGroup(ctx, id, &entity.GroupPatch{Name: &name})
	require.ErrorIs(t, err, domainerrors.ErrGroupNotFound)
}

func TestGroupService_DeleteGroup_PurgesMembershipsFirst(t *testing.T) {
	service, groupRepo, contactRepo := newGroupService(t)
	ctx := context.Background()
	id := uuid.New()

	purged := false
	contactRepo.On("RemoveGroupFromContacts", ctx, id).
		Run(func(mock.Arguments) { purged = true }).
		Return(nil)
	groupRepo.On("DeleteGroup", ctx, id).
		Run(func(mock.Arguments) {
			assert.True(t, purged, "memberships must be purged before the group row goes away")
		}).
		Return(nil)

	require.NoError(t, service.DeleteGroup(ctx, id))
}

func TestGroupService_DeleteGroup_PurgeFailureAborts(t *testing.T) {
	service, _, contactRepo := newGroupService(t)
	ctx := context.Background()
	id := uuid.New()

	contactRepo.On("RemoveGroupFromContacts", ctx, id).
		Return(errors.New("db down"))

	err := service.DeleteGroup(ctx, id)
	require.Error(t, err)
}

func TestGroupService_DeleteGroup_NotFound(t *testing.T) {
	service, groupRepo, contactRepo := newGroupService(t)
	ctx := context.Background()
	id := uuid.New()

	contactRepo.On("RemoveGroupFromContacts", ctx, id).Return(nil)
	groupRepo.On("DeleteGroup", ctx, id).Return(repository.ErrGroupNotFound)

	err := service.DeleteGroup(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrGroupNotFound)
}
