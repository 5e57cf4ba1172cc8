package impl

import (
	"context"
	"log/slog"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// groupService implements the GroupUsecase interface.
type groupService struct {
	groupRepo repository.GroupRepository
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewGroupService is the constructor for groupService.
func NewGroupService(
	groupRepo repository.GroupRepository,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.GroupUsecase {
	return &groupService{
		groupRepo: groupRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListGroups retrieves all groups ordered by name.
func (srv *groupService) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	groups, err := srv.groupRepo.ListGroups(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}

	return groups, nil
}

// GetGroup retrieves a single group by its identifier.
func (srv *groupService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	group, err := srv.groupRepo.FindGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to get group")
	}

	return group, nil
}

// CreateGroup persists a new group. A zero input ID gets a generated one.
func (srv *groupService) CreateGroup(ctx context.Context, input *usecase.CreateGroupInput) (*entity.Group, error) {
	srv.logger.Info("Creating group",
		slog.String("name", input.Name),
	)

	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	group := &entity.Group{
		ID:    id,
		Name:  input.Name,
		Color: input.Color,
		Icon:  input.Icon,
	}

	if err := srv.groupRepo.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, repository.ErrDuplicateGroup) {
			return nil, domainerrors.ErrGroupAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create group")
	}

	return group, nil
}

// UpdateGroup applies a partial update and returns the updated group.
func (srv *groupService) UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error) {
	srv.logger.Info("Updating group",
		slog.String("groupID", id.String()),
	)

	group, err := srv.groupRepo.UpdateGroup(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound
		}
		if errors.Is(err, repository.ErrDuplicateGroup) {
			return nil, domainerrors.ErrGroupAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to update group")
	}

	return group, nil
}

// DeleteGroup removes a group and purges its memberships from every contact
// within a single transaction.
func (srv *groupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting group",
		slog.String("groupID", id.String()),
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		contactRepo := repoFactory.NewContactRepository()

		if err := contactRepo.RemoveGroupFromContacts(ctx, id); err != nil {
			return errors.Wrap(err, "failed to purge group memberships")
		}

		if err := groupRepo.DeleteGroup(ctx, id); err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return domainerrors.ErrGroupNotFound
			}

			return errors.Wrap(err, "failed to delete group")
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}
