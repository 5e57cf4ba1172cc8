package postgres

import (
	"context"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// groupRepository implements the repository.GroupRepository interface.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository is the constructor for groupRepository.
func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

// CreateGroup persists a new group.
func (repo *groupRepository) CreateGroup(ctx context.Context, group *entity.Group) error {
	groupM := fromGroupDomain(group)

	if err := repo.db.WithContext(ctx).Create(groupM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateGroup
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrGroupCreationFailed.WrapMessage("missing required group information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create group")
	}

	group.CreatedAt = groupM.CreatedAt
	group.UpdatedAt = groupM.UpdatedAt

	return nil
}

// FindGroupByID retrieves a group by its unique ID.
func (repo *groupRepository) FindGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var groupM model.GroupModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&groupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find group by ID")
	}

	return toGroupDomain(&groupM), nil
}

// ListGroups retrieves all groups ordered by name ascending.
func (repo *groupRepository) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	var groupModels []*model.GroupModel

	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&groupModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}

	groups := make([]*entity.Group, 0, len(groupModels))
	for _, groupM := range groupModels {
		groups = append(groups, toGroupDomain(groupM))
	}

	return groups, nil
}

// UpdateGroup applies a partial update and returns the updated group.
func (repo *groupRepository) UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}

	if len(updates) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.GroupModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			if isUniqueConstraintViolation(result.Error) {
				return nil, repository.ErrDuplicateGroup
			}

			return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update group")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrGroupNotFound
		}
	}

	return repo.FindGroupByID(ctx, id)
}

// DeleteGroup removes a group by its ID.
func (repo *groupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.GroupModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGroupNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toGroupDomain converts a GORM GroupModel to a domain Group entity.
func toGroupDomain(data *model.GroupModel) *entity.Group {
	if data == nil {
		return nil
	}

	return &entity.Group{
		ID:        data.ID,
		Name:      data.Name,
		Color:     data.Color,
		Icon:      data.Icon,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromGroupDomain converts a domain Group entity to a GORM GroupModel.
func fromGroupDomain(data *entity.Group) *model.GroupModel {
	if data == nil {
		return nil
	}

	return &model.GroupModel{
		ID:    data.ID,
		Name:  data.Name,
		Color: data.Color,
		Icon:  data.Icon,
	}
}
