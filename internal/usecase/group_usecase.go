package usecase

import (
	"context"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// GroupUsecase defines the interface for group-related business operations.
type GroupUsecase interface {
	ListGroups(ctx context.Context) ([]*entity.Group, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	CreateGroup(ctx context.Context, input *CreateGroupInput) (*entity.Group, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateGroupInput defines the data required to create a group.
type CreateGroupInput struct {
	ID    uuid.UUID `json:"id,omitempty"`
	Name  string    `json:"name" validate:"required,max=100"`
	Color string    `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon  string    `json:"icon,omitempty" validate:"max=100"`
}
