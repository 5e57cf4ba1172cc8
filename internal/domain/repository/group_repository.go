// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for group persistence.
var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrDuplicateGroup is returned when trying to create a group that already exists.
	ErrDuplicateGroup = errors.New("group already exists")
)

// GroupRepository defines the interface for group-related database operations.
type GroupRepository interface {
	// CreateGroup persists a new group.
	CreateGroup(ctx context.Context, group *entity.Group) error

	// FindGroupByID retrieves a group by its unique ID.
	FindGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)

	// ListGroups retrieves all groups ordered by name ascending.
	ListGroups(ctx context.Context) ([]*entity.Group, error)

	// UpdateGroup applies a partial update to the group with the given ID and
	// returns the updated representation.
	UpdateGroup(ctx context.Context, id uuid.UUID, patch *entity.GroupPatch) (*entity.Group, error)

	// DeleteGroup removes a group by its ID. Membership rows are expected to
	// be purged by the caller in the same transaction.
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}
