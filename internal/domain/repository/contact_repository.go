// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for contact persistence.
var (
	// ErrContactNotFound is returned when a contact is not found.
	ErrContactNotFound = errors.New("contact not found")
	// ErrDuplicateContact is returned when trying to create a contact that already exists.
	ErrDuplicateContact = errors.New("contact already exists")
)

// ContactRepository defines the interface for contact-related database operations.
type ContactRepository interface {
	// CreateContact persists a new contact together with its phone numbers,
	// email addresses and group memberships.
	CreateContact(ctx context.Context, contact *entity.Contact) error

	// FindContactByID retrieves a contact by its unique ID.
	FindContactByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)

	// ListContacts retrieves all contacts ordered by surname ascending.
	ListContacts(ctx context.Context) ([]*entity.Contact, error)

	// UpdateContact applies a partial update to the contact with the given ID
	// and returns the updated representation.
	UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error)

	// DeleteContact removes a contact and its owned rows by ID.
	DeleteContact(ctx context.Context, id uuid.UUID) error

	// DeleteContacts removes multiple contacts at once. Unknown IDs are skipped.
	DeleteContacts(ctx context.Context, ids []uuid.UUID) error

	// RemoveGroupFromContacts removes the given group from every contact's
	// membership list.
	RemoveGroupFromContacts(ctx context.Context, groupID uuid.UUID) error
}
