// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactUsecase defines the interface for contact-related business operations.
type ContactUsecase interface {
	ListContacts(ctx context.Context) ([]*entity.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	BulkDeleteContacts(ctx context.Context, ids []uuid.UUID) error
	SearchContacts(ctx context.Context, input *SearchContactsInput) ([]*entity.Contact, error)
}

// --- Input DTOs ---

// CreateContactInput defines the data required to create a contact. Clients
// may supply their own identifier; a zero ID gets a server-generated one.
type CreateContactInput struct {
	ID           uuid.UUID              `json:"id,omitempty"`
	FirstName    string                 `json:"first_name" validate:"required,max=100"`
	LastName     string                 `json:"last_name" validate:"required,max=100"`
	MiddleName   string                 `json:"middle_name,omitempty" validate:"max=100"`
	PhoneNumbers []entity.PhoneNumber   `json:"phone_numbers,omitempty"`
	Emails       []entity.EmailAddress  `json:"emails,omitempty" validate:"dive"`
	Address      *entity.PostalAddress  `json:"address,omitempty"`
	Company      string                 `json:"company,omitempty" validate:"max=200"`
	Notes        string                 `json:"notes,omitempty"`
	AvatarURL    string                 `json:"avatar_url,omitempty" validate:"omitempty,url"`
	GroupIDs     []uuid.UUID            `json:"group_ids,omitempty"`
	IsFavorite   bool                   `json:"is_favorite,omitempty"`
}

// SearchContactsInput defines the parameters for a server-side contact search.
type SearchContactsInput struct {
	Text          string      `json:"q"`
	GroupIDs      []uuid.UUID `json:"group_ids,omitempty"`
	FavoritesOnly bool        `json:"favorites_only,omitempty"`
	Limit         int         `json:"limit,omitempty" validate:"omitempty,min=1,max=500"`
	Offset        int         `json:"offset,omitempty" validate:"omitempty,min=0"`
}
