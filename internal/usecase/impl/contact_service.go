// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/search"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo repository.ContactRepository
	engine      *search.Engine
	logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(
	contactRepo repository.ContactRepository,
	engine *search.Engine,
	logger *slog.Logger,
) usecase.ContactUsecase {
	return &contactService{
		contactRepo: contactRepo,
		engine:      engine,
		logger:      logger,
	}
}

// ListContacts retrieves all contacts ordered by surname.
func (srv *contactService) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.ListContacts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// GetContact retrieves a single contact by its identifier.
func (srv *contactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contactRepo.FindContactByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to get contact")
	}

	return contact, nil
}

// CreateContact persists a new contact. A zero input ID gets a generated one.
func (srv *contactService) CreateContact(ctx context.Context, input *usecase.CreateContactInput) (*entity.Contact, error) {
	srv.logger.Info("Creating contact",
		slog.String("lastName", input.LastName),
	)

	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	contact := &entity.Contact{
		ID:           id,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MiddleName:   input.MiddleName,
		PhoneNumbers: input.PhoneNumbers,
		Emails:       input.Emails,
		Address:      input.Address,
		Company:      input.Company,
		Notes:        input.Notes,
		AvatarURL:    input.AvatarURL,
		GroupIDs:     input.GroupIDs,
		IsFavorite:   input.IsFavorite,
	}

	if err := srv.contactRepo.CreateContact(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, domainerrors.ErrConflict.WrapMessage("contact already exists")
		}

		return nil, errors.Wrap(err, "failed to create contact")
	}

	return srv.GetContact(ctx, contact.ID)
}

// UpdateContact applies a partial update and returns the updated contact.
func (srv *contactService) UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	srv.logger.Info("Updating contact",
		slog.String("contactID", id.String()),
	)

	if patch.IsZero() {
		return srv.GetContact(ctx, id)
	}

	contact, err := srv.contactRepo.UpdateContact(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to update contact")
	}

	return contact, nil
}

// DeleteContact removes a contact by its identifier.
func (srv *contactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting contact",
		slog.String("contactID", id.String()),
	)

	if err := srv.contactRepo.DeleteContact(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete contact")
	}

	return nil
}

// BulkDeleteContacts removes multiple contacts. Unknown IDs are skipped.
func (srv *contactService) BulkDeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	srv.logger.Info("Bulk deleting contacts",
		slog.Int("count", len(ids)),
	)

	if err := srv.contactRepo.DeleteContacts(ctx, ids); err != nil {
		return errors.Wrap(err, "failed to bulk delete contacts")
	}

	return nil
}

// SearchContacts ranks the stored contacts against a free-text query using
// the same engine the client-side searcher runs on.
func (srv *contactService) SearchContacts(ctx context.Context, input *usecase.SearchContactsInput) ([]*entity.Contact, error) {
	contacts, err := srv.contactRepo.ListContacts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search contacts")
	}

	return srv.engine.Search(contacts, search.Query{
		Text:          input.Text,
		GroupIDs:      input.GroupIDs,
		FavoritesOnly: input.FavoritesOnly,
		Limit:         input.Limit,
		Offset:        input.Offset,
	}), nil
}
