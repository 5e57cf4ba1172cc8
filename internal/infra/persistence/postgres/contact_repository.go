// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// contactRepository implements the repository.ContactRepository interface.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{
		db: db,
	}
}

// CreateContact persists a new contact with its phone numbers, emails and
// group memberships. Groups themselves are never created here; only the join
// rows are written.
func (repo *contactRepository) CreateContact(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Omit("Groups.*").Create(contactM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateContact
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrContactCreationFailed.WrapMessage("unknown group reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrContactCreationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// FindContactByID retrieves a contact by its unique ID.
func (repo *contactRepository) FindContactByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel

	if err := repo.db.WithContext(ctx).
		Preload("PhoneNumbers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Emails", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Groups").
		Where("id = ?", id).
		First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by ID")
	}

	return toContactDomain(&contactM), nil
}

// ListContacts retrieves all contacts ordered by surname, then given name.
func (repo *contactRepository) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	var contactModels []*model.ContactModel

	if err := repo.db.WithContext(ctx).
		Preload("PhoneNumbers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Emails", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Groups").
		Order("last_name ASC, first_name ASC").
		Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// UpdateContact applies a partial update and returns the updated contact.
// Child collections are replaced wholesale when present in the patch.
func (repo *contactRepository) UpdateContact(ctx context.Context, id uuid.UUID, patch *entity.ContactPatch) (*entity.Contact, error) {
	var contactM model.ContactModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact for update")
	}

	if updates := scalarUpdates(patch); len(updates) > 0 {
		if err := repo.db.WithContext(ctx).
			Model(&model.ContactModel{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update contact")
		}
	}

	if patch.PhoneNumbers != nil {
		if err := repo.replacePhoneNumbers(ctx, id, *patch.PhoneNumbers); err != nil {
			return nil, err
		}
	}
	if patch.Emails != nil {
		if err := repo.replaceEmails(ctx, id, *patch.Emails); err != nil {
			return nil, err
		}
	}
	if patch.GroupIDs != nil {
		if err := repo.replaceGroups(ctx, id, *patch.GroupIDs); err != nil {
			return nil, err
		}
	}

	return repo.FindContactByID(ctx, id)
}

// DeleteContact removes a contact, its owned rows and its join rows.
func (repo *contactRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return repo.DeleteContacts(ctx, []uuid.UUID{id})
}

// DeleteContacts removes multiple contacts at once. Unknown IDs are skipped.
func (repo *contactRepository) DeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	db := repo.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM contact_groups WHERE contact_id IN ?", ids).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete contact group memberships")
	}
	if err := db.Where("contact_id IN ?", ids).Delete(&model.PhoneNumberModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete contact phone numbers")
	}
	if err := db.Where("contact_id IN ?", ids).Delete(&model.EmailAddressModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete contact emails")
	}
	if err := db.Where("id IN ?", ids).Delete(&model.ContactModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete contacts")
	}

	return nil
}

// RemoveGroupFromContacts removes the given group from every contact's
// membership list.
func (repo *contactRepository) RemoveGroupFromContacts(ctx context.Context, groupID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Exec("DELETE FROM contact_groups WHERE group_id = ?", groupID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove group memberships")
	}

	return nil
}

func (repo *contactRepository) replacePhoneNumbers(ctx context.Context, contactID uuid.UUID, phones []entity.PhoneNumber) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("contact_id = ?", contactID).Delete(&model.PhoneNumberModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace phone numbers")
	}
	if len(phones) == 0 {
		return nil
	}

	rows := fromPhoneNumbers(contactID, phones)
	if err := db.Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace phone numbers")
	}

	return nil
}

func (repo *contactRepository) replaceEmails(ctx context.Context, contactID uuid.UUID, emails []entity.EmailAddress) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("contact_id = ?", contactID).Delete(&model.EmailAddressModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace emails")
	}
	if len(emails) == 0 {
		return nil
	}

	rows := fromEmailAddresses(contactID, emails)
	if err := db.Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace emails")
	}

	return nil
}

func (repo *contactRepository) replaceGroups(ctx context.Context, contactID uuid.UUID, groupIDs []uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM contact_groups WHERE contact_id = ?", contactID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to replace group memberships")
	}

	for _, groupID := range groupIDs {
		if err := db.Exec("INSERT INTO contact_groups (contact_id, group_id) VALUES (?, ?)",
			contactID, groupID).Error; err != nil {
			if isForeignKeyConstraintViolation(err) {
				return domainerrors.ErrContactUpdateFailed.WrapMessage("unknown group reference")
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to replace group memberships")
		}
	}

	return nil
}

// scalarUpdates builds the column update map for the patch's scalar fields.
func scalarUpdates(patch *entity.ContactPatch) map[string]any {
	updates := map[string]any{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.MiddleName != nil {
		updates["middle_name"] = *patch.MiddleName
	}
	if patch.Company != nil {
		updates["company"] = *patch.Company
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.IsFavorite != nil {
		updates["is_favorite"] = *patch.IsFavorite
	}
	if patch.Address != nil {
		updates["address_street"] = patch.Address.Street
		updates["address_city"] = patch.Address.City
		updates["address_state"] = patch.Address.State
		updates["address_postal_code"] = patch.Address.PostalCode
		updates["address_country"] = patch.Address.Country
	}

	return updates
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toContactDomain converts a GORM ContactModel to a domain Contact entity.
func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	phones := make([]entity.PhoneNumber, 0, len(data.PhoneNumbers))
	for _, p := range data.PhoneNumbers {
		phones = append(phones, entity.PhoneNumber{
			ID:      p.ID,
			Number:  p.Number,
			Type:    entity.PhoneType(p.Type),
			Primary: p.IsPrimary,
		})
	}

	emails := make([]entity.EmailAddress, 0, len(data.Emails))
	for _, e := range data.Emails {
		emails = append(emails, entity.EmailAddress{
			ID:      e.ID,
			Address: e.Address,
			Type:    entity.EmailType(e.Type),
			Primary: e.IsPrimary,
		})
	}

	groupIDs := make([]uuid.UUID, 0, len(data.Groups))
	for _, g := range data.Groups {
		groupIDs = append(groupIDs, g.ID)
	}

	return &entity.Contact{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		MiddleName:   data.MiddleName,
		PhoneNumbers: phones,
		Emails:       emails,
		Address:      toPostalAddress(data),
		Company:      data.Company,
		Notes:        data.Notes,
		AvatarURL:    data.AvatarURL,
		GroupIDs:     groupIDs,
		IsFavorite:   data.IsFavorite,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromContactDomain converts a domain Contact entity to a GORM ContactModel.
func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	groups := make([]model.GroupModel, 0, len(data.GroupIDs))
	for _, id := range data.GroupIDs {
		groups = append(groups, model.GroupModel{ID: id})
	}

	contactM := &model.ContactModel{
		ID:           data.ID,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		MiddleName:   data.MiddleName,
		Company:      data.Company,
		Notes:        data.Notes,
		AvatarURL:    data.AvatarURL,
		IsFavorite:   data.IsFavorite,
		PhoneNumbers: fromPhoneNumbers(data.ID, data.PhoneNumbers),
		Emails:       fromEmailAddresses(data.ID, data.Emails),
		Groups:       groups,
	}

	if data.Address != nil {
		contactM.AddressStreet = &data.Address.Street
		contactM.AddressCity = &data.Address.City
		contactM.AddressState = &data.Address.State
		contactM.AddressPostalCode = &data.Address.PostalCode
		contactM.AddressCountry = &data.Address.Country
	}

	return contactM
}

func toPostalAddress(data *model.ContactModel) *entity.PostalAddress {
	if data.AddressStreet == nil && data.AddressCity == nil {
		return nil
	}

	addr := &entity.PostalAddress{}
	if data.AddressStreet != nil {
		addr.Street = *data.AddressStreet
	}
	if data.AddressCity != nil {
		addr.City = *data.AddressCity
	}
	if data.AddressState != nil {
		addr.State = *data.AddressState
	}
	if data.AddressPostalCode != nil {
		addr.PostalCode = *data.AddressPostalCode
	}
	if data.AddressCountry != nil {
		addr.Country = *data.AddressCountry
	}

	return addr
}

func fromPhoneNumbers(contactID uuid.UUID, phones []entity.PhoneNumber) []model.PhoneNumberModel {
	rows := make([]model.PhoneNumberModel, 0, len(phones))
	for i, p := range phones {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		rows = append(rows, model.PhoneNumberModel{
			ID:        id,
			ContactID: contactID,
			Number:    p.Number,
			Type:      p.Type.String(),
			IsPrimary: p.Primary,
			Position:  i,
		})
	}

	return rows
}

func fromEmailAddresses(contactID uuid.UUID, emails []entity.EmailAddress) []model.EmailAddressModel {
	rows := make([]model.EmailAddressModel, 0, len(emails))
	for i, e := range emails {
		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		rows = append(rows, model.EmailAddressModel{
			ID:        id,
			ContactID: contactID,
			Address:   e.Address,
			Type:      e.Type.String(),
			IsPrimary: e.Primary,
			Position:  i,
		})
	}

	return rows
}
