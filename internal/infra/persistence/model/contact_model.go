package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. Phone numbers and emails live in
// owned child tables; group membership goes through the contact_groups join
// table. The optional postal address is flattened into nullable columns.
type ContactModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	FirstName  string    `gorm:"type:varchar(100);not null"`
	LastName   string    `gorm:"type:varchar(100);not null;index"`
	MiddleName string    `gorm:"type:varchar(100)"`
	Company    string    `gorm:"type:varchar(200)"`
	Notes      string    `gorm:"type:text"`
	AvatarURL  string    `gorm:"type:varchar(512)"`
	IsFavorite bool      `gorm:"not null;default:false;index"`

	AddressStreet     *string `gorm:"type:varchar(255)"`
	AddressCity       *string `gorm:"type:varchar(100)"`
	AddressState      *string `gorm:"type:varchar(100)"`
	AddressPostalCode *string `gorm:"type:varchar(20)"`
	AddressCountry    *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	PhoneNumbers []PhoneNumberModel  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Emails       []EmailAddressModel `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Groups       []GroupModel        `gorm:"many2many:contact_groups;joinForeignKey:ContactID;joinReferences:GroupID"`
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}

// PhoneNumberModel mirrors the 'phone_numbers' table. Position preserves the
// order the entries were saved in.
type PhoneNumberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index"`
	Number    string    `gorm:"type:varchar(50);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (PhoneNumberModel) TableName() string {
	return "phone_numbers"
}

// EmailAddressModel mirrors the 'email_addresses' table.
type EmailAddressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index"`
	Address   string    `gorm:"type:varchar(255);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (EmailAddressModel) TableName() string {
	return "email_addresses"
}
