// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is the core entity in the system, representing a single address-book record.
type Contact struct {
	ID           uuid.UUID      `json:"id"`                       // The Global Unique Identifier (GUID) for the contact. Immutable after creation.
	FirstName    string         `json:"first_name"`               // The contact's given name.
	LastName     string         `json:"last_name"`                // The contact's surname. Default list ordering key.
	MiddleName   string         `json:"middle_name,omitempty"`    // Optional middle name.
	PhoneNumbers []PhoneNumber  `json:"phone_numbers"`            // Ordered list of phone numbers.
	Emails       []EmailAddress `json:"emails"`                   // Ordered list of email addresses.
	Address      *PostalAddress `json:"address,omitempty"`        // Optional postal address. Nil when none is recorded.
	Company      string         `json:"company,omitempty"`        // Optional free-text company name.
	Notes        string         `json:"notes,omitempty"`          // Optional free-text notes.
	AvatarURL    string         `json:"avatar_url,omitempty"`     // Optional reference to an avatar image; storage is out of scope.
	GroupIDs     []uuid.UUID    `json:"group_ids"`                // Ordered group memberships. Uniqueness is enforced by the store, not the type.
	IsFavorite   bool           `json:"is_favorite"`              // Marks the contact as a favorite.
	CreatedAt    time.Time      `json:"created_at"`               // Timestamp of when this contact was created.
	UpdatedAt    time.Time      `json:"updated_at"`               // Timestamp of the last modification.
}

// PhoneNumber is a single phone entry attached to a contact.
type PhoneNumber struct {
	ID      uuid.UUID `json:"id"`      // Identifier of this entry within the contact.
	Number  string    `json:"number"`  // The raw phone number string, stored verbatim.
	Type    PhoneType `json:"type"`    // Classification of the number (mobile, home, work, other).
	Primary bool      `json:"primary"` // Marks the preferred number for the contact.
}

// EmailAddress is a single email entry attached to a contact.
type EmailAddress struct {
	ID      uuid.UUID `json:"id"`      // Identifier of this entry within the contact.
	Address string    `json:"address"` // The email address string.
	Type    EmailType `json:"type"`    // Classification of the address (personal, work, other).
	Primary bool      `json:"primary"` // Marks the preferred address for the contact.
}

// PostalAddress is an optional mailing address for a contact.
type PostalAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// FullName returns the display name assembled from the structured name parts.
func (c *Contact) FullName() string {
	name := c.FirstName
	if c.MiddleName != "" {
		name += " " + c.MiddleName
	}
	if c.LastName != "" {
		name += " " + c.LastName
	}

	return name
}

// HasGroup reports whether the contact is a member of the given group.
func (c *Contact) HasGroup(groupID uuid.UUID) bool {
	for _, id := range c.GroupIDs {
		if id == groupID {
			return true
		}
	}

	return false
}
