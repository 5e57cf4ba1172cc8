// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// ContactPatch is a typed partial update for a Contact. Nil fields are left
// untouched; non-nil fields replace the current value wholesale. Slices and
// the address are replaced, not merged, matching field-level update semantics.
type ContactPatch struct {
	FirstName    *string         `json:"first_name,omitempty"`
	LastName     *string         `json:"last_name,omitempty"`
	MiddleName   *string         `json:"middle_name,omitempty"`
	PhoneNumbers *[]PhoneNumber  `json:"phone_numbers,omitempty"`
	Emails       *[]EmailAddress `json:"emails,omitempty"`
	Address      *PostalAddress  `json:"address,omitempty"`
	Company      *string         `json:"company,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	AvatarURL    *string         `json:"avatar_url,omitempty"`
	GroupIDs     *[]uuid.UUID    `json:"group_ids,omitempty"`
	IsFavorite   *bool           `json:"is_favorite,omitempty"`
}

// IsZero reports whether the patch carries no changes at all.
func (p *ContactPatch) IsZero() bool {
	return p == nil || (p.FirstName == nil && p.LastName == nil && p.MiddleName == nil &&
		p.PhoneNumbers == nil && p.Emails == nil && p.Address == nil &&
		p.Company == nil && p.Notes == nil && p.AvatarURL == nil &&
		p.GroupIDs == nil && p.IsFavorite == nil)
}

// Apply merges the patch into the given contact in place. The contact's
// identifier and creation timestamp are never touched.
func (p *ContactPatch) Apply(c *Contact) {
	if p == nil || c == nil {
		return
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.MiddleName != nil {
		c.MiddleName = *p.MiddleName
	}
	if p.PhoneNumbers != nil {
		c.PhoneNumbers = *p.PhoneNumbers
	}
	if p.Emails != nil {
		c.Emails = *p.Emails
	}
	if p.Address != nil {
		c.Address = p.Address
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.AvatarURL != nil {
		c.AvatarURL = *p.AvatarURL
	}
	if p.GroupIDs != nil {
		c.GroupIDs = *p.GroupIDs
	}
	if p.IsFavorite != nil {
		c.IsFavorite = *p.IsFavorite
	}
}

// GroupPatch is a typed partial update for a Group.
type GroupPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// Apply merges the patch into the given group in place.
func (p *GroupPatch) Apply(g *Group) {
	if p == nil || g == nil {
		return
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.Icon != nil {
		g.Icon = *p.Icon
	}
}
