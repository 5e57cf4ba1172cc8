// Package entity contains the core business objects of the project.
package entity

// PhoneType represents the classification of a phone number.
type PhoneType string

const (
	// PhoneTypeMobile indicates a mobile number.
	PhoneTypeMobile PhoneType = "mobile"
	// PhoneTypeHome indicates a home landline.
	PhoneTypeHome PhoneType = "home"
	// PhoneTypeWork indicates a work number.
	PhoneTypeWork PhoneType = "work"
	// PhoneTypeOther indicates a number outside the named categories.
	PhoneTypeOther PhoneType = "other"
)

// String returns the string representation of the PhoneType.
func (p PhoneType) String() string {
	return string(p)
}

// IsValid checks if the PhoneType is a valid value.
func (p PhoneType) IsValid() bool {
	switch p {
	case PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork, PhoneTypeOther:
		return true
	default:
		return false
	}
}

// EmailType represents the classification of an email address.
type EmailType string

const (
	// EmailTypePersonal indicates a personal address.
	EmailTypePersonal EmailType = "personal"
	// EmailTypeWork indicates a work address.
	EmailTypeWork EmailType = "work"
	// EmailTypeOther indicates an address outside the named categories.
	EmailTypeOther EmailType = "other"
)

// String returns the string representation of the EmailType.
func (e EmailType) String() string {
	return string(e)
}

// IsValid checks if the EmailType is a valid value.
func (e EmailType) IsValid() bool {
	switch e {
	case EmailTypePersonal, EmailTypeWork, EmailTypeOther:
		return true
	default:
		return false
	}
}
