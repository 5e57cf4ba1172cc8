// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named collection that contacts can belong to, e.g. "Family" or "Work".
type Group struct {
	ID        uuid.UUID `json:"id"`             // The Global Unique Identifier (GUID) for the group.
	Name      string    `json:"name"`           // The display name of the group.
	Color     string    `json:"color"`          // Display color, e.g. a hex string like "#ff8800".
	Icon      string    `json:"icon,omitempty"` // Optional icon reference.
	CreatedAt time.Time `json:"created_at"`     // Timestamp of when this group was created.
	UpdatedAt time.Time `json:"updated_at"`     // Timestamp of the last modification.
}
