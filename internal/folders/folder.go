// Package folders records the physical folders that hold filed documents.
package folders

import (
	"time"

	"github.com/google/uuid"
)

// Folder is a physical storage location for paper documents.
type Folder struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a folder.
type CreateCommand struct {
	Label       string `json:"label" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateCommand replaces a folder's attributes.
type UpdateCommand struct {
	Label       string `json:"label" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=255"`
	Description string `json:"description" validate:"max=2000"`
}
