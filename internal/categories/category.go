// Package categories stores category definitions and the ordered, typed
// fields that shape every document filed under a category. Categories are
// never deleted; retiring one keeps its name reserved.
package categories

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/fieldtype"
)

// Status is the lifecycle state of a category.
type Status string

// Category statuses.
const (
	StatusActive   Status = "active"
	StatusObsolete Status = "obsolete"
)

// Category is a named document schema.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Fields      []Field   `json:"fields,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Active reports whether new documents may be filed under the category.
func (c *Category) Active() bool {
	return c.Status == StatusActive
}

// Field is one typed attribute of a category.
type Field struct {
	ID         uuid.UUID      `json:"id"`
	CategoryID uuid.UUID      `json:"category_id"`
	Name       string         `json:"name"`
	Type       fieldtype.Type `json:"type"`
	Required   bool           `json:"required"`
	Order      int            `json:"order"`
	MaxLength  *int           `json:"max_length,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SortFields orders fields by display order, breaking ties by id.
func SortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return bytes.Compare(fields[i].ID[:], fields[j].ID[:]) < 0
	})
}

// CreateCommand defines a category and its initial fields.
type CreateCommand struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description" validate:"max=2000"`
	Fields      []AddFieldCommand `json:"fields" validate:"dive"`
}

// AddFieldCommand defines a new field. A nil Order appends the field after
// the current last field.
type AddFieldCommand struct {
	Name      string `json:"name" validate:"required,max=255"`
	Type      string `json:"type" validate:"required"`
	Required  bool   `json:"required"`
	Order     *int   `json:"order,omitempty"`
	MaxLength *int   `json:"max_length,omitempty"`
}

// UpdateFieldCommand patches a field. Nil members are left unchanged and a
// MaxLength of zero clears the limit. Changing Type never rewrites values
// already stored for the field.
type UpdateFieldCommand struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Type      *string `json:"type,omitempty"`
	Required  *bool   `json:"required,omitempty"`
	Order     *int    `json:"order,omitempty"`
	MaxLength *int    `json:"max_length,omitempty"`
}

// UpdateCommand replaces the category's name and description.
type UpdateCommand struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// RenameCommand changes the category's name.
type RenameCommand struct {
	Name string `json:"name" validate:"required,max=255"`
}
