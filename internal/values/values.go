// Package values stores the dynamic field values of documents in one row per
// (document, field) pair. Each row populates exactly one typed slot, chosen
// by the field's current type. Reads join rows against the live category
// schema, so renamed and retyped fields are reported as they are now defined
// and values of removed fields are not returned.
package values

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JaimeStill/folio/internal/fieldtype"
)

// Mode selects the completeness rules applied by Write.
type Mode int

const (
	// ModeCreate requires every required field to be present.
	ModeCreate Mode = iota
	// ModeUpdate checks only the fields present in the input.
	ModeUpdate
)

// Input maps field ids to raw values. A nil or blank value clears the field.
type Input map[string]any

// Values maps field ids to their coerced values.
type Values map[uuid.UUID]fieldtype.Value

// Row is a raw stored value with all four slots exposed.
type Row struct {
	DocumentID uuid.UUID        `json:"document_id"`
	FieldID    uuid.UUID        `json:"field_id"`
	Text       *string          `json:"text_value"`
	Number     *decimal.Decimal `json:"number_value"`
	Date       *time.Time       `json:"date_value"`
	Bool       *bool            `json:"bool_value"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Populated returns the number of non-null slots.
func (r Row) Populated() int {
	n := 0
	if r.Text != nil {
		n++
	}
	if r.Number != nil {
		n++
	}
	if r.Date != nil {
		n++
	}
	if r.Bool != nil {
		n++
	}
	return n
}

// Slot returns the first populated slot.
func (r Row) Slot() fieldtype.Slot {
	switch {
	case r.Text != nil:
		return fieldtype.SlotText
	case r.Number != nil:
		return fieldtype.SlotNumber
	case r.Date != nil:
		return fieldtype.SlotDate
	case r.Bool != nil:
		return fieldtype.SlotBool
	default:
		return ""
	}
}
