// Package fieldtype is the registry of scalar types a category field can hold.
// Each type maps to exactly one storage slot and one coercion function; every
// read and write of a dynamic value goes through this package.
package fieldtype

import (
	"fmt"
	"strings"
)

// Type is the closed set of field types.
type Type string

// Field types.
const (
	ShortText Type = "short_text"
	LongText  Type = "long_text"
	Integer   Type = "integer"
	Decimal   Type = "decimal"
	Date      Type = "date"
	Boolean   Type = "boolean"
)

// Slot names the value column a type is stored in.
type Slot string

// Storage slots.
const (
	SlotText   Slot = "text"
	SlotNumber Slot = "number"
	SlotDate   Slot = "date"
	SlotBool   Slot = "bool"
)

// ShortTextLimit is the character capacity of the short_text slot.
const ShortTextLimit = 255

type definition struct {
	slot   Slot
	limit  int
	coerce func(raw any) (Value, error)
}

var registry = map[Type]definition{
	ShortText: {slot: SlotText, limit: ShortTextLimit, coerce: coerceText(ShortText)},
	LongText:  {slot: SlotText, coerce: coerceText(LongText)},
	Integer:   {slot: SlotNumber, coerce: coerceInteger},
	Decimal:   {slot: SlotNumber, coerce: coerceDecimal},
	Date:      {slot: SlotDate, coerce: coerceDate},
	Boolean:   {slot: SlotBool, coerce: coerceBoolean},
}

var ordered = []Type{ShortText, LongText, Integer, Decimal, Date, Boolean}

// Types returns every supported type in declaration order.
func Types() []Type {
	out := make([]Type, len(ordered))
	copy(out, ordered)
	return out
}

// ParseType resolves a type tag, ignoring case and surrounding space.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Valid reports whether t is a member of the closed set.
func (t Type) Valid() bool {
	_, ok := registry[t]
	return ok
}

// IsText reports whether t is stored in the text slot and honors a max length.
func (t Type) IsText() bool {
	return t == ShortText || t == LongText
}

// SlotLimit returns the slot's intrinsic character limit, or zero when unbounded.
func (t Type) SlotLimit() int {
	return registry[t].limit
}

// SlotFor returns the storage slot of t.
func SlotFor(t Type) (Slot, error) {
	def, ok := registry[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return def.slot, nil
}

// Coerce converts raw input into a Value of type t. For text types the
// effective limit is the smaller of maxLength and the slot limit.
func Coerce(t Type, raw any, maxLength *int) (Value, error) {
	def, ok := registry[t]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	if raw == nil {
		return Value{}, fmt.Errorf("%w: value is null", ErrInvalidValue)
	}

	v, err := def.coerce(raw)
	if err != nil {
		return Value{}, err
	}

	if t.IsText() {
		if limit := effectiveLimit(def.limit, maxLength); limit > 0 {
			if n := len([]rune(*v.Text)); n > limit {
				return Value{}, fmt.Errorf("%w: %d characters exceeds %d", ErrFieldTooLong, n, limit)
			}
		}
	}

	return v, nil
}

func effectiveLimit(slot int, maxLength *int) int {
	if maxLength == nil || *maxLength <= 0 {
		return slot
	}
	if slot > 0 && slot < *maxLength {
		return slot
	}
	return *maxLength
}
