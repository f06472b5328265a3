package fieldtype

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date format accepted and emitted for date values.
const DateLayout = "2006-01-02"

// Value is a coerced field value. Exactly one slot pointer is set and it
// matches the slot of Type.
type Value struct {
	Type   Type
	Text   *string
	Number *decimal.Decimal
	Date   *time.Time
	Bool   *bool
}

// Slot returns the populated slot.
func (v Value) Slot() Slot {
	switch {
	case v.Text != nil:
		return SlotText
	case v.Number != nil:
		return SlotNumber
	case v.Date != nil:
		return SlotDate
	case v.Bool != nil:
		return SlotBool
	default:
		return ""
	}
}

// Native returns the Go representation of the value: string, int64,
// decimal.Decimal, time.Time, or bool. A number read under the integer type
// is returned as int64; any other number as decimal.Decimal.
func (v Value) Native() any {
	switch {
	case v.Text != nil:
		return *v.Text
	case v.Number != nil:
		if v.Type == Integer && v.Number.IsInteger() {
			return v.Number.IntPart()
		}
		return *v.Number
	case v.Date != nil:
		return *v.Date
	case v.Bool != nil:
		return *v.Bool
	default:
		return nil
	}
}

// String renders the value for display and export.
func (v Value) String() string {
	switch n := v.Native().(type) {
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case decimal.Decimal:
		return n.String()
	case time.Time:
		return n.Format(DateLayout)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}

// MarshalJSON emits the native value. Dates use DateLayout and decimals are
// quoted to preserve precision.
func (v Value) MarshalJSON() ([]byte, error) {
	switch n := v.Native().(type) {
	case time.Time:
		return json.Marshal(n.Format(DateLayout))
	case nil:
		return []byte("null"), nil
	default:
		return json.Marshal(n)
	}
}

// TextValue builds a text-slot value.
func TextValue(t Type, s string) Value {
	return Value{Type: t, Text: &s}
}

// NumberValue builds a number-slot value.
func NumberValue(t Type, d decimal.Decimal) Value {
	return Value{Type: t, Number: &d}
}

// DateValue builds a date-slot value truncated to the calendar day in UTC.
func DateValue(t time.Time) Value {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Value{Type: Date, Date: &d}
}

// BoolValue builds a bool-slot value.
func BoolValue(b bool) Value {
	return Value{Type: Boolean, Bool: &b}
}
