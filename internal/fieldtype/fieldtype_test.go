package fieldtype_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JaimeStill/folio/internal/fieldtype"
)

func intPtr(n int) *int { return &n }

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    fieldtype.Type
		wantErr bool
	}{
		{"short_text", fieldtype.ShortText, false},
		{" Long_Text ", fieldtype.LongText, false},
		{"INTEGER", fieldtype.Integer, false},
		{"decimal", fieldtype.Decimal, false},
		{"date", fieldtype.Date, false},
		{"boolean", fieldtype.Boolean, false},
		{"blob", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := fieldtype.ParseType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, fieldtype.ErrUnknownType) {
				t.Errorf("ParseType(%q) error = %v, want ErrUnknownType", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlotFor(t *testing.T) {
	want := map[fieldtype.Type]fieldtype.Slot{
		fieldtype.ShortText: fieldtype.SlotText,
		fieldtype.LongText:  fieldtype.SlotText,
		fieldtype.Integer:   fieldtype.SlotNumber,
		fieldtype.Decimal:   fieldtype.SlotNumber,
		fieldtype.Date:      fieldtype.SlotDate,
		fieldtype.Boolean:   fieldtype.SlotBool,
	}

	types := fieldtype.Types()
	if len(types) != len(want) {
		t.Fatalf("Types() returned %d types, want %d", len(types), len(want))
	}

	for _, ft := range types {
		slot, err := fieldtype.SlotFor(ft)
		if err != nil {
			t.Fatalf("SlotFor(%s) error = %v", ft, err)
		}
		if slot != want[ft] {
			t.Errorf("SlotFor(%s) = %s, want %s", ft, slot, want[ft])
		}
	}

	if _, err := fieldtype.SlotFor("blob"); !errors.Is(err, fieldtype.ErrUnknownType) {
		t.Errorf("SlotFor(blob) error = %v, want ErrUnknownType", err)
	}
}

func TestCoerce_RoundTrip(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("1250.75")

	tests := []struct {
		name string
		ft   fieldtype.Type
		in   any
	}{
		{"short text", fieldtype.ShortText, "Invoice 7"},
		{"long text", fieldtype.LongText, strings.Repeat("a", 1000)},
		{"integer", fieldtype.Integer, int64(42)},
		{"decimal", fieldtype.Decimal, amount},
		{"date", fieldtype.Date, day},
		{"boolean", fieldtype.Boolean, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fieldtype.Coerce(tt.ft, tt.in, nil)
			if err != nil {
				t.Fatalf("Coerce() error = %v", err)
			}

			slot, _ := fieldtype.SlotFor(tt.ft)
			if v.Slot() != slot {
				t.Errorf("Slot() = %s, want %s", v.Slot(), slot)
			}

			got := v.Native()
			switch want := tt.in.(type) {
			case decimal.Decimal:
				d, ok := got.(decimal.Decimal)
				if !ok || !d.Equal(want) {
					t.Errorf("Native() = %v, want %v", got, want)
				}
			case time.Time:
				d, ok := got.(time.Time)
				if !ok || !d.Equal(want) {
					t.Errorf("Native() = %v, want %v", got, want)
				}
			default:
				if got != tt.in {
					t.Errorf("Native() = %#v, want %#v", got, tt.in)
				}
			}
		})
	}
}

func TestCoerce_Conversions(t *testing.T) {
	tests := []struct {
		name string
		ft   fieldtype.Type
		in   any
		want string
	}{
		{"integer from string", fieldtype.Integer, " 17 ", "17"},
		{"integer from whole float", fieldtype.Integer, float64(8), "8"},
		{"integer from json number", fieldtype.Integer, json.Number("12"), "12"},
		{"integer from int", fieldtype.Integer, 3, "3"},
		{"decimal from string", fieldtype.Decimal, "19.990", "19.99"},
		{"decimal from float", fieldtype.Decimal, 2.5, "2.5"},
		{"decimal from int", fieldtype.Decimal, int32(7), "7"},
		{"date from string", fieldtype.Date, "2023-12-31", "2023-12-31"},
		{"date from timestamp", fieldtype.Date, time.Date(2023, 5, 1, 14, 30, 0, 0, time.UTC), "2023-05-01"},
		{"boolean yes", fieldtype.Boolean, "Yes", "true"},
		{"boolean si", fieldtype.Boolean, "sí", "true"},
		{"boolean off", fieldtype.Boolean, "off", "false"},
		{"boolean one", fieldtype.Boolean, 1, "true"},
		{"boolean zero string", fieldtype.Boolean, "0", "false"},
		{"text from int", fieldtype.ShortText, 99, "99"},
		{"text from bool", fieldtype.ShortText, false, "false"},
		{"text from float", fieldtype.LongText, 1.5, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fieldtype.Coerce(tt.ft, tt.in, nil)
			if err != nil {
				t.Fatalf("Coerce() error = %v", err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoerce_IntegerNative(t *testing.T) {
	v, err := fieldtype.Coerce(fieldtype.Integer, "42", nil)
	if err != nil {
		t.Fatalf("Coerce() error = %v", err)
	}
	if got, ok := v.Native().(int64); !ok || got != 42 {
		t.Errorf("Native() = %#v, want int64(42)", v.Native())
	}
}

func TestCoerce_Failures(t *testing.T) {
	tests := []struct {
		name      string
		ft        fieldtype.Type
		in        any
		maxLength *int
		want      error
	}{
		{"integer from word", fieldtype.Integer, "abc", nil, fieldtype.ErrInvalidValue},
		{"integer from fraction", fieldtype.Integer, "1.5", nil, fieldtype.ErrInvalidValue},
		{"integer overflow", fieldtype.Integer, uint64(math.MaxUint64), nil, fieldtype.ErrInvalidValue},
		{"decimal from word", fieldtype.Decimal, "ten", nil, fieldtype.ErrInvalidValue},
		{"decimal from NaN", fieldtype.Decimal, math.NaN(), nil, fieldtype.ErrInvalidValue},
		{"date malformed", fieldtype.Date, "31/12/2023", nil, fieldtype.ErrInvalidValue},
		{"date from int", fieldtype.Date, 20231231, nil, fieldtype.ErrInvalidValue},
		{"boolean from word", fieldtype.Boolean, "maybe", nil, fieldtype.ErrInvalidValue},
		{"boolean from two", fieldtype.Boolean, 2, nil, fieldtype.ErrInvalidValue},
		{"text from slice", fieldtype.ShortText, []string{"a"}, nil, fieldtype.ErrInvalidValue},
		{"nil value", fieldtype.ShortText, nil, nil, fieldtype.ErrInvalidValue},
		{"unknown type", fieldtype.Type("blob"), "x", nil, fieldtype.ErrUnknownType},
		{"over max length", fieldtype.ShortText, "abcdef", intPtr(5), fieldtype.ErrFieldTooLong},
		{"over slot limit", fieldtype.ShortText, strings.Repeat("x", 256), intPtr(1000), fieldtype.ErrFieldTooLong},
		{"long text max length", fieldtype.LongText, strings.Repeat("x", 11), intPtr(10), fieldtype.ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fieldtype.Coerce(tt.ft, tt.in, tt.maxLength)
			if !errors.Is(err, tt.want) {
				t.Errorf("Coerce() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCoerce_LengthCountsCharacters(t *testing.T) {
	if _, err := fieldtype.Coerce(fieldtype.ShortText, "ñandú", intPtr(5)); err != nil {
		t.Errorf("Coerce() error = %v, want nil for 5 characters", err)
	}
	if _, err := fieldtype.Coerce(fieldtype.ShortText, strings.Repeat("x", 255), nil); err != nil {
		t.Errorf("Coerce() error = %v, want nil at slot limit", err)
	}
	if _, err := fieldtype.Coerce(fieldtype.LongText, strings.Repeat("x", 10000), nil); err != nil {
		t.Errorf("Coerce() error = %v, want nil for unbounded long text", err)
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    fieldtype.Value
		want string
	}{
		{"date", fieldtype.DateValue(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)), `"2024-01-15"`},
		{"integer", fieldtype.NumberValue(fieldtype.Integer, decimal.NewFromInt(5)), `5`},
		{"decimal", fieldtype.NumberValue(fieldtype.Decimal, decimal.RequireFromString("0.1")), `"0.1"`},
		{"boolean", fieldtype.BoolValue(true), `true`},
		{"text", fieldtype.TextValue(fieldtype.ShortText, "a"), `"a"`},
		{"empty", fieldtype.Value{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Marshal() = %s, want %s", b, tt.want)
			}
		})
	}
}
