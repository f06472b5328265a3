package fieldtype

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func coerceText(t Type) func(raw any) (Value, error) {
	return func(raw any) (Value, error) {
		switch v := raw.(type) {
		case string:
			return TextValue(t, v), nil
		case json.Number:
			return TextValue(t, v.String()), nil
		case decimal.Decimal:
			return TextValue(t, v.String()), nil
		case bool:
			return TextValue(t, strconv.FormatBool(v)), nil
		case float64:
			return TextValue(t, strconv.FormatFloat(v, 'f', -1, 64)), nil
		case float32:
			return TextValue(t, strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
		}

		if d, ok := integerKind(raw); ok {
			return TextValue(t, d.String()), nil
		}
		return Value{}, invalid(t, raw)
	}
}

func coerceInteger(raw any) (Value, error) {
	d, err := toDecimal(Integer, raw)
	if err != nil {
		return Value{}, err
	}
	if !d.IsInteger() {
		return Value{}, fmt.Errorf("%w: %s is not a whole number", ErrInvalidValue, d)
	}
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return Value{}, fmt.Errorf("%w: %s is out of range", ErrInvalidValue, d)
	}
	return NumberValue(Integer, decimal.NewFromInt(d.IntPart())), nil
}

func coerceDecimal(raw any) (Value, error) {
	d, err := toDecimal(Decimal, raw)
	if err != nil {
		return Value{}, err
	}
	return NumberValue(Decimal, d), nil
}

func coerceDate(raw any) (Value, error) {
	switch v := raw.(type) {
	case time.Time:
		return DateValue(v), nil
	case string:
		t, err := time.Parse(DateLayout, strings.TrimSpace(v))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidValue, v)
		}
		return DateValue(t), nil
	default:
		return Value{}, invalid(Date, raw)
	}
}

func coerceBoolean(raw any) (Value, error) {
	switch v := raw.(type) {
	case bool:
		return BoolValue(v), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "on", "si", "sí", "1":
			return BoolValue(true), nil
		case "false", "no", "n", "off", "0":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
	}

	d, err := toDecimal(Boolean, raw)
	if err != nil {
		return Value{}, err
	}
	switch {
	case d.Equal(decimal.Zero):
		return BoolValue(false), nil
	case d.Equal(decimal.NewFromInt(1)):
		return BoolValue(true), nil
	default:
		return Value{}, fmt.Errorf("%w: %s is not 0 or 1", ErrInvalidValue, d)
	}
}

func toDecimal(t Type, raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case json.Number:
		return fromString(v.String())
	case string:
		return fromString(v)
	}

	if d, ok := integerKind(raw); ok {
		return d, nil
	}
	return decimal.Decimal{}, invalid(t, raw)
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: %v is not a finite number", ErrInvalidValue, f)
	}
	return decimal.NewFromFloat(f), nil
}

func fromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	return d, nil
}

func integerKind(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint(uint64(v)), true
	case uint8:
		return decimal.NewFromInt(int64(v)), true
	case uint16:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return fromUint(v), true
	default:
		return decimal.Decimal{}, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func invalid(t Type, raw any) error {
	return fmt.Errorf("%w: %T cannot be stored as %s", ErrInvalidValue, raw, t)
}
