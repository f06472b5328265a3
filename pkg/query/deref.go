package query

import "reflect"

// deref unwraps pointer arguments so optional filters can be passed directly.
// It reports false for nil interfaces and nil pointers.
func deref(value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Pointer {
		return value, true
	}
	if v.IsNil() {
		return nil, false
	}
	return v.Elem().Interface(), true
}
