// Package apperr defines the error taxonomy shared by every domain system.
// Domain packages declare their own sentinel errors on top of one of the
// four kinds so that the HTTP boundary can map any error to a status code
// without knowing which system produced it.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error kinds.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// Error is a classified error. Kind is one of the package-level kinds and
// Fields carries per-field detail for validation failures.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
}

// New creates an Error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a validation error with the given message.
func Validation(message string) *Error {
	return New(ErrValidation, message)
}

// Conflict creates a conflict error with the given message.
func Conflict(message string) *Error {
	return New(ErrConflict, message)
}

// NotFound creates a not found error with the given message.
func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

// Fields creates a validation error carrying field-level detail.
func Fields(fields ...FieldError) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Unwrap exposes the kind and every field cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields)+1)
	errs = append(errs, e.Kind)
	for _, f := range e.Fields {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// FieldError names the input field responsible for a validation failure.
type FieldError struct {
	Field string `json:"field"`
	Err   error  `json:"-"`
}

// Field creates a FieldError.
func Field(name string, err error) FieldError {
	return FieldError{Field: name, Err: err}
}

func (f FieldError) Error() string {
	if f.Err == nil {
		return f.Field
	}
	return f.Field + ": " + f.Err.Error()
}

// MarshalJSON renders the cause as a plain message.
func (f FieldError) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}{f.Field, msg})
}

// FieldsOf returns the field detail attached to err, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// HTTPStatus maps an error to an HTTP status code by kind.
// Unclassified errors are treated as storage failures.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
