package fieldtype

import "github.com/JaimeStill/folio/pkg/apperr"

// Coercion errors. All are validation failures.
var (
	ErrUnknownType  = apperr.Validation("unknown field type")
	ErrInvalidValue = apperr.Validation("invalid value")
	ErrFieldTooLong = apperr.Validation("field too long")
)
