package categories

import "github.com/JaimeStill/folio/pkg/apperr"

// Domain errors for category operations.
var (
	ErrNotFound         = apperr.NotFound("category not found")
	ErrFieldNotFound    = apperr.NotFound("field not found")
	ErrDuplicate        = apperr.Conflict("category name already exists")
	ErrDuplicateField   = apperr.Conflict("field name already exists in category")
	ErrNameRequired     = apperr.Validation("name is required")
	ErrInvalidMaxLength = apperr.Validation("max length is not valid for the field type")
	ErrInvalidOrder     = apperr.Validation("order must not be negative")
	ErrObsolete         = apperr.Validation("category is obsolete")
)
