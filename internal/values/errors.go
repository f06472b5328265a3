package values

import "github.com/JaimeStill/folio/pkg/apperr"

// Domain errors for value operations.
var (
	ErrUnknownField     = apperr.Validation("field does not belong to the document's category")
	ErrRequired         = apperr.Validation("value is required")
	ErrDocumentNotFound = apperr.NotFound("document not found")
)
