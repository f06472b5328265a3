package documents

import "github.com/JaimeStill/folio/pkg/apperr"

// Domain errors for document operations.
var (
	ErrNotFound            = apperr.NotFound("document not found")
	ErrInvalidDate         = apperr.Validation("date must use the YYYY-MM-DD layout")
	ErrInvalidStatus       = apperr.Validation("unknown management status")
	ErrInvalidBackupStatus = apperr.Validation("unknown backup status")
	ErrInvalidFilter       = apperr.Validation("invalid filter value")
	ErrRequiredID          = apperr.Validation("id is required")
	ErrVersionConflict     = apperr.Conflict("document was changed by another request")
)
