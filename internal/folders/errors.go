package folders

import "github.com/JaimeStill/folio/pkg/apperr"

// Domain errors for folder operations.
var (
	ErrNotFound  = apperr.NotFound("folder not found")
	ErrDuplicate = apperr.Conflict("folder label already exists")
	ErrInUse     = apperr.Conflict("folder holds documents")
)
