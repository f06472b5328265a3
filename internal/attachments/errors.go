package attachments

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/folio/pkg/apperr"
)

// Domain errors for attachment operations.
var (
	ErrNotFound         = apperr.NotFound("attachment not found")
	ErrDocumentNotFound = apperr.NotFound("document not found")
	ErrDuplicate        = apperr.Conflict("attachment storage key already exists")
	ErrFileTooLarge     = apperr.Validation("file exceeds maximum upload size")
	ErrInvalidFile      = apperr.Validation("invalid file")
	ErrStorage          = apperr.New(apperr.ErrStorage, "attachment storage failed")
)

// MapHTTPStatus converts attachment errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return apperr.HTTPStatus(err)
}
