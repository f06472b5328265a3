package access

import (
	"errors"

	"github.com/JaimeStill/folio/pkg/apperr"
)

// Access errors. ErrNoUser is a validation failure raised by the core when a
// write arrives without an identified caller.
var (
	ErrNoUser          = apperr.Validation("request context has no user")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
)
