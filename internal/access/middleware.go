package access

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/folio/pkg/handlers"
)

// Identity attaches a RequestContext built from the gateway headers.
// Requests without a user id pass through anonymous.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			rc := RequestContext{
				UserID: userID,
				Role:   ParseRole(r.Header.Get(HeaderRole)),
			}
			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}

// Guard wraps route handlers with permission checks.
type Guard struct {
	authz  *Authorizer
	logger *slog.Logger
}

// NewGuard creates a Guard enforcing authz.
func NewGuard(authz *Authorizer, logger *slog.Logger) *Guard {
	return &Guard{
		authz:  authz,
		logger: logger.With("handler", "access"),
	}
}

// Require rejects the request with 401 or 403 unless the caller holds perm.
func (g *Guard) Require(perm Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, _ := FromContext(r.Context())

		if err := g.authz.Authorize(rc, perm); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, ErrUnauthenticated) {
				status = http.StatusUnauthorized
			}
			handlers.RespondError(w, g.logger, status, err)
			return
		}

		next(w, r)
	}
}
