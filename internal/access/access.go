// Package access carries the authenticated caller into the core and decides
// what the caller may do. Identity is asserted by the fronting authentication
// gateway through request headers; this package never authenticates.
package access

import (
	"context"
	"strings"
)

// Identity headers set by the authentication gateway.
const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
)

// Role is a caller's assigned role.
type Role string

// Roles.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole normalizes a role name. Unknown names yield an empty Role,
// which holds no permissions.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return r
	default:
		return ""
	}
}

// RequestContext identifies the caller of a write operation. It is passed
// explicitly to every core operation that records or depends on who acted.
type RequestContext struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// Validate checks that the context names a user.
func (rc RequestContext) Validate() error {
	if strings.TrimSpace(rc.UserID) == "" {
		return ErrNoUser
	}
	return nil
}

type contextKey struct{}

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the RequestContext attached by the identity middleware.
func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(RequestContext)
	return rc, ok
}
