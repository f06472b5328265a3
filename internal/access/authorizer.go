package access

import "fmt"

// Permission is a capability checked before a request reaches the core.
type Permission string

// Permissions.
const (
	SchemaManage   Permission = "schema:manage"
	FoldersWrite   Permission = "folders:write"
	DocumentsWrite Permission = "documents:write"
	DocumentsRead  Permission = "documents:read"
)

// Authorizer maps roles to the permissions they hold.
type Authorizer struct {
	grants map[Role]map[Permission]bool
}

// NewAuthorizer returns the default policy: admins manage everything,
// editors maintain folders and documents, viewers read.
func NewAuthorizer() *Authorizer {
	a := &Authorizer{grants: make(map[Role]map[Permission]bool)}
	a.Grant(RoleAdmin, SchemaManage, FoldersWrite, DocumentsWrite, DocumentsRead)
	a.Grant(RoleEditor, FoldersWrite, DocumentsWrite, DocumentsRead)
	a.Grant(RoleViewer, DocumentsRead)
	return a
}

// Grant adds permissions to a role.
func (a *Authorizer) Grant(role Role, perms ...Permission) {
	set, ok := a.grants[role]
	if !ok {
		set = make(map[Permission]bool)
		a.grants[role] = set
	}
	for _, p := range perms {
		set[p] = true
	}
}

// Can reports whether role holds perm.
func (a *Authorizer) Can(role Role, perm Permission) bool {
	return a.grants[role][perm]
}

// Authorize returns ErrUnauthenticated when rc names no user and
// ErrForbidden when its role lacks perm.
func (a *Authorizer) Authorize(rc RequestContext, perm Permission) error {
	if rc.Validate() != nil {
		return ErrUnauthenticated
	}
	if !a.Can(rc.Role, perm) {
		return fmt.Errorf("%w: role %q lacks %s", ErrForbidden, rc.Role, perm)
	}
	return nil
}
