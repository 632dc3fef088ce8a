package tenant

import (
	"errors"
	"strings"
)

// ErrNoScope is returned when a scoped storage operation is attempted with
// an invalid (zero) Scope. This is a programming-error class fault: the
// layer refuses the operation instead of degrading to an unfiltered query.
var ErrNoScope = errors.New("tenant: operation attempted without a bound tenant scope")

// Scope binds storage operations to exactly one tenant for the lifetime of
// a request. It is derived from the authenticated principal once, after
// authentication, and is read-only from then on. The zero value is invalid,
// so a forgotten scope fails closed rather than leaking across tenants.
type Scope struct {
	tenantID string
}

// NewScope binds a scope to the given tenant id.
func NewScope(tenantID string) (Scope, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return Scope{}, ErrNoScope
	}
	return Scope{tenantID: tenantID}, nil
}

// TenantID returns the bound tenant id, or "" for the zero Scope.
func (s Scope) TenantID() string { return s.tenantID }

// Valid reports whether the scope is bound to a tenant.
func (s Scope) Valid() bool { return s.tenantID != "" }

// Check returns ErrNoScope for the zero Scope. Storage implementations call
// it before touching the database.
func (s Scope) Check() error {
	if !s.Valid() {
		return ErrNoScope
	}
	return nil
}
