package auth

import (
	"context"

	"coachbase.app/internal/tenant"
)

// UserStore persists principals.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*User, error)
	List(ctx context.Context, scope tenant.Scope) ([]*User, error)
	UpdateProfile(ctx context.Context, scope tenant.Scope, id string, upd UserUpdate) (*User, error)

	// FindByEmailAcrossTenants is the single unscoped lookup in the code
	// base. Login runs before any tenant scope exists and user emails are
	// globally unique, so this query must search all tenants. No other
	// method may bypass the tenant predicate.
	FindByEmailAcrossTenants(ctx context.Context, email string) (*User, error)
}

// UserUpdate carries mutable profile fields; nil leaves a field unchanged.
// The tenant id is deliberately absent: it is immutable after creation.
type UserUpdate struct {
	Name      *string
	Phone     *string
	AvatarURL *string
	Active    *bool
}

// SessionStore manages the session lifecycle.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Find(ctx context.Context, id string) (*Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Registrar atomically creates a tenant together with its admin user.
// Registration is the one flow that writes to both aggregates, and partial
// state (tenant without admin) must never become visible.
type Registrar interface {
	CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, admin *User) error
}
