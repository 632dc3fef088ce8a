package auth

import (
	"time"

	"coachbase.app/internal/tenant"
)

const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

// User is a principal acting on behalf of exactly one tenant. The tenant id
// is set at creation and never changes.
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session ties one live credential to one user. Created at login, revoked
// at logout; a revoked session id is never reused.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Live reports whether the session can still authenticate at the given time.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Principal is the resolved caller identity: the user plus its tenant.
type Principal struct {
	User   User
	Tenant tenant.Tenant
}

// Scope returns the tenant scope bound to this principal. A principal with
// no tenant id yields the zero Scope, which every store rejects.
func (p Principal) Scope() tenant.Scope {
	scope, err := tenant.NewScope(p.User.TenantID)
	if err != nil {
		return tenant.Scope{}
	}
	return scope
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTrainer, RoleStudent:
		return true
	}
	return false
}
