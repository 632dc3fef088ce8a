// Package tenant defines the tenant aggregate root and the request-scoped
// Scope value that every tenant-owned storage operation requires.
package tenant

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// DefaultPrimaryColor is applied to newly registered tenants until they
// customize their theming.
const DefaultPrimaryColor = "#3B82F6"

var (
	ErrNotFound     = errors.New("tenant: not found")
	ErrConflict     = errors.New("tenant: already exists")
	ErrInvalidInput = errors.New("tenant: invalid input")
)

// Tenant is one personal-trainer practice. All tenant-owned rows reference
// its id; deleting a tenant cascades to everything it owns.
type Tenant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Plan         string     `json:"plan"`
	PrimaryColor string     `json:"primary_color"`
	LogoURL      string     `json:"logo_url,omitempty"`
	CoverURL     string     `json:"cover_url,omitempty"`
	Active       bool       `json:"is_active"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Update carries the mutable settings fields; nil means "leave unchanged".
type Update struct {
	Name         *string
	Phone        *string
	PrimaryColor *string
	LogoURL      *string
	CoverURL     *string
	Plan         *string
}

// Store persists tenants. It deliberately does not take a Scope: the tenant
// table is the aggregate root and is only reached through registration, the
// authenticated principal's own tenant id, or operator tooling.
type Store interface {
	Find(ctx context.Context, id string) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	Update(ctx context.Context, id string, upd Update) (*Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
	SoftDelete(ctx context.Context, id string) error
}

// ValidPlan reports whether plan is one of the supported tiers.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanBasic, PlanPremium:
		return true
	}
	return false
}

// NormalizeSlug lowercases a slug candidate and collapses separator runs
// into single hyphens, dropping anything that is not [a-z0-9-].
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var b strings.Builder
	b.Grow(len(slug))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range slug {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || r == ' ' || r == '.':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
