package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// Service resolves bearer credentials into principals and owns the login,
// registration, and logout flows.
type Service struct {
	users     UserStore
	sessions  SessionStore
	tenants   tenant.Store
	registrar Registrar

	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service) error

// WithIssuer overrides the token issuer claim.
func WithIssuer(issuer string) ServiceOption {
	return func(s *Service) error {
		issuer = strings.TrimSpace(issuer)
		if issuer == "" {
			return errors.New("issuer must not be empty")
		}
		s.issuer = issuer
		return nil
	}
}

// WithSessionTTL configures how long issued sessions live.
func WithSessionTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) error {
		if ttl > 0 {
			s.ttl = ttl
		}
		return nil
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) error {
		if fn != nil {
			s.now = fn
		}
		return nil
	}
}

// NewService constructs the resolver. The secret signs and verifies every
// token; an empty secret is a configuration error, not a degraded mode.
func NewService(users UserStore, sessions SessionStore, tenants tenant.Store, registrar Registrar, secret string, opts ...ServiceOption) (*Service, error) {
	if users == nil || sessions == nil || tenants == nil {
		return nil, errors.New("auth: user, session, and tenant stores are required")
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	svc := &Service{
		users:     users,
		sessions:  sessions,
		tenants:   tenants,
		registrar: registrar,
		secret:    []byte(secret),
		issuer:    "coachbase",
		ttl:       defaultSessionTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(svc); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// Credential is an issued bearer token plus its expiry.
type Credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login authenticates by global email and password. This is the only flow
// that reaches the unscoped user lookup: no tenant context exists yet, so
// the email search must run across all tenants.
func (s *Service) Login(ctx context.Context, email, password string) (Credential, Principal, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Credential{}, Principal{}, ErrUnauthenticated
	}
	user, err := s.users.FindByEmailAcrossTenants(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Credential{}, Principal{}, ErrUnauthenticated
		}
		return Credential{}, Principal{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return Credential{}, Principal{}, ErrUnauthenticated
	}
	principal, err := s.principalFor(ctx, user)
	if err != nil {
		return Credential{}, Principal{}, err
	}
	cred, err := s.mintSession(ctx, principal)
	if err != nil {
		return Credential{}, Principal{}, err
	}
	return cred, principal, nil
}

// RegisterInput carries the public registration payload: one new practice
// and its admin user. Tenant and user share the contact email.
type RegisterInput struct {
	Name     string
	Slug     string
	Email    string
	Phone    string
	Password string
}

// Register creates a tenant with its admin user in one transaction and
// immediately issues a session for the new admin.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Credential, Principal, error) {
	if s.registrar == nil {
		return Credential{}, Principal{}, errors.New("auth: registrar is not configured")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = tenant.NormalizeSlug(in.Slug)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" {
		return Credential{}, Principal{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Slug == "" {
		return Credential{}, Principal{}, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return Credential{}, Principal{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return Credential{}, Principal{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return Credential{}, Principal{}, err
	}

	now := s.now().UTC()
	t := &tenant.Tenant{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Slug:         in.Slug,
		Email:        in.Email,
		Phone:        in.Phone,
		Plan:         tenant.PlanFree,
		PrimaryColor: tenant.DefaultPrimaryColor,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin := &User{
		ID:           ids.New(),
		TenantID:     t.ID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.registrar.CreateTenantWithAdmin(ctx, t, admin); err != nil {
		return Credential{}, Principal{}, err
	}

	principal := Principal{User: *admin, Tenant: *t}
	cred, err := s.mintSession(ctx, principal)
	if err != nil {
		return Credential{}, Principal{}, err
	}
	return cred, principal, nil
}

// Logout revokes the session behind the presented credential. Revocation is
// permanent: the session id is never reused.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrUnauthenticated
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthenticated
		}
		return err
	}
	return nil
}

// LogoutAll revokes every live session of the user, including the one that
// made the request.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUnauthenticated
	}
	return s.sessions.RevokeAllForUser(ctx, userID)
}

// UpdateProfile mutates the caller's own profile fields. The tenant id and
// role are not reachable from here.
func (s *Service) UpdateProfile(ctx context.Context, scope tenant.Scope, userID string, upd UserUpdate) (*User, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		upd.Name = &name
	}
	return s.users.UpdateProfile(ctx, scope, userID, upd)
}

// ListUsers returns the tenant's team members.
func (s *Service) ListUsers(ctx context.Context, scope tenant.Scope) ([]*User, error) {
	return s.users.List(ctx, scope)
}

// Resolve verifies a bearer token and returns the live principal plus the
// session id that authenticated it. Every failure mode, including an
// inactive user or tenant, resolves to ErrUnauthenticated.
func (s *Service) Resolve(ctx context.Context, raw string) (Principal, string, error) {
	claims, err := parseToken(s.secret, s.issuer, s.now, raw)
	if err != nil {
		return Principal{}, "", ErrUnauthenticated
	}

	session, err := s.sessions.Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, "", ErrUnauthenticated
		}
		return Principal{}, "", err
	}
	if session.UserID != claims.Subject || !session.Live(s.now()) {
		return Principal{}, "", ErrUnauthenticated
	}

	// The tenant id stamped into the token at login is immutable on the
	// user row, so the user lookup itself stays tenant-scoped.
	scope, err := tenant.NewScope(claims.TenantID)
	if err != nil {
		return Principal{}, "", ErrUnauthenticated
	}
	user, err := s.users.Find(ctx, scope, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, "", ErrUnauthenticated
		}
		return Principal{}, "", err
	}

	principal, err := s.principalFor(ctx, user)
	if err != nil {
		return Principal{}, "", err
	}
	return principal, session.ID, nil
}

// principalFor enforces the active checks shared by login and resolution.
func (s *Service) principalFor(ctx context.Context, user *User) (Principal, error) {
	if !user.Active {
		return Principal{}, ErrUnauthenticated
	}
	t, err := s.tenants.Find(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, err
	}
	if !t.Active || t.DeletedAt != nil {
		return Principal{}, ErrUnauthenticated
	}
	return Principal{User: *user, Tenant: *t}, nil
}

func (s *Service) mintSession(ctx context.Context, principal Principal) (Credential, error) {
	now := s.now().UTC()
	session := &Session{
		ID:        ids.New(),
		UserID:    principal.User.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return Credential{}, err
	}

	claims := Claims{
		TenantID: principal.User.TenantID,
		Role:     principal.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   principal.User.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			ID:        session.ID,
		},
	}
	token, err := signToken(s.secret, claims)
	if err != nil {
		return Credential{}, fmt.Errorf("sign token: %w", err)
	}
	return Credential{Token: token, ExpiresAt: session.ExpiresAt}, nil
}
