package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coachbase.app/internal/tenant"
)

type fakeUserStore struct {
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (f *fakeUserStore) add(u *User) {
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
}

func (f *fakeUserStore) Create(ctx context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrConflict
	}
	f.add(u)
	return nil
}

func (f *fakeUserStore) Find(ctx context.Context, scope tenant.Scope, id string) (*User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	u, ok := f.byID[id]
	if !ok || u.TenantID != scope.TenantID() {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) List(ctx context.Context, scope tenant.Scope) ([]*User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var out []*User
	for _, u := range f.byID {
		if u.TenantID == scope.TenantID() {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, scope tenant.Scope, id string, upd UserUpdate) (*User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	u, ok := f.byID[id]
	if !ok || u.TenantID != scope.TenantID() {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmailAcrossTenants(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeSessionStore struct {
	sessions map[string]*Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*Session{}}
}

func (f *fakeSessionStore) Create(ctx context.Context, s *Session) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) Find(ctx context.Context, id string) (*Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) Revoke(ctx context.Context, id string) error {
	s, ok := f.sessions[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	s.RevokedAt = &now
	return nil
}

func (f *fakeSessionStore) RevokeAllForUser(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.RevokedAt = &now
		}
	}
	return nil
}

type fakeTenantStore struct {
	tenants map[string]*tenant.Tenant
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{tenants: map[string]*tenant.Tenant{}}
}

func (f *fakeTenantStore) add(t *tenant.Tenant) {
	cp := *t
	f.tenants[t.ID] = &cp
}

func (f *fakeTenantStore) Find(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, tenant.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTenantStore) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, tenant.ErrNotFound
}

func (f *fakeTenantStore) Update(ctx context.Context, id string, upd tenant.Update) (*tenant.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, tenant.ErrNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTenantStore) SetActive(ctx context.Context, id string, active bool) error {
	t, ok := f.tenants[id]
	if !ok {
		return tenant.ErrNotFound
	}
	t.Active = active
	return nil
}

func (f *fakeTenantStore) SoftDelete(ctx context.Context, id string) error {
	t, ok := f.tenants[id]
	if !ok {
		return tenant.ErrNotFound
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	return nil
}

type fakeRegistrar struct {
	users   *fakeUserStore
	tenants *fakeTenantStore
}

func (f *fakeRegistrar) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, admin *User) error {
	if _, err := f.tenants.FindBySlug(ctx, t.Slug); err == nil {
		return ErrConflict
	}
	f.tenants.add(t)
	f.users.add(admin)
	return nil
}

type authFixture struct {
	svc      *Service
	users    *fakeUserStore
	sessions *fakeSessionStore
	tenants  *fakeTenantStore
}

func newAuthFixture(t *testing.T, opts ...ServiceOption) *authFixture {
	t.Helper()
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	tenants := newFakeTenantStore()
	registrar := &fakeRegistrar{users: users, tenants: tenants}
	svc, err := NewService(users, sessions, tenants, registrar, "test-secret-test-secret", opts...)
	require.NoError(t, err)
	return &authFixture{svc: svc, users: users, sessions: sessions, tenants: tenants}
}

func (fx *authFixture) seedTenantUser(t *testing.T, tenantID, userID, email, password string) {
	t.Helper()
	now := time.Now().UTC()
	fx.tenants.add(&tenant.Tenant{
		ID:        tenantID,
		Name:      "Studio " + tenantID,
		Slug:      "studio-" + tenantID,
		Email:     email,
		Plan:      tenant.PlanFree,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	hash, err := HashPassword(password)
	require.NoError(t, err)
	fx.users.add(&User{
		ID:           userID,
		TenantID:     tenantID,
		Name:         "Trainer " + userID,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func TestLoginAndResolveRoundTrip(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	cred, principal, err := fx.svc.Login(context.Background(), "joao@fit.test", "sup3r-secret")
	require.NoError(t, err)
	require.NotEmpty(t, cred.Token)
	require.Equal(t, "tenant-a", principal.Tenant.ID)
	require.Equal(t, "tenant-a", principal.Scope().TenantID())

	resolved, sessionID, err := fx.svc.Resolve(context.Background(), cred.Token)
	require.NoError(t, err)
	require.Equal(t, "user-1", resolved.User.ID)
	require.Equal(t, "tenant-a", resolved.Tenant.ID)
	require.NotEmpty(t, sessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	_, _, err := fx.svc.Login(context.Background(), "joao@fit.test", "wrong")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = fx.svc.Login(context.Background(), "nobody@fit.test", "sup3r-secret")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveRevokedSession(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	cred, _, err := fx.svc.Login(context.Background(), "joao@fit.test", "sup3r-secret")
	require.NoError(t, err)

	_, sessionID, err := fx.svc.Resolve(context.Background(), cred.Token)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Logout(context.Background(), sessionID))

	_, _, err = fx.svc.Resolve(context.Background(), cred.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveExpiredSession(t *testing.T) {
	current := time.Now().UTC()
	fx := newAuthFixture(t,
		WithClock(func() time.Time { return current }),
		WithSessionTTL(time.Hour),
	)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	cred, _, err := fx.svc.Login(context.Background(), "joao@fit.test", "sup3r-secret")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, _, err = fx.svc.Resolve(context.Background(), cred.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveDeactivatedUser(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	cred, _, err := fx.svc.Login(context.Background(), "joao@fit.test", "sup3r-secret")
	require.NoError(t, err)

	fx.users.byID["user-1"].Active = false
	_, _, err = fx.svc.Resolve(context.Background(), cred.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveSuspendedTenant(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")

	cred, _, err := fx.svc.Login(context.Background(), "joao@fit.test", "sup3r-secret")
	require.NoError(t, err)

	require.NoError(t, fx.tenants.SetActive(context.Background(), "tenant-a", false))
	_, _, err = fx.svc.Resolve(context.Background(), cred.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolveGarbageToken(t *testing.T) {
	fx := newAuthFixture(t)
	_, _, err := fx.svc.Resolve(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = fx.svc.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRegisterCreatesTenantAndAdmin(t *testing.T) {
	fx := newAuthFixture(t)

	cred, principal, err := fx.svc.Register(context.Background(), RegisterInput{
		Name:     "Studio Forma",
		Slug:     "Studio Forma",
		Email:    "Contact@Forma.Test",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, cred.Token)
	require.Equal(t, RoleAdmin, principal.User.Role)
	require.Equal(t, "studio-forma", principal.Tenant.Slug)
	require.Equal(t, "contact@forma.test", principal.User.Email)
	require.Equal(t, tenant.PlanFree, principal.Tenant.Plan)
	require.Equal(t, tenant.DefaultPrimaryColor, principal.Tenant.PrimaryColor)

	resolved, _, err := fx.svc.Resolve(context.Background(), cred.Token)
	require.NoError(t, err)
	require.Equal(t, principal.Tenant.ID, resolved.Tenant.ID)
}

func TestRegisterValidation(t *testing.T) {
	fx := newAuthFixture(t)

	_, _, err := fx.svc.Register(context.Background(), RegisterInput{
		Slug: "x", Email: "a@b.test", Password: "long-enough-pass",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = fx.svc.Register(context.Background(), RegisterInput{
		Name: "X", Slug: "x", Email: "bad", Password: "long-enough-pass",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = fx.svc.Register(context.Background(), RegisterInput{
		Name: "X", Slug: "x", Email: "a@b.test", Password: "short",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListUsersIsScoped(t *testing.T) {
	fx := newAuthFixture(t)
	fx.seedTenantUser(t, "tenant-a", "user-1", "joao@fit.test", "sup3r-secret")
	fx.seedTenantUser(t, "tenant-b", "user-2", "maria@fit.test", "sup3r-secret")

	scope, err := tenant.NewScope("tenant-a")
	require.NoError(t, err)

	users, err := fx.svc.ListUsers(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "user-1", users[0].ID)

	_, err = fx.svc.ListUsers(context.Background(), tenant.Scope{})
	require.ErrorIs(t, err, tenant.ErrNoScope)
}

func TestRegisterDuplicateSlug(t *testing.T) {
	fx := newAuthFixture(t)

	in := RegisterInput{Name: "Studio", Slug: "studio", Email: "a@b.test", Password: "long-enough-pass"}
	_, _, err := fx.svc.Register(context.Background(), in)
	require.NoError(t, err)

	in.Email = "c@d.test"
	_, _, err = fx.svc.Register(context.Background(), in)
	require.ErrorIs(t, err, ErrConflict)
}
