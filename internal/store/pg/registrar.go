package pg

import (
	"context"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/tenant"
)

var _ auth.Registrar = (*Store)(nil)

// CreateTenantWithAdmin inserts a tenant and its first admin user in one
// transaction, so registration never leaves an empty tenant behind.
func (s *Store) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, admin *auth.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		insert into tenants (id, name, slug, email, phone, plan, primary_color, logo_url, cover_url, is_active, trial_ends_at, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, t.ID, t.Name, t.Slug, t.Email, nullString(t.Phone), t.Plan, t.PrimaryColor,
		nullString(t.LogoURL), nullString(t.CoverURL), t.Active, nullTime(t.TrialEndsAt),
		t.CreatedAt, t.UpdatedAt); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return auth.ErrConflict
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		insert into users (id, tenant_id, name, email, password_hash, phone, avatar_url, role, is_active, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, admin.ID, admin.TenantID, admin.Name, admin.Email, admin.PasswordHash,
		nullString(admin.Phone), nullString(admin.AvatarURL), admin.Role, admin.Active,
		admin.CreatedAt, admin.UpdatedAt); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return auth.ErrConflict
		}
		return err
	}

	return tx.Commit()
}
