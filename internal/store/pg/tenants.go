package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"coachbase.app/internal/tenant"
)

// TenantStore persists the tenant aggregate root. It is the one store in
// this package without Scope parameters; see tenant.Store for why.
type TenantStore struct {
	db *sql.DB
}

var _ tenant.Store = (*TenantStore)(nil)

const tenantColumns = `id, name, slug, email, phone, plan, primary_color, logo_url, cover_url,
	is_active, trial_ends_at, created_at, updated_at, deleted_at`

func scanTenant(row *sql.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var phone, logoURL, coverURL sql.NullString
	var trialEndsAt, deletedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Email, &phone, &t.Plan, &t.PrimaryColor,
		&logoURL, &coverURL, &t.Active, &trialEndsAt, &t.CreatedAt, &t.UpdatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tenant.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Phone = strValue(phone)
	t.LogoURL = strValue(logoURL)
	t.CoverURL = strValue(coverURL)
	t.TrialEndsAt = timeValue(trialEndsAt)
	t.DeletedAt = timeValue(deletedAt)
	return &t, nil
}

func (s *TenantStore) Find(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+tenantColumns+`
		from tenants where id=$1 and deleted_at is null
	`, id)
	return scanTenant(row)
}

func (s *TenantStore) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+tenantColumns+`
		from tenants where slug=$1 and deleted_at is null
	`, slug)
	return scanTenant(row)
}

func (s *TenantStore) Update(ctx context.Context, id string, upd tenant.Update) (*tenant.Tenant, error) {
	sets := []string{"updated_at=now()"}
	args := []any{}
	n := 0
	add := func(col string, val any) {
		n++
		sets = append(sets, fmt.Sprintf("%s=$%d", col, n))
		args = append(args, val)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Phone != nil {
		add("phone", nullString(*upd.Phone))
	}
	if upd.PrimaryColor != nil {
		add("primary_color", *upd.PrimaryColor)
	}
	if upd.LogoURL != nil {
		add("logo_url", nullString(*upd.LogoURL))
	}
	if upd.CoverURL != nil {
		add("cover_url", nullString(*upd.CoverURL))
	}
	if upd.Plan != nil {
		add("plan", *upd.Plan)
	}
	args = append(args, id)
	query := fmt.Sprintf(`update tenants set %s where id=$%d and deleted_at is null`,
		strings.Join(sets, ", "), n+1)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, tenant.ErrConflict
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, tenant.ErrNotFound
	}
	return s.Find(ctx, id)
}

func (s *TenantStore) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx, `
		update tenants set is_active=$2, updated_at=now()
		where id=$1 and deleted_at is null
	`, id, active)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tenant.ErrNotFound
	}
	return nil
}

func (s *TenantStore) SoftDelete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update tenants set deleted_at=now(), updated_at=now()
		where id=$1 and deleted_at is null
	`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tenant.ErrNotFound
	}
	return nil
}
