package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/tenant"
)

// UserStore persists trainer and staff accounts.
type UserStore struct {
	db *sql.DB
}

var _ auth.UserStore = (*UserStore)(nil)

const userColumns = `id, tenant_id, name, email, password_hash, phone, avatar_url, role,
	is_active, created_at, updated_at`

func scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	var phone, avatarURL sql.NullString
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &phone, &avatarURL,
		&u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Phone = strValue(phone)
	u.AvatarURL = strValue(avatarURL)
	return &u, nil
}

func (s *UserStore) Create(ctx context.Context, u *auth.User) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users (id, tenant_id, name, email, password_hash, phone, avatar_url, role, is_active, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, u.ID, u.TenantID, u.Name, u.Email, u.PasswordHash, nullString(u.Phone),
		nullString(u.AvatarURL), u.Role, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return auth.ErrConflict
		case pgForeignKeyViolation:
			return auth.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserStore) Find(ctx context.Context, scope tenant.Scope, id string) (*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users where id=$1 and tenant_id=$2
	`, id, scope.TenantID())
	return scanUser(row)
}

func (s *UserStore) List(ctx context.Context, scope tenant.Scope) ([]*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+userColumns+`
		from users where tenant_id=$1
		order by created_at
	`, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*auth.User
	for rows.Next() {
		var u auth.User
		var phone, avatarURL sql.NullString
		if err := rows.Scan(
			&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &phone, &avatarURL,
			&u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		u.Phone = strValue(phone)
		u.AvatarURL = strValue(avatarURL)
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (s *UserStore) UpdateProfile(ctx context.Context, scope tenant.Scope, id string, upd auth.UserUpdate) (*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	current, err := s.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		current.Name = *upd.Name
	}
	if upd.Phone != nil {
		current.Phone = *upd.Phone
	}
	if upd.AvatarURL != nil {
		current.AvatarURL = *upd.AvatarURL
	}
	res, err := s.db.ExecContext(ctx, `
		update users set name=$3, phone=$4, avatar_url=$5, updated_at=now()
		where id=$1 and tenant_id=$2
	`, id, scope.TenantID(), current.Name, nullString(current.Phone), nullString(current.AvatarURL))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, auth.ErrNotFound
	}
	return current, nil
}

// FindByEmailAcrossTenants is the login escape hatch: no tenant context
// exists before authentication, so this lookup alone runs unscoped.
func (s *UserStore) FindByEmailAcrossTenants(ctx context.Context, email string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users where email=$1
	`, email)
	return scanUser(row)
}
