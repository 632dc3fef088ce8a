package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/auth"
)

// SessionStore persists revocable login sessions. Sessions are keyed by the
// token's jti claim and are not tenant-owned rows; the tenant check happens
// during principal resolution.
type SessionStore struct {
	db *sql.DB
}

var _ auth.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Create(ctx context.Context, sess *auth.Session) error {
	_, err := s.db.ExecContext(ctx, `
		insert into sessions (id, user_id, expires_at, created_at)
		values ($1,$2,$3,$4)
	`, sess.ID, sess.UserID, sess.ExpiresAt, sess.CreatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return auth.ErrConflict
		case pgForeignKeyViolation:
			return auth.ErrNotFound
		}
	}
	return err
}

func (s *SessionStore) Find(ctx context.Context, id string) (*auth.Session, error) {
	var sess auth.Session
	var revokedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		select id, user_id, expires_at, revoked_at, created_at
		from sessions where id=$1
	`, id).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &revokedAt, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.RevokedAt = timeValue(revokedAt)
	return &sess, nil
}

func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		update sessions set revoked_at=now()
		where id=$1 and revoked_at is null
	`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (s *SessionStore) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		update sessions set revoked_at=now()
		where user_id=$1 and revoked_at is null
	`, userID)
	return err
}
