// Package pg implements the persistence interfaces on PostgreSQL. Every
// tenant-owned query embeds the tenant predicate in the statement itself;
// filtering rows after the fact is forbidden here.
package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgreSQL error codes this package maps onto domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Store bundles the per-entity stores over one connection pool.
type Store struct {
	db *sql.DB

	Tenants      *TenantStore
	Users        *UserStore
	Sessions     *SessionStore
	Students     *StudentStore
	Workouts     *WorkoutStore
	Exercises    *ExerciseStore
	Goals        *GoalStore
	Measurements *MeasurementStore
	Payments     *PaymentStore
	Logs         *WorkoutLogStore
	Dashboard    *DashboardStore
}

// Open connects to PostgreSQL via the pgx stdlib driver.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return NewStore(db), nil
}

// NewStore wires the entity stores onto an existing pool. Tests hand it a
// sqlmock connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Tenants:      &TenantStore{db: db},
		Users:        &UserStore{db: db},
		Sessions:     &SessionStore{db: db},
		Students:     &StudentStore{db: db},
		Workouts:     &WorkoutStore{db: db},
		Exercises:    &ExerciseStore{db: db},
		Goals:        &GoalStore{db: db},
		Measurements: &MeasurementStore{db: db},
		Payments:     &PaymentStore{db: db},
		Logs:         &WorkoutLogStore{db: db},
		Dashboard:    &DashboardStore{db: db},
	}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// pgErrCode extracts the SQLSTATE code from a driver error, empty when the
// error came from elsewhere.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func strValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func timeValue(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func floatValue(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
