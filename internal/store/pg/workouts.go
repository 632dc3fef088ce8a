package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// WorkoutStore persists workouts.
type WorkoutStore struct {
	db *sql.DB
}

var _ practice.WorkoutStore = (*WorkoutStore)(nil)

const workoutColumns = `id, student_id, created_by, name, description, category,
	starts_at, ends_at, is_active, created_at, updated_at`

func scanWorkoutRow(scan func(dest ...any) error) (*practice.Workout, error) {
	var w practice.Workout
	var description sql.NullString
	var startsAt, endsAt sql.NullTime
	err := scan(
		&w.ID, &w.StudentID, &w.CreatedBy, &w.Name, &description, &w.Category,
		&startsAt, &endsAt, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Description = strValue(description)
	w.StartsAt = timeValue(startsAt)
	w.EndsAt = timeValue(endsAt)
	return &w, nil
}

func (s *WorkoutStore) Create(ctx context.Context, scope tenant.Scope, w *practice.Workout) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into workouts (id, tenant_id, student_id, created_by, name, description, category, starts_at, ends_at, is_active, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, w.ID, scope.TenantID(), w.StudentID, w.CreatedBy, w.Name, nullString(w.Description),
		w.Category, nullTime(w.StartsAt), nullTime(w.EndsAt), w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *WorkoutStore) Find(ctx context.Context, scope tenant.Scope, id string) (*practice.Workout, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+workoutColumns+`
		from workouts where id=$1 and tenant_id=$2 and deleted_at is null
	`, id, scope.TenantID())
	w, err := scanWorkoutRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return w, err
}

func (s *WorkoutStore) List(ctx context.Context, scope tenant.Scope, f practice.WorkoutFilter) ([]practice.Workout, int, error) {
	if err := scope.Check(); err != nil {
		return nil, 0, err
	}
	where := []string{"tenant_id=$1", "deleted_at is null"}
	args := []any{scope.TenantID()}
	if f.StudentID != "" {
		args = append(args, f.StudentID)
		where = append(where, fmt.Sprintf("student_id=$%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category=$%d", len(args)))
	}
	cond := strings.Join(where, " and ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from workouts where `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)
	query := fmt.Sprintf(`
		select `+workoutColumns+`
		from workouts where %s
		order by created_at desc
		limit $%d offset $%d
	`, cond, len(args)-1, len(args))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []practice.Workout
	for rows.Next() {
		w, err := scanWorkoutRow(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *w)
	}
	return out, total, rows.Err()
}

func (s *WorkoutStore) Update(ctx context.Context, scope tenant.Scope, w *practice.Workout) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update workouts
		set student_id=$3, name=$4, description=$5, category=$6, starts_at=$7, ends_at=$8, is_active=$9, updated_at=$10
		where id=$1 and tenant_id=$2 and deleted_at is null
	`, w.ID, scope.TenantID(), w.StudentID, w.Name, nullString(w.Description), w.Category,
		nullTime(w.StartsAt), nullTime(w.EndsAt), w.Active, w.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return practice.ErrNotFound
	}
	return nil
}

func (s *WorkoutStore) SoftDelete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update workouts set deleted_at=now(), updated_at=now()
		where id=$1 and tenant_id=$2 and deleted_at is null
	`, id, scope.TenantID())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return practice.ErrNotFound
	}
	return nil
}
