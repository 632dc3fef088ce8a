package pg

import (
	"context"
	"database/sql"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// WorkoutLogStore persists performed sets. Logs are append-only.
type WorkoutLogStore struct {
	db *sql.DB
}

var _ practice.WorkoutLogStore = (*WorkoutLogStore)(nil)

func (s *WorkoutLogStore) Create(ctx context.Context, scope tenant.Scope, l *practice.WorkoutLog) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into workout_logs (id, tenant_id, workout_id, exercise_id, student_id, performed_at, set_number, reps_completed, load_used, notes, created_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, l.ID, scope.TenantID(), l.WorkoutID, l.ExerciseID, l.StudentID, l.PerformedAt,
		l.SetNumber, l.RepsCompleted, nullFloat(l.LoadUsed), nullString(l.Notes), l.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *WorkoutLogStore) ListForWorkout(ctx context.Context, scope tenant.Scope, workoutID string) ([]practice.WorkoutLog, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, workout_id, exercise_id, student_id, performed_at, set_number, reps_completed, load_used, notes, created_at
		from workout_logs where workout_id=$1 and tenant_id=$2
		order by performed_at desc, set_number
	`, workoutID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.WorkoutLog
	for rows.Next() {
		var l practice.WorkoutLog
		var loadUsed sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(
			&l.ID, &l.WorkoutID, &l.ExerciseID, &l.StudentID, &l.PerformedAt,
			&l.SetNumber, &l.RepsCompleted, &loadUsed, &notes, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.LoadUsed = floatValue(loadUsed)
		l.Notes = strValue(notes)
		out = append(out, l)
	}
	return out, rows.Err()
}
