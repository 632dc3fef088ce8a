package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// ExerciseStore persists prescribed exercises. Rows carry their own
// tenant_id even though they also hang off a workout, so the predicate
// never depends on a join.
type ExerciseStore struct {
	db *sql.DB
}

var _ practice.ExerciseStore = (*ExerciseStore)(nil)

const exerciseColumns = `id, workout_id, position, name, muscle_group, description, video_url,
	sets, reps, rest, load, tempo, notes, created_at, updated_at`

func scanExerciseRow(scan func(dest ...any) error) (*practice.Exercise, error) {
	var e practice.Exercise
	var muscleGroup, description, videoURL, rest, load, tempo, notes sql.NullString
	err := scan(
		&e.ID, &e.WorkoutID, &e.Position, &e.Name, &muscleGroup, &description, &videoURL,
		&e.Sets, &e.Reps, &rest, &load, &tempo, &notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.MuscleGroup = strValue(muscleGroup)
	e.Description = strValue(description)
	e.VideoURL = strValue(videoURL)
	e.Rest = strValue(rest)
	e.Load = strValue(load)
	e.Tempo = strValue(tempo)
	e.Notes = strValue(notes)
	return &e, nil
}

func (s *ExerciseStore) Create(ctx context.Context, scope tenant.Scope, e *practice.Exercise) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into exercises (id, tenant_id, workout_id, position, name, muscle_group, description, video_url, sets, reps, rest, load, tempo, notes, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`, e.ID, scope.TenantID(), e.WorkoutID, e.Position, e.Name, nullString(e.MuscleGroup),
		nullString(e.Description), nullString(e.VideoURL), e.Sets, e.Reps, nullString(e.Rest),
		nullString(e.Load), nullString(e.Tempo), nullString(e.Notes), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ExerciseStore) Find(ctx context.Context, scope tenant.Scope, id string) (*practice.Exercise, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+exerciseColumns+`
		from exercises where id=$1 and tenant_id=$2
	`, id, scope.TenantID())
	e, err := scanExerciseRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return e, err
}

func (s *ExerciseStore) ListForWorkout(ctx context.Context, scope tenant.Scope, workoutID string) ([]practice.Exercise, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+exerciseColumns+`
		from exercises where workout_id=$1 and tenant_id=$2
		order by position, created_at
	`, workoutID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.Exercise
	for rows.Next() {
		e, err := scanExerciseRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *ExerciseStore) Update(ctx context.Context, scope tenant.Scope, e *practice.Exercise) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update exercises
		set position=$3, name=$4, muscle_group=$5, description=$6, video_url=$7, sets=$8,
			reps=$9, rest=$10, load=$11, tempo=$12, notes=$13, updated_at=$14
		where id=$1 and tenant_id=$2
	`, e.ID, scope.TenantID(), e.Position, e.Name, nullString(e.MuscleGroup),
		nullString(e.Description), nullString(e.VideoURL), e.Sets, e.Reps, nullString(e.Rest),
		nullString(e.Load), nullString(e.Tempo), nullString(e.Notes), e.UpdatedAt)
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

func (s *ExerciseStore) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		delete from exercises where id=$1 and tenant_id=$2
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
