package practice

import (
	"context"
	"strings"
	"time"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

// WorkoutInput is the write payload for creating or replacing a workout.
type WorkoutInput struct {
	StudentID   string     `json:"student_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Active      *bool      `json:"is_active"`
}

func (in *WorkoutInput) normalize() {
	in.StudentID = trimmed(in.StudentID)
	in.Name = trimmed(in.Name)
	in.Category = strings.ToLower(trimmed(in.Category))
}

func (in *WorkoutInput) validate() error {
	errs := fieldErrors{}
	if in.StudentID == "" {
		errs.add("student_id", "is required")
	}
	if in.Name == "" {
		errs.add("name", "is required")
	}
	if !ValidCategory(in.Category) {
		errs.add("category", "must be one of strength, cardio, flexibility, mixed")
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		errs.add("ends_at", "must not be before starts_at")
	}
	return errs.err()
}

// CreateWorkout creates a workout for one of the tenant's students.
// createdBy is the authenticated user's id.
func (s *Service) CreateWorkout(ctx context.Context, scope tenant.Scope, createdBy string, in WorkoutInput) (*Workout, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	// The student lookup is scoped, so assigning a workout to another
	// tenant's student surfaces as not found.
	if _, err := s.st.Students.Find(ctx, scope, in.StudentID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	w := &Workout{
		ID:          ids.New(),
		StudentID:   in.StudentID,
		CreatedBy:   createdBy,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Active != nil {
		w.Active = *in.Active
	}
	if err := s.st.Workouts.Create(ctx, scope, w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetWorkout loads one workout with its exercises.
func (s *Service) GetWorkout(ctx context.Context, scope tenant.Scope, id string) (*Workout, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	w, err := s.st.Workouts.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	exercises, err := s.st.Exercises.ListForWorkout(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	w.Exercises = exercises
	return w, nil
}

// ListWorkouts pages through the tenant's workouts.
func (s *Service) ListWorkouts(ctx context.Context, scope tenant.Scope, f WorkoutFilter) ([]Workout, int, error) {
	f = f.Normalize()
	if f.Category != "" && !ValidCategory(f.Category) {
		return nil, 0, &ValidationError{Fields: map[string]string{
			"category": "must be one of strength, cardio, flexibility, mixed",
		}}
	}
	return s.st.Workouts.List(ctx, scope, f)
}

// UpdateWorkout replaces the mutable fields of a workout.
func (s *Service) UpdateWorkout(ctx context.Context, scope tenant.Scope, id string, in WorkoutInput) (*Workout, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.st.Workouts.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.StudentID != current.StudentID {
		if _, err := s.st.Students.Find(ctx, scope, in.StudentID); err != nil {
			return nil, err
		}
	}
	current.StudentID = in.StudentID
	current.Name = in.Name
	current.Description = in.Description
	current.Category = in.Category
	current.StartsAt = in.StartsAt
	current.EndsAt = in.EndsAt
	if in.Active != nil {
		current.Active = *in.Active
	}
	current.UpdatedAt = s.now().UTC()
	if err := s.st.Workouts.Update(ctx, scope, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteWorkout soft-deletes a workout.
func (s *Service) DeleteWorkout(ctx context.Context, scope tenant.Scope, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrNotFound
	}
	return s.st.Workouts.SoftDelete(ctx, scope, id)
}

// ExerciseInput is the write payload for creating or replacing an exercise.
type ExerciseInput struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Rest        string `json:"rest"`
	Load        string `json:"load"`
	Tempo       string `json:"tempo"`
	Notes       string `json:"notes"`
}

func (in *ExerciseInput) normalize() {
	in.Name = trimmed(in.Name)
	in.Reps = trimmed(in.Reps)
	in.Rest = trimmed(in.Rest)
	if in.Rest == "" {
		in.Rest = DefaultRest
	}
}

func (in *ExerciseInput) validate() error {
	errs := fieldErrors{}
	if in.Name == "" {
		errs.add("name", "is required")
	}
	if in.Sets < 1 {
		errs.add("sets", "must be at least 1")
	}
	if in.Reps == "" {
		errs.add("reps", "is required")
	}
	if in.Position < 0 {
		errs.add("position", "must not be negative")
	}
	return errs.err()
}

// AddExercise appends an exercise to a workout.
func (s *Service) AddExercise(ctx context.Context, scope tenant.Scope, workoutID string, in ExerciseInput) (*Exercise, error) {
	workoutID = trimmed(workoutID)
	if workoutID == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.st.Workouts.Find(ctx, scope, workoutID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	e := &Exercise{
		ID:          ids.New(),
		WorkoutID:   workoutID,
		Position:    in.Position,
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Description: in.Description,
		VideoURL:    trimmed(in.VideoURL),
		Sets:        in.Sets,
		Reps:        in.Reps,
		Rest:        in.Rest,
		Load:        in.Load,
		Tempo:       in.Tempo,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.st.Exercises.Create(ctx, scope, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExercise replaces the mutable fields of an exercise.
func (s *Service) UpdateExercise(ctx context.Context, scope tenant.Scope, id string, in ExerciseInput) (*Exercise, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.st.Exercises.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	current.Position = in.Position
	current.Name = in.Name
	current.MuscleGroup = in.MuscleGroup
	current.Description = in.Description
	current.VideoURL = trimmed(in.VideoURL)
	current.Sets = in.Sets
	current.Reps = in.Reps
	current.Rest = in.Rest
	current.Load = in.Load
	current.Tempo = in.Tempo
	current.Notes = in.Notes
	current.UpdatedAt = s.now().UTC()
	if err := s.st.Exercises.Update(ctx, scope, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteExercise removes an exercise from its workout.
func (s *Service) DeleteExercise(ctx context.Context, scope tenant.Scope, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrNotFound
	}
	return s.st.Exercises.Delete(ctx, scope, id)
}

// WorkoutLogInput records one performed set against a workout exercise.
type WorkoutLogInput struct {
	ExerciseID    string     `json:"exercise_id"`
	PerformedAt   *time.Time `json:"performed_at"`
	SetNumber     int        `json:"set_number"`
	RepsCompleted int        `json:"reps_completed"`
	LoadUsed      *float64   `json:"load_used"`
	Notes         string     `json:"notes"`
}

// LogWorkout records a completed set. The exercise must belong to the
// workout, and the workout to the scope's tenant.
func (s *Service) LogWorkout(ctx context.Context, scope tenant.Scope, workoutID string, in WorkoutLogInput) (*WorkoutLog, error) {
	workoutID = trimmed(workoutID)
	if workoutID == "" {
		return nil, ErrNotFound
	}
	in.ExerciseID = trimmed(in.ExerciseID)
	errs := fieldErrors{}
	if in.ExerciseID == "" {
		errs.add("exercise_id", "is required")
	}
	if in.SetNumber < 1 {
		errs.add("set_number", "must be at least 1")
	}
	if in.RepsCompleted < 0 {
		errs.add("reps_completed", "must not be negative")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}
	w, err := s.st.Workouts.Find(ctx, scope, workoutID)
	if err != nil {
		return nil, err
	}
	exercise, err := s.st.Exercises.Find(ctx, scope, in.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise.WorkoutID != workoutID {
		return nil, &ValidationError{Fields: map[string]string{
			"exercise_id": "does not belong to this workout",
		}}
	}
	now := s.now().UTC()
	performedAt := now
	if in.PerformedAt != nil {
		performedAt = in.PerformedAt.UTC()
	}
	l := &WorkoutLog{
		ID:            ids.New(),
		WorkoutID:     workoutID,
		ExerciseID:    in.ExerciseID,
		StudentID:     w.StudentID,
		PerformedAt:   performedAt,
		SetNumber:     in.SetNumber,
		RepsCompleted: in.RepsCompleted,
		LoadUsed:      in.LoadUsed,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if err := s.st.Logs.Create(ctx, scope, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListWorkoutLogs returns the recorded sets for one workout.
func (s *Service) ListWorkoutLogs(ctx context.Context, scope tenant.Scope, workoutID string) ([]WorkoutLog, error) {
	workoutID = trimmed(workoutID)
	if workoutID == "" {
		return nil, ErrNotFound
	}
	if _, err := s.st.Workouts.Find(ctx, scope, workoutID); err != nil {
		return nil, err
	}
	return s.st.Logs.ListForWorkout(ctx, scope, workoutID)
}
