package practice

import (
	"context"
	"time"

	"coachbase.app/internal/tenant"
)

// Store interfaces are implemented by the pg package. Every method takes a
// tenant.Scope so no query can be issued without a proven tenant context;
// implementations must fail closed on a zero scope.

type StudentStore interface {
	Create(ctx context.Context, scope tenant.Scope, s *Student) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*Student, error)
	List(ctx context.Context, scope tenant.Scope, f StudentFilter) ([]Student, int, error)
	Update(ctx context.Context, scope tenant.Scope, s *Student) error
	SoftDelete(ctx context.Context, scope tenant.Scope, id string) error
}

type WorkoutStore interface {
	Create(ctx context.Context, scope tenant.Scope, w *Workout) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*Workout, error)
	List(ctx context.Context, scope tenant.Scope, f WorkoutFilter) ([]Workout, int, error)
	Update(ctx context.Context, scope tenant.Scope, w *Workout) error
	SoftDelete(ctx context.Context, scope tenant.Scope, id string) error
}

type ExerciseStore interface {
	Create(ctx context.Context, scope tenant.Scope, e *Exercise) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*Exercise, error)
	ListForWorkout(ctx context.Context, scope tenant.Scope, workoutID string) ([]Exercise, error)
	Update(ctx context.Context, scope tenant.Scope, e *Exercise) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

type GoalStore interface {
	Create(ctx context.Context, scope tenant.Scope, g *Goal) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*Goal, error)
	ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]Goal, error)
	Update(ctx context.Context, scope tenant.Scope, g *Goal) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

type MeasurementStore interface {
	Create(ctx context.Context, scope tenant.Scope, m *Measurement) error
	ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]Measurement, error)
	Latest(ctx context.Context, scope tenant.Scope, studentID string) (*Measurement, error)
}

type PaymentStore interface {
	Create(ctx context.Context, scope tenant.Scope, p *Payment) error
	Find(ctx context.Context, scope tenant.Scope, id string) (*Payment, error)
	ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]Payment, error)
	Update(ctx context.Context, scope tenant.Scope, p *Payment) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

type WorkoutLogStore interface {
	Create(ctx context.Context, scope tenant.Scope, l *WorkoutLog) error
	ListForWorkout(ctx context.Context, scope tenant.Scope, workoutID string) ([]WorkoutLog, error)
}

// RecentWorkout is a workout row joined with its student's name for the
// activity feed.
type RecentWorkout struct {
	ID          string
	StudentID   string
	Name        string
	StudentName string
	CreatedAt   time.Time
}

// RecentGoal is a completed goal joined with its student's name.
type RecentGoal struct {
	ID          string
	StudentID   string
	Title       string
	StudentName string
	CompletedAt time.Time
}

// DashboardStore aggregates tenant-wide counters and recent rows for the
// dashboard endpoints.
type DashboardStore interface {
	Stats(ctx context.Context, scope tenant.Scope, now time.Time) (*Stats, error)
	RecentStudents(ctx context.Context, scope tenant.Scope, limit int) ([]Student, error)
	RecentWorkouts(ctx context.Context, scope tenant.Scope, limit int) ([]RecentWorkout, error)
	RecentCompletedGoals(ctx context.Context, scope tenant.Scope, limit int) ([]RecentGoal, error)
}
