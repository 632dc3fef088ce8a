package practice

import (
	"errors"
	"time"
)

// Stores bundles the persistence dependencies of the Service.
type Stores struct {
	Students     StudentStore
	Workouts     WorkoutStore
	Exercises    ExerciseStore
	Goals        GoalStore
	Measurements MeasurementStore
	Payments     PaymentStore
	Logs         WorkoutLogStore
	Dashboard    DashboardStore
}

// Service validates input, assigns ids and timestamps, and delegates
// persistence to the Scope-taking stores.
type Service struct {
	st  Stores
	now func() time.Time
}

// Option configures Service behavior.
type Option func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs the domain service. All stores are required.
func NewService(st Stores, opts ...Option) (*Service, error) {
	if st.Students == nil || st.Workouts == nil || st.Exercises == nil ||
		st.Goals == nil || st.Measurements == nil || st.Payments == nil ||
		st.Logs == nil || st.Dashboard == nil {
		return nil, errors.New("practice: all stores are required")
	}
	svc := &Service{st: st, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}
