package practice

import (
	"context"
	"sort"

	"coachbase.app/internal/tenant"
)

const defaultActivityLimit = 10

// DashboardStats returns the tenant's aggregate counters.
func (s *Service) DashboardStats(ctx context.Context, scope tenant.Scope) (*Stats, error) {
	return s.st.Dashboard.Stats(ctx, scope, s.now().UTC())
}

// RecentActivity merges newly created students, newly created workouts, and
// recently completed goals into a single feed, newest first.
func (s *Service) RecentActivity(ctx context.Context, scope tenant.Scope, limit int) ([]Activity, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > 50 {
		limit = 50
	}

	students, err := s.st.Dashboard.RecentStudents(ctx, scope, limit)
	if err != nil {
		return nil, err
	}
	workouts, err := s.st.Dashboard.RecentWorkouts(ctx, scope, limit)
	if err != nil {
		return nil, err
	}
	goals, err := s.st.Dashboard.RecentCompletedGoals(ctx, scope, limit)
	if err != nil {
		return nil, err
	}

	feed := make([]Activity, 0, len(students)+len(workouts)+len(goals))
	for _, st := range students {
		feed = append(feed, Activity{
			Type:        ActivityStudentCreated,
			Title:       "New student registered",
			Description: st.Name,
			Date:        st.CreatedAt,
			StudentID:   st.ID,
		})
	}
	for _, w := range workouts {
		feed = append(feed, Activity{
			Type:        ActivityWorkoutCreated,
			Title:       "New workout created",
			Description: w.Name + " - " + w.StudentName,
			Date:        w.CreatedAt,
			StudentID:   w.StudentID,
			WorkoutID:   w.ID,
		})
	}
	for _, g := range goals {
		feed = append(feed, Activity{
			Type:        ActivityGoalCompleted,
			Title:       "Goal completed",
			Description: g.Title + " - " + g.StudentName,
			Date:        g.CompletedAt,
			StudentID:   g.StudentID,
			GoalID:      g.ID,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].Date.After(feed[j].Date) })
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
