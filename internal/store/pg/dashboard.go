package pg

import (
	"context"
	"database/sql"
	"time"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// DashboardStore aggregates tenant counters for the dashboard endpoints.
type DashboardStore struct {
	db *sql.DB
}

var _ practice.DashboardStore = (*DashboardStore)(nil)

func (s *DashboardStore) Stats(ctx context.Context, scope tenant.Scope, now time.Time) (*practice.Stats, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	stats := &practice.Stats{}
	stats.Workouts.ByCategory = map[string]int{}

	err := s.db.QueryRowContext(ctx, `
		select count(*),
			count(*) filter (where is_active),
			count(*) filter (where not is_active)
		from students where tenant_id=$1 and deleted_at is null
	`, scope.TenantID()).Scan(&stats.Students.Total, &stats.Students.Active, &stats.Students.Inactive)
	if err != nil {
		return nil, err
	}

	var strength, cardio, flexibility, mixed int
	err = s.db.QueryRowContext(ctx, `
		select count(*),
			count(*) filter (where is_active),
			count(*) filter (where category='strength'),
			count(*) filter (where category='cardio'),
			count(*) filter (where category='flexibility'),
			count(*) filter (where category='mixed')
		from workouts where tenant_id=$1 and deleted_at is null
	`, scope.TenantID()).Scan(
		&stats.Workouts.Total, &stats.Workouts.Active,
		&strength, &cardio, &flexibility, &mixed,
	)
	if err != nil {
		return nil, err
	}
	stats.Workouts.ByCategory[practice.CategoryStrength] = strength
	stats.Workouts.ByCategory[practice.CategoryCardio] = cardio
	stats.Workouts.ByCategory[practice.CategoryFlexibility] = flexibility
	stats.Workouts.ByCategory[practice.CategoryMixed] = mixed

	err = s.db.QueryRowContext(ctx, `
		select count(*),
			count(*) filter (where status='active'),
			count(*) filter (where status='completed')
		from goals where tenant_id=$1
	`, scope.TenantID()).Scan(&stats.Goals.Total, &stats.Goals.Active, &stats.Goals.Completed)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	err = s.db.QueryRowContext(ctx, `
		select count(*),
			count(*) filter (where performed_at >= $2)
		from workout_logs where tenant_id=$1
	`, scope.TenantID(), monthStart).Scan(&stats.WorkoutLogs.Total, &stats.WorkoutLogs.ThisMonth)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *DashboardStore) RecentStudents(ctx context.Context, scope tenant.Scope, limit int) ([]practice.Student, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+studentColumns+`
		from students where tenant_id=$1 and deleted_at is null
		order by created_at desc
		limit $2
	`, scope.TenantID(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.Student
	for rows.Next() {
		st, err := scanStudentRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

func (s *DashboardStore) RecentWorkouts(ctx context.Context, scope tenant.Scope, limit int) ([]practice.RecentWorkout, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select w.id, w.student_id, w.name, s.name, w.created_at
		from workouts w
		join students s on s.id = w.student_id and s.tenant_id = w.tenant_id
		where w.tenant_id=$1 and w.deleted_at is null
		order by w.created_at desc
		limit $2
	`, scope.TenantID(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.RecentWorkout
	for rows.Next() {
		var w practice.RecentWorkout
		if err := rows.Scan(&w.ID, &w.StudentID, &w.Name, &w.StudentName, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *DashboardStore) RecentCompletedGoals(ctx context.Context, scope tenant.Scope, limit int) ([]practice.RecentGoal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select g.id, g.student_id, g.title, s.name, g.completed_at
		from goals g
		join students s on s.id = g.student_id and s.tenant_id = g.tenant_id
		where g.tenant_id=$1 and g.status='completed' and g.completed_at is not null
		order by g.completed_at desc
		limit $2
	`, scope.TenantID(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.RecentGoal
	for rows.Next() {
		var g practice.RecentGoal
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Title, &g.StudentName, &g.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
