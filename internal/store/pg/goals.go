package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// GoalStore persists student goals.
type GoalStore struct {
	db *sql.DB
}

var _ practice.GoalStore = (*GoalStore)(nil)

const goalColumns = `id, student_id, title, description, type, target_value, current_value,
	unit, starts_at, target_date, completed_at, status, created_at, updated_at`

func scanGoalRow(scan func(dest ...any) error) (*practice.Goal, error) {
	var g practice.Goal
	var description, unit sql.NullString
	var targetValue, currentValue sql.NullFloat64
	var startsAt, targetDate, completedAt sql.NullTime
	err := scan(
		&g.ID, &g.StudentID, &g.Title, &description, &g.Type, &targetValue, &currentValue,
		&unit, &startsAt, &targetDate, &completedAt, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Description = strValue(description)
	g.TargetValue = floatValue(targetValue)
	g.CurrentValue = floatValue(currentValue)
	g.Unit = strValue(unit)
	g.StartsAt = timeValue(startsAt)
	g.TargetDate = timeValue(targetDate)
	g.CompletedAt = timeValue(completedAt)
	return &g, nil
}

func (s *GoalStore) Create(ctx context.Context, scope tenant.Scope, g *practice.Goal) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into goals (id, tenant_id, student_id, title, description, type, target_value, current_value, unit, starts_at, target_date, completed_at, status, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, g.ID, scope.TenantID(), g.StudentID, g.Title, nullString(g.Description), g.Type,
		nullFloat(g.TargetValue), nullFloat(g.CurrentValue), nullString(g.Unit),
		nullTime(g.StartsAt), nullTime(g.TargetDate), nullTime(g.CompletedAt), g.Status,
		g.CreatedAt, g.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *GoalStore) Find(ctx context.Context, scope tenant.Scope, id string) (*practice.Goal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+goalColumns+`
		from goals where id=$1 and tenant_id=$2
	`, id, scope.TenantID())
	g, err := scanGoalRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return g, err
}

func (s *GoalStore) ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]practice.Goal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+goalColumns+`
		from goals where student_id=$1 and tenant_id=$2
		order by created_at desc
	`, studentID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.Goal
	for rows.Next() {
		g, err := scanGoalRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (s *GoalStore) Update(ctx context.Context, scope tenant.Scope, g *practice.Goal) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update goals
		set title=$3, description=$4, type=$5, target_value=$6, current_value=$7, unit=$8,
			starts_at=$9, target_date=$10, completed_at=$11, status=$12, updated_at=$13
		where id=$1 and tenant_id=$2
	`, g.ID, scope.TenantID(), g.Title, nullString(g.Description), g.Type,
		nullFloat(g.TargetValue), nullFloat(g.CurrentValue), nullString(g.Unit),
		nullTime(g.StartsAt), nullTime(g.TargetDate), nullTime(g.CompletedAt), g.Status,
		g.UpdatedAt)
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

func (s *GoalStore) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		delete from goals where id=$1 and tenant_id=$2
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
