package practice

import (
	"context"
	"strings"
	"time"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

// GoalInput is the write payload for creating or replacing a goal.
type GoalInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	TargetValue  *float64   `json:"target_value"`
	CurrentValue *float64   `json:"current_value"`
	Unit         string     `json:"unit"`
	StartsAt     *time.Time `json:"starts_at"`
	TargetDate   *time.Time `json:"target_date"`
	Status       string     `json:"status"`
}

func (in *GoalInput) normalize() {
	in.Title = trimmed(in.Title)
	in.Type = strings.ToLower(trimmed(in.Type))
	in.Unit = trimmed(in.Unit)
	in.Status = strings.ToLower(trimmed(in.Status))
	if in.Status == "" {
		in.Status = GoalStatusActive
	}
}

func (in *GoalInput) validate() error {
	errs := fieldErrors{}
	if in.Title == "" {
		errs.add("title", "is required")
	}
	if !ValidGoalType(in.Type) {
		errs.add("type", "must be one of weight_loss, muscle_gain, performance, other")
	}
	if !ValidGoalStatus(in.Status) {
		errs.add("status", "must be one of active, completed, cancelled")
	}
	return errs.err()
}

// CreateGoal creates a goal for one of the tenant's students.
func (s *Service) CreateGoal(ctx context.Context, scope tenant.Scope, studentID string, in GoalInput) (*Goal, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	g := &Goal{
		ID:           ids.New(),
		StudentID:    studentID,
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Unit:         in.Unit,
		StartsAt:     in.StartsAt,
		TargetDate:   in.TargetDate,
		Status:       in.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if g.Status == GoalStatusCompleted {
		g.CompletedAt = &now
	}
	if err := s.st.Goals.Create(ctx, scope, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGoals returns a student's goals, newest first.
func (s *Service) ListGoals(ctx context.Context, scope tenant.Scope, studentID string) ([]Goal, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	return s.st.Goals.ListForStudent(ctx, scope, studentID)
}

// UpdateGoal replaces the mutable fields of a goal. Transitioning into the
// completed status stamps CompletedAt; leaving it clears the stamp.
func (s *Service) UpdateGoal(ctx context.Context, scope tenant.Scope, id string, in GoalInput) (*Goal, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.st.Goals.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if in.Status == GoalStatusCompleted && current.Status != GoalStatusCompleted {
		current.CompletedAt = &now
	} else if in.Status != GoalStatusCompleted {
		current.CompletedAt = nil
	}
	current.Title = in.Title
	current.Description = in.Description
	current.Type = in.Type
	current.TargetValue = in.TargetValue
	current.CurrentValue = in.CurrentValue
	current.Unit = in.Unit
	current.StartsAt = in.StartsAt
	current.TargetDate = in.TargetDate
	current.Status = in.Status
	current.UpdatedAt = now
	if err := s.st.Goals.Update(ctx, scope, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, scope tenant.Scope, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrNotFound
	}
	return s.st.Goals.Delete(ctx, scope, id)
}
