package practice

import (
	"context"
	"strings"
	"time"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

// StudentInput is the write payload for creating or replacing a student.
// It deliberately has no tenant field; ownership comes from the Scope.
type StudentInput struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	BirthDate         *time.Time `json:"birth_date"`
	AvatarURL         string     `json:"avatar_url"`
	Gender            string     `json:"gender"`
	HeightCM          *float64   `json:"height"`
	MedicalConditions string     `json:"medical_conditions"`
	Notes             string     `json:"notes"`
	TrainerID         string     `json:"trainer_id"`
	Active            *bool      `json:"is_active"`
}

func (in *StudentInput) normalize() {
	in.Name = trimmed(in.Name)
	in.Email = strings.ToLower(trimmed(in.Email))
	in.Phone = trimmed(in.Phone)
	in.Gender = strings.ToLower(trimmed(in.Gender))
	in.TrainerID = trimmed(in.TrainerID)
}

func (in *StudentInput) validate() error {
	errs := fieldErrors{}
	if in.Name == "" {
		errs.add("name", "is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		errs.add("email", "must be a valid email address")
	}
	if in.Gender != "" && !ValidGender(in.Gender) {
		errs.add("gender", "must be one of male, female, other")
	}
	if in.HeightCM != nil && (*in.HeightCM <= 0 || *in.HeightCM > 300) {
		errs.add("height", "must be between 0 and 300")
	}
	return errs.err()
}

// CreateStudent registers a new student under the scope's tenant.
func (s *Service) CreateStudent(ctx context.Context, scope tenant.Scope, in StudentInput) (*Student, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	st := &Student{
		ID:                ids.New(),
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		BirthDate:         in.BirthDate,
		AvatarURL:         trimmed(in.AvatarURL),
		Gender:            in.Gender,
		HeightCM:          in.HeightCM,
		MedicalConditions: in.MedicalConditions,
		Notes:             in.Notes,
		TrainerID:         in.TrainerID,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.Active != nil {
		st.Active = *in.Active
	}
	if err := s.st.Students.Create(ctx, scope, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetStudent loads one student within the scope's tenant.
func (s *Service) GetStudent(ctx context.Context, scope tenant.Scope, id string) (*Student, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.st.Students.Find(ctx, scope, id)
}

// ListStudents pages through the tenant's students, optionally filtered by
// a name/email search and the active flag.
func (s *Service) ListStudents(ctx context.Context, scope tenant.Scope, f StudentFilter) ([]Student, int, error) {
	return s.st.Students.List(ctx, scope, f.Normalize())
}

// UpdateStudent replaces the mutable fields of a student.
func (s *Service) UpdateStudent(ctx context.Context, scope tenant.Scope, id string, in StudentInput) (*Student, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.st.Students.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	current.Name = in.Name
	current.Email = in.Email
	current.Phone = in.Phone
	current.BirthDate = in.BirthDate
	current.AvatarURL = trimmed(in.AvatarURL)
	current.Gender = in.Gender
	current.HeightCM = in.HeightCM
	current.MedicalConditions = in.MedicalConditions
	current.Notes = in.Notes
	current.TrainerID = in.TrainerID
	if in.Active != nil {
		current.Active = *in.Active
	}
	current.UpdatedAt = s.now().UTC()
	if err := s.st.Students.Update(ctx, scope, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteStudent soft-deletes a student. Their history stays queryable by
// operator tooling but disappears from every listing.
func (s *Service) DeleteStudent(ctx context.Context, scope tenant.Scope, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrNotFound
	}
	return s.st.Students.SoftDelete(ctx, scope, id)
}
