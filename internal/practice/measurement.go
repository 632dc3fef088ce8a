package practice

import (
	"context"
	"time"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

// MeasurementInput is the write payload for recording an assessment.
type MeasurementInput struct {
	WeightKG     float64    `json:"weight"`
	BodyFatPct   *float64   `json:"body_fat"`
	MuscleMassKG *float64   `json:"muscle_mass"`
	NeckCM       *float64   `json:"neck"`
	ShoulderCM   *float64   `json:"shoulder"`
	ChestCM      *float64   `json:"chest"`
	WaistCM      *float64   `json:"waist"`
	AbdomenCM    *float64   `json:"abdomen"`
	HipCM        *float64   `json:"hip"`
	RightArmCM   *float64   `json:"right_arm"`
	LeftArmCM    *float64   `json:"left_arm"`
	RightThighCM *float64   `json:"right_thigh"`
	LeftThighCM  *float64   `json:"left_thigh"`
	RightCalfCM  *float64   `json:"right_calf"`
	LeftCalfCM   *float64   `json:"left_calf"`
	Notes        string     `json:"notes"`
	MeasuredAt   *time.Time `json:"measured_at"`
}

func (in *MeasurementInput) validate() error {
	errs := fieldErrors{}
	if in.WeightKG <= 0 || in.WeightKG > 500 {
		errs.add("weight", "must be between 0 and 500")
	}
	if in.BodyFatPct != nil && (*in.BodyFatPct < 0 || *in.BodyFatPct > 100) {
		errs.add("body_fat", "must be between 0 and 100")
	}
	if in.MuscleMassKG != nil && *in.MuscleMassKG < 0 {
		errs.add("muscle_mass", "must not be negative")
	}
	return errs.err()
}

// RecordMeasurement stores a new assessment for a student.
func (s *Service) RecordMeasurement(ctx context.Context, scope tenant.Scope, studentID string, in MeasurementInput) (*Measurement, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	measuredAt := now
	if in.MeasuredAt != nil {
		measuredAt = in.MeasuredAt.UTC()
	}
	m := &Measurement{
		ID:           ids.New(),
		StudentID:    studentID,
		WeightKG:     in.WeightKG,
		BodyFatPct:   in.BodyFatPct,
		MuscleMassKG: in.MuscleMassKG,
		NeckCM:       in.NeckCM,
		ShoulderCM:   in.ShoulderCM,
		ChestCM:      in.ChestCM,
		WaistCM:      in.WaistCM,
		AbdomenCM:    in.AbdomenCM,
		HipCM:        in.HipCM,
		RightArmCM:   in.RightArmCM,
		LeftArmCM:    in.LeftArmCM,
		RightThighCM: in.RightThighCM,
		LeftThighCM:  in.LeftThighCM,
		RightCalfCM:  in.RightCalfCM,
		LeftCalfCM:   in.LeftCalfCM,
		Notes:        in.Notes,
		MeasuredAt:   measuredAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.st.Measurements.Create(ctx, scope, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMeasurements returns a student's assessments, newest first.
func (s *Service) ListMeasurements(ctx context.Context, scope tenant.Scope, studentID string) ([]Measurement, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	return s.st.Measurements.ListForStudent(ctx, scope, studentID)
}

// LatestMeasurement returns the most recent assessment for a student.
func (s *Service) LatestMeasurement(ctx context.Context, scope tenant.Scope, studentID string) (*Measurement, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	return s.st.Measurements.Latest(ctx, scope, studentID)
}

// MeasurementGraph shapes the student's full history into chart series,
// oldest first.
func (s *Service) MeasurementGraph(ctx context.Context, scope tenant.Scope, studentID string) (*GraphData, error) {
	measurements, err := s.ListMeasurements(ctx, scope, studentID)
	if err != nil {
		return nil, err
	}
	g := &GraphData{
		Labels:     make([]string, 0, len(measurements)),
		Weight:     make([]float64, 0, len(measurements)),
		BodyFat:    make([]*float64, 0, len(measurements)),
		MuscleMass: make([]*float64, 0, len(measurements)),
	}
	// The store lists newest first; charts read left to right.
	for i := len(measurements) - 1; i >= 0; i-- {
		m := measurements[i]
		g.Labels = append(g.Labels, m.MeasuredAt.Format("02/01/2006"))
		g.Weight = append(g.Weight, m.WeightKG)
		g.BodyFat = append(g.BodyFat, m.BodyFatPct)
		g.MuscleMass = append(g.MuscleMass, m.MuscleMassKG)
	}
	return g, nil
}
