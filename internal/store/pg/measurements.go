package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// MeasurementStore persists physical assessments. Measurements are
// append-only; corrections are new rows.
type MeasurementStore struct {
	db *sql.DB
}

var _ practice.MeasurementStore = (*MeasurementStore)(nil)

const measurementColumns = `id, student_id, weight, body_fat, muscle_mass, neck, shoulder,
	chest, waist, abdomen, hip, right_arm, left_arm, right_thigh, left_thigh,
	right_calf, left_calf, notes, measured_at, created_at, updated_at`

func scanMeasurementRow(scan func(dest ...any) error) (*practice.Measurement, error) {
	var m practice.Measurement
	var bodyFat, muscleMass, neck, shoulder, chest, waist, abdomen, hip sql.NullFloat64
	var rightArm, leftArm, rightThigh, leftThigh, rightCalf, leftCalf sql.NullFloat64
	var notes sql.NullString
	err := scan(
		&m.ID, &m.StudentID, &m.WeightKG, &bodyFat, &muscleMass, &neck, &shoulder,
		&chest, &waist, &abdomen, &hip, &rightArm, &leftArm, &rightThigh, &leftThigh,
		&rightCalf, &leftCalf, &notes, &m.MeasuredAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.BodyFatPct = floatValue(bodyFat)
	m.MuscleMassKG = floatValue(muscleMass)
	m.NeckCM = floatValue(neck)
	m.ShoulderCM = floatValue(shoulder)
	m.ChestCM = floatValue(chest)
	m.WaistCM = floatValue(waist)
	m.AbdomenCM = floatValue(abdomen)
	m.HipCM = floatValue(hip)
	m.RightArmCM = floatValue(rightArm)
	m.LeftArmCM = floatValue(leftArm)
	m.RightThighCM = floatValue(rightThigh)
	m.LeftThighCM = floatValue(leftThigh)
	m.RightCalfCM = floatValue(rightCalf)
	m.LeftCalfCM = floatValue(leftCalf)
	m.Notes = strValue(notes)
	return &m, nil
}

func (s *MeasurementStore) Create(ctx context.Context, scope tenant.Scope, m *practice.Measurement) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into student_measurements (id, tenant_id, student_id, weight, body_fat, muscle_mass, neck, shoulder, chest, waist, abdomen, hip, right_arm, left_arm, right_thigh, left_thigh, right_calf, left_calf, notes, measured_at, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	`, m.ID, scope.TenantID(), m.StudentID, m.WeightKG, nullFloat(m.BodyFatPct),
		nullFloat(m.MuscleMassKG), nullFloat(m.NeckCM), nullFloat(m.ShoulderCM),
		nullFloat(m.ChestCM), nullFloat(m.WaistCM), nullFloat(m.AbdomenCM), nullFloat(m.HipCM),
		nullFloat(m.RightArmCM), nullFloat(m.LeftArmCM), nullFloat(m.RightThighCM),
		nullFloat(m.LeftThighCM), nullFloat(m.RightCalfCM), nullFloat(m.LeftCalfCM),
		nullString(m.Notes), m.MeasuredAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *MeasurementStore) ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]practice.Measurement, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+measurementColumns+`
		from student_measurements where student_id=$1 and tenant_id=$2
		order by measured_at desc
	`, studentID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.Measurement
	for rows.Next() {
		m, err := scanMeasurementRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *MeasurementStore) Latest(ctx context.Context, scope tenant.Scope, studentID string) (*practice.Measurement, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+measurementColumns+`
		from student_measurements where student_id=$1 and tenant_id=$2
		order by measured_at desc
		limit 1
	`, studentID, scope.TenantID())
	m, err := scanMeasurementRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return m, err
}
