package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// StudentStore persists students. The tenant predicate is part of every
// statement; a row outside the scope's tenant behaves exactly like a row
// that does not exist.
type StudentStore struct {
	db *sql.DB
}

var _ practice.StudentStore = (*StudentStore)(nil)

const studentColumns = `id, name, email, phone, birth_date, avatar_url, gender, height,
	medical_conditions, notes, trainer_id, is_active, created_at, updated_at`

func scanStudentRow(scan func(dest ...any) error) (*practice.Student, error) {
	var st practice.Student
	var phone, avatarURL, gender, medical, notes, trainerID sql.NullString
	var birthDate sql.NullTime
	var height sql.NullFloat64
	err := scan(
		&st.ID, &st.Name, &st.Email, &phone, &birthDate, &avatarURL, &gender,
		&height, &medical, &notes, &trainerID, &st.Active, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.Phone = strValue(phone)
	st.BirthDate = timeValue(birthDate)
	st.AvatarURL = strValue(avatarURL)
	st.Gender = strValue(gender)
	st.HeightCM = floatValue(height)
	st.MedicalConditions = strValue(medical)
	st.Notes = strValue(notes)
	st.TrainerID = strValue(trainerID)
	return &st, nil
}

func (s *StudentStore) Create(ctx context.Context, scope tenant.Scope, st *practice.Student) error {
	if err := scope.Check(); err != nil {
		return err
	}
	// tenant_id comes from the scope, never from the entity.
	_, err := s.db.ExecContext(ctx, `
		insert into students (id, tenant_id, name, email, phone, birth_date, avatar_url, gender, height, medical_conditions, notes, trainer_id, is_active, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, st.ID, scope.TenantID(), st.Name, st.Email, nullString(st.Phone), nullTime(st.BirthDate),
		nullString(st.AvatarURL), nullString(st.Gender), nullFloat(st.HeightCM),
		nullString(st.MedicalConditions), nullString(st.Notes), nullString(st.TrainerID),
		st.Active, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return practice.ErrConflict
		case pgForeignKeyViolation:
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *StudentStore) Find(ctx context.Context, scope tenant.Scope, id string) (*practice.Student, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+studentColumns+`
		from students where id=$1 and tenant_id=$2 and deleted_at is null
	`, id, scope.TenantID())
	st, err := scanStudentRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return st, err
}

func (s *StudentStore) List(ctx context.Context, scope tenant.Scope, f practice.StudentFilter) ([]practice.Student, int, error) {
	if err := scope.Check(); err != nil {
		return nil, 0, err
	}
	where := []string{"tenant_id=$1", "deleted_at is null"}
	args := []any{scope.TenantID()}
	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		where = append(where, fmt.Sprintf("(lower(name) like $%d or lower(email) like $%d)", len(args), len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("is_active=$%d", len(args)))
	}
	cond := strings.Join(where, " and ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`select count(*) from students where `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)
	query := fmt.Sprintf(`
		select `+studentColumns+`
		from students where %s
		order by name
		limit $%d offset $%d
	`, cond, len(args)-1, len(args))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []practice.Student
	for rows.Next() {
		st, err := scanStudentRow(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *st)
	}
	return out, total, rows.Err()
}

func (s *StudentStore) Update(ctx context.Context, scope tenant.Scope, st *practice.Student) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update students
		set name=$3, email=$4, phone=$5, birth_date=$6, avatar_url=$7, gender=$8,
			height=$9, medical_conditions=$10, notes=$11, trainer_id=$12, is_active=$13, updated_at=$14
		where id=$1 and tenant_id=$2 and deleted_at is null
	`, st.ID, scope.TenantID(), st.Name, st.Email, nullString(st.Phone), nullTime(st.BirthDate),
		nullString(st.AvatarURL), nullString(st.Gender), nullFloat(st.HeightCM),
		nullString(st.MedicalConditions), nullString(st.Notes), nullString(st.TrainerID),
		st.Active, st.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return practice.ErrConflict
		}
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

func (s *StudentStore) SoftDelete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update students set deleted_at=now(), updated_at=now()
		where id=$1 and tenant_id=$2 and deleted_at is null
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
