package pg

import (
	"context"
	"database/sql"
	"errors"

	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// PaymentStore persists billing entries.
type PaymentStore struct {
	db *sql.DB
}

var _ practice.PaymentStore = (*PaymentStore)(nil)

const paymentColumns = `id, student_id, amount_cents, due_date, paid_at, status, method,
	notes, created_at, updated_at`

func scanPaymentRow(scan func(dest ...any) error) (*practice.Payment, error) {
	var p practice.Payment
	var paidAt sql.NullTime
	var method, notes sql.NullString
	err := scan(
		&p.ID, &p.StudentID, &p.AmountCents, &p.DueDate, &paidAt, &p.Status, &method,
		&notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PaidAt = timeValue(paidAt)
	p.Method = strValue(method)
	p.Notes = strValue(notes)
	return &p, nil
}

func (s *PaymentStore) Create(ctx context.Context, scope tenant.Scope, p *practice.Payment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into payments (id, tenant_id, student_id, amount_cents, due_date, paid_at, status, method, notes, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, p.ID, scope.TenantID(), p.StudentID, p.AmountCents, p.DueDate, nullTime(p.PaidAt),
		p.Status, nullString(p.Method), nullString(p.Notes), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return practice.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *PaymentStore) Find(ctx context.Context, scope tenant.Scope, id string) (*practice.Payment, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		select `+paymentColumns+`
		from payments where id=$1 and tenant_id=$2
	`, id, scope.TenantID())
	p, err := scanPaymentRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, practice.ErrNotFound
	}
	return p, err
}

func (s *PaymentStore) ListForStudent(ctx context.Context, scope tenant.Scope, studentID string) ([]practice.Payment, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		select `+paymentColumns+`
		from payments where student_id=$1 and tenant_id=$2
		order by due_date desc
	`, studentID, scope.TenantID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []practice.Payment
	for rows.Next() {
		p, err := scanPaymentRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *PaymentStore) Update(ctx context.Context, scope tenant.Scope, p *practice.Payment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update payments
		set amount_cents=$3, due_date=$4, paid_at=$5, status=$6, method=$7, notes=$8, updated_at=$9
		where id=$1 and tenant_id=$2
	`, p.ID, scope.TenantID(), p.AmountCents, p.DueDate, nullTime(p.PaidAt), p.Status,
		nullString(p.Method), nullString(p.Notes), p.UpdatedAt)
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

func (s *PaymentStore) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		delete from payments where id=$1 and tenant_id=$2
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
