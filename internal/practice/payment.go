package practice

import (
	"context"
	"strings"
	"time"

	"coachbase.app/internal/ids"
	"coachbase.app/internal/tenant"
)

// PaymentInput is the write payload for creating or replacing a payment.
type PaymentInput struct {
	AmountCents int64      `json:"amount_cents"`
	DueDate     *time.Time `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at"`
	Status      string     `json:"status"`
	Method      string     `json:"method"`
	Notes       string     `json:"notes"`
}

func (in *PaymentInput) normalize() {
	in.Status = strings.ToLower(trimmed(in.Status))
	in.Method = strings.ToLower(trimmed(in.Method))
	if in.Status == "" {
		in.Status = PaymentPending
	}
}

func (in *PaymentInput) validate() error {
	errs := fieldErrors{}
	if in.AmountCents <= 0 {
		errs.add("amount_cents", "must be positive")
	}
	if in.DueDate == nil {
		errs.add("due_date", "is required")
	}
	if !ValidPaymentStatus(in.Status) {
		errs.add("status", "must be one of pending, paid, overdue, cancelled")
	}
	if in.Method != "" && !ValidPaymentMethod(in.Method) {
		errs.add("method", "must be one of cash, pix, credit_card, debit_card, bank_transfer")
	}
	if in.Status == PaymentPaid && in.Method == "" {
		errs.add("method", "is required for paid payments")
	}
	return errs.err()
}

// CreatePayment records a billing entry for one of the tenant's students.
// Marking a payment paid without an explicit paid_at stamps the current time.
func (s *Service) CreatePayment(ctx context.Context, scope tenant.Scope, studentID string, in PaymentInput) (*Payment, error) {
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
	p := &Payment{
		ID:          ids.New(),
		StudentID:   studentID,
		AmountCents: in.AmountCents,
		DueDate:     in.DueDate.UTC(),
		PaidAt:      in.PaidAt,
		Status:      in.Status,
		Method:      in.Method,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Status == PaymentPaid && p.PaidAt == nil {
		p.PaidAt = &now
	}
	if err := s.st.Payments.Create(ctx, scope, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPayments returns a student's payments, newest due date first.
func (s *Service) ListPayments(ctx context.Context, scope tenant.Scope, studentID string) ([]Payment, error) {
	studentID = trimmed(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	if _, err := s.st.Students.Find(ctx, scope, studentID); err != nil {
		return nil, err
	}
	return s.st.Payments.ListForStudent(ctx, scope, studentID)
}

// UpdatePayment replaces the mutable fields of a payment.
func (s *Service) UpdatePayment(ctx context.Context, scope tenant.Scope, id string, in PaymentInput) (*Payment, error) {
	id = trimmed(id)
	if id == "" {
		return nil, ErrNotFound
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	current, err := s.st.Payments.Find(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	current.AmountCents = in.AmountCents
	current.DueDate = in.DueDate.UTC()
	current.PaidAt = in.PaidAt
	current.Status = in.Status
	current.Method = in.Method
	current.Notes = in.Notes
	if current.Status == PaymentPaid && current.PaidAt == nil {
		current.PaidAt = &now
	}
	if current.Status != PaymentPaid {
		current.PaidAt = nil
	}
	current.UpdatedAt = now
	if err := s.st.Payments.Update(ctx, scope, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeletePayment removes a payment entry.
func (s *Service) DeletePayment(ctx context.Context, scope tenant.Scope, id string) error {
	id = trimmed(id)
	if id == "" {
		return ErrNotFound
	}
	return s.st.Payments.Delete(ctx, scope, id)
}
