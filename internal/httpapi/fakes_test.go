package httpapi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// memDB is an in-memory backend shared by all fake stores. Tenant-owned
// entities keep their owner in a side map, mirroring the tenant_id column,
// and every scoped method fails closed on a zero scope.
type memDB struct {
	mu sync.Mutex

	tenants  map[string]tenant.Tenant
	users    map[string]auth.User
	sessions map[string]auth.Session

	owner        map[string]string // entity id -> tenant id
	students     map[string]practice.Student
	workouts     map[string]practice.Workout
	exercises    map[string]practice.Exercise
	goals        map[string]practice.Goal
	measurements map[string]practice.Measurement
	payments     map[string]practice.Payment
	logs         map[string]practice.WorkoutLog
}

func newMemDB() *memDB {
	return &memDB{
		tenants:      map[string]tenant.Tenant{},
		users:        map[string]auth.User{},
		sessions:     map[string]auth.Session{},
		owner:        map[string]string{},
		students:     map[string]practice.Student{},
		workouts:     map[string]practice.Workout{},
		exercises:    map[string]practice.Exercise{},
		goals:        map[string]practice.Goal{},
		measurements: map[string]practice.Measurement{},
		payments:     map[string]practice.Payment{},
		logs:         map[string]practice.WorkoutLog{},
	}
}

func (db *memDB) owns(scope tenant.Scope, id string) bool {
	return db.owner[id] == scope.TenantID()
}

// --- tenant.Store ---

type fakeTenantStore struct{ db *memDB }

func (s *fakeTenantStore) Find(_ context.Context, id string) (*tenant.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tenants[id]
	if !ok || t.DeletedAt != nil {
		return nil, tenant.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (s *fakeTenantStore) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.tenants {
		if t.Slug == slug && t.DeletedAt == nil {
			cp := t
			return &cp, nil
		}
	}
	return nil, tenant.ErrNotFound
}

func (s *fakeTenantStore) Update(_ context.Context, id string, upd tenant.Update) (*tenant.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tenants[id]
	if !ok || t.DeletedAt != nil {
		return nil, tenant.ErrNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Phone != nil {
		t.Phone = *upd.Phone
	}
	if upd.PrimaryColor != nil {
		t.PrimaryColor = *upd.PrimaryColor
	}
	if upd.LogoURL != nil {
		t.LogoURL = *upd.LogoURL
	}
	if upd.CoverURL != nil {
		t.CoverURL = *upd.CoverURL
	}
	if upd.Plan != nil {
		t.Plan = *upd.Plan
	}
	t.UpdatedAt = time.Now().UTC()
	s.db.tenants[id] = t
	cp := t
	return &cp, nil
}

func (s *fakeTenantStore) SetActive(_ context.Context, id string, active bool) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tenants[id]
	if !ok || t.DeletedAt != nil {
		return tenant.ErrNotFound
	}
	t.Active = active
	s.db.tenants[id] = t
	return nil
}

func (s *fakeTenantStore) SoftDelete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tenants[id]
	if !ok || t.DeletedAt != nil {
		return tenant.ErrNotFound
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	s.db.tenants[id] = t
	return nil
}

// --- auth.UserStore ---

type fakeUserStore struct{ db *memDB }

func (s *fakeUserStore) Create(_ context.Context, u *auth.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Email == u.Email {
			return auth.ErrConflict
		}
	}
	s.db.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Find(_ context.Context, scope tenant.Scope, id string) (*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok || u.TenantID != scope.TenantID() {
		return nil, auth.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *fakeUserStore) List(_ context.Context, scope tenant.Scope) ([]*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []*auth.User
	for _, u := range s.db.users {
		if u.TenantID == scope.TenantID() {
			cp := u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, scope tenant.Scope, id string, upd auth.UserUpdate) (*auth.User, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok || u.TenantID != scope.TenantID() {
		return nil, auth.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
	if upd.Active != nil {
		u.Active = *upd.Active
	}
	u.UpdatedAt = time.Now().UTC()
	s.db.users[id] = u
	cp := u
	return &cp, nil
}

func (s *fakeUserStore) FindByEmailAcrossTenants(_ context.Context, email string) (*auth.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, auth.ErrNotFound
}

// --- auth.SessionStore ---

type fakeSessionStore struct{ db *memDB }

func (s *fakeSessionStore) Create(_ context.Context, sess *auth.Session) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.sessions[sess.ID] = *sess
	return nil
}

func (s *fakeSessionStore) Find(_ context.Context, id string) (*auth.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	sess, ok := s.db.sessions[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := sess
	return &cp, nil
}

func (s *fakeSessionStore) Revoke(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	sess, ok := s.db.sessions[id]
	if !ok || sess.RevokedAt != nil {
		return auth.ErrNotFound
	}
	now := time.Now().UTC()
	sess.RevokedAt = &now
	s.db.sessions[id] = sess
	return nil
}

func (s *fakeSessionStore) RevokeAllForUser(_ context.Context, userID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	now := time.Now().UTC()
	for id, sess := range s.db.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
			s.db.sessions[id] = sess
		}
	}
	return nil
}

// --- auth.Registrar ---

type fakeRegistrar struct{ db *memDB }

func (s *fakeRegistrar) CreateTenantWithAdmin(_ context.Context, t *tenant.Tenant, admin *auth.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.tenants {
		if existing.Slug == t.Slug {
			return auth.ErrConflict
		}
	}
	for _, existing := range s.db.users {
		if existing.Email == admin.Email {
			return auth.ErrConflict
		}
	}
	s.db.tenants[t.ID] = *t
	s.db.users[admin.ID] = *admin
	return nil
}

// --- practice stores ---

type fakeStudentStore struct{ db *memDB }

func (s *fakeStudentStore) Create(_ context.Context, scope tenant.Scope, st *practice.Student) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, existing := range s.db.students {
		if s.db.owner[id] == scope.TenantID() && existing.DeletedAt == nil && existing.Email == st.Email {
			return practice.ErrConflict
		}
	}
	s.db.students[st.ID] = *st
	s.db.owner[st.ID] = scope.TenantID()
	return nil
}

func (s *fakeStudentStore) Find(_ context.Context, scope tenant.Scope, id string) (*practice.Student, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	st, ok := s.db.students[id]
	if !ok || !s.db.owns(scope, id) || st.DeletedAt != nil {
		return nil, practice.ErrNotFound
	}
	cp := st
	return &cp, nil
}

func (s *fakeStudentStore) List(_ context.Context, scope tenant.Scope, f practice.StudentFilter) ([]practice.Student, int, error) {
	if err := scope.Check(); err != nil {
		return nil, 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Student
	for id, st := range s.db.students {
		if !s.db.owns(scope, id) || st.DeletedAt != nil {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(st.Name), needle) &&
				!strings.Contains(strings.ToLower(st.Email), needle) {
				continue
			}
		}
		if f.Active != nil && st.Active != *f.Active {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	start := (f.Page - 1) * f.PerPage
	if start > len(out) {
		start = len(out)
	}
	end := start + f.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *fakeStudentStore) Update(_ context.Context, scope tenant.Scope, st *practice.Student) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.students[st.ID]
	if !ok || !s.db.owns(scope, st.ID) || existing.DeletedAt != nil {
		return practice.ErrNotFound
	}
	s.db.students[st.ID] = *st
	return nil
}

func (s *fakeStudentStore) SoftDelete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	st, ok := s.db.students[id]
	if !ok || !s.db.owns(scope, id) || st.DeletedAt != nil {
		return practice.ErrNotFound
	}
	now := time.Now().UTC()
	st.DeletedAt = &now
	s.db.students[id] = st
	return nil
}

type fakeWorkoutStore struct{ db *memDB }

func (s *fakeWorkoutStore) Create(_ context.Context, scope tenant.Scope, w *practice.Workout) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.workouts[w.ID] = *w
	s.db.owner[w.ID] = scope.TenantID()
	return nil
}

func (s *fakeWorkoutStore) Find(_ context.Context, scope tenant.Scope, id string) (*practice.Workout, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w, ok := s.db.workouts[id]
	if !ok || !s.db.owns(scope, id) || w.DeletedAt != nil {
		return nil, practice.ErrNotFound
	}
	cp := w
	return &cp, nil
}

func (s *fakeWorkoutStore) List(_ context.Context, scope tenant.Scope, f practice.WorkoutFilter) ([]practice.Workout, int, error) {
	if err := scope.Check(); err != nil {
		return nil, 0, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Workout
	for id, w := range s.db.workouts {
		if !s.db.owns(scope, id) || w.DeletedAt != nil {
			continue
		}
		if f.StudentID != "" && w.StudentID != f.StudentID {
			continue
		}
		if f.Category != "" && w.Category != f.Category {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	start := (f.Page - 1) * f.PerPage
	if start > len(out) {
		start = len(out)
	}
	end := start + f.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *fakeWorkoutStore) Update(_ context.Context, scope tenant.Scope, w *practice.Workout) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.workouts[w.ID]
	if !ok || !s.db.owns(scope, w.ID) || existing.DeletedAt != nil {
		return practice.ErrNotFound
	}
	s.db.workouts[w.ID] = *w
	return nil
}

func (s *fakeWorkoutStore) SoftDelete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	w, ok := s.db.workouts[id]
	if !ok || !s.db.owns(scope, id) || w.DeletedAt != nil {
		return practice.ErrNotFound
	}
	now := time.Now().UTC()
	w.DeletedAt = &now
	s.db.workouts[id] = w
	return nil
}

type fakeExerciseStore struct{ db *memDB }

func (s *fakeExerciseStore) Create(_ context.Context, scope tenant.Scope, e *practice.Exercise) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.exercises[e.ID] = *e
	s.db.owner[e.ID] = scope.TenantID()
	return nil
}

func (s *fakeExerciseStore) Find(_ context.Context, scope tenant.Scope, id string) (*practice.Exercise, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e, ok := s.db.exercises[id]
	if !ok || !s.db.owns(scope, id) {
		return nil, practice.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (s *fakeExerciseStore) ListForWorkout(_ context.Context, scope tenant.Scope, workoutID string) ([]practice.Exercise, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Exercise
	for id, e := range s.db.exercises {
		if s.db.owns(scope, id) && e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *fakeExerciseStore) Update(_ context.Context, scope tenant.Scope, e *practice.Exercise) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.exercises[e.ID]; !ok || !s.db.owns(scope, e.ID) {
		return practice.ErrNotFound
	}
	s.db.exercises[e.ID] = *e
	return nil
}

func (s *fakeExerciseStore) Delete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.exercises[id]; !ok || !s.db.owns(scope, id) {
		return practice.ErrNotFound
	}
	delete(s.db.exercises, id)
	delete(s.db.owner, id)
	return nil
}

type fakeGoalStore struct{ db *memDB }

func (s *fakeGoalStore) Create(_ context.Context, scope tenant.Scope, g *practice.Goal) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.goals[g.ID] = *g
	s.db.owner[g.ID] = scope.TenantID()
	return nil
}

func (s *fakeGoalStore) Find(_ context.Context, scope tenant.Scope, id string) (*practice.Goal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	g, ok := s.db.goals[id]
	if !ok || !s.db.owns(scope, id) {
		return nil, practice.ErrNotFound
	}
	cp := g
	return &cp, nil
}

func (s *fakeGoalStore) ListForStudent(_ context.Context, scope tenant.Scope, studentID string) ([]practice.Goal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Goal
	for id, g := range s.db.goals {
		if s.db.owns(scope, id) && g.StudentID == studentID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeGoalStore) Update(_ context.Context, scope tenant.Scope, g *practice.Goal) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.goals[g.ID]; !ok || !s.db.owns(scope, g.ID) {
		return practice.ErrNotFound
	}
	s.db.goals[g.ID] = *g
	return nil
}

func (s *fakeGoalStore) Delete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.goals[id]; !ok || !s.db.owns(scope, id) {
		return practice.ErrNotFound
	}
	delete(s.db.goals, id)
	delete(s.db.owner, id)
	return nil
}

type fakeMeasurementStore struct{ db *memDB }

func (s *fakeMeasurementStore) Create(_ context.Context, scope tenant.Scope, m *practice.Measurement) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.measurements[m.ID] = *m
	s.db.owner[m.ID] = scope.TenantID()
	return nil
}

func (s *fakeMeasurementStore) ListForStudent(_ context.Context, scope tenant.Scope, studentID string) ([]practice.Measurement, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Measurement
	for id, m := range s.db.measurements {
		if s.db.owns(scope, id) && m.StudentID == studentID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MeasuredAt.After(out[j].MeasuredAt) })
	return out, nil
}

func (s *fakeMeasurementStore) Latest(_ context.Context, scope tenant.Scope, studentID string) (*practice.Measurement, error) {
	items, err := s.ListForStudent(context.Background(), scope, studentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, practice.ErrNotFound
	}
	cp := items[0]
	return &cp, nil
}

type fakePaymentStore struct{ db *memDB }

func (s *fakePaymentStore) Create(_ context.Context, scope tenant.Scope, p *practice.Payment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.payments[p.ID] = *p
	s.db.owner[p.ID] = scope.TenantID()
	return nil
}

func (s *fakePaymentStore) Find(_ context.Context, scope tenant.Scope, id string) (*practice.Payment, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.payments[id]
	if !ok || !s.db.owns(scope, id) {
		return nil, practice.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *fakePaymentStore) ListForStudent(_ context.Context, scope tenant.Scope, studentID string) ([]practice.Payment, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Payment
	for id, p := range s.db.payments {
		if s.db.owns(scope, id) && p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out, nil
}

func (s *fakePaymentStore) Update(_ context.Context, scope tenant.Scope, p *practice.Payment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.payments[p.ID]; !ok || !s.db.owns(scope, p.ID) {
		return practice.ErrNotFound
	}
	s.db.payments[p.ID] = *p
	return nil
}

func (s *fakePaymentStore) Delete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.payments[id]; !ok || !s.db.owns(scope, id) {
		return practice.ErrNotFound
	}
	delete(s.db.payments, id)
	delete(s.db.owner, id)
	return nil
}

type fakeLogStore struct{ db *memDB }

func (s *fakeLogStore) Create(_ context.Context, scope tenant.Scope, l *practice.WorkoutLog) error {
	if err := scope.Check(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.logs[l.ID] = *l
	s.db.owner[l.ID] = scope.TenantID()
	return nil
}

func (s *fakeLogStore) ListForWorkout(_ context.Context, scope tenant.Scope, workoutID string) ([]practice.WorkoutLog, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.WorkoutLog
	for id, l := range s.db.logs {
		if s.db.owns(scope, id) && l.WorkoutID == workoutID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PerformedAt.After(out[j].PerformedAt) })
	return out, nil
}

type fakeDashboardStore struct{ db *memDB }

func (s *fakeDashboardStore) Stats(_ context.Context, scope tenant.Scope, now time.Time) (*practice.Stats, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stats := &practice.Stats{}
	stats.Workouts.ByCategory = map[string]int{}
	for id, st := range s.db.students {
		if !s.db.owns(scope, id) || st.DeletedAt != nil {
			continue
		}
		stats.Students.Total++
		if st.Active {
			stats.Students.Active++
		} else {
			stats.Students.Inactive++
		}
	}
	for id, w := range s.db.workouts {
		if !s.db.owns(scope, id) || w.DeletedAt != nil {
			continue
		}
		stats.Workouts.Total++
		if w.Active {
			stats.Workouts.Active++
		}
		stats.Workouts.ByCategory[w.Category]++
	}
	for id, g := range s.db.goals {
		if !s.db.owns(scope, id) {
			continue
		}
		stats.Goals.Total++
		switch g.Status {
		case practice.GoalStatusActive:
			stats.Goals.Active++
		case practice.GoalStatusCompleted:
			stats.Goals.Completed++
		}
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for id, l := range s.db.logs {
		if !s.db.owns(scope, id) {
			continue
		}
		stats.WorkoutLogs.Total++
		if !l.PerformedAt.Before(monthStart) {
			stats.WorkoutLogs.ThisMonth++
		}
	}
	return stats, nil
}

func (s *fakeDashboardStore) RecentStudents(_ context.Context, scope tenant.Scope, limit int) ([]practice.Student, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.Student
	for id, st := range s.db.students {
		if s.db.owns(scope, id) && st.DeletedAt == nil {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeDashboardStore) RecentWorkouts(_ context.Context, scope tenant.Scope, limit int) ([]practice.RecentWorkout, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.RecentWorkout
	for id, w := range s.db.workouts {
		if !s.db.owns(scope, id) || w.DeletedAt != nil {
			continue
		}
		out = append(out, practice.RecentWorkout{
			ID:          w.ID,
			StudentID:   w.StudentID,
			Name:        w.Name,
			StudentName: s.db.students[w.StudentID].Name,
			CreatedAt:   w.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeDashboardStore) RecentCompletedGoals(_ context.Context, scope tenant.Scope, limit int) ([]practice.RecentGoal, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []practice.RecentGoal
	for id, g := range s.db.goals {
		if !s.db.owns(scope, id) || g.Status != practice.GoalStatusCompleted || g.CompletedAt == nil {
			continue
		}
		out = append(out, practice.RecentGoal{
			ID:          g.ID,
			StudentID:   g.StudentID,
			Title:       g.Title,
			StudentName: s.db.students[g.StudentID].Name,
			CompletedAt: *g.CompletedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (db *memDB) practiceStores() practice.Stores {
	return practice.Stores{
		Students:     &fakeStudentStore{db: db},
		Workouts:     &fakeWorkoutStore{db: db},
		Exercises:    &fakeExerciseStore{db: db},
		Goals:        &fakeGoalStore{db: db},
		Measurements: &fakeMeasurementStore{db: db},
		Payments:     &fakePaymentStore{db: db},
		Logs:         &fakeLogStore{db: db},
		Dashboard:    &fakeDashboardStore{db: db},
	}
}
