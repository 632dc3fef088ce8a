package practice

import "time"

// Student genders.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Workout categories.
const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategoryMixed       = "mixed"
)

// Goal types.
const (
	GoalWeightLoss  = "weight_loss"
	GoalMuscleGain  = "muscle_gain"
	GoalPerformance = "performance"
	GoalOther       = "other"
)

// Goal statuses.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

// Payment methods.
const (
	MethodCash         = "cash"
	MethodPix          = "pix"
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodBankTransfer = "bank_transfer"
)

// DefaultRest is the rest interval applied to exercises that omit one.
const DefaultRest = "60s"

func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryMixed:
		return true
	}
	return false
}

func ValidGoalType(t string) bool {
	switch t {
	case GoalWeightLoss, GoalMuscleGain, GoalPerformance, GoalOther:
		return true
	}
	return false
}

func ValidGoalStatus(s string) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodPix, MethodCreditCard, MethodDebitCard, MethodBankTransfer:
		return true
	}
	return false
}

// Student is one coached client. Email is unique within a tenant only;
// the same address may exist under different trainers.
type Student struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	AvatarURL         string     `json:"avatar_url,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	HeightCM          *float64   `json:"height,omitempty"`
	MedicalConditions string     `json:"medical_conditions,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	TrainerID         string     `json:"trainer_id,omitempty"`
	Active            bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"-"`
}

// Workout is a training plan assigned to a student.
type Workout struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	CreatedBy   string     `json:"created_by"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Active      bool       `json:"is_active"`
	Exercises   []Exercise `json:"exercises,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Exercise is one prescribed movement within a workout. Position orders
// exercises inside their workout; Reps is free-form ("12" or "10-12").
type Exercise struct {
	ID          string    `json:"id"`
	WorkoutID   string    `json:"workout_id"`
	Position    int       `json:"position"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscle_group,omitempty"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Sets        int       `json:"sets"`
	Reps        string    `json:"reps"`
	Rest        string    `json:"rest,omitempty"`
	Load        string    `json:"load,omitempty"`
	Tempo       string    `json:"tempo,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Goal tracks a student objective toward a target value.
type Goal struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Type         string     `json:"type"`
	TargetValue  *float64   `json:"target_value,omitempty"`
	CurrentValue *float64   `json:"current_value,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Measurement is one physical assessment snapshot. Weight is required;
// body-composition and girth fields are optional.
type Measurement struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	WeightKG     float64    `json:"weight"`
	BodyFatPct   *float64   `json:"body_fat,omitempty"`
	MuscleMassKG *float64   `json:"muscle_mass,omitempty"`
	NeckCM       *float64   `json:"neck,omitempty"`
	ShoulderCM   *float64   `json:"shoulder,omitempty"`
	ChestCM      *float64   `json:"chest,omitempty"`
	WaistCM      *float64   `json:"waist,omitempty"`
	AbdomenCM    *float64   `json:"abdomen,omitempty"`
	HipCM        *float64   `json:"hip,omitempty"`
	RightArmCM   *float64   `json:"right_arm,omitempty"`
	LeftArmCM    *float64   `json:"left_arm,omitempty"`
	RightThighCM *float64   `json:"right_thigh,omitempty"`
	LeftThighCM  *float64   `json:"left_thigh,omitempty"`
	RightCalfCM  *float64   `json:"right_calf,omitempty"`
	LeftCalfCM   *float64   `json:"left_calf,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	MeasuredAt   time.Time  `json:"measured_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Payment is one billing entry for a student. Amounts are integer cents.
type Payment struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	AmountCents int64      `json:"amount_cents"`
	DueDate     time.Time  `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Status      string     `json:"status"`
	Method      string     `json:"method,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WorkoutLog records one completed set of a workout exercise.
type WorkoutLog struct {
	ID            string    `json:"id"`
	WorkoutID     string    `json:"workout_id"`
	ExerciseID    string    `json:"exercise_id"`
	StudentID     string    `json:"student_id"`
	PerformedAt   time.Time `json:"performed_at"`
	SetNumber     int       `json:"set_number"`
	RepsCompleted int       `json:"reps_completed"`
	LoadUsed      *float64  `json:"load_used,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StudentFilter narrows and pages student listings.
type StudentFilter struct {
	Search  string
	Active  *bool
	Page    int
	PerPage int
}

// WorkoutFilter narrows and pages workout listings.
type WorkoutFilter struct {
	StudentID string
	Category  string
	Page      int
	PerPage   int
}

// Page clamps pagination to sane bounds: page >= 1, 1 <= per-page <= 100,
// defaulting to 20 per page.
func pageBounds(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// Normalize returns the filter with pagination clamped.
func (f StudentFilter) Normalize() StudentFilter {
	f.Search = trimmed(f.Search)
	f.Page, f.PerPage = pageBounds(f.Page, f.PerPage)
	return f
}

// Normalize returns the filter with pagination clamped.
func (f WorkoutFilter) Normalize() WorkoutFilter {
	f.Page, f.PerPage = pageBounds(f.Page, f.PerPage)
	return f
}

// GraphData is the chart-ready series of a student's measurement history,
// ordered oldest first. Missing optional readings appear as nulls so the
// series stay aligned with the labels.
type GraphData struct {
	Labels     []string   `json:"labels"`
	Weight     []float64  `json:"weight"`
	BodyFat    []*float64 `json:"body_fat"`
	MuscleMass []*float64 `json:"muscle_mass"`
}

// Stats is the per-tenant dashboard summary.
type Stats struct {
	Students struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	} `json:"students"`
	Workouts struct {
		Total      int            `json:"total"`
		Active     int            `json:"active"`
		ByCategory map[string]int `json:"by_category"`
	} `json:"workouts"`
	Goals struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Completed int `json:"completed"`
	} `json:"goals"`
	WorkoutLogs struct {
		Total     int `json:"total"`
		ThisMonth int `json:"this_month"`
	} `json:"workout_logs"`
}

// Activity feed entry types.
const (
	ActivityStudentCreated = "student_created"
	ActivityWorkoutCreated = "workout_created"
	ActivityGoalCompleted  = "goal_completed"
)

// Activity is one recent-activity feed entry.
type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StudentID   string    `json:"student_id,omitempty"`
	WorkoutID   string    `json:"workout_id,omitempty"`
	GoalID      string    `json:"goal_id,omitempty"`
}
