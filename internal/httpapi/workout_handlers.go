package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/practice"
)

type listWorkoutsResponse struct {
	Items   []practice.Workout `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	AsOf    time.Time          `json:"as_of"`
}

func (a *API) handleWorkoutsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listWorkouts(w, r)
	case http.MethodPost:
		a.createWorkout(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleWorkoutResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch rest {
	case "":
		a.workoutByID(w, r, id)
	case "exercises":
		a.workoutExercises(w, r, id)
	case "logs":
		a.workoutLogs(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) listWorkouts(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := practice.WorkoutFilter{
		StudentID: strings.TrimSpace(q.Get("student_id")),
		Category:  strings.ToLower(strings.TrimSpace(q.Get("category"))),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	filter = filter.Normalize()

	items, total, err := a.practice.ListWorkouts(r.Context(), scope, filter)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []practice.Workout{}
	}
	writeJSON(w, http.StatusOK, listWorkoutsResponse{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		AsOf:    time.Now().UTC(),
	})
}

func (a *API) createWorkout(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	principal, _ := auth.PrincipalFromContext(r.Context())
	var in practice.WorkoutInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	workout, err := a.practice.CreateWorkout(r.Context(), scope, principal.User.ID, in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/workouts/"+workout.ID)
	writeJSON(w, http.StatusCreated, workout)
}

func (a *API) workoutByID(w http.ResponseWriter, r *http.Request, id string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		workout, err := a.practice.GetWorkout(r.Context(), scope, id)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, workout)
	case http.MethodPut:
		var in practice.WorkoutInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		workout, err := a.practice.UpdateWorkout(r.Context(), scope, id, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, workout)
	case http.MethodDelete:
		if err := a.practice.DeleteWorkout(r.Context(), scope, id); err != nil {
			handleDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) workoutExercises(w http.ResponseWriter, r *http.Request, workoutID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	var in practice.ExerciseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	e, err := a.practice.AddExercise(r.Context(), scope, workoutID, in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (a *API) workoutLogs(w http.ResponseWriter, r *http.Request, workoutID string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := a.practice.ListWorkoutLogs(r.Context(), scope, workoutID)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		if items == nil {
			items = []practice.WorkoutLog{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var in practice.WorkoutLogInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l, err := a.practice.LogWorkout(r.Context(), scope, workoutID, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}
