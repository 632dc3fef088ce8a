package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"coachbase.app/internal/practice"
)

type listStudentsResponse struct {
	Items   []practice.Student `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	AsOf    time.Time          `json:"as_of"`
}

func (a *API) handleStudentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listStudents(w, r)
	case http.MethodPost:
		a.createStudent(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleStudentResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/students/")
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
		a.studentByID(w, r, id)
	case "measurements":
		a.studentMeasurements(w, r, id)
	case "measurements/latest":
		a.latestMeasurement(w, r, id)
	case "measurements/graph":
		a.measurementGraph(w, r, id)
	case "goals":
		a.studentGoals(w, r, id)
	case "payments":
		a.studentPayments(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) listStudents(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := practice.StudentFilter{
		Search: q.Get("search"),
	}
	if raw := strings.TrimSpace(q.Get("is_active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "is_active must be a boolean")
			return
		}
		filter.Active = &active
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	filter = filter.Normalize()

	items, total, err := a.practice.ListStudents(r.Context(), scope, filter)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if items == nil {
		items = []practice.Student{}
	}
	writeJSON(w, http.StatusOK, listStudentsResponse{
		Items:   items,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		AsOf:    time.Now().UTC(),
	})
}

func (a *API) createStudent(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	var in practice.StudentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	st, err := a.practice.CreateStudent(r.Context(), scope, in)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/students/"+st.ID)
	writeJSON(w, http.StatusCreated, st)
}

func (a *API) studentByID(w http.ResponseWriter, r *http.Request, id string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		st, err := a.practice.GetStudent(r.Context(), scope, id)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	case http.MethodPut:
		var in practice.StudentInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		st, err := a.practice.UpdateStudent(r.Context(), scope, id, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	case http.MethodDelete:
		if err := a.practice.DeleteStudent(r.Context(), scope, id); err != nil {
			handleDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) studentMeasurements(w http.ResponseWriter, r *http.Request, studentID string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := a.practice.ListMeasurements(r.Context(), scope, studentID)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		if items == nil {
			items = []practice.Measurement{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var in practice.MeasurementInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		m, err := a.practice.RecordMeasurement(r.Context(), scope, studentID, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) latestMeasurement(w http.ResponseWriter, r *http.Request, studentID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	m, err := a.practice.LatestMeasurement(r.Context(), scope, studentID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *API) measurementGraph(w http.ResponseWriter, r *http.Request, studentID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	g, err := a.practice.MeasurementGraph(r.Context(), scope, studentID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (a *API) studentGoals(w http.ResponseWriter, r *http.Request, studentID string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := a.practice.ListGoals(r.Context(), scope, studentID)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		if items == nil {
			items = []practice.Goal{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var in practice.GoalInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		g, err := a.practice.CreateGoal(r.Context(), scope, studentID, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) studentPayments(w http.ResponseWriter, r *http.Request, studentID string) {
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := a.practice.ListPayments(r.Context(), scope, studentID)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		if items == nil {
			items = []practice.Payment{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var in practice.PaymentInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		p, err := a.practice.CreatePayment(r.Context(), scope, studentID, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}
