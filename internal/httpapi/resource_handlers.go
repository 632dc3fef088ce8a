package httpapi

import (
	"net/http"
	"strings"

	"coachbase.app/internal/practice"
)

// Goals, exercises, and payments are nested under their parents for
// creation and listing, but are mutated by plain id.

func (a *API) handleGoalResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/goals/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in practice.GoalInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		g, err := a.practice.UpdateGoal(r.Context(), scope, id, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	case http.MethodDelete:
		if err := a.practice.DeleteGoal(r.Context(), scope, id); err != nil {
			handleDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handleExerciseResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/exercises/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in practice.ExerciseInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		e, err := a.practice.UpdateExercise(r.Context(), scope, id, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	case http.MethodDelete:
		if err := a.practice.DeleteExercise(r.Context(), scope, id); err != nil {
			handleDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handlePaymentResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/payments/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in practice.PaymentInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		p, err := a.practice.UpdatePayment(r.Context(), scope, id, in)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := a.practice.DeletePayment(r.Context(), scope, id); err != nil {
			handleDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}
