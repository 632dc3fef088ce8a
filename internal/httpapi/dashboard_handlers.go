package httpapi

import (
	"net/http"
	"strconv"

	"coachbase.app/internal/practice"
)

func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	stats, err := a.practice.DashboardStats(r.Context(), scope)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) handleRecentActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	scope, ok := requireScope(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	feed, err := a.practice.RecentActivity(r.Context(), scope, limit)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if feed == nil {
		feed = []practice.Activity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": feed})
}
