package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/obs"
	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON rejects unknown fields, so a payload smuggling tenant_id (or
// anything else the DTO does not declare) fails as a bad request instead of
// being silently dropped.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleDomainError maps service errors onto status codes. Cross-tenant
// reads surface here as plain not-found: the response is indistinguishable
// from an id that never existed.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *practice.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, practice.ErrNotFound), errors.Is(err, auth.ErrNotFound),
		errors.Is(err, tenant.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "resource not found")
	case errors.Is(err, practice.ErrConflict), errors.Is(err, auth.ErrConflict),
		errors.Is(err, tenant.ErrConflict):
		writeError(w, r, http.StatusConflict, "resource already exists")
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, tenant.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, tenant.ErrNoScope):
		// A handler reached a store without a tenant scope. That is a
		// programming error, never a user error; log it loudly.
		obs.Logger().Error().Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request reached storage without tenant scope")
		writeError(w, r, http.StatusInternalServerError, "internal error")
	default:
		obs.Logger().Error().Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// requireScope extracts the authenticated principal's scope. A missing
// principal on a protected route means the middleware chain is broken.
func requireScope(w http.ResponseWriter, r *http.Request) (tenant.Scope, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return tenant.Scope{}, false
	}
	scope := principal.Scope()
	if !scope.Valid() {
		handleDomainError(w, r, tenant.ErrNoScope)
		return tenant.Scope{}, false
	}
	return scope, true
}
