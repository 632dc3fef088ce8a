package httpapi

import (
	"net/http"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/tenant"
)

// handleTenant returns the caller's practice, read through the tenant
// service so the cache path is exercised.
func (a *API) handleTenant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	t, err := a.tenants.Get(r.Context(), principal.Tenant.ID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type tenantSettingsRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	PrimaryColor *string `json:"primary_color"`
	LogoURL      *string `json:"logo_url"`
	CoverURL     *string `json:"cover_url"`
	Plan         *string `json:"plan"`
}

// handleTenantSettings updates the caller's own practice. Admin only.
func (a *API) handleTenantSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if principal.User.Role != auth.RoleAdmin {
		writeError(w, r, http.StatusForbidden, "admin role required")
		return
	}
	var req tenantSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	t, err := a.tenants.UpdateSettings(r.Context(), principal.Tenant.ID, tenant.Update{
		Name:         req.Name,
		Phone:        req.Phone,
		PrimaryColor: req.PrimaryColor,
		LogoURL:      req.LogoURL,
		CoverURL:     req.CoverURL,
		Plan:         req.Plan,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
