// Package httpapi is the HTTP JSON surface. Handlers translate requests
// into service calls; the tenant scope they pass down always comes from the
// authenticated principal, never from the request payload.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/obs"
	"coachbase.app/internal/practice"
	"coachbase.app/internal/tenant"
)

// ReadyProbe pings the database for /readyz.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config carries the HTTP layer tunables.
type Config struct {
	Version       string
	MaxBodyBytes  int64
	RateBurst     int
	RatePerSecond int
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	tenants    *tenant.Service
	practice   *practice.Service
	readyProbe ReadyProbe
	cfg        Config
}

func New(authSvc *auth.Service, tenantSvc *tenant.Service, practiceSvc *practice.Service, rp ReadyProbe, cfg Config) *API {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		tenants:    tenantSvc,
		practice:   practiceSvc,
		readyProbe: rp,
		cfg:        cfg,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/v1/auth/register", a.handleRegister)
	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/auth/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/auth/logout-all", a.handleLogoutAll)
	a.mux.HandleFunc("/v1/auth/me", a.handleMe)
	a.mux.HandleFunc("/v1/auth/profile", a.handleProfile)
	a.mux.HandleFunc("/v1/users", a.handleUsers)

	// the caller's own practice
	a.mux.HandleFunc("/v1/tenant", a.handleTenant)
	a.mux.HandleFunc("/v1/tenant/settings", a.handleTenantSettings)

	// tenant-owned resources
	a.mux.HandleFunc("/v1/students", a.handleStudentsCollection)
	a.mux.HandleFunc("/v1/students/", a.handleStudentResource)
	a.mux.HandleFunc("/v1/workouts", a.handleWorkoutsCollection)
	a.mux.HandleFunc("/v1/workouts/", a.handleWorkoutResource)
	a.mux.HandleFunc("/v1/goals/", a.handleGoalResource)
	a.mux.HandleFunc("/v1/exercises/", a.handleExerciseResource)
	a.mux.HandleFunc("/v1/payments/", a.handlePaymentResource)

	// dashboard
	a.mux.HandleFunc("/v1/dashboard/stats", a.handleDashboardStats)
	a.mux.HandleFunc("/v1/dashboard/recent-activity", a.handleRecentActivity)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler assembles the middleware chain around the mux.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, a.cfg.MaxBodyBytes)
	if a.cfg.RateBurst > 0 && a.cfg.RatePerSecond > 0 {
		h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSecond)
	}
	h = CORS(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h, normalizeRoute)
}

// routeWords are the static path segments; anything else is a resource id.
var routeWords = map[string]bool{
	"v1": true, "auth": true, "register": true, "login": true, "logout": true,
	"logout-all": true, "profile": true, "users": true, "tenant": true,
	"settings": true,
	"me": true, "students": true, "workouts": true, "goals": true,
	"exercises": true, "payments": true, "measurements": true, "latest": true,
	"graph": true, "logs": true, "dashboard": true, "stats": true,
	"recent-activity": true, "info": true,
}

// normalizeRoute collapses resource ids so metric labels stay bounded.
func normalizeRoute(path string) string {
	if !strings.HasPrefix(path, "/v1/") {
		return path
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if !routeWords[p] {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "coachbase-api",
		"version": a.cfg.Version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "coachbase-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.cfg.Version,
	})
}
