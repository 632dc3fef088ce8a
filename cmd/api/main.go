package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"coachbase.app/internal/auth"
	"coachbase.app/internal/cache"
	"coachbase.app/internal/config"
	"coachbase.app/internal/httpapi"
	"coachbase.app/internal/obs"
	"coachbase.app/internal/practice"
	"coachbase.app/internal/store/pg"
	"coachbase.app/internal/tenant"
)

var version = "0.3.1"

func main() {
	obs.Init()
	log := obs.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal().Msg("COACHBASE_PG_DSN is required")
	}

	store, err := pg.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer store.Close()

	// Redis is optional; without it tenant lookups hit the database.
	var tenantCache tenant.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		tenantCache = cache.NewTenantCache(rdb, 0)
		log.Info().Str("addr", cfg.RedisAddr).Msg("tenant cache enabled")
	}

	tenantSvc, err := tenant.NewService(store.Tenants, tenantCache)
	if err != nil {
		log.Fatal().Err(err).Msg("build tenant service")
	}
	authSvc, err := auth.NewService(
		store.Users, store.Sessions, store.Tenants, store,
		cfg.AuthSecret,
		auth.WithIssuer(cfg.AuthIssuer),
		auth.WithSessionTTL(cfg.SessionTTL),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build auth service")
	}
	practiceSvc, err := practice.NewService(practice.Stores{
		Students:     store.Students,
		Workouts:     store.Workouts,
		Exercises:    store.Exercises,
		Goals:        store.Goals,
		Measurements: store.Measurements,
		Payments:     store.Payments,
		Logs:         store.Logs,
		Dashboard:    store.Dashboard,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build practice service")
	}

	api := httpapi.New(authSvc, tenantSvc, practiceSvc,
		httpapi.ReadyProbe{DB: store.DB()},
		httpapi.Config{
			Version:       version,
			MaxBodyBytes:  cfg.MaxBodyBytes,
			RateBurst:     cfg.RateBurst,
			RatePerSecond: cfg.RatePerSecond,
		})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("version", version).Msg("starting coachbase-api")
		obs.SetReady(true)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	obs.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}
