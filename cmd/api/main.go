package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jobsplus/jobsplus/internal/auth"
	"github.com/jobsplus/jobsplus/internal/cache"
	"github.com/jobsplus/jobsplus/internal/config"
	httpx "github.com/jobsplus/jobsplus/internal/http"
	"github.com/jobsplus/jobsplus/internal/observability"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
	"github.com/jobsplus/jobsplus/internal/seed"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	// tracing
	shutdownCtx, shutdownCancel := config.WithTimeout(5 * time.Second)
	defer shutdownCancel()

	shutdownTracer, err := observability.InitTracer(shutdownCtx, "jobsplus-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
		shutdownTracer = nil
	}

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(registry)

	// stores: one instance per process, passed by reference
	users := memory.NewUsersRepo()
	jobs := memory.NewJobsRepo()
	refresh := memory.NewRefreshTokensRepo()
	observability.RegisterEntityGauges(registry, users.Count, jobs.Count)

	if cfg.SeedSampleData {
		if err := seed.SampleData(users, jobs, log); err != nil {
			log.Error("sample data seeding failed", "err", err)
			os.Exit(1)
		}
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Users:    users,
		Jobs:     jobs,
		Refresh:  refresh,
		JWT:      jwtManager,
		Listings: cache.NewListings(cfg.ListingCacheTTL),
		Prom:     prom,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})
	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		if shutdownTracer != nil {
			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")
	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
