package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jobsplus/jobsplus/internal/auth"
	"github.com/jobsplus/jobsplus/internal/cache"
	"github.com/jobsplus/jobsplus/internal/config"
	"github.com/jobsplus/jobsplus/internal/http/handlers"
	"github.com/jobsplus/jobsplus/internal/http/middlewares"
	"github.com/jobsplus/jobsplus/internal/observability"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
)

// Deps bundles everything the router wires into handlers. Stores are
// constructed once in main and shared by reference.
type Deps struct {
	Users    *memory.UsersRepo
	Jobs     *memory.JobsRepo
	Refresh  *memory.RefreshTokensRepo
	JWT      *auth.Manager
	Listings *cache.Listings
	Prom     *observability.Prom
	Registry *prometheus.Registry
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("jobsplus-api"))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	limiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	r.Use(limiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))

	authMW := middlewares.NewAuthMiddleware(deps.JWT)

	// handlers
	health := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWT, deps.Refresh, cfg)
	profileHandler := handlers.NewProfileHandler(deps.Users)
	usersHandler := handlers.NewUsersHandler(deps.Users)
	jobsHandler := handlers.NewJobsHandler(deps.Jobs, deps.Listings)
	matchHandler := handlers.NewMatchHandler(deps.Users, deps.Jobs, deps.Prom)
	adminHandler := handlers.NewAdminHandler(deps.Users)

	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/profile", authMW.RequireAuth(), profileHandler.GetProfile)
		api.PUT("/profile", authMW.RequireAuth(), profileHandler.UpdateProfile)

		api.GET("/users/:id", usersHandler.GetPublicProfile)
		api.POST("/users/:id/connect", authMW.RequireAuth(), usersHandler.Connect)

		api.GET("/jobs", jobsHandler.ListJobs)
		api.POST("/jobs", authMW.RequireAuth(), jobsHandler.CreateJob)
		api.POST("/jobs/premium", authMW.RequireAuth(), jobsHandler.CreatePremiumJob)
		// registered before /jobs/:id so "match" is not read as an id
		api.GET("/jobs/match", authMW.RequireAuth(), matchHandler.Match)
		api.GET("/jobs/:id", jobsHandler.GetJob)
		api.DELETE("/jobs/:id", authMW.RequireAuth(), jobsHandler.DeleteJob)
		api.POST("/jobs/:id/apply", authMW.RequireAuth(), jobsHandler.Apply)

		api.GET("/admin/users", authMW.RequireAuth(), authMW.RequireRole("admin"), adminHandler.ListUsers)
	}

	return r
}
