package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/config"
	"github.com/perfcycle/review-api/internal/database"
	"github.com/perfcycle/review-api/internal/http/handler"
	"github.com/perfcycle/review-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/perfcycle/review-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	questionHandler     *handler.QuestionHandler
	cycleHandler        *handler.CycleHandler
	assignmentHandler   *handler.AssignmentHandler
	reviewHandler       *handler.ReviewHandler
	scoringHandler      *handler.ScoringHandler
	notificationHandler *handler.NotificationHandler
	reportHandler       *handler.ReportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	questionHandler *handler.QuestionHandler,
	cycleHandler *handler.CycleHandler,
	assignmentHandler *handler.AssignmentHandler,
	reviewHandler *handler.ReviewHandler,
	scoringHandler *handler.ScoringHandler,
	notificationHandler *handler.NotificationHandler,
	reportHandler *handler.ReportHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		userHandler:         userHandler,
		questionHandler:     questionHandler,
		cycleHandler:        cycleHandler,
		assignmentHandler:   assignmentHandler,
		reviewHandler:       reviewHandler,
		scoringHandler:      scoringHandler,
		notificationHandler: notificationHandler,
		reportHandler:       reportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/signup", rt.authHandler.Signup)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.Get("/company", rt.userHandler.GetCompany)

			// Users
			r.Route("/users", func(r chi.Router) {
				r.Get("/", rt.userHandler.List)
				r.Get("/{id}", rt.userHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.userHandler.Create)
					r.Put("/{id}", rt.userHandler.Update)
					r.Delete("/{id}", rt.userHandler.Deactivate)
				})
			})

			// Question bank
			r.Route("/questions", func(r chi.Router) {
				r.Get("/", rt.questionHandler.ListByType)
				r.Get("/{id}", rt.questionHandler.GetByID)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.questionHandler.Create)
					r.Put("/reorder", rt.questionHandler.Reorder)
					r.Put("/{id}", rt.questionHandler.Update)
					r.Delete("/{id}", rt.questionHandler.Delete)
				})
			})

			// Review cycles
			r.Route("/cycles", func(r chi.Router) {
				r.Get("/", rt.cycleHandler.List)
				r.Get("/{id}", rt.cycleHandler.GetByID)
				r.Get("/{id}/self-review", rt.reviewHandler.GetSelfReview)
				r.Get("/{id}/pending-reviews", rt.reviewHandler.ListPending)
				r.Get("/{id}/assignments/{employeeId}", rt.assignmentHandler.ListForEmployee)

				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.cycleHandler.Create)
					r.Put("/{id}", rt.cycleHandler.Update)
					r.Put("/{id}/configs", rt.cycleHandler.ReplaceConfigs)
					r.Post("/{id}/activate", rt.cycleHandler.Activate)
					r.Post("/{id}/complete", rt.cycleHandler.Complete)
					r.Delete("/{id}", rt.cycleHandler.Delete)

					// Scores
					r.Get("/{id}/scores", rt.scoringHandler.CalculateAll)
					r.Get("/{id}/scores/{employeeId}", rt.scoringHandler.Calculate)

					// Report archive
					r.Post("/{id}/reports", rt.reportHandler.Export)
					r.Get("/{id}/reports", rt.reportHandler.List)
				})
			})

			// Reviewer assignments
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Put("/assignments", rt.assignmentHandler.Upsert)
				r.Post("/assignments/import", rt.assignmentHandler.Import)
			})

			// Reviews
			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", rt.reviewHandler.Start)
				r.Get("/{id}", rt.reviewHandler.GetByID)
				r.Put("/{id}/answers", rt.reviewHandler.UpsertAnswers)
				r.Post("/{id}/submit", rt.reviewHandler.Submit)
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Get("/count", rt.notificationHandler.UnreadCount)
				r.Put("/read-all", rt.notificationHandler.MarkAllRead)
				r.Put("/{id}/read", rt.notificationHandler.MarkRead)
			})

			// Report archive
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/reports/{id}/download", rt.reportHandler.Download)
				r.Delete("/reports/{id}", rt.reportHandler.Delete)
			})
		})
	})

	return r
}
