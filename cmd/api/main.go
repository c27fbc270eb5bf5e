package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/perfcycle/review-api/docs"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/config"
	"github.com/perfcycle/review-api/internal/database"
	"github.com/perfcycle/review-api/internal/directory"
	"github.com/perfcycle/review-api/internal/http/handler"
	"github.com/perfcycle/review-api/internal/http/middleware"
	"github.com/perfcycle/review-api/internal/http/router"
	"github.com/perfcycle/review-api/internal/jobs"
	"github.com/perfcycle/review-api/internal/logger"
	"github.com/perfcycle/review-api/internal/repository"
	"github.com/perfcycle/review-api/internal/service"
	"github.com/perfcycle/review-api/internal/storage"
	"go.uber.org/zap"
)

// @title PerfCycle Review API
// @version 1.0
// @description Multi-tenant employee performance review API

// @contact.name API Support
// @contact.email support@perfcycle.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "review-api-staging.perfcycle.io"
	case "production":
		docs.SwaggerInfo.Host = "api.perfcycle.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets.
	// Development reads environment variables; staging and production
	// fetch from Azure Key Vault.
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema migrations are applied via cmd/migrate in deployed
	// environments; development can auto-migrate.
	if cfg.App.Environment == "development" || cfg.App.Environment == "local" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate schema: %w", err)
		}
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// HR directory connection is optional and read-only; the app runs
	// without it when it is disabled or unreachable.
	var dirClient *directory.Client
	if cfg.Directory.Enabled {
		dirClient, err = directory.NewClient(&cfg.Directory, log)
		if err != nil {
			log.Warn("HR directory connection failed, continuing without it",
				zap.Error(err),
			)
		}
	} else {
		log.Info("HR directory not configured, skipping")
	}

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	cycleRepo := repository.NewCycleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	userService := service.NewUserService(userRepo, companyRepo, log, db)
	questionService := service.NewQuestionService(questionRepo, log)
	cycleService := service.NewCycleService(cycleRepo, userRepo, notificationRepo, log, db)
	assignmentService := service.NewAssignmentService(assignmentRepo, cycleRepo, userRepo, log, db)
	reviewService := service.NewReviewService(reviewRepo, assignmentRepo, cycleRepo, questionRepo, userRepo, notificationRepo, log, db)
	scoringService := service.NewScoringService(reviewRepo, cycleRepo, questionRepo, userRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	reportService := service.NewReportService(reportRepo, cycleRepo, notificationRepo, scoringService, fileStorage, log)
	reminderService := service.NewReminderService(cycleRepo, assignmentRepo, reviewRepo, userRepo, notificationRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, userService, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, log)
	userHandler := handler.NewUserHandler(userService, log)
	questionHandler := handler.NewQuestionHandler(questionService, log)
	cycleHandler := handler.NewCycleHandler(cycleService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	reviewHandler := handler.NewReviewHandler(reviewService, log)
	scoringHandler := handler.NewScoringHandler(scoringService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	reportHandler := handler.NewReportHandler(reportService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		userHandler,
		questionHandler,
		cycleHandler,
		assignmentHandler,
		reviewHandler,
		scoringHandler,
		notificationHandler,
		reportHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterReminderJob(
			scheduler,
			reminderService,
			log,
			cfg.Jobs.ReminderSchedule,
			cfg.Jobs.ReminderLeadDays,
		); err != nil {
			log.Error("Failed to register reminder job", zap.Error(err))
		}

		if dirClient.IsEnabled() {
			syncService := service.NewDirectorySyncService(dirClient, companyRepo, userRepo, log)
			if err := jobs.RegisterDirectorySyncJob(
				scheduler,
				syncService,
				log,
				cfg.Directory.SyncSchedule,
			); err != nil {
				log.Error("Failed to register directory sync job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := dirClient.Close(); err != nil {
			log.Warn("Error closing HR directory connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
