package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/handlers"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/jobs"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/cache"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/database"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/storage"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/repositories/database/mongodb"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/repositories/database/pgsql"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/utils"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/validation"
)

const (
	uploadsRoute   = "/uploads"
	logoPrefix     = "project-logos"
	shutdownWindow = 15 * time.Second
)

// @title Workfriar - API
// @version 1.0
// @description Timesheet tracking, review and reporting.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := validation.RegisterGin(); err != nil {
		logger.Error("Failed to register validation rules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseMongo(context.Background(), mongoClient, logger)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("Failed to ensure MongoDB indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The approval audit trail is optional and lives in PostgreSQL.
	var auditRepo portsrepo.ApprovalAuditRepository
	if cfg.AuditEnabled() {
		pool, err := database.NewPgxPool(ctx, cfg.PgsqlURL, logger)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(pool, logger)

		if cfg.EnableDBMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.PgsqlURL, cfg.MigrationsPath, logger); err != nil {
				logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		auditRepo = pgsql.NewApprovalAuditRepository(pool)
	} else {
		logger.Warn("PGSQL_URL not set, approval audit trail disabled")
	}

	appMetrics := metrics.NewMetrics()
	infra := services.Infrastructure{Metrics: appMetrics}

	if cfg.RedisEnabled() {
		redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing Redis client", slog.String("error", cerr.Error()))
			}
		}()

		jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() {
			if cerr := jobClient.Close(); cerr != nil {
				logger.Error("Error closing job client", slog.String("error", cerr.Error()))
			}
		}()

		infra.Locker = cache.NewRedisLocker(redisClient, cfg.ApprovalLockTTL, cfg.ApprovalLockWait)
		infra.ReportCache = cache.NewReportCache(redisClient, cfg.ReportCacheTTL)
		infra.Dispatcher = jobClient
		logger.Info("Redis enabled for locks, report cache and background jobs")
	} else {
		infra.Locker = cache.NewLocalLocker(cfg.ApprovalLockWait)
		logger.Warn("REDIS_ADDR not set, using in-process locks and inline notifications")
	}

	files, err := storage.NewLocalFileStore(cfg.UploadDir, logoPrefix)
	if err != nil {
		logger.Error("Failed to prepare upload directory", slog.String("error", err.Error()))
		os.Exit(1)
	}
	infra.Files = files

	repos := mongodb.NewRepositoryProvider(db, auditRepo)
	serviceContainer := services.NewServiceContainer(cfg, repos, infra)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecureHeaders(cfg.IsProduction),
		middleware.CORS(cfg.FrontendBaseURL),
		appMetrics.GinMiddleware(),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Static(uploadsRoute, cfg.UploadDir)

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, appMetrics); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
