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

	"github.com/hibiken/asynq"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/jobs"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/database"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/repositories/database/mongodb"
)

// The worker persists queued notifications and runs the weekly past due reminder sweep.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !cfg.RedisEnabled() {
		logger.Error("REDIS_ADDR is required to run the worker")
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

	repos := mongodb.NewRepositoryProvider(db, nil)
	// No dispatcher: the worker stores notifications itself.
	notifications := services.NewNotificationService(repos.NotificationRepo, repos.TimesheetRepo)

	appMetrics := metrics.NewMetrics()
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           appMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	var cron []jobs.CronRegistration
	if cfg.PastDueCron != "" {
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.PastDueCron,
			Task:    jobs.NewPastDueReminderTask(),
			Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskNotificationCreate, Handler: jobs.NewNotificationJob(notifications, logger, appMetrics).Handle},
			{Type: jobs.TaskPastDueReminder, Handler: jobs.NewPastDueJob(notifications, logger, appMetrics).Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("Failed to build worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Worker starting", slog.Int("concurrency", cfg.WorkerConcurrency), slog.String("past_due_cron", cfg.PastDueCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}
}
