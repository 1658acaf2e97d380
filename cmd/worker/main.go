package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vendorhub/internal/config"
	"vendorhub/internal/logger"
	"vendorhub/internal/metrics"
	"vendorhub/internal/notify"
	"vendorhub/internal/orchestrator/notification"
	"vendorhub/internal/orchestrator/scan"
	"vendorhub/internal/pgmq"
	"vendorhub/internal/reminder"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	mode := flag.String("mode", "", "Worker mode: reminders|notifications")
	metricsAddr := flag.String("metrics-addr", ":9090", "Address for the /metrics endpoint, empty to disable")
	flag.Parse()

	logger := logger.New().With().Str("mode", *mode).Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}
	if cfg.DataBackend != config.BackendPostgres {
		logger.Fatal().Msg("Workers need DATA_BACKEND=postgres")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := repository.NewPool(ctx, cfg.DBConnectionString, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal().Msgf("Failed to connect to DB: %v", err)
	}
	defer pool.Close()
	logger.Info().Msg("Database connection established")

	queue := pgmq.New(pool)
	for _, q := range []string{cfg.ReminderQueueName, cfg.ReminderDeadLetterQueue} {
		if err := queue.CreateQueue(ctx, q); err != nil {
			logger.Fatal().Msgf("Failed to create queue: %v", err)
		}
	}

	if *metricsAddr != "" {
		go serveMetrics(ctx, *metricsAddr, logger)
	}

	var runErr error
	switch *mode {
	case "reminders":
		runErr = runReminders(ctx, cfg, pool, queue, logger)
	case "notifications":
		runErr = runNotifications(ctx, cfg, queue, logger)
	default:
		logger.Fatal().Msgf("Invalid mode: %q", *mode)
	}
	if runErr != nil {
		logger.Fatal().Msgf("Worker exited with error: %v", runErr)
	}
	logger.Info().Msg("Worker stopped")
}

func runReminders(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, queue *pgmq.Client, logger zerolog.Logger) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	orgs := repository.NewOrganizationRepo(pool)
	vendors := repository.NewVendorRepo(pool)
	activity := service.NewActivityService(repository.NewActivityRepo(pool), nil, cfg.ActivityTopic, logger)
	subs := service.NewSubscriptionService(repository.NewSubscriptionRepo(pool), vendors, repository.NewRenewalRepo(pool), activity, logger)

	scanner := reminder.NewScanner(orgs, subs, rdb, queue, reminder.Options{
		QueueName:   cfg.ReminderQueueName,
		Concurrency: cfg.ReminderConcurrency,
		DedupTTL:    time.Duration(cfg.ReminderDedupTTLHours) * time.Hour,
	}, logger)
	return scan.Run(ctx, logger, scanner, time.Duration(cfg.ReminderScanIntervalSec)*time.Second)
}

func runNotifications(ctx context.Context, cfg *config.Config, queue *pgmq.Client, logger zerolog.Logger) error {
	password := cfg.SMTPPassword
	if cfg.SMTPPasswordSecret != "" {
		secrets, err := service.NewSecretService(ctx, cfg.GCPProjectID)
		if err != nil {
			return err
		}
		defer secrets.Close()
		password, err = secrets.AccessSecret(ctx, cfg.SMTPPasswordSecret)
		if err != nil {
			return err
		}
		logger.Info().Msg("SMTP password loaded from Secret Manager")
	}

	sender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: password,
		From:     cfg.SMTPFrom,
	})
	return notification.Run(ctx, logger, queue, sender, notification.Settings{
		Queue:           cfg.ReminderQueueName,
		DeadLetterQueue: cfg.ReminderDeadLetterQueue,
		PollTimeoutSec:  cfg.NotifyPollTimeoutSec,
		PollMaxMsg:      cfg.NotifyPollMaxMsg,
		VisibilitySec:   cfg.NotifyVisibilitySec,
		MaxRetries:      cfg.NotifyMaxRetries,
		BackoffInitial:  time.Duration(cfg.NotifyBackoffInitialSec) * time.Second,
		BackoffMax:      time.Duration(cfg.NotifyBackoffMaxSec) * time.Second,
	})
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	logger.Info().Str("addr", addr).Msg("Serving worker metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("Metrics server failed")
	}
}
