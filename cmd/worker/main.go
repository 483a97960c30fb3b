package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecomjrm/storefront-api/internal/common"
	"github.com/ecomjrm/storefront-api/internal/config"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/lock"
	"github.com/ecomjrm/storefront-api/internal/notify"
	"github.com/ecomjrm/storefront-api/internal/obs"
	"github.com/ecomjrm/storefront-api/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, queries := mustInitDatabase(ctx, cfg, logger)
	defer pool.Close()

	redisClient := mustInitRedis(ctx, cfg, logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	notifyStore := notify.NewStore(queries)
	dispatcher := &notify.Dispatcher{
		Store:          notifyStore,
		Client:         notify.HttpClient(int(cfg.WebhookRequestTimeout/time.Millisecond), false),
		BackoffBaseSec: cfg.WebhookBackoffBaseSec,
		MaxAttempts:    cfg.WebhookMaxAttempts,
		Enabled:        cfg.WebhookDeliveryEnabled,
		Replay:         notify.RedisReplayProtector{Client: redisClient},
		ReplayTTL:      cfg.WebhookReplayTTL,
	}

	deliveryWorker := &notify.DeliveryWorker{
		Dispatcher: dispatcher,
		Locker:     lock.Locker{R: redisClient},
		Log:        logger,
	}

	emailNotifier := notify.EmailNotifier{
		Mail:    common.NopEmailSender{},
		Enabled: cfg.NotifyEmailEnabled,
		From:    cfg.NotifyEmailFrom,
	}
	emailHandler := notify.EmailTaskHandler(emailNotifier)
	emailWorker := queue.Worker{
		R:                 redisClient,
		Prefix:            "q",
		Kind:              notify.TaskKindEmail,
		Concurrency:       2,
		VisibilityTimeout: 30 * time.Second,
		SoftDeadline:      20 * time.Second,
		RetryBase:         2 * time.Second,
		RetryJitter:       0.2,
		Store:             queue.NewStore(pool),
		Logger:            &logger,
		Handler: func(jobCtx context.Context, task queue.Task) error {
			return emailHandler(jobCtx, task.Payload)
		},
	}

	logger.Info().Msg("worker starting")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := deliveryWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("delivery worker stopped with error")
		}
	}()
	go func() {
		defer wg.Done()
		if err := emailWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("email worker stopped with error")
		}
	}()
	wg.Wait()

	logger.Info().Msg("worker shutdown complete")
}

func mustInitDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, *dbgen.Queries) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "storefront-worker"
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	return pool, dbgen.New(pool)
}

func mustInitRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
