package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/internal/scoring"
	"golang-bias-heatmap/internal/worker/config"
	"golang-bias-heatmap/internal/worker/delivery/consumer"
	"golang-bias-heatmap/internal/worker/service"
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"
	"golang-bias-heatmap/pkg/postgres"
	"golang-bias-heatmap/pkg/redis"
	"golang-bias-heatmap/pkg/telegram"
	"golang-bias-heatmap/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the normalization and scoring worker",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Worker Service", logger.Field("name", cfg.App.Name))

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer groups (and streams) if they don't exist
	for _, stream := range []string{common.RedisStreamEventNormalize, common.RedisStreamScoreRecompute} {
		if err := redis.EnsureGroup(ctx, redisClient.Client, stream, common.RedisStreamGroup); err != nil {
			appLogger.Fatal("Failed to create consumer group", logger.StringField("stream", stream), logger.ErrorField(err))
		}
	}

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, telegram.WithSource(cfg.App.Name))
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}

	scope, err := scoring.ParseSnapshotScope(cfg.Scoring.SnapshotScope)
	if err != nil {
		appLogger.Fatal("Invalid snapshot scope", logger.ErrorField(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.New(registry)

	// Initialize repositories
	assetRepo := repository.NewAssetRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)
	indicatorRepo := repository.NewIndicatorRepository(db.DB)
	scoreRepo := repository.NewScoreRepository(db.DB)

	dispatcher := dispatch.NewRedisDispatcher(redisClient.Client, cfg.Redis.StreamMaxLen, appLogger, recorder)
	engine := scoring.NewEngine(indicatorRepo,
		scoring.WithClampBound(cfg.Scoring.ClampBound),
		scoring.WithSnapshotScope(scope))

	if cfg.Worker.ConsumerName == "" {
		cfg.Worker.ConsumerName = utils.ConsumerName(common.RedisStreamConsumer)
	}
	streamCfg := service.StreamConfig{
		Consumer:        cfg.Worker.ConsumerName,
		ReadBlock:       cfg.Worker.ReadBlock,
		MaxIdleDuration: cfg.Worker.MaxIdleDuration,
		MaxRetry:        cfg.Worker.MaxRetry,
	}
	normalizeSvc := service.NewNormalizeService(redisClient.Client, eventRepo, indicatorRepo, dispatcher, telegramNotifier, streamCfg, appLogger, recorder)
	scoringSvc := service.NewScoringService(redisClient.Client, assetRepo, scoreRepo, engine,
		scoring.NewFileWeightLoader(cfg.Scoring.WeightsPath), dispatcher, telegramNotifier, streamCfg, appLogger, recorder)

	var metricsServer *http.Server
	if cfg.Worker.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Worker.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Metrics server failed", logger.ErrorField(err))
			}
		}()
	}

	redisConsumer := consumer.NewRedisConsumer(cfg, normalizeSvc, scoringSvc, appLogger)
	if err := redisConsumer.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start consumer", logger.ErrorField(err))
	}

	appLogger.Info("Worker service started. Waiting for tasks...")

	<-ctx.Done()

	appLogger.Info("Shutting down worker...")
	redisConsumer.Stop()
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	appLogger.Info("Worker exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "worker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-worker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing worker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
