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

	"golang-bias-heatmap/internal/api/config"
	delivery "golang-bias-heatmap/internal/api/delivery/http"
	_ "golang-bias-heatmap/internal/api/docs"
	"golang-bias-heatmap/internal/api/service"
	"golang-bias-heatmap/internal/dispatch"
	"golang-bias-heatmap/internal/repository"
	"golang-bias-heatmap/pkg/logger"
	"golang-bias-heatmap/pkg/metrics"
	"golang-bias-heatmap/pkg/postgres"
	"golang-bias-heatmap/pkg/redis"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the bias heatmap API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name), logger.Field("version", cfg.App.Version))

	// Initialize database
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
	sqlDB, err := db.DB.DB()
	if err != nil {
		appLogger.Fatal("Failed to access database pool", logger.ErrorField(err))
	}
	defer sqlDB.Close()

	// Initialize Redis
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	// Initialize repositories
	assetRepo := repository.NewAssetRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)
	indicatorRepo := repository.NewIndicatorRepository(db.DB)
	scoreRepo := repository.NewScoreRepository(db.DB)

	cacheTTL, err := time.ParseDuration(cfg.Heatmap.AssetCacheTTL)
	if err != nil {
		appLogger.Fatal("Invalid asset cache ttl", logger.ErrorField(err))
	}
	assetCache := cache.New(cache.NoExpiration, 0)
	if cacheTTL > 0 {
		assetCache = cache.New(cacheTTL, 2*cacheTTL)
	}
	assets := service.NewAssetLookup(assetRepo, assetCache)
	dispatcher := dispatch.NewRedisDispatcher(redisClient.Client, cfg.Redis.StreamMaxLen, appLogger, recorder)

	// Initialize services
	ingestSvc := service.NewIngestService(assets, eventRepo, dispatcher, cfg.Ingest.MaxBatchSize, appLogger, recorder)
	heatmapSvc := service.NewHeatmapService(assets, scoreRepo, service.DisplayConfig{
		ClampBound: cfg.Scoring.ClampBound,
		Divisor:    cfg.Scoring.DisplayDivisor,
		Decimals:   cfg.Scoring.DisplayDecimals,
	}, cfg.Heatmap.MaxBatchAssets, appLogger)
	assetSvc := service.NewAssetService(assets, indicatorRepo, scoreRepo, appLogger)
	jobSvc := service.NewJobService(assets, dispatcher, appLogger)
	healthSvc := service.NewHealthService(cfg.App.Version, map[string]service.Check{
		"postgres": sqlDB.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	e := delivery.NewRouter(delivery.Handlers{
		Ingest:  delivery.NewIngestHandler(ingestSvc, appLogger),
		Heatmap: delivery.NewHeatmapHandler(heatmapSvc, appLogger),
		Asset:   delivery.NewAssetHandler(assetSvc, appLogger),
		Job:     delivery.NewJobHandler(jobSvc, appLogger),
		Health:  delivery.NewHealthHandler(healthSvc),
	}, delivery.RouterOptions{
		IngestRateLimit: cfg.API.RateLimit,
		Gatherer:        registry,
		Swagger:         true,
	})

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Bias Heatmap API
// @version 1.0
// @description Ingests market events and serves per-asset bias scores.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
