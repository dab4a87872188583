package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reelsense/app/echo-server/router"
	"reelsense/business/recommend"
	"reelsense/business/svd"
	"reelsense/domain"
	"reelsense/internal/middleware"
	"reelsense/internal/repository/csvfile"
	psqlRepo "reelsense/internal/repository/postgres"
	redisRepo "reelsense/internal/repository/redis"
	"reelsense/internal/rest"
	"reelsense/pkg/config"
	"reelsense/pkg/database"
	redisdb "reelsense/pkg/database/redis"
	"reelsense/pkg/logger"
	"reelsense/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ReelSense", "version", cfg.App.Version)

	metrics.Init()

	// Static snapshot: loaded once, read-only for the process lifetime.
	snap, err := loadSnapshot(cfg)
	if err != nil {
		logger.Fatal("Failed to load snapshot", "error", err)
	}
	logger.Info("Snapshot loaded",
		"source", cfg.Data.Source,
		"ratings", len(snap.Ratings),
		"movies", len(snap.Movies),
		"tags", len(snap.Tags),
	)

	// Trained latent-factor model.
	model, err := svd.Load(cfg.Model.Path)
	if err != nil {
		logger.Fatal("Failed to load latent-factor model", "error", err)
	}
	adapter := svd.NewAdapter(model)

	engineCfg := recommend.DefaultConfig()
	engineCfg.Strategy = cfg.Engine.MatchStrategy

	engine, err := recommend.NewEngine(snap, adapter, adapter, engineCfg)
	if err != nil {
		logger.Fatal("Failed to initialize engine", "error", err)
	}

	// Optional Redis response cache.
	var cache rest.RecommendationCache
	if cfg.Redis.Enabled {
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			_ = redisdb.CloseRedisClient(client)
		}()
		cache = redisRepo.NewRecommendationCache(client, time.Duration(cfg.Redis.CacheTTLSecs)*time.Second)
		logger.Info("Recommendation cache enabled", "ttl_seconds", cfg.Redis.CacheTTLSecs)
	}

	// Init handler
	recommendHandler := rest.NewRecommendHandler(engine, cache)
	healthHandler := rest.NewHealthHandler(cfg.App.Name, cfg.App.Version)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendHandler)
	router.SetupHealthRoutes(e, healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func loadSnapshot(cfg *config.Config) (domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return domain.Snapshot{}, err
		}
		return psqlRepo.NewSnapshotRepository(db).Load(ctx)
	default:
		return csvfile.NewSnapshotRepository(cfg.Data.Dir).Load(ctx)
	}
}
