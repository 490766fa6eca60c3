package main

import (
	"condo-package-service/internal/adapters/cache"
	"condo-package-service/internal/adapters/repositories"
	"condo-package-service/internal/adapters/webhook"
	"condo-package-service/internal/api"
	"condo-package-service/internal/config"
	"condo-package-service/internal/platform/db"
	"condo-package-service/internal/platform/logging"
	"condo-package-service/internal/scanner"
	"condo-package-service/internal/services"
	"condo-package-service/internal/workers"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (postgres, redis, webhook) behind ports
// and starts the HTTP server plus the background workers.
func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogsDirectory)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database open failed", zap.Error(err))
	}
	defer database.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(database, cfg.SeedPath); err != nil {
		logger.Fatal("init and seed failed", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	lookupCache := cache.NewRedisLookupCache(redisClient)
	feedCache := cache.NewRedisFeedCache(redisClient)

	packageRepo := repositories.NewPostgresPackageRepository(database)
	signatureRepo := repositories.NewPostgresSignatureRepository(database)
	referenceRepo := repositories.NewPostgresReferenceRepository(database)

	var dispatcher *webhook.Dispatcher
	if strings.TrimSpace(cfg.WebhookURL) != "" {
		client, err := webhook.NewClient(cfg.WebhookURL)
		if err != nil {
			logger.Fatal("webhook client failed", zap.Error(err))
		}
		dispatcher = webhook.NewDispatcher(client, logger)
	} else {
		logger.Warn("WEBHOOK_URL not set, notifications disabled")
		dispatcher = webhook.NewDispatcher(nil, logger)
	}

	lookupSvc := &services.LookupService{Repo: packageRepo, Cache: lookupCache, Logger: logger}
	feedSvc := &services.FeedService{Repo: packageRepo, Cache: feedCache, Logger: logger}
	deliverySvc := &services.DeliveryService{
		Packages:   packageRepo,
		Signatures: signatureRepo,
		Lookup:     lookupCache,
		Feed:       feedCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	registrationSvc := &services.RegistrationService{
		Packages:   packageRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	}

	scanManager := scanner.NewManager(scanner.Config{
		FramesPerSecond: cfg.ScanFPS,
		DetectionBoxPx:  cfg.ScanDetectionBoxPx,
		DebounceWindow:  cfg.ScanDebounce,
	}, nil)

	orchestrator := workers.NewOrchestrator(logger,
		workers.NewFeedRefreshWorker(feedSvc, logger, cfg.FeedRefreshEvery),
	)
	cronRunner, err := orchestrator.Start()
	if err != nil {
		logger.Fatal("worker orchestration failed", zap.Error(err))
	}

	router := api.NewRouter(api.RouterDeps{
		Packages:         packageRepo,
		Reference:        referenceRepo,
		Lookup:           lookupSvc,
		Registration:     registrationSvc,
		Delivery:         deliverySvc,
		Feed:             feedSvc,
		Scanner:          scanManager,
		Logger:           logger,
		RequireSignature: cfg.RequireSignature,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for termination signal to exit gracefully.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}

	cronRunner.Stop()
	// Let in-flight webhook dispatches drain before the process exits.
	dispatcher.Wait()
}

func initAndSeed(database *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); os.IsNotExist(err) {
		return nil
	}

	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
