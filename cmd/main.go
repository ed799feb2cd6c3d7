package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donation-platform/internal/auth"
	"donation-platform/internal/config"
	"donation-platform/internal/database"
	"donation-platform/internal/handlers"
	"donation-platform/internal/jobs"
	"donation-platform/internal/logger"
	"donation-platform/internal/middleware"
	"donation-platform/internal/router"
	"donation-platform/internal/services"
	"donation-platform/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(cfg.Server.Mode)

	// Connect to database
	db, err := database.Connect(cfg.Database.Driver, cfg.GetDSN(), zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	store, err := storage.NewLocalStore(cfg.Storage.MediaRoot)
	if err != nil {
		zlog.Fatal("Failed to prepare media storage", zap.Error(err))
	}

	tokens := auth.NewManager(cfg.App.JWTSecret, cfg.App.JWTTTL)
	verifier := auth.NewVerifier(tokens, db, zlog)

	// Initialize services
	authService := services.NewAuthService(db, zlog)
	userService := services.NewUserService(db)
	campaignService := services.NewCampaignService(db, zlog)
	donationService := services.NewDonationService(db, zlog)
	leaderboardService := services.NewLeaderboardService(db)
	catalogService := services.NewCatalogService(db)

	// Initialize handlers
	h := router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, tokens, zlog),
		User:        handlers.NewUserHandler(userService, donationService, verifier, zlog),
		Campaign:    handlers.NewCampaignHandler(campaignService, donationService, verifier, zlog),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService, zlog),
		Catalog:     handlers.NewCatalogHandler(catalogService, zlog),
		File:        handlers.NewFileHandler(store, cfg.Server.APIPrefix, zlog),
	}
	if cfg.Indexer.APIKey != "" {
		indexerService := services.NewIndexerService(db, zlog)
		h.Indexer = handlers.NewIndexerHandler(indexerService, cfg.Indexer.APIKey, zlog)
	} else {
		zlog.Info("INDEXER_API_KEY not set, indexer routes disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, zlog)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(10*time.Minute, stopCleanup)

	engine := router.Setup(router.Options{
		APIPrefix:      cfg.Server.APIPrefix,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Limiter:        limiter,
		Log:            zlog,
	}, h)

	// Start reconcile job
	reconcileJob, err := jobs.NewReconcileJob(donationService, cfg.Indexer.ReconcileInterval, zlog)
	if err != nil {
		zlog.Fatal("Failed to create reconcile job", zap.Error(err))
	}
	if err := reconcileJob.Start(); err != nil {
		zlog.Fatal("Failed to start reconcile job", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("api_prefix", cfg.Server.APIPrefix),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	close(stopCleanup)
	if err := reconcileJob.Stop(); err != nil {
		zlog.Error("Reconcile job did not stop cleanly", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	zlog.Info("Server exited")
}
