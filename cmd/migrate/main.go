package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"donation-platform/internal/config"
	"donation-platform/internal/logger"
	"donation-platform/internal/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Database.Driver != "postgres" {
		zlog.Fatal("SQL migrations target postgres; sqlite deployments use AutoMigrate",
			zap.String("driver", cfg.Database.Driver))
	}

	// Connect to database
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal("Failed to ping database", zap.Error(err))
	}

	applied, err := migrations.Apply(ctx, db)
	if err != nil {
		zlog.Fatal("Migration failed", zap.Strings("applied", applied), zap.Error(err))
	}
	if len(applied) == 0 {
		zlog.Info("Schema is up to date")
		return
	}
	zlog.Info("Migrations applied", zap.Strings("versions", applied))
}
