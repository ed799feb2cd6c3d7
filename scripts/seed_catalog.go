package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"donation-platform/internal/config"
	"donation-platform/internal/migrations"
)

// Usage: go run ./scripts/seed_catalog.go catalog.json
//
// catalog.json: {"campaign_types": ["Health"], "tokens": [{"name": "...", "symbol": "...", "address": "0.0.x", "decimal": 8}]}
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <catalog.json>", os.Args[0])
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}
	var catalog migrations.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		log.Fatalf("Failed to parse catalog file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	inserted, err := migrations.SeedCatalog(ctx, db, catalog)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("Seeded %d rows (%d campaign types, %d tokens requested)\n",
		inserted, len(catalog.CampaignTypes), len(catalog.Tokens))
}
