package main

import (
	"context"
	"time"

	"github.com/shanture-next/internal/app"
	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// OpenDatabase 只按 seed_on_start 播种，这里总是尝试
	cfg.Catalog.SeedOnStart = false
	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}
	defer func() { _ = models.CloseDB(db) }()

	created, err := models.SeedProducts(ctx, db)
	if err != nil {
		stdLog.Fatalf("Failed to seed products: %v", err)
	}
	if created == 0 {
		stdLog.Printf("Products already present, nothing seeded")
		return
	}
	stdLog.Printf("Seeded %d products", created)
}
