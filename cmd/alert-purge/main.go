package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/lifeec/go-backend/internal/config"
	"github.com/lifeec/go-backend/internal/logging"
	"github.com/lifeec/go-backend/internal/repository"
)

// One-shot maintenance sweep: delete alerts outside the retention window
// and report what remains unread.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	store, err := repository.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-cfg.Alerts.Retention)
	deleted, err := store.PurgeAlertsOlderThan(ctx, cutoff)
	if err != nil {
		logging.Fatalf("Purge failed: %v", err)
	}

	unread, err := store.CountUnreadAlerts(ctx)
	if err != nil {
		logging.Fatalf("Unread count failed: %v", err)
	}

	slog.Info("purge complete", "deleted", deleted, "cutoff", cutoff, "unread_remaining", unread)
}
