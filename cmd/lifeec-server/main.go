package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lifeec/go-backend/internal/api"
	"github.com/lifeec/go-backend/internal/config"
	"github.com/lifeec/go-backend/internal/logging"
	"github.com/lifeec/go-backend/internal/mailer"
	"github.com/lifeec/go-backend/internal/notify"
	"github.com/lifeec/go-backend/internal/repository"
	"github.com/lifeec/go-backend/internal/retention"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	store, err := repository.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	smtpMailer, err := mailer.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		logging.Fatalf("Failed to initialize mail transport: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fail fast on a misconfigured transport, but keep serving if the
	// SMTP server is merely unreachable right now; sends will retry.
	verifyCtx, verifyCancel := context.WithTimeout(ctx, cfg.SMTP.DialTimeout)
	if err := smtpMailer.Verify(verifyCtx); err != nil {
		slog.Warn("mail transport verification failed", "error", err)
	} else {
		slog.Info("mail transport verified")
	}
	verifyCancel()

	alertSvc := notify.NewService(store, store, store, smtpMailer)

	// Background retention sweep for expired alerts
	purger := retention.NewPurger(store, cfg.Alerts.Retention, cfg.Alerts.PurgeInterval)
	purger.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond))

	handler := api.NewHandler(store, alertSvc, smtpMailer, cfg.Alerts.Retention)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	purger.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
