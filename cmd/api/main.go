package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"neargo/config"
	_ "neargo/docs"
	"neargo/internal/adapters/email"
	"neargo/internal/adapters/feed"
	"neargo/internal/adapters/providers"
	"neargo/internal/adapters/sms"
	"neargo/internal/adapters/storage"
	"neargo/internal/adapters/submissions"
	deliveryhttp "neargo/internal/delivery/http"
	"neargo/internal/delivery/http/controllers"
	"neargo/internal/delivery/http/middleware"
	"neargo/internal/domain"
	"neargo/internal/repository/postgres"
	"neargo/internal/services"
)

// @title NearGo API
// @version 1.0
// @description Local event discovery and slot reservation service.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := config.NewLogger()
	logger.Info("starting neargo", "environment", cfg.Environment, "port", cfg.Port)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewBlobStore(cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to initialize blob store", "err", err)
		os.Exit(1)
	}

	signedURLTTL := time.Duration(cfg.Storage.SignedURLTTLMinutes) * time.Minute
	sources := []domain.EventSource{
		providers.New(cfg.ProvidersFile, logger),
		submissions.New(store, cfg.Storage.Prefix, signedURLTTL, logger),
		feed.New(&http.Client{Timeout: 15 * time.Second}, cfg.ExternalFeedURL, logger),
	}
	discoverySvc := services.NewDiscoveryService(logger, sources...)

	mailer, err := email.NewMailer(cfg.Email, logger)
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	smsSender := sms.New(cfg.SMS, logger)

	slotRepo := postgres.NewSlotRepository(db)
	holdRepo := postgres.NewHoldRepository(db)
	reservationSvc := services.NewReservationService(slotRepo, holdRepo, emailSvc, smsSender, cfg.SMS.AlertTo, logger)

	discoverController := controllers.NewDiscoverController(logger, discoverySvc)
	reserveController := controllers.NewReserveController(logger, reservationSvc)

	mux := deliveryhttp.NewRouter(discoverController, reserveController)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins,
			rateLimiter.Handler(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
