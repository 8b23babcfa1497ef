package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/config"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/document"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Catalog configuration", "cars", len(cfg.Catalog.Cars))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize document store
	docs, closeStore, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		logger.Error("Failed to open storage", "type", cfg.Storage.Type, "error", err)
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()

	// Initialize Repositories
	store := document.NewStore(docs)

	// Initialize Services
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		service.NewZeroFeeInspector(),
		service.NewUUIDGenerator(),
		service.UTCClock,
	)
	bookingSvc := service.NewBookingService(cfg.Catalog.Cars, rentalSvc, store.SessionRepository)
	returnSvc := service.NewReturnService(rentalSvc, store.SessionRepository, service.NewPhotoEncoder(cfg.MaxPhotoBytes()))
	billingSvc := service.NewBillingService(rentalSvc, store.SessionRepository)

	// Start in-process scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(rentalSvc, service.UTCClock), cfg.Scheduler.FleetSnapshot)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Initialize HTTP handlers
	handler := httpapi.NewHandler(bookingSvc, rentalSvc, returnSvc, billingSvc, cfg.MaxPhotoBytes())
	router := httpapi.NewRouter(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      c.Handler(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	logger.Info("HTTP server listening", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
