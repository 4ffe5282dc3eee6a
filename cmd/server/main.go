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

	"github.com/pennyflow/Personal-Finance-Backend/internal/api"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/categorizer"
	"github.com/pennyflow/Personal-Finance-Backend/internal/config"
	"github.com/pennyflow/Personal-Finance-Backend/internal/database"
	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
	"github.com/pennyflow/Personal-Finance-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo, err := repository.NewSettingRepository(db, cfg.Database.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create setting repository: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo)
	importService := service.NewImportService(transactionRepo)
	analysisService := service.NewAnalysisService(transactionRepo, snapshotRepo)

	// The enrichment service is only available when a categorizer endpoint
	// is configured. Its API token is stored encrypted in the settings table.
	var enrichmentService *service.EnrichmentService
	if cfg.Categorizer.BaseURL != "" {
		token, err := settingRepo.GetSecret(repository.SettingCategorizerToken)
		if err != nil && !errors.Is(err, apperrors.ErrSettingNotFound) {
			log.Fatalf("Failed to read categorizer token: %v", err)
		}
		client := categorizer.NewClient(cfg.Categorizer.BaseURL, token)
		enrichmentService = service.NewEnrichmentService(transactionRepo, client, cfg.Categorizer.BatchSize)
		log.Printf("Categorizer enabled: %s", cfg.Categorizer.BaseURL)
	}

	// Scheduled snapshot refresh
	var scheduler *service.Scheduler
	if cfg.Snapshot.CronSpec != "" {
		scheduler, err = service.NewScheduler(analysisService, cfg.Snapshot.CronSpec, cfg.Snapshot.Mode)
		if err != nil {
			log.Fatalf("Failed to create snapshot scheduler: %v", err)
		}
		scheduler.Start()
		log.Printf("Snapshot refresh scheduled: %q (range %s)", cfg.Snapshot.CronSpec, cfg.Snapshot.Mode)
	}

	// Create router
	router := api.NewRouter(systemService, transactionService, importService, analysisService, enrichmentService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
