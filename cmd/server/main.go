package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/moodcompanion/mood-companion/internal/api"
	"github.com/moodcompanion/mood-companion/internal/chat"
	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/moodcompanion/mood-companion/internal/insights"
	"github.com/moodcompanion/mood-companion/internal/notifications"
	"github.com/moodcompanion/mood-companion/internal/scheduler"
	"github.com/moodcompanion/mood-companion/internal/storage"
	"github.com/moodcompanion/mood-companion/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Mood Companion")

	// Pick the storage backend: Azure blob when an account is configured,
	// otherwise plain files under the data directory.
	var backend storage.Interface
	if cfg.StorageAccount != "" {
		backend, err = storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	} else {
		backend, err = storage.NewLocalStorage(cfg.DataDir)
	}
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize services
	journalStore := store.New(cfg, backend)
	notificationService := notifications.NewService(cfg)
	chatService := chat.NewService(cfg)
	insightsService := insights.NewService(cfg, journalStore, backend, notificationService)

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, insightsService, journalStore, notificationService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	apiServer := api.NewServer(cfg, journalStore, chatService, insightsService)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
