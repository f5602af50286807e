package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"protos.app/smartlife-api/internal/api"
	"protos.app/smartlife-api/internal/config"
	"protos.app/smartlife-api/internal/core"
	"protos.app/smartlife-api/internal/store"
	"protos.app/smartlife-api/pkg/log"
)

func main() {
	cfg := config.Load()
	log.Init(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	// Initialize the knowledge store. An unreachable database degrades to
	// per-request error payloads rather than killing the process.
	dbStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	if err := dbStore.Bootstrap(cfg.SeedDataDir); err != nil {
		log.Warnf("database bootstrap skipped: %v", err)
	}

	// Initialize the LLM relay. Lenient boot: a missing API key only warns.
	llmService := core.NewLLMService(cfg.GoogleAPIKey)
	defer llmService.Close()

	assistant := core.NewAssistantService(dbStore, llmService, core.NewPersona(cfg.AssistantName))

	apiHandler := api.NewAPIHandler(dbStore, assistant)
	router := api.NewRouter(apiHandler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s. Press Ctrl+C to quit.", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", srv.Addr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting gracefully")
}
