package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/ai"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/api"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/config"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/repository/postgres"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/service"
	"github.com/Evolv11-Capstone/Evolv11-sub001/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)
	txm := postgres.NewTxManager(db)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize AI client when configured
	var aiClient ai.Client
	if cfg.AIEnabled() {
		aiClient = ai.NewClient(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel)
	} else {
		log.Println("AI enrichment disabled: AI_API_URL not set")
	}

	// Initialize services
	services := service.NewServices(repos, txm, cfg, aiClient, hub)

	// Initialize router
	router := api.NewRouter(services, hub, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()

	log.Println("Server stopped")
}
