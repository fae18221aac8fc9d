package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docuflow/internal/config"
	"docuflow/internal/logging"
	"docuflow/internal/services"
)

func main() {
	// 1. Load Configuration
	cfg := config.LoadConfig()

	// 2. Initialize Logging
	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	// 3. Initialize Services
	mgr := services.NewManager(cfg)

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCancel()
	if err := mgr.Init(initCtx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// 4. Start Services
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- mgr.Start(bgCtx)
	}()

	// 5. Wait for Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("Shutting down...")
	case err := <-errCh:
		if err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	bgCancel()
	mgr.Shutdown(shutdownCtx)

	log.Println("Stopped.")
}
