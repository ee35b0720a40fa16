// Command server runs the Verdant CMS API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"verdant/internal/config"
	"verdant/internal/seed"
	"verdant/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := seed.EnsureAdmin(srv.DB(), cfg); err != nil {
			log.Fatalf("Failed to ensure admin account: %v", err)
		}
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start returns nil after a graceful shutdown.
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
