package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"coinlab/adapters/rng"
	"coinlab/adapters/sqlite"
	"coinlab/app"
	"coinlab/internal"
	"coinlab/internal/api"
	"coinlab/internal/config"
)

// Standalone JSON API without the HTMX front-end.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	store, err := sqlite.NewSessionRepository(appConfig.Store.DSN)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer store.Close()

	service := app.NewFlipService(rng.NewAdapter(), store, appConfig.Simulation, logger)
	server := api.NewServer(service, appConfig.Server.GinMode, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, ":"+appConfig.Server.APIPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
