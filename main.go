package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"coinlab/adapters/rng"
	"coinlab/adapters/sqlite"
	"coinlab/app"
	"coinlab/internal"
	"coinlab/internal/api"
	"coinlab/internal/config"
	"coinlab/ui"
)

func main() {
	// Load environment variables from .env file
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

	uiApp, err := ui.NewApp(service, appConfig.Simulation, logger)
	if err != nil {
		log.Fatalf("Failed to build UI: %v", err)
	}
	apiServer := api.NewServer(service, appConfig.Server.GinMode, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return uiApp.Run(ctx, ":"+appConfig.Server.UIPort)
	})
	group.Go(func() error {
		return apiServer.Run(ctx, ":"+appConfig.Server.APIPort)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
