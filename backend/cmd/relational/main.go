package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"name-address-db/backend/internal/api"
	"name-address-db/backend/internal/records"
	"name-address-db/backend/internal/server"
	"name-address-db/backend/internal/store"
	"name-address-db/backend/pkg/config"
	"name-address-db/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting relational records API...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite store
	primary, err := store.NewSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open SQLite store", zap.Error(err))
	}
	defer func() {
		if err := primary.Close(context.Background()); err != nil {
			log.Error("Failed to close SQLite store", zap.Error(err))
		}
	}()

	service := records.NewService(primary, nil)
	router := api.NewRouter(api.RouterConfig{
		Production:      cfg.IsProduction(),
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	}, service, log)

	if err := server.Run(ctx, cfg.Addr(), router, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}
}
