package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"name-address-db/backend/internal/api"
	"name-address-db/backend/internal/graph"
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
	log.Info("Starting document+graph records API...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize MongoDB store
	primary, err := store.NewMongo(ctx, store.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDBName,
	})
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := primary.Close(context.Background()); err != nil {
			log.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	graphRepo := graph.NewRepository(driver)
	defer graphRepo.Close(context.Background())

	// The graph is optional: keep serving without neighbor details
	if err := graphRepo.VerifyConnectivity(ctx, cfg.Neo4jURI); err != nil {
		log.Warn("Neo4j unreachable, neighbor lookups will be empty", zap.Error(err))
	}

	service := records.NewService(primary, graph.NewBestEffort(graphRepo))
	router := api.NewRouter(api.RouterConfig{
		Production:      cfg.IsProduction(),
		CORSAllowOrigin: cfg.CORSAllowOrigin,
	}, service, log)

	if err := server.Run(ctx, cfg.Addr(), router, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
	}
}
