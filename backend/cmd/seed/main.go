package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"name-address-db/backend/internal/graph"
	"name-address-db/backend/internal/records"
	"name-address-db/backend/internal/store"
	"name-address-db/backend/pkg/config"
	"name-address-db/backend/pkg/logger"
)

// sampleRecords gives the frontend something to search for on a fresh database
var sampleRecords = []records.Record{
	{Name: "Alice", Address: "1 Main St"},
	{Name: "Carol", Address: "1 Main St"},
	{Name: "Bob", Address: "22 Harbour Rd"},
	{Name: "Dave", Address: "22 Harbour Rd"},
	{Name: "Erin", Address: "7 Orchard Ln"},
}

func main() {
	variant := flag.String("variant", "relational", "Store to seed: relational or graph")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...", zap.String("variant", *variant))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	service, closeFn, err := buildService(ctx, cfg, *variant, log)
	if err != nil {
		log.Fatal("Failed to open stores", zap.Error(err))
	}
	defer closeFn()

	for _, rec := range sampleRecords {
		existed, err := service.Add(ctx, rec.Name, rec.Address)
		if err != nil {
			log.Fatal("Failed to seed record", zap.String("name", rec.Name), zap.Error(err))
		}
		log.Info("Seeded record",
			zap.String("name", rec.Name),
			zap.String("address", rec.Address),
			zap.Bool("existed", existed),
		)
	}

	log.Info("Seeding complete", zap.Int("records", len(sampleRecords)))
}

func buildService(ctx context.Context, cfg *config.Config, variant string, log *zap.Logger) (*records.Service, func(), error) {
	switch variant {
	case "relational":
		primary, err := store.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return records.NewService(primary, nil), func() { _ = primary.Close(ctx) }, nil

	case "graph":
		primary, err := store.NewMongo(ctx, store.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDBName})
		if err != nil {
			return nil, nil, err
		}
		driver, err := neo4j.NewDriverWithContext(
			cfg.Neo4jURI,
			neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		)
		if err != nil {
			_ = primary.Close(ctx)
			return nil, nil, err
		}
		repo := graph.NewRepository(driver)
		if err := repo.VerifyConnectivity(ctx, cfg.Neo4jURI); err != nil {
			log.Warn("Neo4j unreachable, seeding documents only", zap.Error(err))
		}
		closeFn := func() {
			_ = repo.Close(ctx)
			_ = primary.Close(ctx)
		}
		return records.NewService(primary, graph.NewBestEffort(repo)), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown variant %q (want relational or graph)", variant)
}
