package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"name-address-db/backend/internal/records"
	apperrors "name-address-db/backend/pkg/errors"
	"name-address-db/backend/pkg/logger"
)

// Repository handles the Person/Address graph in Neo4j
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// VerifyConnectivity checks that the server is reachable with the configured credentials
func (r *Repository) VerifyConnectivity(ctx context.Context, uri string) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return apperrors.NewGraphConnectionFailed(uri, err)
	}
	return nil
}

const upsertEdgeQuery = `
		MERGE (p:Person {name: $name})
		MERGE (a:Address {location: $address})
		MERGE (p)-[:LIVES_AT]->(a)
	`

// UpsertEdge ensures the Person node, the Address node and the LIVES_AT
// edge between them exist. Re-adding the same pair changes nothing.
func (r *Repository) UpsertEdge(ctx context.Context, name, address string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, upsertEdgeQuery, map[string]interface{}{
		"name":    name,
		"address": address,
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("upsert edge", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return apperrors.NewGraphQueryFailed("upsert edge", err)
	}

	r.logger.Debug("Graph edge upserted",
		zap.String("name", name),
		zap.String("address", address),
	)
	return nil
}

const neighborsQuery = `
		MATCH (p:Person {name: $name})-[:LIVES_AT]->(a:Address)
		MATCH (other:Person)-[:LIVES_AT]->(a)
		WHERE other <> p
		RETURN a.location as address, collect(other.name) as neighbors
	`

// NeighborsOf returns, for each address the person lives at, the other
// people living there. Addresses with nobody else are not returned, and
// an unknown person yields an empty result.
func (r *Repository) NeighborsOf(ctx context.Context, name string) ([]records.Neighborhood, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, neighborsQuery, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("neighbors", err)
	}

	rows, err := result.Collect(ctx)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("neighbors", err)
	}

	return parseNeighborhoods(rows), nil
}

func parseNeighborhoods(rows []*neo4j.Record) []records.Neighborhood {
	out := make([]records.Neighborhood, 0, len(rows))
	for _, row := range rows {
		out = append(out, records.Neighborhood{
			Address:   getStringFromRecord(row, "address"),
			Neighbors: getStringSliceFromRecord(row, "neighbors"),
		})
	}
	return out
}
