package graph

import (
	"context"

	"go.uber.org/zap"

	"name-address-db/backend/internal/records"
	"name-address-db/backend/pkg/logger"
)

// Graph is the subset of Repository the enricher needs
type Graph interface {
	UpsertEdge(ctx context.Context, name, address string) error
	NeighborsOf(ctx context.Context, name string) ([]records.Neighborhood, error)
}

// BestEffort adapts a Graph into a records.Enricher. Every failure is
// logged and dropped; nothing is retried.
type BestEffort struct {
	graph  Graph
	logger *zap.Logger
}

// NewBestEffort wraps g so that its failures never reach the caller
func NewBestEffort(g Graph) *BestEffort {
	return &BestEffort{
		graph:  g,
		logger: logger.Get(),
	}
}

// UpsertEdge mirrors a name/address pair into the graph
func (b *BestEffort) UpsertEdge(ctx context.Context, name, address string) {
	if err := b.graph.UpsertEdge(ctx, name, address); err != nil {
		b.logger.Warn("Neo4j write failed, continuing without graph",
			zap.String("name", name),
			zap.String("address", address),
			zap.Error(err),
		)
	}
}

// NeighborsOf returns neighbor details, or an empty slice when the graph is unavailable
func (b *BestEffort) NeighborsOf(ctx context.Context, name string) []records.Neighborhood {
	found, err := b.graph.NeighborsOf(ctx, name)
	if err != nil {
		b.logger.Warn("Neo4j read failed, returning no neighbors",
			zap.String("name", name),
			zap.Error(err),
		)
		return []records.Neighborhood{}
	}
	if found == nil {
		return []records.Neighborhood{}
	}
	return found
}
