package records

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "name-address-db/backend/pkg/errors"
)

// SearchResult is the outcome of a successful search
type SearchResult struct {
	Name      string
	Addresses []string
	// Detailed is nil when the service has no enricher
	Detailed []Neighborhood
}

// Service implements add and search on top of a primary store and an
// optional enricher
type Service struct {
	store    Store
	enricher Enricher
}

// NewService creates a service. enricher may be nil.
func NewService(store Store, enricher Enricher) *Service {
	return &Service{
		store:    store,
		enricher: enricher,
	}
}

// Enriched reports whether search results carry neighbor details
func (s *Service) Enriched() bool {
	return s.enricher != nil
}

// Add appends a record and, when enrichment is configured, mirrors it
// into the graph. It reports whether a record already existed for name.
// Cancellation of ctx is ignored so a dropped client cannot leave the
// record written but the graph write skipped.
func (s *Service) Add(ctx context.Context, name, address string) (bool, error) {
	if name == "" || address == "" {
		return false, apperrors.ErrMissingFields
	}
	ctx = context.WithoutCancel(ctx)

	existed, err := s.store.AddRecord(ctx, name, address)
	if err != nil {
		return false, fmt.Errorf("adding record: %w", err)
	}

	if s.enricher != nil {
		s.enricher.UpsertEdge(ctx, name, address)
	}

	return existed, nil
}

// Search returns all addresses recorded for name. The neighbor lookup
// runs alongside the primary lookup and never fails the search. Like
// Add, it runs to completion even if ctx is cancelled.
func (s *Service) Search(ctx context.Context, name string) (*SearchResult, error) {
	if name == "" {
		return nil, apperrors.ErrMissingName
	}
	ctx = context.WithoutCancel(ctx)

	var (
		found    []Record
		detailed []Neighborhood
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		found, err = s.store.FindByName(gctx, name)
		return err
	})
	if s.enricher != nil {
		g.Go(func() error {
			detailed = s.enricher.NeighborsOf(gctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}

	if len(found) == 0 {
		return nil, apperrors.NewRecordNotFound(name)
	}

	result := &SearchResult{
		Name:      name,
		Addresses: make([]string, 0, len(found)),
	}
	for _, rec := range found {
		result.Addresses = append(result.Addresses, rec.Address)
	}

	if s.enricher != nil {
		if detailed == nil {
			detailed = []Neighborhood{}
		}
		result.Detailed = detailed
	}

	return result, nil
}
