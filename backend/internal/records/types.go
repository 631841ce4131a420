package records

import "context"

// Record is a name/address pair as stored in the primary store.
// ID is store-assigned: the SQLite row id or the MongoDB ObjectID hex.
type Record struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Neighborhood is an address together with the other people living there
type Neighborhood struct {
	Address   string   `json:"address"`
	Neighbors []string `json:"neighbors"`
}

// Store is the primary store of record for name/address pairs
type Store interface {
	// AddRecord always inserts a new record and reports whether one
	// already existed for the name.
	AddRecord(ctx context.Context, name, address string) (existed bool, err error)
	// FindByName returns every record with exactly this name, in store order.
	FindByName(ctx context.Context, name string) ([]Record, error)
	Close(ctx context.Context) error
}

// Enricher is a best-effort secondary store. Implementations contain
// their own failures: UpsertEdge never fails the caller and NeighborsOf
// returns an empty result instead of an error.
type Enricher interface {
	UpsertEdge(ctx context.Context, name, address string)
	NeighborsOf(ctx context.Context, name string) []Neighborhood
}
