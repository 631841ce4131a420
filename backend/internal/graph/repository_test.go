package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	apperrors "name-address-db/backend/pkg/errors"
)

// Integration tests require a running Neo4j instance
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables
func TestRepository_UpsertEdgeAndNeighbors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not available: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)
	suffix := time.Now().Format("20060102150405.000000")
	alice, carol, address := "Alice "+suffix, "Carol "+suffix, "1 Main St "+suffix

	defer cleanup(ctx, driver, []string{alice, carol}, address)

	// Alone at the address: no neighbors row
	if err := repo.UpsertEdge(ctx, alice, address); err != nil {
		t.Fatalf("UpsertEdge failed: %v", err)
	}
	got, err := repo.NeighborsOf(ctx, alice)
	if err != nil {
		t.Fatalf("NeighborsOf failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no neighborhoods, got %v", got)
	}

	// Upserting twice must not duplicate the edge
	for _, name := range []string{carol, carol, alice} {
		if err := repo.UpsertEdge(ctx, name, address); err != nil {
			t.Fatalf("UpsertEdge failed: %v", err)
		}
	}

	got, err = repo.NeighborsOf(ctx, alice)
	if err != nil {
		t.Fatalf("NeighborsOf failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 neighborhood, got %d", len(got))
	}
	if got[0].Address != address {
		t.Errorf("Expected address %q, got %q", address, got[0].Address)
	}
	if len(got[0].Neighbors) != 1 || got[0].Neighbors[0] != carol {
		t.Errorf("Expected neighbors [%s], got %v", carol, got[0].Neighbors)
	}
}

func TestRepository_NeighborsOf_UnknownPerson(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not available: %v", err)
	}
	defer driver.Close(ctx)

	got, err := NewRepository(driver).NeighborsOf(ctx, "nobody-"+time.Now().Format("150405.000000"))
	if err != nil {
		t.Fatalf("NeighborsOf failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestRepository_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver, err := unreachableDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver)

	if err := repo.UpsertEdge(ctx, "Alice", "1 Main St"); !apperrors.IsErrorType(err, apperrors.ErrorTypeGraph) {
		t.Errorf("Expected graph error from UpsertEdge, got %v", err)
	}
	if _, err := repo.NeighborsOf(ctx, "Alice"); !apperrors.IsErrorType(err, apperrors.ErrorTypeGraph) {
		t.Errorf("Expected graph error from NeighborsOf, got %v", err)
	}
	if err := repo.VerifyConnectivity(ctx, "bolt://127.0.0.1:1"); !apperrors.IsErrorType(err, apperrors.ErrorTypeGraph) {
		t.Errorf("Expected graph error from VerifyConnectivity, got %v", err)
	}
}

func TestParseNeighborhoods(t *testing.T) {
	rows := []*neo4j.Record{
		{
			Keys:   []string{"address", "neighbors"},
			Values: []any{"1 Main St", []any{"Carol", "Dave"}},
		},
		{
			Keys:   []string{"address", "neighbors"},
			Values: []any{"9 Elm Rd", nil},
		},
	}

	got := parseNeighborhoods(rows)
	if len(got) != 2 {
		t.Fatalf("Expected 2 neighborhoods, got %d", len(got))
	}
	if got[0].Address != "1 Main St" || len(got[0].Neighbors) != 2 || got[0].Neighbors[1] != "Dave" {
		t.Errorf("Unexpected first neighborhood: %+v", got[0])
	}
	if got[1].Neighbors == nil || len(got[1].Neighbors) != 0 {
		t.Errorf("Expected empty non-nil neighbors, got %#v", got[1].Neighbors)
	}

	if empty := parseNeighborhoods(nil); empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", empty)
	}
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := getEnvOr("NEO4J_URI", "bolt://localhost:7687")
	user := getEnvOr("NEO4J_USER", "neo4j")
	password := getEnvOr("NEO4J_PASSWORD", "password")

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

// unreachableDriver points at a port nothing listens on
func unreachableDriver() (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(
		"bolt://127.0.0.1:1",
		neo4j.BasicAuth("neo4j", "password", ""),
		func(c *config.Config) {
			c.SocketConnectTimeout = time.Second
			c.ConnectionAcquisitionTimeout = 2 * time.Second
		},
	)
}

func cleanup(ctx context.Context, driver neo4j.DriverWithContext, names []string, address string) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	_, _ = session.Run(ctx, "MATCH (p:Person) WHERE p.name IN $names DETACH DELETE p", map[string]interface{}{"names": names})
	_, _ = session.Run(ctx, "MATCH (a:Address {location: $address}) DETACH DELETE a", map[string]interface{}{"address": address})
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
