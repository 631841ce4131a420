package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "name-address-db/backend/pkg/errors"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	s, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s
}

func TestSQLiteStore_AddAndFind(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	existed, err := s.AddRecord(ctx, "Alice", "1 Main St")
	require.NoError(t, err)
	assert.False(t, existed)

	existed, err = s.AddRecord(ctx, "Bob", "2 High St")
	require.NoError(t, err)
	assert.False(t, existed)

	found, err := s.FindByName(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Alice", found[0].Name)
	assert.Equal(t, "1 Main St", found[0].Address)
	assert.Equal(t, "1", found[0].ID)
	assert.Equal(t, "records.db", filepath.Base(s.Path()))
}

func TestSQLiteStore_DuplicatesAreAppended(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.AddRecord(ctx, "Alice", "1 Main St")
	require.NoError(t, err)
	existed, err := s.AddRecord(ctx, "Alice", "1 Main St")
	require.NoError(t, err)
	assert.True(t, existed)
	existed, err = s.AddRecord(ctx, "Alice", "9 Elm Rd")
	require.NoError(t, err)
	assert.True(t, existed)

	found, err := s.FindByName(ctx, "Alice")
	require.NoError(t, err)

	addresses := make([]string, 0, len(found))
	for _, r := range found {
		addresses = append(addresses, r.Address)
	}
	assert.Equal(t, []string{"1 Main St", "1 Main St", "9 Elm Rd"}, addresses)
}

func TestSQLiteStore_ExactNameMatch(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.AddRecord(ctx, "Alice", "1 Main St")
	require.NoError(t, err)

	for _, name := range []string{"alice", "Alic", "Alice ", "%"} {
		found, err := s.FindByName(ctx, name)
		require.NoError(t, err)
		assert.Empty(t, found, name)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	s, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	_, err = s.AddRecord(ctx, "Alice", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	reopened, err := NewSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	existed, err := reopened.AddRecord(ctx, "Alice", "2 High St")
	require.NoError(t, err)
	assert.True(t, existed)
}

func TestSQLiteStore_ConcurrentAdds(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddRecord(ctx, "Alice", "1 Main St")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := s.FindByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Len(t, found, 20)
}

func TestSQLiteStore_ClosedStoreFails(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	_, err = s.AddRecord(ctx, "Alice", "1 Main St")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))

	_, err = s.FindByName(ctx, "Alice")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStore))
}
