package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"name-address-db/backend/internal/records"
	apperrors "name-address-db/backend/pkg/errors"
	"name-address-db/backend/pkg/logger"
)

var _ records.Store = (*SQLiteStore)(nil)

// SQLiteStore implements records.Store on a single-file SQLite database
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// NewSQLite opens (creating if needed) the database at dbPath and
// bootstraps the records table
func NewSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStoreConnectionFailed("sqlite", err)
	}

	// Pragmas are per connection, so keep a single one
	db.SetMaxOpenConns(1)

	// Verify connectivity
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStoreConnectionFailed("sqlite", err)
	}

	for _, pragma := range allPragmas() {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	for _, stmt := range allSchemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	s := &SQLiteStore{
		db:     db,
		path:   dbPath,
		logger: logger.Get(),
	}
	s.logger.Info("SQLite store opened", zap.String("path", dbPath))

	return s, nil
}

// Close closes the SQLite connection
func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// AddRecord inserts a row for name/address and reports whether a row for
// name existed before the insert
func (s *SQLiteStore) AddRecord(ctx context.Context, name, address string) (bool, error) {
	existed := true
	var existing int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM records WHERE name = ? LIMIT 1`, name).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		existed = false
	} else if err != nil {
		return false, apperrors.NewStoreOperationFailed("lookup", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO records (name, address) VALUES (?, ?)`, name, address)
	if err != nil {
		return false, apperrors.NewStoreOperationFailed("insert", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		s.logger.Debug("Record inserted",
			zap.Int64("id", id),
			zap.String("name", name),
			zap.Bool("existed", existed),
		)
	}

	return existed, nil
}

// FindByName returns all rows whose name matches exactly, in insertion order
func (s *SQLiteStore) FindByName(ctx context.Context, name string) ([]records.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, address FROM records WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, apperrors.NewStoreOperationFailed("find", err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		var (
			id  int64
			rec records.Record
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Address); err != nil {
			return nil, apperrors.NewStoreOperationFailed("scan", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreOperationFailed("find", err)
	}

	return out, nil
}
