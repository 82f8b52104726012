package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite is the durable, single-file store backend. All collections live
// in one generic records table keyed by (collection, id).
type SQLite struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens or creates the planner database at the given path.
func OpenSQLite(path string, log *zap.Logger) (*SQLite, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL keeps readers unblocked during debounced background writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	s := &SQLite{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM records WHERE collection = ? ORDER BY id", collection)
	if err != nil {
		return nil, fmt.Errorf("store: query %s: %w", collection, err)
	}
	defer rows.Close()
	var out []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("store: scan %s: %w", collection, err)
		}
		out = append(out, json.RawMessage(data))
	}
	return out, rows.Err()
}

func (s *SQLite) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM records WHERE collection = ? AND id = ?", collection, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(data), nil
}

func (s *SQLite) Put(ctx context.Context, collection, id string, data json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data`,
		collection, id, string(data))
	if err != nil {
		s.log.Error("put failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return &WriteError{Collection: collection, Err: err}
	}
	return nil
}

// BulkPut upserts all records inside one transaction. Per-collection
// atomicity here is a strictly stronger guarantee than the contract
// requires.
func (s *SQLite) BulkPut(ctx context.Context, collection string, records map[string]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &WriteError{Collection: collection, Err: err}
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data`)
	if err != nil {
		tx.Rollback()
		return &WriteError{Collection: collection, Err: err}
	}
	defer stmt.Close()
	for id, data := range records {
		if _, err := stmt.ExecContext(ctx, collection, id, string(data)); err != nil {
			tx.Rollback()
			s.log.Error("bulk put failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
			return &WriteError{Collection: collection, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &WriteError{Collection: collection, Err: err}
	}
	s.log.Debug("bulk put", zap.String("collection", collection), zap.Int("records", len(records)))
	return nil
}

func (s *SQLite) Clear(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE collection = ?", collection)
	if err != nil {
		return &WriteError{Collection: collection, Err: err}
	}
	return nil
}
