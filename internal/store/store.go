// Package store provides the durable local key-value store backing the
// planner. Each collection is logically a mapping from record id to a
// JSON document; typed access goes through the generic helpers below.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names. Singleton collections hold exactly one record under
// a fixed id.
const (
	Courses       = "courses"
	Notes         = "notes"
	Progress      = "progress"
	Roadmaps      = "roadmaps"
	Presentations = "presentations"
	UserData      = "user_data"
)

// Fixed ids of the singleton records.
const (
	ProgressID = "progress"
	RoadmapID  = "current"
	SettingsID = "settings"
)

// ErrNotFound is returned by Get for a missing record.
var ErrNotFound = errors.New("store: record not found")

// WriteError wraps a failed write (e.g. quota or I/O failure) with the
// collection it targeted, so callers can tell the user which data may
// not be durable.
type WriteError struct {
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: write %s: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store is the collection-oriented key-value contract. Both backends
// (SQLite for durability, memory for tests) satisfy it. No transactional
// isolation is promised across collections: a full-state save is a
// sequence of independent Clear+BulkPut steps.
type Store interface {
	// GetAll returns every record in the collection, ordered by id.
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	// Get returns one record by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	// Put upserts one record by id.
	Put(ctx context.Context, collection, id string, data json.RawMessage) error
	// BulkPut upserts many records at once.
	BulkPut(ctx context.Context, collection string, records map[string]json.RawMessage) error
	// Clear empties a collection. In normal flows it is always followed
	// by a BulkPut that refills the collection.
	Clear(ctx context.Context, collection string) error
	Close() error
}

// All decodes every record of a collection into T.
func All[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raws, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("store: decode %s record: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// One decodes a single record by id. The second return is false when the
// record does not exist.
func One[T any](ctx context.Context, s Store, collection, id string) (T, bool, error) {
	var v T
	raw, err := s.Get(ctx, collection, id)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("store: decode %s/%s: %w", collection, id, err)
	}
	return v, true, nil
}

// PutOne encodes and upserts a single record.
func PutOne[T any](ctx context.Context, s Store, collection, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s/%s: %w", collection, id, err)
	}
	return s.Put(ctx, collection, id, data)
}

// ReplaceAll swaps a collection's contents for the given items, the
// canonical Clear+BulkPut pairing. id extracts each item's record id.
func ReplaceAll[T any](ctx context.Context, s Store, collection string, items []T, id func(T) string) error {
	records := make(map[string]json.RawMessage, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("store: encode %s record: %w", collection, err)
		}
		records[id(item)] = data
	}
	if err := s.Clear(ctx, collection); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return s.BulkPut(ctx, collection, records)
}
