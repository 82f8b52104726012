package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// Memory is a mutex-guarded in-memory Store used by tests. It makes no
// persistence promises beyond the lifetime of the process.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: map[string]map[string]json.RawMessage{}}
}

func (m *Memory) GetAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.collections[collection]
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(records[id]))
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(data), nil
}

func (m *Memory) Put(_ context.Context, collection, id string, data json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = map[string]json.RawMessage{}
	}
	m.collections[collection][id] = clone(data)
	return nil
}

func (m *Memory) BulkPut(_ context.Context, collection string, records map[string]json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = map[string]json.RawMessage{}
	}
	for id, data := range records {
		m.collections[collection][id] = clone(data)
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections, collection)
	return nil
}

func (m *Memory) Close() error { return nil }

func clone(b json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
