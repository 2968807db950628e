package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MemoryStore keeps collections in process. It backs tests and local runs
// without a remote store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
	closed      bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Record)}
}

// LoadMemoryStore reads a JSON file shaped like a realtime database export:
// {"products": {"<key>": {...}, ...}}.
func LoadMemoryStore(file string) (*MemoryStore, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var tree map[string]map[string]Record
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", file, err)
	}
	s := NewMemoryStore()
	for coll, recs := range tree {
		for key, rec := range recs {
			if err := s.PutRecord(context.Background(), Join(coll, key), rec); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *MemoryStore) FetchCollection(ctx context.Context, path string) (map[string]Record, error) {
	if err := ValidateCollection(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fetchErr("fetch collection", path, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fetchErr("fetch collection", path, errClosed)
	}
	out := make(map[string]Record, len(s.collections[path]))
	for k, rec := range s.collections[path] {
		out[k] = rec.Clone()
	}
	return out, nil
}

func (s *MemoryStore) FetchRecord(ctx context.Context, path string) (Record, error) {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fetchErr("fetch record", path, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fetchErr("fetch record", path, errClosed)
	}
	rec, ok := s.collections[coll][key]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) PutRecord(ctx context.Context, path string, rec Record) error {
	coll, key, err := SplitRecordPath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	if s.collections[coll] == nil {
		s.collections[coll] = make(map[string]Record)
	}
	s.collections[coll][key] = rec.Clone()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
