package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory DocumentStore with the same merge semantics as
// the persistent backends. Used in tests and available as a throwaway dev
// backend.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string]map[string]json.RawMessage),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return ErrNotFound
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *MemoryStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]map[string]json.RawMessage)
	}
	doc := s.docs[collection][id]
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}

	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		doc[k] = raw
	}
	s.docs[collection][id] = doc
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[collection], id)
	return nil
}
