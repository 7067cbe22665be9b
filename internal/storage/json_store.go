package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore is a thread-safe file-backed DocumentStore used when no Mongo
// URI is configured. Documents are kept as collection -> id -> top-level
// field -> raw JSON, so merges have the same field-replacement semantics as
// the Mongo backend.
type JSONStore struct {
	mu       sync.RWMutex
	filePath string
	docs     map[string]map[string]map[string]json.RawMessage
}

// NewJSONStore creates a new JSON store at the specified path and loads any
// existing data.
func NewJSONStore(dataDir, filename string) (*JSONStore, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	s := &JSONStore{
		filePath: filepath.Join(dataDir, filename),
		docs:     make(map[string]map[string]map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet, not an error
			return nil
		}
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(&s.docs)
}

func (s *JSONStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
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

func (s *JSONStore) Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error {
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

	return s.save()
}

func (s *JSONStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[collection], id)
	return s.save()
}

// save writes the full document map. Caller must hold the write lock.
func (s *JSONStore) save() error {
	// Write to temp file first, then rename (atomic operation)
	tempFile := s.filePath + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.docs); err != nil {
		file.Close()
		os.Remove(tempFile)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	// Atomic rename
	return os.Rename(tempFile, s.filePath)
}
