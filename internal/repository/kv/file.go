package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"nalevel/internal/domain"
	"nalevel/internal/domain/repositories"
)

// FileStore keeps every key in one JSON document on disk.
// The document is read once on open and rewritten after each Apply.
type FileStore struct {
	FilePath string
	mu       sync.RWMutex
	data     map[string]json.RawMessage
}

// NewFileStore opens (or creates) the JSON document at filePath
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		FilePath: filePath,
		data:     make(map[string]json.RawMessage),
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	if err := s.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", filePath, err)
	}

	return s, nil
}

var _ repositories.KeyValueStore = (*FileStore)(nil)

func (s *FileStore) loadFromFile() error {
	file, err := os.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	if len(file) == 0 {
		return nil
	}
	return json.Unmarshal(file, &s.data)
}

// saveToFile writes through a temp file so a crash never leaves a truncated document
func (s *FileStore) saveToFile(data map[string]json.RawMessage) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.FilePath)
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Apply stages the mutations on a copy and only swaps it in once the file is written
func (s *FileStore) Apply(ctx context.Context, mutations ...repositories.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]json.RawMessage, len(s.data)+len(mutations))
	for k, v := range s.data {
		next[k] = v
	}
	for _, m := range mutations {
		if m.Delete {
			delete(next, m.Key)
			continue
		}
		if !json.Valid(m.Value) {
			return fmt.Errorf("key %s: value is not valid JSON", m.Key)
		}
		next[m.Key] = append(json.RawMessage(nil), m.Value...)
	}

	if err := s.saveToFile(next); err != nil {
		return fmt.Errorf("save %s: %w", s.FilePath, err)
	}
	s.data = next
	return nil
}

func (s *FileStore) Close() error { return nil }
