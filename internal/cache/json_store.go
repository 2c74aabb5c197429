package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type fileStore struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore is a single-file cache provider. The whole map is rewritten on
// every Set, so the file is always a complete snapshot of the mirror.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("cache already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Values:  make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("cache not initialized, run 'daybook init' first")
		}
		return fmt.Errorf("failed to read cache: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse cache: %w", err)
	}

	if s.store.Values == nil {
		s.store.Values = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	if s.store == nil {
		return "", false, fmt.Errorf("cache not loaded")
	}
	v, ok := s.store.Values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	if s.store == nil {
		return fmt.Errorf("cache not loaded")
	}
	s.store.Values[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.store == nil {
		return fmt.Errorf("cache not loaded")
	}
	delete(s.store.Values, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("cache not loaded")
	}
	keys := make([]string, 0, len(s.store.Values))
	for k := range s.store.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) Path() string {
	return s.path
}
