package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"

	"github.com/julianstephens/potato/internal/logger"
)

// JSONStore keeps every record in one JSON object on disk.
type JSONStore struct {
	path string
	data map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.data = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	data := make(map[string]json.RawMessage)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			// Keep the unreadable bytes aside and continue with an empty store.
			corrupt := s.path + ".corrupt"
			if werr := os.WriteFile(corrupt, raw, 0600); werr != nil {
				return fmt.Errorf("failed to parse storage: %w", err)
			}
			logger.Warn("Storage file is corrupt, starting empty", "path", s.path, "saved", corrupt, "error", err)
			data = make(map[string]json.RawMessage)
		}
	}
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling temp file first so a crash never truncates the store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key. Values that are not valid JSON are rejected
// because the file itself is one JSON document.
func (s *JSONStore) Set(key string, value []byte) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.data[key] = append(json.RawMessage(nil), value...)
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.data == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.data == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns the path to the underlying storage file.
//
// Running multiple potato processes that share the same file at the same time
// is not supported and may lead to lost writes.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
