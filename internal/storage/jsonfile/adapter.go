package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kurihiro0119/course-site/internal/storage"
)

// jsonStorage keeps one <namespace>.json file per namespace in a directory
type jsonStorage struct {
	dir string
}

// NewJSONStorage creates a file backed cache rooted at dir. The directory
// is created on the first Save.
func NewJSONStorage(dir string) storage.Storage {
	return &jsonStorage{dir: dir}
}

func (s *jsonStorage) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

// Load reads the namespace file
func (s *jsonStorage) Load(_ context.Context, namespace string) (storage.Entries, error) {
	data, err := os.ReadFile(s.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Entries{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", namespace, err)
	}

	entries := storage.Entries{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse cache %s: %w", namespace, err)
	}
	return entries, nil
}

// Save overwrites the namespace file
func (s *jsonStorage) Save(_ context.Context, namespace string, entries storage.Entries) error {
	if entries == nil {
		entries = storage.Entries{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cache %s: %w", namespace, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path(namespace), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", namespace, err)
	}
	return nil
}

// Close is a no-op for file storage
func (s *jsonStorage) Close() error {
	return nil
}
