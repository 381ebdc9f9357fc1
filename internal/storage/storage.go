package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/bmjump/internal/model"
)

// Backend names accepted by Open.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns an empty store if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	// Ensure slices are not nil
	if store.Folders == nil {
		store.Folders = []model.Folder{}
	}
	if store.Bookmarks == nil {
		store.Bookmarks = []model.Bookmark{}
	}

	return &store, nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	// Write to a sibling temp file first so a crash never leaves half a store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Open opens the storage backend named by backend at path.
// BackendAuto picks SQLite for a ".db" path and JSON otherwise.
func Open(backend, path string) (Storage, error) {
	if backend == "" || backend == BackendAuto {
		backend = BackendJSON
		if filepath.Ext(path) == ".db" {
			backend = BackendSQLite
		}
	}

	switch backend {
	case BackendJSON:
		return NewJSONStorage(path), nil
	case BackendSQLite:
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
