package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bookmarks.json")

	store := &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Development", ParentID: nil},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b1", Title: "Test", URL: "https://example.com"},
		},
	}

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
	if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if len(loaded.Folders) != 1 {
		t.Errorf("expected 1 folder, got %d", len(loaded.Folders))
	}
	if len(loaded.Bookmarks) != 1 {
		t.Errorf("expected 1 bookmark, got %d", len(loaded.Bookmarks))
	}
	if loaded.Folders[0].Name != "Development" {
		t.Errorf("expected folder name 'Development', got %q", loaded.Folders[0].Name)
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nonexistent.json"))
	store, err := s.Load()

	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(store.Folders) != 0 || len(store.Bookmarks) != 0 {
		t.Error("expected empty store for missing file")
	}
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "bookmarks.json")

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(model.NewStore()); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created in nested directory")
	}
}

func TestJSONStorage_PreservesOrder(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bookmarks.json")

	store := &model.Store{
		Bookmarks: []model.Bookmark{
			{ID: "b3", Title: "Third", URL: "https://3"},
			{ID: "b1", Title: "First", URL: "https://1"},
			{ID: "b2", Title: "Second", URL: "https://2"},
		},
	}

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	for i, want := range []string{"b3", "b1", "b2"} {
		if loaded.Bookmarks[i].ID != want {
			t.Errorf("order not preserved: expected %q at position %d, got %q",
				want, i, loaded.Bookmarks[i].ID)
		}
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		path    string
		wantErr bool
		sqlite  bool
	}{
		{"auto json", storage.BackendAuto, filepath.Join(dir, "a.json"), false, false},
		{"auto sqlite by extension", storage.BackendAuto, filepath.Join(dir, "a.db"), false, true},
		{"empty means auto", "", filepath.Join(dir, "b.json"), false, false},
		{"explicit sqlite", storage.BackendSQLite, filepath.Join(dir, "c.sqlite"), false, true},
		{"unknown backend", "postgres", filepath.Join(dir, "d"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.Open(tt.backend, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sq, isSQLite := s.(*storage.SQLiteStorage)
			if isSQLite != tt.sqlite {
				t.Errorf("expected sqlite=%v, got %T", tt.sqlite, s)
			}
			if isSQLite {
				sq.Close()
			}
		})
	}
}
