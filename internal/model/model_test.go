package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nikbrunner/bmjump/internal/model"
)

// Helper functions for pointers
func stringPtr(s string) *string { return &s }

func ids(bookmarks []model.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}

func TestNewBookmark_DefaultsTitleToURL(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{URL: "https://go.dev"})

	if b.Title != "https://go.dev" {
		t.Errorf("expected title to fall back to URL, got %q", b.Title)
	}
	if b.ID == "" {
		t.Error("expected generated ID")
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_GetFoldersInFolder(t *testing.T) {
	store := model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Development", ParentID: nil},
			{ID: "f2", Name: "React", ParentID: stringPtr("f1")},
			{ID: "f3", Name: "Design", ParentID: nil},
			{ID: "f4", Name: "Node", ParentID: stringPtr("f1")},
		},
	}

	if got := len(store.GetFoldersInFolder(nil)); got != 2 {
		t.Errorf("expected 2 root folders, got %d", got)
	}
	if got := len(store.GetFoldersInFolder(stringPtr("f1"))); got != 2 {
		t.Errorf("expected 2 nested folders in f1, got %d", got)
	}
	if got := len(store.GetFoldersInFolder(stringPtr("f3"))); got != 0 {
		t.Errorf("expected 0 folders in f3, got %d", got)
	}
}

func TestStore_UpdateBookmark(t *testing.T) {
	store := model.NewStore()
	store.AddBookmark(model.Bookmark{ID: "b1", Title: "Old", URL: "https://old.example"})

	if err := store.UpdateBookmark("b1", "New", "https://new.example"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := store.GetBookmarkByID("b1")
	if got.Title != "New" || got.URL != "https://new.example" {
		t.Errorf("bookmark not updated: %+v", got)
	}

	err := store.UpdateBookmark("missing", "x", "y")
	if !errors.Is(err, model.ErrBookmarkNotFound) {
		t.Errorf("expected ErrBookmarkNotFound, got %v", err)
	}
}

func TestStore_RemoveBookmark_PreservesOrder(t *testing.T) {
	store := model.NewStore()
	for _, id := range []string{"b1", "b2", "b3"} {
		store.AddBookmark(model.Bookmark{ID: id, Title: id, URL: "https://" + id})
	}

	if err := store.RemoveBookmark("b2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ids(store.Bookmarks)
	if len(got) != 2 || got[0] != "b1" || got[1] != "b3" {
		t.Errorf("expected [b1 b3], got %v", got)
	}

	if err := store.RemoveBookmark("b2"); !errors.Is(err, model.ErrBookmarkNotFound) {
		t.Errorf("expected ErrBookmarkNotFound on second delete, got %v", err)
	}
}

func TestStore_MarkVisited(t *testing.T) {
	store := model.NewStore()
	store.AddBookmark(model.Bookmark{ID: "b1", URL: "https://go.dev"})
	store.AddBookmark(model.Bookmark{ID: "b2", URL: "https://pkg.go.dev"})

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !store.MarkVisited("https://go.dev", at) {
		t.Fatal("expected a bookmark to be marked")
	}
	if v := store.GetBookmarkByID("b1").VisitedAt; v == nil || !v.Equal(at) {
		t.Errorf("expected VisitedAt %v, got %v", at, v)
	}
	if store.GetBookmarkByID("b2").VisitedAt != nil {
		t.Error("unrelated bookmark should not be marked")
	}
	if store.MarkVisited("https://nowhere.example", at) {
		t.Error("expected no match for unknown URL")
	}
}

func TestStore_Flatten(t *testing.T) {
	tests := []struct {
		name  string
		store model.Store
		want  []string
	}{
		{
			name: "root bookmarks then folders depth first",
			store: model.Store{
				Folders: []model.Folder{
					{ID: "bar", Name: "Bookmarks bar"},
					{ID: "dev", Name: "Dev", ParentID: stringPtr("bar")},
					{ID: "other", Name: "Other"},
				},
				Bookmarks: []model.Bookmark{
					{ID: "o1", Title: "Other 1", URL: "https://o1", FolderID: stringPtr("other")},
					{ID: "d1", Title: "Dev 1", URL: "https://d1", FolderID: stringPtr("dev")},
					{ID: "b1", Title: "Bar 1", URL: "https://b1", FolderID: stringPtr("bar")},
					{ID: "r1", Title: "Root 1", URL: "https://r1"},
				},
			},
			want: []string{"r1", "b1", "d1", "o1"},
		},
		{
			name: "skips entries without URL",
			store: model.Store{
				Bookmarks: []model.Bookmark{
					{ID: "b1", Title: "No URL"},
					{ID: "b2", Title: "Has URL", URL: "https://b2"},
				},
			},
			want: []string{"b2"},
		},
		{
			name: "orphans are appended",
			store: model.Store{
				Bookmarks: []model.Bookmark{
					{ID: "lost", Title: "Lost", URL: "https://lost", FolderID: stringPtr("gone")},
					{ID: "root", Title: "Root", URL: "https://root"},
				},
			},
			want: []string{"root", "lost"},
		},
		{
			name: "empty store",
			store: model.Store{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.store.Flatten())
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestStore_Flatten_DefaultsTitle(t *testing.T) {
	store := model.Store{
		Bookmarks: []model.Bookmark{{ID: "b1", Title: "  ", URL: "https://untitled.example"}},
	}

	flat := store.Flatten()
	if len(flat) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(flat))
	}
	if flat[0].Title != "https://untitled.example" {
		t.Errorf("expected title to default to URL, got %q", flat[0].Title)
	}
	if store.Bookmarks[0].Title != "  " {
		t.Error("Flatten must not mutate the store")
	}
}

// === Import Merge Tests ===

func TestStore_ImportMerge_SkipsDuplicateURLs(t *testing.T) {
	store := model.Store{
		Bookmarks: []model.Bookmark{
			{ID: "existing", Title: "Existing", URL: "https://example.com"},
		},
	}

	added, skipped := store.ImportMerge(nil, []model.Bookmark{
		{ID: "new1", Title: "Duplicate", URL: "https://example.com"},
		{ID: "new2", Title: "New Site", URL: "https://newsite.com"},
	})

	if added != 1 || skipped != 1 {
		t.Errorf("expected 1 added / 1 skipped, got %d / %d", added, skipped)
	}
	if len(store.Bookmarks) != 2 {
		t.Errorf("expected 2 bookmarks, got %d", len(store.Bookmarks))
	}
}

func TestStore_ImportMerge_ReusesFolderByName(t *testing.T) {
	existingFolderID := "existing-folder"
	store := model.Store{
		Folders: []model.Folder{
			{ID: existingFolderID, Name: "Development", ParentID: nil},
		},
	}

	store.ImportMerge(
		[]model.Folder{{ID: "imported-folder", Name: "Development"}},
		[]model.Bookmark{{ID: "b1", Title: "New", URL: "https://new.com", FolderID: stringPtr("imported-folder")}},
	)

	if len(store.Folders) != 1 {
		t.Errorf("expected 1 folder (reused), got %d", len(store.Folders))
	}
	if len(store.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(store.Bookmarks))
	}
	if fid := store.Bookmarks[0].FolderID; fid == nil || *fid != existingFolderID {
		t.Errorf("bookmark should be in existing folder %s, got %v", existingFolderID, fid)
	}
}
