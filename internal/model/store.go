package model

import (
	"errors"
	"strings"
	"time"
)

// ErrBookmarkNotFound is returned when a mutation targets an unknown bookmark ID.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// Store holds all bookmarks and folders.
type Store struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
	}
}

// GetFoldersInFolder returns folders with the given parent ID.
// Pass nil for root level folders.
func (s *Store) GetFoldersInFolder(parentID *string) []Folder {
	var result []Folder
	for _, f := range s.Folders {
		if ptrEqual(f.ParentID, parentID) {
			result = append(result, f)
		}
	}
	return result
}

// GetBookmarksInFolder returns bookmarks in the given folder.
// Pass nil for root level bookmarks.
func (s *Store) GetBookmarksInFolder(folderID *string) []Bookmark {
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if ptrEqual(b.FolderID, folderID) {
			result = append(result, b)
		}
	}
	return result
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// AddBookmark appends a bookmark to the store.
func (s *Store) AddBookmark(b Bookmark) {
	s.Bookmarks = append(s.Bookmarks, b)
}

// UpdateBookmark replaces the title and URL of the bookmark with the given ID.
func (s *Store) UpdateBookmark(id, title, url string) error {
	b := s.GetBookmarkByID(id)
	if b == nil {
		return ErrBookmarkNotFound
	}
	b.Title = title
	b.URL = url
	return nil
}

// RemoveBookmark deletes the bookmark with the given ID, keeping the order
// of the remaining bookmarks.
func (s *Store) RemoveBookmark(id string) error {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return nil
		}
	}
	return ErrBookmarkNotFound
}

// MarkVisited sets VisitedAt on every bookmark pointing at url.
// Returns true if at least one bookmark was touched.
func (s *Store) MarkVisited(url string, at time.Time) bool {
	touched := false
	for i := range s.Bookmarks {
		if s.Bookmarks[i].URL == url {
			t := at
			s.Bookmarks[i].VisitedAt = &t
			touched = true
		}
	}
	return touched
}

// HasBookmarkURL reports whether any bookmark already points at url.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// ImportMerge adds imported folders and bookmarks to the store.
// Folders with the same name under the same parent are reused, and bookmarks
// whose URL already exists are skipped.
func (s *Store) ImportMerge(folders []Folder, bookmarks []Bookmark) (added, skipped int) {
	// imported folder ID -> ID in this store
	remap := make(map[string]string, len(folders))

	for _, f := range folders {
		parentID := f.ParentID
		if parentID != nil {
			if mapped, ok := remap[*parentID]; ok {
				p := mapped
				parentID = &p
			}
		}

		if existing := s.findFolder(f.Name, parentID); existing != nil {
			remap[f.ID] = existing.ID
			continue
		}

		f.ParentID = parentID
		s.Folders = append(s.Folders, f)
		remap[f.ID] = f.ID
	}

	for _, b := range bookmarks {
		if s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if b.FolderID != nil {
			if mapped, ok := remap[*b.FolderID]; ok {
				id := mapped
				b.FolderID = &id
			}
		}
		s.Bookmarks = append(s.Bookmarks, b)
		added++
	}

	return added, skipped
}

// Flatten walks the folder tree depth-first and returns every bookmark in
// traversal order: a folder's bookmarks first, then its subfolders.
// Bookmarks without a URL are skipped and blank titles fall back to the URL.
// Bookmarks in unknown folders are appended at the end.
func (s *Store) Flatten() []Bookmark {
	result := make([]Bookmark, 0, len(s.Bookmarks))
	seen := make(map[string]bool, len(s.Folders))
	emitted := make(map[string]bool, len(s.Bookmarks))

	emit := func(b Bookmark) {
		if strings.TrimSpace(b.URL) == "" {
			return
		}
		if strings.TrimSpace(b.Title) == "" {
			b.Title = b.URL
		}
		emitted[b.ID] = true
		result = append(result, b)
	}

	var walk func(folderID *string)
	walk = func(folderID *string) {
		for _, b := range s.GetBookmarksInFolder(folderID) {
			emit(b)
		}
		for _, f := range s.GetFoldersInFolder(folderID) {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			id := f.ID
			walk(&id)
		}
	}
	walk(nil)

	for _, b := range s.Bookmarks {
		if !emitted[b.ID] && b.FolderID != nil && !seen[*b.FolderID] {
			emit(b)
		}
	}

	return result
}

func (s *Store) findFolder(name string, parentID *string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].Name == name && ptrEqual(s.Folders[i].ParentID, parentID) {
			return &s.Folders[i]
		}
	}
	return nil
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
