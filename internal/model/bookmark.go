package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	FolderID  *string    `json:"folderId,omitempty"` // nil = root level
	CreatedAt time.Time  `json:"createdAt"`
	VisitedAt *time.Time `json:"visitedAt,omitempty"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title    string
	URL      string
	FolderID *string
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
// An empty title falls back to the URL.
func NewBookmark(params NewBookmarkParams) Bookmark {
	title := params.Title
	if title == "" {
		title = params.URL
	}

	return Bookmark{
		ID:        GenerateUUID(),
		Title:     title,
		URL:       params.URL,
		FolderID:  params.FolderID,
		CreatedAt: time.Now(),
	}
}

// DisplayTitle returns the title, or the URL when the title is blank.
func (b Bookmark) DisplayTitle() string {
	if b.Title == "" {
		return b.URL
	}
	return b.Title
}
