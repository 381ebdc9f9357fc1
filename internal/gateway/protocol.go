package gateway

import (
	"errors"

	"github.com/nikbrunner/bmjump/internal/model"
)

// Actions understood by the server.
const (
	ActionList   = "listBookmarks"
	ActionEdit   = "editBookmark"
	ActionDelete = "deleteBookmark"
	ActionOpen   = "openTab"
)

const (
	codeNotFound       = "not_found"
	codeInvalidRequest = "invalid_request"
	codeUnknownAction  = "unknown_action"
	codeInternal       = "internal"
)

// Request is one JSON line sent by the client.
type Request struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Response is one JSON line sent back by the server.
type Response struct {
	Success   bool    `json:"success"`
	Error     string  `json:"error,omitempty"`
	Code      string  `json:"code,omitempty"`
	Bookmarks []Entry `json:"bookmarks,omitempty"`
}

// Entry is the wire form of a bookmark.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func toEntries(bookmarks []model.Bookmark) []Entry {
	entries := make([]Entry, len(bookmarks))
	for i, b := range bookmarks {
		entries[i] = Entry{ID: b.ID, Title: b.Title, URL: b.URL}
	}
	return entries
}

func fromEntries(entries []Entry) []model.Bookmark {
	bookmarks := make([]model.Bookmark, len(entries))
	for i, e := range entries {
		bookmarks[i] = model.Bookmark{ID: e.ID, Title: e.Title, URL: e.URL}
	}
	return bookmarks
}

func failure(err error) Response {
	code := codeInternal
	switch {
	case errors.Is(err, ErrNotFound):
		code = codeNotFound
	case errors.Is(err, ErrInvalidRequest):
		code = codeInvalidRequest
	case errors.Is(err, ErrUnknownAction):
		code = codeUnknownAction
	}
	return Response{Success: false, Error: err.Error(), Code: code}
}
