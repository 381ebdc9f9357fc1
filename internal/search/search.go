package search

import (
	"strings"

	"github.com/nikbrunner/bmjump/internal/model"
)

// MaxResults caps the number of bookmarks a query can return.
const MaxResults = 20

// Filter returns the bookmarks of snapshot whose title or URL contains query,
// case-insensitively, in snapshot order and capped at MaxResults.
// A query that is empty after trimming matches nothing.
func Filter(snapshot []model.Bookmark, query string) []model.Bookmark {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	needle := strings.ToLower(query)
	var results []model.Bookmark
	for _, b := range snapshot {
		if !matches(b, needle) {
			continue
		}
		results = append(results, b)
		if len(results) == MaxResults {
			break
		}
	}
	return results
}

func matches(b model.Bookmark, needle string) bool {
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.URL), needle)
}

// MatchRange returns the byte range of the first case-insensitive
// occurrence of query in text, or (-1, -1) when there is none.
func MatchRange(text, query string) (start, end int) {
	if strings.TrimSpace(query) == "" {
		return -1, -1
	}
	lower := strings.ToLower(text)
	needle := strings.ToLower(query)
	// Lowercasing can change byte lengths for some runes; only trust
	// the index when the lengths line up.
	if len(lower) != len(text) {
		return -1, -1
	}
	i := strings.Index(lower, needle)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(needle)
}
