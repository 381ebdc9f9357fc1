// Package exporter writes the gateway's store as a Netscape bookmark file.
package exporter

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmjump/internal/model"
)

const header = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// DefaultExportPath returns ~/Downloads/bookmarks-export-YYYY-MM-DD.html.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// WriteHTML writes store to w in Netscape bookmark format.
func WriteHTML(w io.Writer, store *model.Store) error {
	ew := &errWriter{w: w}
	io.WriteString(ew, header)
	writeLevel(ew, store, nil, 1, map[string]bool{})
	io.WriteString(ew, "</DL><p>\n")
	return ew.err
}

// ExportHTML is WriteHTML into a string.
func ExportHTML(store *model.Store) string {
	var b strings.Builder
	_ = WriteHTML(&b, store)
	return b.String()
}

func writeLevel(w io.Writer, store *model.Store, parentID *string, depth int, done map[string]bool) {
	indent := strings.Repeat("    ", depth)

	for _, f := range store.GetFoldersInFolder(parentID) {
		if done[f.ID] {
			continue
		}
		done[f.ID] = true

		fmt.Fprintf(w, "%s<DT><H3>%s</H3>\n%s<DL><p>\n", indent, html.EscapeString(f.Name), indent)
		id := f.ID
		writeLevel(w, store, &id, depth+1, done)
		fmt.Fprintf(w, "%s</DL><p>\n", indent)
	}

	for _, b := range store.GetBookmarksInFolder(parentID) {
		attrs := fmt.Sprintf(" ADD_DATE=\"%d\"", b.CreatedAt.Unix())
		if b.VisitedAt != nil {
			attrs += fmt.Sprintf(" LAST_VISIT=\"%d\"", b.VisitedAt.Unix())
		}
		fmt.Fprintf(w, "%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			indent, html.EscapeString(b.URL), attrs, html.EscapeString(b.DisplayTitle()))
	}
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
