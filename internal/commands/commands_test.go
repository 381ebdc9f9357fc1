package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmjump/internal/commands"
	"github.com/nikbrunner/bmjump/internal/config"
	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/storage"
)

// setup writes a config whose store and log live in a temp dir and returns
// the config path and the store path.
func setup(t *testing.T, bookmarks ...model.Bookmark) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendJSON
	cfg.Storage.Path = filepath.Join(dir, "bookmarks.json")
	cfg.Log.File = filepath.Join(dir, "bmjump.log")
	cfgPath := filepath.Join(dir, "config.json")
	assert.NilError(t, config.Save(cfgPath, &cfg))

	store := model.NewStore()
	for _, b := range bookmarks {
		store.AddBookmark(b)
	}
	assert.NilError(t, storage.NewJSONStorage(cfg.Storage.Path).Save(store))

	return cfgPath, cfg.Storage.Path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_FiltersByQuery(t *testing.T) {
	cfgPath, _ := setup(t,
		model.Bookmark{ID: "1", Title: "GitHub", URL: "https://github.com"},
		model.Bookmark{ID: "2", Title: "Go Docs", URL: "https://go.dev/doc"},
		model.Bookmark{ID: "3", Title: "GitLab", URL: "https://gitlab.com"},
	)

	out, err := run(t, "--config", cfgPath, "list", "git")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "https://github.com"))
	assert.Check(t, is.Contains(out, "https://gitlab.com"))
	assert.Check(t, !strings.Contains(out, "go.dev"), out)
	assert.Check(t, is.Contains(out, "2 of 3"))
}

func TestList_EmptyQueryPrintsEverything(t *testing.T) {
	cfgPath, _ := setup(t,
		model.Bookmark{ID: "1", Title: "GitHub", URL: "https://github.com"},
		model.Bookmark{ID: "2", Title: "Go Docs", URL: "https://go.dev/doc"},
	)

	out, err := run(t, "--config", cfgPath, "list")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "2 of 2"))
}

func TestList_NoMatches(t *testing.T) {
	cfgPath, _ := setup(t, model.Bookmark{ID: "1", Title: "GitHub", URL: "https://github.com"})

	out, err := run(t, "--config", cfgPath, "list", "zzz")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "No matches in 1 bookmarks"))
}

func TestImport_MergesIntoStore(t *testing.T) {
	cfgPath, storePath := setup(t, model.Bookmark{ID: "1", Title: "GitHub", URL: "https://github.com"})

	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://github.com">GitHub</A>
        <DT><A HREF="https://go.dev">Go</A>
    </DL><p>
</DL><p>
`
	file := filepath.Join(t.TempDir(), "bookmarks.html")
	assert.NilError(t, os.WriteFile(file, []byte(html), 0644))

	out, err := run(t, "--config", cfgPath, "import", file)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Imported 1 bookmarks, 1 folders (1 duplicates skipped)"))

	store, err := storage.NewJSONStorage(storePath).Load()
	assert.NilError(t, err)
	assert.Check(t, is.Len(store.Bookmarks, 2))
	assert.Check(t, is.Len(store.Folders, 1))
}

func TestImport_RequiresFile(t *testing.T) {
	cfgPath, _ := setup(t)

	_, err := run(t, "--config", cfgPath, "import")
	assert.Check(t, err != nil)

	_, err = run(t, "--config", cfgPath, "import", filepath.Join(t.TempDir(), "missing.html"))
	assert.Check(t, err != nil)
}

func TestExport_WritesHTML(t *testing.T) {
	cfgPath, _ := setup(t, model.Bookmark{ID: "1", Title: "Go", URL: "https://go.dev"})
	target := filepath.Join(t.TempDir(), "out.html")

	out, err := run(t, "--config", cfgPath, "export", target)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Exported 1 bookmarks, 0 folders to "+target))

	data, err := os.ReadFile(target)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), `HREF="https://go.dev"`))
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	assert.NilError(t, os.WriteFile(cfgPath, []byte(`{"storage":{"backend":"mongo"}}`), 0644))

	_, err := run(t, "--config", cfgPath, "list")
	assert.ErrorContains(t, err, "backend")
}
