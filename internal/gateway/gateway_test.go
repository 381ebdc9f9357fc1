package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bmjump/internal/model"
)

// memStorage is an in-memory storage.Storage that round-trips through copies
// so callers can't share slices with it.
type memStorage struct {
	mu      sync.Mutex
	store   model.Store
	saves   int
	loadErr error
	saveErr error
}

func (m *memStorage) Load() (*model.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return &model.Store{
		Folders:   append([]model.Folder{}, m.store.Folders...),
		Bookmarks: append([]model.Bookmark{}, m.store.Bookmarks...),
	}, nil
}

func (m *memStorage) Save(store *model.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.store = model.Store{
		Folders:   append([]model.Folder{}, store.Folders...),
		Bookmarks: append([]model.Bookmark{}, store.Bookmarks...),
	}
	m.saves++
	return nil
}

func stringPtr(s string) *string { return &s }

func newTestStorage() *memStorage {
	return &memStorage{store: model.Store{
		Folders: []model.Folder{{ID: "f1", Name: "Dev"}},
		Bookmarks: []model.Bookmark{
			{ID: "2", Title: "Go", URL: "https://go.dev", FolderID: stringPtr("f1")},
			{ID: "1", Title: "GitHub", URL: "https://github.com"},
		},
	}}
}

type recordingOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (r *recordingOpener) open(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return r.err
}

func (r *recordingOpener) opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

func newTestLocal(st *memStorage, opener *recordingOpener) *Local {
	l := NewLocal(LocalParams{Storage: st, Opener: opener.open})
	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func listIDs(bookmarks []model.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}

func TestLocal_ListFlattens(t *testing.T) {
	l := newTestLocal(newTestStorage(), &recordingOpener{})

	bookmarks, err := l.List(context.Background())
	assert.NilError(t, err)
	assert.DeepEqual(t, listIDs(bookmarks), []string{"1", "2"})
}

func TestLocal_ListLoadError(t *testing.T) {
	st := newTestStorage()
	st.loadErr = errors.New("disk gone")
	l := newTestLocal(st, &recordingOpener{})

	_, err := l.List(context.Background())
	assert.ErrorContains(t, err, "disk gone")
}

func TestLocal_Update(t *testing.T) {
	st := newTestStorage()
	l := newTestLocal(st, &recordingOpener{})

	err := l.Update(context.Background(), "1", "  GitHub Home ", "https://github.com/home")
	assert.NilError(t, err)

	b := st.store.GetBookmarkByID("1")
	assert.Check(t, is.Equal(b.Title, "GitHub Home"))
	assert.Check(t, is.Equal(b.URL, "https://github.com/home"))
	assert.Check(t, is.Equal(st.saves, 1))
}

func TestLocal_UpdateErrors(t *testing.T) {
	tests := []struct {
		name      string
		id, title string
		url       string
		wantErr   error
	}{
		{"blank title", "1", "  ", "https://x", ErrInvalidRequest},
		{"blank url", "1", "X", "", ErrInvalidRequest},
		{"missing id", "", "X", "https://x", ErrInvalidRequest},
		{"unknown id", "nope", "X", "https://x", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStorage()
			l := newTestLocal(st, &recordingOpener{})

			err := l.Update(context.Background(), tt.id, tt.title, tt.url)
			assert.Check(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Check(t, is.Equal(st.saves, 0))
		})
	}
}

func TestLocal_Delete(t *testing.T) {
	st := newTestStorage()
	l := newTestLocal(st, &recordingOpener{})

	assert.NilError(t, l.Delete(context.Background(), "1"))
	assert.Check(t, st.store.GetBookmarkByID("1") == nil)

	err := l.Delete(context.Background(), "1")
	assert.Check(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLocal_DeleteSaveError(t *testing.T) {
	st := newTestStorage()
	st.saveErr = errors.New("read-only")
	l := newTestLocal(st, &recordingOpener{})

	err := l.Delete(context.Background(), "1")
	assert.ErrorContains(t, err, "save store: read-only")
}

func TestLocal_OpenRecordsVisit(t *testing.T) {
	st := newTestStorage()
	opener := &recordingOpener{}
	l := newTestLocal(st, opener)

	assert.NilError(t, l.OpenInNewTab(context.Background(), "https://go.dev"))

	assert.DeepEqual(t, opener.opened(), []string{"https://go.dev"})
	visited := st.store.GetBookmarkByID("2").VisitedAt
	assert.Assert(t, visited != nil)
	assert.Check(t, visited.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestLocal_OpenUnknownURLStillSucceeds(t *testing.T) {
	st := newTestStorage()
	opener := &recordingOpener{}
	l := newTestLocal(st, opener)

	assert.NilError(t, l.OpenInNewTab(context.Background(), "https://elsewhere.example"))
	assert.Check(t, is.Len(opener.opened(), 1))
	assert.Check(t, is.Equal(st.saves, 0))
}

func TestLocal_OpenFailure(t *testing.T) {
	st := newTestStorage()
	l := newTestLocal(st, &recordingOpener{err: errors.New("no browser")})

	err := l.OpenInNewTab(context.Background(), "https://go.dev")
	assert.ErrorContains(t, err, "no browser")
	assert.Check(t, st.store.GetBookmarkByID("2").VisitedAt == nil)

	err = l.OpenInNewTab(context.Background(), " ")
	assert.Check(t, errors.Is(err, ErrInvalidRequest))
}

func TestLauncher(t *testing.T) {
	tests := []struct {
		command, goos string
		name          string
		args          []string
	}{
		{"", "linux", "xdg-open", nil},
		{"", "darwin", "open", nil},
		{"", "windows", "rundll32", []string{"url.dll,FileProtocolHandler"}},
		{"firefox --new-tab", "linux", "firefox", []string{"--new-tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.command, func(t *testing.T) {
			name, args, err := launcher(tt.command, tt.goos)
			assert.NilError(t, err)
			assert.Check(t, is.Equal(name, tt.name))
			assert.Check(t, is.Equal(len(args), len(tt.args)))
			for i := range tt.args {
				assert.Check(t, is.Equal(args[i], tt.args[i]))
			}
		})
	}

	_, _, err := launcher("", "plan9")
	assert.ErrorContains(t, err, "set open_command")
}

func TestRemoteError_Unwrap(t *testing.T) {
	err := error(&RemoteError{Action: ActionEdit, Code: codeNotFound, Message: "bookmark not found: x"})

	assert.Check(t, errors.Is(err, ErrNotFound))
	assert.Check(t, !errors.Is(err, ErrInvalidRequest))
	assert.Check(t, is.Equal(err.Error(), "editBookmark: bookmark not found: x"))
}
