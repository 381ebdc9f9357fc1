package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/storage"
)

// Local serves the gateway operations straight from a storage backend.
// Every call loads the store, so edits made by other processes are seen.
type Local struct {
	mu      sync.Mutex
	storage storage.Storage
	open    Opener
	now     func() time.Time
}

// LocalParams holds parameters for creating a Local gateway.
type LocalParams struct {
	Storage storage.Storage
	Opener  Opener
}

// NewLocal creates a Local gateway. A nil Opener uses the system launcher.
func NewLocal(params LocalParams) *Local {
	open := params.Opener
	if open == nil {
		open = SystemOpener("")
	}
	return &Local{
		storage: params.Storage,
		open:    open,
		now:     time.Now,
	}
}

// List returns the flattened store.
func (l *Local) List(ctx context.Context) ([]model.Bookmark, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	return store.Flatten(), nil
}

// Update replaces the title and URL of bookmark id.
func (l *Local) Update(ctx context.Context, id, title, url string) error {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if id == "" || title == "" || url == "" {
		return fmt.Errorf("%w: id, title and url are required", ErrInvalidRequest)
	}

	return l.mutate(func(store *model.Store) error {
		return store.UpdateBookmark(id, title, url)
	}, id)
}

// Delete removes bookmark id.
func (l *Local) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRequest)
	}

	return l.mutate(func(store *model.Store) error {
		return store.RemoveBookmark(id)
	}, id)
}

// OpenInNewTab launches url and records the visit on matching bookmarks.
func (l *Local) OpenInNewTab(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}
	if err := l.open(ctx, url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	// The tab is already open; a failed visit stamp is only logged.
	err := l.mutate(func(store *model.Store) error {
		if !store.MarkVisited(url, l.now()) {
			return model.ErrBookmarkNotFound
		}
		return nil
	}, url)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logging.Warn("record visit", "url", url, "err", err)
	}
	return nil
}

func (l *Local) mutate(fn func(*model.Store) error, subject string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	if err := fn(store); err != nil {
		if errors.Is(err, model.ErrBookmarkNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, subject)
		}
		return err
	}
	if err := l.storage.Save(store); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}
