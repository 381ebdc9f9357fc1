// Package gateway is the only way into the bookmark store. The overlay talks
// to a Gateway; Local owns the store in-process, and Server/Client carry the
// same four operations across a unix socket.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/bmjump/internal/model"
)

var (
	// ErrNotFound means the bookmark ID is not in the store.
	ErrNotFound = errors.New("bookmark not found")
	// ErrInvalidRequest means a required field was missing or blank.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownAction means the server does not know the requested action.
	ErrUnknownAction = errors.New("unknown action")
)

// Gateway is the request/response surface of the bookmark store.
type Gateway interface {
	// List returns every bookmark, flattened in tree order.
	List(ctx context.Context) ([]model.Bookmark, error)
	// Update replaces the title and URL of a bookmark.
	Update(ctx context.Context, id, title, url string) error
	// Delete removes a bookmark.
	Delete(ctx context.Context, id string) error
	// OpenInNewTab hands url to the browser.
	OpenInNewTab(ctx context.Context, url string) error
}

// RemoteError is a failure reported by the server, rebuilt on the client.
type RemoteError struct {
	Action  string
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// Unwrap maps the wire code back onto the package sentinels.
func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case codeNotFound:
		return ErrNotFound
	case codeInvalidRequest:
		return ErrInvalidRequest
	case codeUnknownAction:
		return ErrUnknownAction
	}
	return nil
}
