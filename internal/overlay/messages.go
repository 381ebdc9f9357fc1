package overlay

import "github.com/nikbrunner/bmjump/internal/model"

// Op names a gateway call made by the session.
type Op int

const (
	OpList Op = iota
	OpUpdate
	OpDelete
	OpOpen
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "reload"
	case OpUpdate:
		return "save"
	case OpDelete:
		return "delete"
	case OpOpen:
		return "open"
	}
	return "unknown"
}

// Every message below carries the Activation that issued the call. The
// session ignores messages from any other activation.

// ReloadedMsg carries a fresh snapshot from the gateway.
type ReloadedMsg struct {
	Activation int
	Bookmarks  []model.Bookmark
}

// MutatedMsg reports a successful update or delete of bookmark ID.
type MutatedMsg struct {
	Activation int
	Op         Op
	ID         string
}

// OpenedMsg reports that the browser accepted URL.
type OpenedMsg struct {
	Activation int
	ID         string
	URL        string
}

// GatewayErrorMsg reports a failed gateway call.
type GatewayErrorMsg struct {
	Activation int
	Op         Op
	Err        error
}
