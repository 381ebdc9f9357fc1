// Package overlay holds the quick-switcher session: the snapshot of bookmarks
// it was activated with, the filtered result set, the selection, and the edit
// and delete sub-flows. Gateway calls leave the session as tea.Cmds and come
// back through Update; nothing else blocks.
package overlay

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmjump/internal/gateway"
	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/search"
)

const emptyFieldsNotice = "Title and URL must not be empty"

// Session is a reusable overlay session. It starts hidden.
type Session struct {
	gw  gateway.Gateway
	ctx context.Context

	visible  bool
	snapshot []model.Bookmark
	query    string
	results  []model.Bookmark
	sel      Selection

	edit          *EditState
	pendingDelete *DeleteState
	notice        Notice

	// activation counts hidden-to-visible transitions. Gateway results are
	// applied only to the activation that issued them.
	activation int
	// inFlight counts this activation's outstanding calls; pending counts
	// every outstanding call, including those of earlier activations.
	inFlight int
	pending  int
}

// NewSession creates a hidden session that talks to gw.
func NewSession(gw gateway.Gateway) *Session {
	return &Session{
		gw:  gw,
		ctx: context.Background(),
		sel: NewSelection(),
	}
}

// Visible reports whether the session is shown.
func (s *Session) Visible() bool {
	return s.visible
}

// Query returns the current query text.
func (s *Session) Query() string {
	return s.query
}

// Activation identifies the current activation. It changes every time a
// hidden session is shown.
func (s *Session) Activation() int {
	return s.activation
}

// Pending reports how many gateway calls have not reported back yet,
// whichever activation issued them.
func (s *Session) Pending() int {
	return s.pending
}

// Snapshot returns the bookmarks the session filters.
func (s *Session) Snapshot() []model.Bookmark {
	return s.snapshot
}

// Results returns the current result set.
func (s *Session) Results() []model.Bookmark {
	return s.results
}

// Selection returns the selection state.
func (s *Session) Selection() Selection {
	return s.sel
}

// SelectedBookmark returns the selected result, if any.
func (s *Session) SelectedBookmark() (model.Bookmark, bool) {
	if !s.sel.Valid() {
		return model.Bookmark{}, false
	}
	return s.results[s.sel.Index()], true
}

// Editing returns the row in edit mode, if any.
func (s *Session) Editing() (EditState, bool) {
	if s.edit == nil {
		return EditState{}, false
	}
	return *s.edit, true
}

// PendingDelete returns the bookmark awaiting delete confirmation, if any.
func (s *Session) PendingDelete() (DeleteState, bool) {
	if s.pendingDelete == nil {
		return DeleteState{}, false
	}
	return *s.pendingDelete, true
}

// Activate shows the session over snapshot, or dismisses it when it is
// already visible. A nil snapshot is treated as empty.
func (s *Session) Activate(snapshot []model.Bookmark) {
	if s.visible {
		logging.Debug("overlay toggled off")
		s.Dismiss()
		return
	}

	if snapshot == nil {
		snapshot = []model.Bookmark{}
	}
	s.snapshot = snapshot
	s.query = ""
	s.results = nil
	s.sel.Reset(0)
	s.edit = nil
	s.pendingDelete = nil
	s.notice = Notice{}
	s.inFlight = 0
	s.activation++
	s.visible = true
	logging.Debug("overlay activated", "bookmarks", len(snapshot))
}

// Dismiss hides the session and drops all rendered state.
func (s *Session) Dismiss() {
	s.visible = false
	s.query = ""
	s.results = nil
	s.sel.Reset(0)
	s.edit = nil
	s.pendingDelete = nil
	s.notice = Notice{}
	s.inFlight = 0
}

// SetQuery re-filters the snapshot against q and selects the first result.
func (s *Session) SetQuery(q string) {
	if !s.visible {
		return
	}
	s.query = q
	s.notice = Notice{}
	s.refilter()
}

// Navigate moves the selection one row in dir.
func (s *Session) Navigate(dir Direction) {
	if !s.visible {
		return
	}
	s.sel.Move(dir)
}

// ActivateSelection opens the selected result.
func (s *Session) ActivateSelection() tea.Cmd {
	b, ok := s.SelectedBookmark()
	if !s.visible || !ok {
		return nil
	}
	return s.Open(b.ID)
}

// Open asks the gateway to open result id. The session hides once the
// gateway confirms.
func (s *Session) Open(id string) tea.Cmd {
	if !s.visible {
		return nil
	}
	b, ok := s.result(id)
	if !ok {
		return nil
	}

	gw, ctx := s.gw, s.ctx
	return s.call(func(activation int) tea.Msg {
		if err := gw.OpenInNewTab(ctx, b.URL); err != nil {
			return GatewayErrorMsg{Activation: activation, Op: OpOpen, Err: err}
		}
		return OpenedMsg{Activation: activation, ID: b.ID, URL: b.URL}
	})
}

// BeginEdit puts result id into edit mode with its current title and URL.
// It reports whether edit mode was entered.
func (s *Session) BeginEdit(id string) bool {
	if !s.visible {
		return false
	}
	b, ok := s.result(id)
	if !ok {
		return false
	}
	s.pendingDelete = nil
	s.notice = Notice{}
	s.edit = &EditState{ID: b.ID, Title: b.Title, URL: b.URL}
	return true
}

// ConfirmEdit saves title and URL for the row in edit mode and reloads.
// Blank fields are rejected without calling the gateway and the row stays
// in edit mode.
func (s *Session) ConfirmEdit(id, title, url string) tea.Cmd {
	if !s.visible || s.edit == nil || s.edit.ID != id {
		return nil
	}
	s.edit.Title = title
	s.edit.URL = url

	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" || url == "" {
		s.notice = Notice{Kind: NoticeWarning, Text: emptyFieldsNotice}
		return nil
	}
	s.notice = Notice{}

	gw, ctx := s.gw, s.ctx
	return s.call(func(activation int) tea.Msg {
		if err := gw.Update(ctx, id, title, url); err != nil {
			return GatewayErrorMsg{Activation: activation, Op: OpUpdate, Err: err}
		}
		return MutatedMsg{Activation: activation, Op: OpUpdate, ID: id}
	})
}

// CancelEdit leaves edit mode for row id.
func (s *Session) CancelEdit(id string) {
	if !s.visible || s.edit == nil || s.edit.ID != id {
		return
	}
	s.edit = nil
	s.notice = Notice{}
}

// RequestDelete asks for confirmation before deleting result id.
func (s *Session) RequestDelete(id string) {
	if !s.visible {
		return
	}
	b, ok := s.result(id)
	if !ok {
		return
	}
	s.edit = nil
	s.notice = Notice{}
	s.pendingDelete = &DeleteState{ID: b.ID, Title: b.Title}
}

// ConfirmDelete deletes the bookmark awaiting confirmation and reloads.
func (s *Session) ConfirmDelete() tea.Cmd {
	if !s.visible || s.pendingDelete == nil {
		return nil
	}
	id := s.pendingDelete.ID
	s.pendingDelete = nil

	gw, ctx := s.gw, s.ctx
	return s.call(func(activation int) tea.Msg {
		if err := gw.Delete(ctx, id); err != nil {
			return GatewayErrorMsg{Activation: activation, Op: OpDelete, Err: err}
		}
		return MutatedMsg{Activation: activation, Op: OpDelete, ID: id}
	})
}

// DeclineDelete closes the confirmation without deleting.
func (s *Session) DeclineDelete() {
	if !s.visible {
		return
	}
	s.pendingDelete = nil
}

// Notify shows a notice until the next query change or sub-flow.
func (s *Session) Notify(kind NoticeKind, text string) {
	if !s.visible {
		return
	}
	s.notice = Notice{Kind: kind, Text: text}
}

// Update applies a gateway result. Results that arrive while the session is
// hidden, or that were issued by an earlier activation, are dropped.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ReloadedMsg:
		if !s.settle(msg.Activation) {
			return nil
		}
		s.snapshot = msg.Bookmarks
		if s.snapshot == nil {
			s.snapshot = []model.Bookmark{}
		}
		s.edit = nil
		s.refilter()
		logging.Debug("snapshot reloaded", "bookmarks", len(s.snapshot), "results", len(s.results))

	case MutatedMsg:
		if !s.settle(msg.Activation) {
			return nil
		}
		switch msg.Op {
		case OpUpdate:
			s.notice = Notice{Kind: NoticeSuccess, Text: "Bookmark updated"}
		case OpDelete:
			s.notice = Notice{Kind: NoticeSuccess, Text: "Bookmark deleted"}
		}
		logging.Info("bookmark changed", "op", msg.Op, "id", msg.ID)
		return s.reload()

	case OpenedMsg:
		if !s.settle(msg.Activation) {
			return nil
		}
		logging.Info("bookmark opened", "id", msg.ID, "url", msg.URL)
		s.Dismiss()

	case GatewayErrorMsg:
		if !s.settle(msg.Activation) {
			return nil
		}
		logging.Error("gateway call failed", "op", msg.Op, "err", msg.Err)
		s.notice = Notice{Kind: NoticeError, Text: failureText(msg)}
	}
	return nil
}

// Frame describes what to draw for the current state.
func (s *Session) Frame() Frame {
	if !s.visible {
		return Frame{Selected: NoSelection}
	}

	f := Frame{
		Visible:  true,
		Query:    s.query,
		Selected: s.sel.Index(),
		Notice:   s.notice,
		Busy:     s.inFlight > 0,
	}

	if len(s.results) > 0 {
		f.Rows = make([]Row, len(s.results))
		for i, b := range s.results {
			f.Rows[i] = Row{
				ID:       b.ID,
				Title:    b.Title,
				URL:      b.URL,
				Selected: i == s.sel.Index(),
				Editing:  s.edit != nil && s.edit.ID == b.ID,
			}
		}
	} else if strings.TrimSpace(s.query) != "" {
		f.Placeholder = PlaceholderNoResults
	}

	if s.edit != nil {
		edit := *s.edit
		f.Edit = &edit
	}
	if s.pendingDelete != nil {
		del := *s.pendingDelete
		f.ConfirmDelete = &del
	}
	return f
}

// reload fetches a fresh snapshot; the current query is kept.
func (s *Session) reload() tea.Cmd {
	gw, ctx := s.gw, s.ctx
	return s.call(func(activation int) tea.Msg {
		bookmarks, err := gw.List(ctx)
		if err != nil {
			return GatewayErrorMsg{Activation: activation, Op: OpList, Err: err}
		}
		return ReloadedMsg{Activation: activation, Bookmarks: bookmarks}
	})
}

// call wraps run as a command stamped with the current activation.
func (s *Session) call(run func(activation int) tea.Msg) tea.Cmd {
	s.inFlight++
	s.pending++
	activation := s.activation
	return func() tea.Msg {
		return run(activation)
	}
}

// settle marks one gateway call as finished and reports whether its result
// should be applied: the session must be visible and still on the
// activation that issued the call.
func (s *Session) settle(activation int) bool {
	if s.pending > 0 {
		s.pending--
	}
	if !s.visible || activation != s.activation {
		return false
	}
	if s.inFlight > 0 {
		s.inFlight--
	}
	return true
}

func (s *Session) refilter() {
	s.results = search.Filter(s.snapshot, s.query)
	s.sel.Reset(len(s.results))
	if s.edit != nil {
		if _, ok := s.result(s.edit.ID); !ok {
			s.edit = nil
		}
	}
}

func (s *Session) result(id string) (model.Bookmark, bool) {
	for _, b := range s.results {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bookmark{}, false
}

func failureText(msg GatewayErrorMsg) string {
	var text string
	switch msg.Op {
	case OpList:
		text = "Reload failed"
	case OpUpdate:
		text = "Save failed"
	case OpDelete:
		text = "Delete failed"
	case OpOpen:
		text = "Open failed"
	default:
		text = "Request failed"
	}
	if msg.Err != nil {
		text += ": " + msg.Err.Error()
	}
	return text
}
