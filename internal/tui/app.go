package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmjump/internal/gateway"
	"github.com/nikbrunner/bmjump/internal/logging"
	"github.com/nikbrunner/bmjump/internal/model"
	"github.com/nikbrunner/bmjump/internal/overlay"
	"github.com/nikbrunner/bmjump/internal/tui/layout"
)

// Mode is what the overlay is currently accepting input for.
type Mode int

const (
	ModeHidden Mode = iota
	ModeQuery
	ModeEdit
	ModeConfirmDelete
)

// snapshotMsg carries the bookmarks fetched for a resident re-activation.
type snapshotMsg struct {
	bookmarks []model.Bookmark
	err       error
}

// App is the bubbletea model hosting an overlay session.
type App struct {
	session *overlay.Session
	gw      gateway.Gateway
	keys    KeyMap
	styles  Styles
	layout  layout.LayoutConfig
	inputs  InputState

	// resident keeps the program alive while the session is hidden.
	resident bool
	copyURL  func(string) error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Gateway  gateway.Gateway
	Snapshot []model.Bookmark // bookmarks for the first activation
	Query    string           // optional prefilled query
	Resident bool

	Keys      *KeyMap              // optional, uses default if nil
	Styles    *Styles              // optional, uses default if nil
	Layout    *layout.LayoutConfig // optional, uses default if nil
	Clipboard func(string) error   // optional, uses the system clipboard if nil
}

// NewApp creates an App whose session is already activated with
// params.Snapshot.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.Layout != nil {
		cfg = *params.Layout
	}

	copyURL := params.Clipboard
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}

	app := App{
		session:  overlay.NewSession(params.Gateway),
		gw:       params.Gateway,
		keys:     keys,
		styles:   styles,
		layout:   cfg,
		inputs:   NewInputState(cfg),
		resident: params.Resident,
		copyURL:  copyURL,
		width:    80,
		height:   24,
	}
	app.resize(app.width, app.height)

	app.session.Activate(params.Snapshot)
	if params.Query != "" {
		app.inputs.Query.SetValue(params.Query)
		app.inputs.Query.CursorEnd()
		app.session.SetQuery(params.Query)
	}
	app.syncInputs()
	return app
}

// Session returns the hosted overlay session.
func (a App) Session() *overlay.Session {
	return a.session
}

// WithDimensions returns a copy sized for a width x height terminal.
func (a App) WithDimensions(width, height int) App {
	a.resize(width, height)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case overlay.ReloadedMsg, overlay.MutatedMsg, overlay.OpenedMsg, overlay.GatewayErrorMsg:
		cmd = a.session.Update(msg)

	case snapshotMsg:
		if a.session.Visible() {
			return a, nil
		}
		a.session.Activate(msg.bookmarks)
		if msg.err != nil {
			logging.Warn("fetch snapshot", "err", msg.err)
			a.session.Notify(overlay.NoticeError, "Could not load bookmarks: "+msg.err.Error())
		}

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		cmd = a.handleKey(msg)

	case tea.MouseMsg:
		cmd = a.handleMouse(msg)
	}

	a.syncInputs()
	if !a.session.Visible() && !a.resident {
		// Wait for running gateway calls so their writes reach the store.
		if a.session.Pending() > 0 {
			return a, cmd
		}
		return a, tea.Quit
	}
	return a, cmd
}

// mode derives the input mode from the session.
func (a App) mode() Mode {
	switch {
	case !a.session.Visible():
		return ModeHidden
	case hasPendingDelete(a.session):
		return ModeConfirmDelete
	case isEditing(a.session):
		return ModeEdit
	default:
		return ModeQuery
	}
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	mode := a.mode()
	if key.Matches(msg, a.keys.Toggle) {
		if mode == ModeHidden {
			return a.fetchSnapshot()
		}
		a.session.Activate(nil)
		return nil
	}

	switch mode {
	case ModeHidden:
		return nil

	case ModeConfirmDelete:
		switch {
		case key.Matches(msg, a.keys.Yes):
			return a.session.ConfirmDelete()
		case key.Matches(msg, a.keys.No):
			a.session.DeclineDelete()
		}
		return nil

	case ModeEdit:
		return a.handleEditKey(msg)
	}

	return a.handleQueryKey(msg)
}

func (a *App) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Dismiss):
		a.session.Dismiss()
		return nil

	case key.Matches(msg, a.keys.Up):
		a.session.Navigate(overlay.Up)
		return nil

	case key.Matches(msg, a.keys.Down):
		a.session.Navigate(overlay.Down)
		return nil

	case key.Matches(msg, a.keys.Open):
		return a.session.ActivateSelection()

	case key.Matches(msg, a.keys.Edit):
		if b, ok := a.session.SelectedBookmark(); ok && a.session.BeginEdit(b.ID) {
			a.inputs.LoadEdit(b.ID, b.Title, b.URL)
		}
		return nil

	case key.Matches(msg, a.keys.Delete):
		if b, ok := a.session.SelectedBookmark(); ok {
			a.session.RequestDelete(b.ID)
		}
		return nil

	case key.Matches(msg, a.keys.YankURL):
		a.yankSelected()
		return nil
	}

	var cmd tea.Cmd
	before := a.inputs.Query.Value()
	a.inputs.Query, cmd = a.inputs.Query.Update(msg)
	if a.inputs.Query.Value() != before {
		a.session.SetQuery(a.inputs.Query.Value())
	}
	return cmd
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	edit, _ := a.session.Editing()

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.session.CancelEdit(edit.ID)
		return nil

	case key.Matches(msg, a.keys.Save):
		return a.session.ConfirmEdit(edit.ID, a.inputs.Title.Value(), a.inputs.URL.Value())

	case key.Matches(msg, a.keys.NextField), key.Matches(msg, a.keys.PrevField):
		a.inputs.ToggleField()
		return nil
	}

	var cmd tea.Cmd
	if a.inputs.Field == FieldTitle {
		a.inputs.Title, cmd = a.inputs.Title.Update(msg)
	} else {
		a.inputs.URL, cmd = a.inputs.URL.Update(msg)
	}
	return cmd
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mode := a.mode()
	if mode == ModeHidden {
		return nil
	}

	// A press outside the box dismisses in every mode; wheel and row clicks
	// only act on the result list.
	frame := a.session.Frame()
	geo := a.geometry(frame)
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress &&
		!geo.box.Contains(msg.X, msg.Y) {
		a.session.Dismiss()
		return nil
	}
	if mode != ModeQuery {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.session.Navigate(overlay.Up)
		return nil
	case tea.MouseButtonWheelDown:
		a.session.Navigate(overlay.Down)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	row := layout.RowAt(geo.box, msg.Y, geo.end-geo.start, a.layout.Box)
	if row < 0 || len(frame.Rows) == 0 {
		return nil
	}
	return a.session.Open(frame.Rows[geo.start+row].ID)
}

func (a *App) yankSelected() {
	b, ok := a.session.SelectedBookmark()
	if !ok {
		return
	}
	if err := a.copyURL(b.URL); err != nil {
		logging.Warn("copy url", "err", err)
		a.session.Notify(overlay.NoticeError, "Copy failed: "+err.Error())
		return
	}
	a.session.Notify(overlay.NoticeSuccess, "Copied "+b.URL)
}

// fetchSnapshot loads the bookmarks for a resident re-activation. A failed
// fetch still activates, with no bookmarks.
func (a *App) fetchSnapshot() tea.Cmd {
	gw := a.gw
	return func() tea.Msg {
		bookmarks, err := gw.List(context.Background())
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{bookmarks: bookmarks}
	}
}

// syncInputs mirrors the session's sub-flow onto input focus.
func (a *App) syncInputs() {
	switch a.mode() {
	case ModeHidden:
		a.inputs.Reset()
		a.inputs.Query.Blur()
		a.inputs.Title.Blur()
		a.inputs.URL.Blur()

	case ModeEdit:
		edit, _ := a.session.Editing()
		if a.inputs.editing != edit.ID {
			a.inputs.LoadEdit(edit.ID, edit.Title, edit.URL)
		}
		a.inputs.Query.Blur()
		if a.inputs.Field == FieldTitle {
			a.inputs.Title.Focus()
			a.inputs.URL.Blur()
		} else {
			a.inputs.URL.Focus()
			a.inputs.Title.Blur()
		}

	default:
		if a.inputs.editing != "" {
			a.inputs.ResetEdit()
		}
		a.inputs.Title.Blur()
		a.inputs.URL.Blur()
		a.inputs.Query.Focus()
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.inputs.SetWidth(a.textWidth())
}

func hasPendingDelete(s *overlay.Session) bool {
	_, ok := s.PendingDelete()
	return ok
}

func isEditing(s *overlay.Session) bool {
	_, ok := s.Editing()
	return ok
}
