package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/bmjump/internal/tui/layout"
)

// EditField is the focused input of the edit form.
type EditField int

const (
	FieldTitle EditField = iota
	FieldURL
)

// InputState holds the query field and the inline edit form.
type InputState struct {
	Query textinput.Model
	Title textinput.Model
	URL   textinput.Model
	Field EditField

	// editing is the ID the edit inputs were loaded for.
	editing string
}

// NewInputState creates the inputs with limits from cfg.
func NewInputState(cfg layout.LayoutConfig) InputState {
	query := textinput.New()
	query.Prompt = "> "
	query.Placeholder = "Search bookmarks..."
	query.CharLimit = cfg.Input.QueryCharLimit

	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "Title"
	title.CharLimit = cfg.Input.TitleCharLimit

	url := textinput.New()
	url.Prompt = "URL:   "
	url.Placeholder = "https://..."
	url.CharLimit = cfg.Input.URLCharLimit

	return InputState{
		Query: query,
		Title: title,
		URL:   url,
	}
}

// SetWidth fits every input into textWidth cells.
func (s *InputState) SetWidth(textWidth int) {
	s.Query.Width = max(1, textWidth-len(s.Query.Prompt)-1)
	// Edit inputs are indented under the row cursor.
	s.Title.Width = max(1, textWidth-2-len(s.Title.Prompt)-1)
	s.URL.Width = max(1, textWidth-2-len(s.URL.Prompt)-1)
}

// LoadEdit fills the edit form for bookmark id and focuses the title.
func (s *InputState) LoadEdit(id, title, url string) {
	s.editing = id
	s.Title.SetValue(title)
	s.Title.CursorEnd()
	s.URL.SetValue(url)
	s.URL.CursorEnd()
	s.Field = FieldTitle
}

// ToggleField moves focus between title and URL.
func (s *InputState) ToggleField() {
	if s.Field == FieldTitle {
		s.Field = FieldURL
	} else {
		s.Field = FieldTitle
	}
}

// ResetEdit clears the edit form.
func (s *InputState) ResetEdit() {
	s.editing = ""
	s.Title.Reset()
	s.URL.Reset()
	s.Field = FieldTitle
}

// Reset clears every input for a new activation.
func (s *InputState) Reset() {
	s.Query.Reset()
	s.ResetEdit()
}
