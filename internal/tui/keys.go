package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the overlay.
type KeyMap struct {
	// Query mode
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Edit    key.Binding
	Delete  key.Binding
	YankURL key.Binding
	Dismiss key.Binding
	Toggle  key.Binding
	Quit    key.Binding

	// Edit mode
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding

	// Delete confirmation
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default key bindings. Query mode keeps every
// printable key for the search field, so actions use control chords.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "ctrl+k"),
			key.WithHelp("↑/C-p", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "ctrl+j"),
			key.WithHelp("↓/C-n", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Edit: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "del"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "toggle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/Esc", "keep"),
		),
	}
}
