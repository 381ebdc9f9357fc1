package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "C-e", "Enter")
	Desc string // Short description (e.g., "edit", "open")
}

// hintFor builds a hint from a binding's help text.
func hintFor(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom line: "Enter:open C-e:edit Esc:close"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (up/down, field switching)
	Action []Hint // Action hints (open, save, confirm)
	Edit   []Hint // Edit hints (edit, delete, copy)
	System []Hint // System hints (close, quit)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode() {
	case ModeQuery:
		return a.getQueryModeHints()
	case ModeEdit:
		return HintSet{
			Nav:    []Hint{hintFor(a.keys.NextField)},
			Action: []Hint{hintFor(a.keys.Save)},
			System: []Hint{hintFor(a.keys.Cancel)},
		}
	case ModeConfirmDelete:
		return HintSet{
			Action: []Hint{hintFor(a.keys.Yes)},
			System: []Hint{hintFor(a.keys.No)},
		}
	case ModeHidden:
		return HintSet{
			Action: []Hint{hintFor(a.keys.Toggle)},
			System: []Hint{hintFor(a.keys.Quit)},
		}
	default:
		return HintSet{}
	}
}

// getQueryModeHints returns hints while typing a query. Row actions are
// only offered when something is selected.
func (a App) getQueryModeHints() HintSet {
	hints := HintSet{
		System: []Hint{hintFor(a.keys.Dismiss)},
	}
	if !a.session.Selection().Valid() {
		return hints
	}

	hints.Action = []Hint{hintFor(a.keys.Open)}
	hints.Edit = []Hint{
		hintFor(a.keys.Edit),
		hintFor(a.keys.Delete),
		hintFor(a.keys.YankURL),
	}
	return hints
}
