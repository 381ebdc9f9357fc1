package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the overlay.
type Styles struct {
	Box          lipgloss.Style
	Prompt       lipgloss.Style
	Title        lipgloss.Style
	TitleActive  lipgloss.Style
	URL          lipgloss.Style
	URLActive    lipgloss.Style
	Match        lipgloss.Style
	Cursor       lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Info         lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "C-e")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "edit")
	HiddenBanner lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal

	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(primary),

		TitleActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		URLActive: lipgloss.NewStyle().
			Foreground(primary),

		Match: lipgloss.NewStyle().
			Underline(true),

		Cursor: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Info: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HiddenBanner: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),
	}
}
