package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Box   BoxConfig
	Input InputConfig
	Text  TextConfig
}

// BoxConfig holds the overlay box configuration.
type BoxConfig struct {
	// WidthPercent is the box width as percentage of terminal width.
	WidthPercent int

	// TopPercent places the top border this far down the terminal.
	TopPercent int

	// MinWidth is the minimum box width in characters.
	MinWidth int

	// MaxWidth is the maximum box width in characters.
	MaxWidth int

	// HeaderLines sits above the rows: query input (1) + blank (1) = 2
	HeaderLines int

	// FooterLines sits below the rows: blank (1) + message (1) + hints (1) = 3
	FooterLines int

	// RowHeight is the number of lines per result: title (1) + URL (1) = 2
	RowHeight int

	// MaxRows caps the rows drawn at once.
	MaxRows int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	QueryCharLimit int
	TitleCharLimit int
	URLCharLimit   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Box: BoxConfig{
			WidthPercent: 60,
			TopPercent:   15,
			MinWidth:     40,
			MaxWidth:     100,
			HeaderLines:  2,
			FooterLines:  3,
			RowHeight:    2,
			MaxRows:      20,
		},
		Input: InputConfig{
			QueryCharLimit: 100,
			TitleCharLimit: 200,
			URLCharLimit:   2000,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
