package layout

// borderSize is the box border on each side.
const borderSize = 1

// Box is the overlay box position in terminal cells, borders included.
type Box struct {
	Left, Top     int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.Left && x < b.Left+b.Width && y >= b.Top && y < b.Top+b.Height
}

// CalculateModalWidth computes responsive modal width based on percentage of terminal width.
// Uses widthPercent of terminal width, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg BoxConfig) int {
	width := terminalWidth * widthPercent / 100

	// Apply min/max constraints
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateMaxRows computes how many result rows fit below the box top.
// Returns at least 1 and at most MaxRows.
func CalculateMaxRows(terminalHeight int, cfg BoxConfig) int {
	available := terminalHeight - CalculateTop(terminalHeight, cfg) -
		2*borderSize - cfg.HeaderLines - cfg.FooterLines
	rows := available / cfg.RowHeight
	if rows > cfg.MaxRows {
		rows = cfg.MaxRows
	}
	if rows < 1 {
		return 1
	}
	return rows
}

// CalculateTop returns the row of the box's top border.
func CalculateTop(terminalHeight int, cfg BoxConfig) int {
	top := terminalHeight * cfg.TopPercent / 100
	if top < 0 {
		return 0
	}
	return top
}

// CalculateBox places a box of contentWidth x contentLines (inside the
// border) horizontally centred at the configured top offset.
func CalculateBox(terminalWidth, terminalHeight, contentWidth, contentLines int, cfg BoxConfig) Box {
	width := contentWidth + 2*borderSize
	left := (terminalWidth - width) / 2
	if left < 0 {
		left = 0
	}
	return Box{
		Left:   left,
		Top:    CalculateTop(terminalHeight, cfg),
		Width:  width,
		Height: contentLines + 2*borderSize,
	}
}

// RowAt maps the terminal row y onto the index of a visible result row,
// or -1 when y is outside the rows area.
func RowAt(b Box, y, visibleRows int, cfg BoxConfig) int {
	offset := y - b.Top - borderSize - cfg.HeaderLines
	if offset < 0 {
		return -1
	}
	row := offset / cfg.RowHeight
	if row >= visibleRows {
		return -1
	}
	return row
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
