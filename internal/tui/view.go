package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmjump/internal/overlay"
	"github.com/nikbrunner/bmjump/internal/search"
	"github.com/nikbrunner/bmjump/internal/tui/layout"
)

// geometry is where the overlay box sits and which rows it shows.
type geometry struct {
	box        layout.Box
	inner      int // box width inside the border, padding included
	start, end int // visible slice of frame.Rows
}

// View implements tea.Model.
func (a App) View() string {
	frame := a.session.Frame()
	if !frame.Visible {
		if a.resident {
			return a.styles.HiddenBanner.Render("bmjump ") + a.renderHints(a.getContextualHints())
		}
		return ""
	}

	geo := a.geometry(frame)
	width := a.textWidth()
	clip := lipgloss.NewStyle().MaxWidth(width)

	lines := make([]string, 0, geo.box.Height)
	lines = append(lines, a.inputs.Query.View(), "")
	lines = append(lines, a.renderBody(frame, geo, width)...)
	lines = append(lines, "", a.renderMessageLine(frame), a.renderHints(a.getContextualHints()))
	for i := range lines {
		lines[i] = clip.Render(lines[i])
	}

	box := a.styles.Box.Width(geo.inner).Render(strings.Join(lines, "\n"))
	return place(box, geo.box)
}

// geometry lays out the box for frame at the current terminal size.
func (a App) geometry(frame overlay.Frame) geometry {
	cfg := a.layout.Box
	inner := layout.CalculateModalWidth(a.width, cfg.WidthPercent, cfg)
	maxRows := layout.CalculateMaxRows(a.height, cfg)
	start, end := layout.CalculateVisibleListItems(maxRows, max(frame.Selected, 0), len(frame.Rows))

	body := 1
	if end > start {
		body = (end - start) * cfg.RowHeight
	}
	lines := cfg.HeaderLines + body + cfg.FooterLines

	return geometry{
		box:   layout.CalculateBox(a.width, a.height, inner, lines, cfg),
		inner: inner,
		start: start,
		end:   end,
	}
}

// textWidth is the usable line width inside the box padding.
func (a App) textWidth() int {
	inner := layout.CalculateModalWidth(a.width, a.layout.Box.WidthPercent, a.layout.Box)
	return max(1, inner-2)
}

func (a App) renderBody(frame overlay.Frame, geo geometry, width int) []string {
	if geo.end == geo.start {
		switch frame.Placeholder {
		case overlay.PlaceholderNoResults:
			return []string{a.styles.Empty.Render("No results")}
		default:
			return []string{a.styles.Empty.Render(
				fmt.Sprintf("Type to search %d bookmarks", len(a.session.Snapshot())))}
		}
	}

	lines := make([]string, 0, (geo.end-geo.start)*a.layout.Box.RowHeight)
	for _, row := range frame.Rows[geo.start:geo.end] {
		lines = append(lines, a.renderRow(row, frame.Query, width)...)
	}
	return lines
}

// renderRow renders a result as a title line and a URL line, or as the
// edit form when the row is being edited.
func (a App) renderRow(row overlay.Row, query string, width int) []string {
	if row.Editing {
		return []string{
			"  " + a.inputs.Title.View(),
			"  " + a.inputs.URL.View(),
		}
	}

	cursor := "  "
	titleStyle, urlStyle := a.styles.Title, a.styles.URL
	if row.Selected {
		cursor = a.styles.Cursor.Render("> ")
		titleStyle, urlStyle = a.styles.TitleActive, a.styles.URLActive
	}

	title, _ := layout.TruncateText(row.Title, width-2, a.layout.Text)
	url, _ := layout.TruncateText(row.URL, width-2, a.layout.Text)

	return []string{
		cursor + a.highlight(title, query, titleStyle),
		"  " + urlStyle.Render(url),
	}
}

// highlight underlines the first occurrence of query in text.
func (a App) highlight(text, query string, base lipgloss.Style) string {
	start, end := search.MatchRange(text, query)
	if start < 0 {
		return base.Render(text)
	}
	match := base.Inherit(a.styles.Match)
	var b strings.Builder
	if start > 0 {
		b.WriteString(base.Render(text[:start]))
	}
	b.WriteString(match.Render(text[start:end]))
	if end < len(text) {
		b.WriteString(base.Render(text[end:]))
	}
	return b.String()
}

// renderMessageLine renders the delete prompt, the session notice, or a
// result count, in that order of preference.
func (a App) renderMessageLine(frame overlay.Frame) string {
	if frame.ConfirmDelete != nil {
		return a.styles.Warning.Render(fmt.Sprintf("⚠ Delete %q?", frame.ConfirmDelete.Title))
	}

	switch frame.Notice.Kind {
	case overlay.NoticeError:
		return a.styles.Error.Render("✗ " + frame.Notice.Text)
	case overlay.NoticeWarning:
		return a.styles.Warning.Render("⚠ " + frame.Notice.Text)
	case overlay.NoticeSuccess:
		return a.styles.Success.Render("✓ " + frame.Notice.Text)
	case overlay.NoticeInfo:
		return a.styles.Info.Render(frame.Notice.Text)
	}

	if frame.Busy {
		return a.styles.Status.Render("Working...")
	}
	if len(frame.Rows) > 0 {
		return a.styles.Status.Render(fmt.Sprintf("%d of %d", frame.Selected+1, len(frame.Rows)))
	}
	return ""
}

// place offsets the rendered box to its position on screen.
func place(box string, at layout.Box) string {
	pad := strings.Repeat(" ", at.Left)
	lines := strings.Split(box, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Repeat("\n", at.Top) + strings.Join(lines, "\n")
}
