package result

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"bfhl/src/bfhl"
	"bfhl/src/panels/filter"
)

// EmptyValue is shown for a field that is present but has no values.
const EmptyValue = "None"

// Line is one rendered response field.
type Line struct {
	Label filter.Label
	Text  string
}

func (l Line) String() string {
	return string(l.Label) + ": " + l.Text
}

// Lines derives the visible lines for resp under sel. Lines follow label
// order, not selection order. No selection or no response yields no lines.
func Lines(resp *bfhl.Response, sel *filter.Selection) []Line {
	if resp == nil || sel == nil || sel.Len() == 0 {
		return nil
	}

	var lines []Line
	for _, l := range filter.Labels() {
		if !sel.Has(l) {
			continue
		}
		values, ok := resp.Field(l.Field())
		if !ok {
			continue
		}
		text := EmptyValue
		if len(values) > 0 {
			text = strings.Join(values, ", ")
		}
		lines = append(lines, Line{Label: l, Text: text})
	}
	return lines
}

// Text joins lines, one per row.
func Text(lines []Line) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// Styles used by the result panel.
type Styles struct {
	Focused lipgloss.Style
	Blurred lipgloss.Style
	Title   lipgloss.Style
	Status  lipgloss.Style
	Label   map[filter.Label]lipgloss.Style
}

// Colorize renders lines with a per-label style for the key.
func Colorize(lines []Line, styles Styles) string {
	rows := make([]string, len(lines))
	for i, l := range lines {
		style, ok := styles.Label[l.Label]
		if !ok {
			style = lipgloss.NewStyle()
		}
		rows[i] = style.Bold(true).Render(string(l.Label)+":") + " " + l.Text
	}
	return strings.Join(rows, "\n")
}

// RenderResult draws the result panel around vp. status is shown under the
// title.
func RenderResult(width, height int, activePanel bool, title, status string, vp *viewport.Model, styles Styles) string {
	style := styles.Blurred
	if activePanel {
		style = styles.Focused
	}

	contentHeight := height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}
	vp.Width = width - 4
	vp.Height = contentHeight

	header := styles.Title.Render(title)
	if status != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", styles.Status.Render(status))
	}

	return style.
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, vp.View()))
}
