package filter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used to draw the filter panel.
type Styles struct {
	Focused     lipgloss.Style
	Blurred     lipgloss.Style
	Title       lipgloss.Style
	Chip        lipgloss.Style
	ChipFocused lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
}

// Icons used by the chips and the list.
type Icons struct {
	Remove   string
	Expand   string
	Collapse string
	Checked  string
}

// RenderFilter draws the chip bar and, when open, the option list.
func RenderFilter(width int, d *Dropdown, activePanel bool, styles Styles, icons Icons) string {
	style := styles.Blurred
	if activePanel {
		style = styles.Focused
	}

	arrow := icons.Expand
	if d.IsOpen() {
		arrow = icons.Collapse
	}
	title := styles.Title.Render("Filter Response " + arrow)

	rows := []string{title, renderChips(d, activePanel, styles, icons)}
	if d.IsOpen() {
		rows = append(rows, renderOptions(d, styles, icons))
	}

	return style.
		Width(width).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderChips(d *Dropdown, activePanel bool, styles Styles, icons Icons) string {
	selected := d.Selection().Labels()
	if len(selected) == 0 {
		return styles.Muted.Render("No filters selected")
	}

	chips := make([]string, 0, len(selected))
	for i, l := range selected {
		chipStyle := styles.Chip
		if activePanel && !d.IsOpen() && i == d.ChipCursor() {
			chipStyle = styles.ChipFocused
		}
		chips = append(chips, chipStyle.Render(string(l)+" "+icons.Remove))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func renderOptions(d *Dropdown, styles Styles, icons Icons) string {
	var b strings.Builder
	for i, l := range labels {
		mark := " "
		if d.Selection().Has(l) {
			mark = icons.Checked
		}
		line := mark + " " + string(l)
		if i == d.Cursor() {
			line = styles.Cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
