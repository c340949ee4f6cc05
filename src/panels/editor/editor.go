package editor

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"bfhl/src/bfhl"
)

// Rows is the visible height of the input area.
const Rows = 5

// New returns the JSON input area.
func New() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Enter JSON input, e.g., " + bfhl.ExampleInput
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(Rows)
	return ta
}

// Styles used by the editor panel.
type Styles struct {
	Focused lipgloss.Style
	Blurred lipgloss.Style
	Title   lipgloss.Style
	Error   lipgloss.Style
	Button  lipgloss.Style
	Muted   lipgloss.Style
}

// Height is the rendered height of the panel, borders included.
func Height(errMessage string) int {
	h := Rows + 4
	if errMessage != "" {
		h++
	}
	return h
}

// RenderEditor draws the input area, the error line and the submit button.
// While loading the button is replaced by the spinner.
func RenderEditor(width int, ta *textarea.Model, activePanel, loading bool, errMessage, spinnerView string, styles Styles) string {
	style := styles.Blurred
	if activePanel {
		style = styles.Focused
	}

	ta.SetWidth(width - 4)

	rows := []string{styles.Title.Render("JSON Input"), ta.View()}
	if errMessage != "" {
		rows = append(rows, styles.Error.Render(errMessage))
	}

	var button string
	if loading {
		button = spinnerView + " " + styles.Muted.Render("Submitting...")
	} else {
		button = styles.Button.Render("Submit")
	}
	rows = append(rows, button)

	return style.
		Width(width).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
