package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type paletteAction string

const (
	actionSubmit       paletteAction = "submit"
	actionLoadExample  paletteAction = "load_example"
	actionClearInput   paletteAction = "clear_input"
	actionClearFilters paletteAction = "clear_filters"
	actionCopyResult   paletteAction = "copy_result"
	actionResetJQ      paletteAction = "reset_jq"
)

// Command is one palette entry.
type Command struct {
	Name        string
	Description string
	Action      paletteAction
}

// CommandPalette lists actions and narrows them by a typed query.
type CommandPalette struct {
	visible          bool
	input            string
	cursor           int
	commands         []Command
	filteredCommands []Command
}

// NewCommandPalette creates a hidden palette holding every action.
func NewCommandPalette() *CommandPalette {
	commands := []Command{
		{Name: "Submit", Description: "Send the input to the server", Action: actionSubmit},
		{Name: "Load Example", Description: "Replace the input with a sample payload", Action: actionLoadExample},
		{Name: "Clear Input", Description: "Empty the JSON editor", Action: actionClearInput},
		{Name: "Clear Filters", Description: "Deselect every filter", Action: actionClearFilters},
		{Name: "Copy Result", Description: "Copy the rendered result to the clipboard", Action: actionCopyResult},
		{Name: "Reset jq", Description: "Drop the applied jq expression", Action: actionResetJQ},
	}

	cp := &CommandPalette{commands: commands}
	cp.updateFiltered()
	return cp
}

// Show opens the palette with an empty query.
func (cp *CommandPalette) Show() {
	cp.visible = true
	cp.SetInput("")
}

// Hide closes the palette and forgets the query.
func (cp *CommandPalette) Hide() {
	cp.visible = false
	cp.SetInput("")
}

// IsVisible returns whether the palette is open.
func (cp *CommandPalette) IsVisible() bool {
	return cp.visible
}

// SetInput replaces the query and moves the cursor back to the first match.
func (cp *CommandPalette) SetInput(input string) {
	cp.input = input
	cp.cursor = 0
	cp.updateFiltered()
}

// GetInput returns the current query.
func (cp *CommandPalette) GetInput() string {
	return cp.input
}

// MoveCursor moves through the matches, wrapping at both ends.
func (cp *CommandPalette) MoveCursor(direction int) {
	n := len(cp.filteredCommands)
	if n == 0 {
		return
	}
	cp.cursor = ((cp.cursor+direction)%n + n) % n
}

// GetSelectedCommand returns the highlighted match, or nil when nothing matches.
func (cp *CommandPalette) GetSelectedCommand() *Command {
	if cp.cursor < 0 || cp.cursor >= len(cp.filteredCommands) {
		return nil
	}
	return &cp.filteredCommands[cp.cursor]
}

// updateFiltered keeps actions whose name or description contains the query.
func (cp *CommandPalette) updateFiltered() {
	query := strings.ToLower(cp.input)

	matches := make([]Command, 0, len(cp.commands))
	for _, cmd := range cp.commands {
		if query == "" ||
			strings.Contains(strings.ToLower(cmd.Name), query) ||
			strings.Contains(strings.ToLower(cmd.Description), query) {
			matches = append(matches, cmd)
		}
	}
	cp.filteredCommands = matches
}

// Render draws the palette box. It returns "" while hidden.
func (cp *CommandPalette) Render(width int, theme *Theme) string {
	if !cp.visible {
		return ""
	}

	paletteWidth := width / 2
	if paletteWidth < 40 {
		paletteWidth = 40
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Command Palette"))
	b.WriteString("\n\n> " + cp.input + theme.Config.Icons.ActiveIndicator + "\n\n")

	if len(cp.filteredCommands) == 0 {
		b.WriteString(theme.MutedStyle.Render("No matching commands"))
	}
	for i, cmd := range cp.filteredCommands {
		line := cmd.Name + " " + theme.MutedStyle.Render(cmd.Description)
		if i == cp.cursor {
			line = theme.CursorStyle.Render("> "+cmd.Name) + " " + theme.MutedStyle.Render(cmd.Description)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return theme.FocusedStyle.
		Width(paletteWidth).
		Padding(1, 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

// placeOverlay centers the palette over the screen.
func placeOverlay(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
