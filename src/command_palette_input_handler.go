package main

import tea "github.com/charmbracelet/bubbletea"

// CommandPaletteInputHandler handles input while the palette is open
type CommandPaletteInputHandler struct{}

// NewCommandPaletteInputHandler creates a new palette input handler
func NewCommandPaletteInputHandler() *CommandPaletteInputHandler {
	return &CommandPaletteInputHandler{}
}

// HandleInput edits the query, moves the cursor, or runs the selected action
func (h *CommandPaletteInputHandler) HandleInput(key tea.KeyMsg, m *model) (*model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.commandPalette.Hide()
		return m, nil
	case tea.KeyEnter:
		selected := m.commandPalette.GetSelectedCommand()
		if selected == nil {
			m.commandPalette.Hide()
			return m, nil
		}
		action := selected.Action
		m.commandPalette.Hide()
		return m, m.runAction(action)
	case tea.KeyUp:
		m.commandPalette.MoveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.commandPalette.MoveCursor(1)
		return m, nil
	case tea.KeyBackspace:
		input := []rune(m.commandPalette.GetInput())
		if len(input) > 0 {
			m.commandPalette.SetInput(string(input[:len(input)-1]))
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.commandPalette.SetInput(m.commandPalette.GetInput() + key.String())
		return m, nil
	}
	return m, nil
}

// CanHandleInput returns true while the palette is visible
func (h *CommandPaletteInputHandler) CanHandleInput(m *model) bool {
	return m.commandPalette.IsVisible()
}
