package main

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bfhl/src/bfhl"
)

// InputHandler routes key presses to the overlay or panel that owns them
type InputHandler struct {
	palette  *CommandPaletteInputHandler
	handlers []PanelInputHandler
}

// NewInputHandler creates the router with one handler per panel
func NewInputHandler() *InputHandler {
	return &InputHandler{
		palette: NewCommandPaletteInputHandler(),
		handlers: []PanelInputHandler{
			NewEditorInputHandler(),
			NewFilterInputHandler(),
			NewResultInputHandler(),
		},
	}
}

// HandleKeyboardInput gives the palette first claim, then the jq prompt,
// then global bindings, then the focused panel
func (h *InputHandler) HandleKeyboardInput(m *model, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return *m, tea.Quit
	}

	// Command palette has the highest priority
	if h.palette.CanHandleInput(m) {
		next, cmd := h.palette.HandleInput(msg, m)
		return *next, cmd
	}

	// The jq prompt captures all keys while open
	if m.jq.Editing() {
		next, cmd := h.handleJQInput(m, msg)
		return *next, cmd
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return *m, m.submit()
	case key.Matches(msg, keys.Palette):
		m.commandPalette.Show()
		return *m, nil
	case key.Matches(msg, keys.NextPanel):
		m.cyclePanel(1)
		return *m, nil
	case key.Matches(msg, keys.PrevPanel):
		m.cyclePanel(-1)
		return *m, nil
	}

	for _, handler := range h.handlers {
		if handler.CanHandleInput(m) {
			next, cmd := handler.HandleInput(msg, m)
			return *next, cmd
		}
	}
	return *m, nil
}

// handleJQInput applies on enter, cancels on esc, and edits otherwise
func (h *InputHandler) handleJQInput(m *model, msg tea.KeyMsg) (*model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jq.Cancel()
		return m, nil
	case "enter":
		var raw []byte
		if m.result != nil {
			raw = m.result.Raw
		}
		return m, m.jq.Apply(raw)
	}
	return m, m.jq.Update(msg)
}

// runAction executes a palette action.
func (m *model) runAction(action paletteAction) tea.Cmd {
	switch action {
	case actionSubmit:
		return m.submit()
	case actionLoadExample:
		m.editor.SetValue(bfhl.ExampleInput)
		m.focusPanel(editorPanel)
	case actionClearInput:
		m.editor.Reset()
		m.focusPanel(editorPanel)
	case actionClearFilters:
		m.dropdown.Selection().Clear()
		m.refreshResultView()
	case actionCopyResult:
		return m.copyResult()
	case actionResetJQ:
		m.jq.Reset()
		m.refreshResultView()
	}
	return nil
}

// copyResult writes the visible result text to the clipboard in the background.
func (m *model) copyResult() tea.Cmd {
	text := m.resultText()
	if text == "" {
		m.status = "Nothing to copy"
		return nil
	}
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}
