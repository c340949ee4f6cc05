package main

import tea "github.com/charmbracelet/bubbletea"

// EditorInputHandler handles input for the JSON editor panel
type EditorInputHandler struct{}

// NewEditorInputHandler creates a new editor input handler
func NewEditorInputHandler() *EditorInputHandler {
	return &EditorInputHandler{}
}

// HandleInput forwards everything to the textarea; submit and panel switching
// are handled globally before this point.
func (h *EditorInputHandler) HandleInput(key tea.KeyMsg, m *model) (*model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(key)
	return m, cmd
}

// CanHandleInput returns true when the editor has focus
func (h *EditorInputHandler) CanHandleInput(m *model) bool {
	return m.activePanel == editorPanel
}
