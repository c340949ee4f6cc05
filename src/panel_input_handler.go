package main

import tea "github.com/charmbracelet/bubbletea"

// PanelInputHandler defines the interface that all panel input handlers must implement
type PanelInputHandler interface {
	// HandleInput processes a key input for this panel
	HandleInput(key tea.KeyMsg, m *model) (*model, tea.Cmd)

	// CanHandleInput returns true if this panel can currently handle input
	CanHandleInput(m *model) bool
}
