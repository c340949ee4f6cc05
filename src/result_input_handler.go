package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ResultInputHandler handles input for the result panel
type ResultInputHandler struct{}

// NewResultInputHandler creates a new result input handler
func NewResultInputHandler() *ResultInputHandler {
	return &ResultInputHandler{}
}

// HandleInput opens the jq prompt, resets it, copies, or scrolls the viewport
func (h *ResultInputHandler) HandleInput(msg tea.KeyMsg, m *model) (*model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.JQ):
		if m.result == nil {
			return m, nil
		}
		return m, m.jq.Start(m.result.Raw)
	case key.Matches(msg, keys.ResetJQ):
		m.jq.Reset()
		m.status = ""
		m.refreshResultView()
		return m, nil
	case key.Matches(msg, keys.Copy):
		return m, m.copyResult()
	}

	var cmd tea.Cmd
	m.resultViewport, cmd = m.resultViewport.Update(msg)
	return m, cmd
}

// CanHandleInput returns true when the result panel has focus
func (h *ResultInputHandler) CanHandleInput(m *model) bool {
	return m.activePanel == resultPanel
}
