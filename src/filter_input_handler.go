package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// FilterInputHandler handles input for the filter dropdown and its chips
type FilterInputHandler struct{}

// NewFilterInputHandler creates a new filter input handler
func NewFilterInputHandler() *FilterInputHandler {
	return &FilterInputHandler{}
}

// HandleInput opens the list, toggles rows, and removes chips. Any change to
// the selection refreshes the result view.
func (h *FilterInputHandler) HandleInput(msg tea.KeyMsg, m *model) (*model, tea.Cmd) {
	d := m.dropdown

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Toggle):
		if !d.IsOpen() {
			d.Open()
			return m, nil
		}
		label := d.Highlighted()
		d.ClickHighlighted()
		m.logger.Debug("Filter toggled", zap.String("label", string(label)), zap.Bool("selected", d.Selection().Has(label)))
	case key.Matches(msg, keys.Close):
		d.Close()
		return m, nil
	case key.Matches(msg, keys.Up):
		if d.IsOpen() {
			d.MoveCursor(-1)
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if !d.IsOpen() {
			d.Open()
			return m, nil
		}
		d.MoveCursor(1)
		return m, nil
	case key.Matches(msg, keys.Left):
		d.MoveChipCursor(-1)
		return m, nil
	case key.Matches(msg, keys.Right):
		d.MoveChipCursor(1)
		return m, nil
	case key.Matches(msg, keys.RemoveChip):
		if _, ok := d.RemoveFocusedChip(); !ok {
			return m, nil
		}
	case key.Matches(msg, keys.ClearFilter):
		d.Selection().Clear()
	default:
		return m, nil
	}

	m.refreshResultView()
	return m, nil
}

// CanHandleInput returns true when the filter panel has focus
func (h *FilterInputHandler) CanHandleInput(m *model) bool {
	return m.activePanel == filterPanel
}
