package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	NextPanel   key.Binding
	PrevPanel   key.Binding
	Palette     key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	Close       key.Binding
	RemoveChip  key.Binding
	ClearFilter key.Binding
	JQ          key.Binding
	ResetJQ     key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	NextPanel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	PrevPanel: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous panel"),
	),
	Palette: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "commands"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous chip"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next chip"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "open/select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	RemoveChip: key.NewBinding(
		key.WithKeys("x", "delete", "backspace"),
		key.WithHelp("x", "remove chip"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear filters"),
	),
	JQ: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "jq filter"),
	),
	ResetJQ: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset jq"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// panelKeys adapts keyMap to help.KeyMap for the focused panel.
type panelKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (p panelKeys) ShortHelp() []key.Binding  { return p.short }
func (p panelKeys) FullHelp() [][]key.Binding { return p.full }

func (m *model) helpKeys() panelKeys {
	global := []key.Binding{keys.Submit, keys.NextPanel, keys.Palette, keys.ForceQuit}

	var local []key.Binding
	switch m.activePanel {
	case filterPanel:
		local = []key.Binding{keys.Toggle, keys.Up, keys.Down, keys.Left, keys.Right, keys.RemoveChip, keys.ClearFilter, keys.Quit}
	case resultPanel:
		local = []key.Binding{keys.Up, keys.Down, keys.JQ, keys.ResetJQ, keys.Copy, keys.Quit}
	}

	short := append([]key.Binding{}, global...)
	if len(local) > 3 {
		short = append(short, local[:3]...)
	} else {
		short = append(short, local...)
	}
	// In the editor "?" is typed text.
	if m.activePanel != editorPanel {
		short = append(short, keys.Help)
	}

	return panelKeys{short: short, full: [][]key.Binding{global, local}}
}
