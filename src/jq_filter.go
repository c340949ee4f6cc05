package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/itchyny/gojq"
)

// jqResultMsg carries the filter generation at the time evaluation started.
type jqResultMsg struct {
	expr       string
	result     string
	err        error
	generation int
}

// JQFilter runs jq expressions against the raw response body.
type JQFilter struct {
	input       textinput.Model
	editing     bool
	applied     string
	output      string
	suggestions []string
	selected    int
	lastInput   string
	generation  int
}

func NewJQFilter() *JQFilter {
	ti := textinput.New()
	ti.Prompt = "jq> "
	ti.Placeholder = ".numbers"
	return &JQFilter{input: ti}
}

func (f *JQFilter) Editing() bool {
	return f.editing
}

// Applied is the expression currently shaping the result view, or "".
func (f *JQFilter) Applied() string {
	return f.applied
}

func (f *JQFilter) Output() string {
	return f.output
}

// Start opens the prompt, restoring the previous expression.
func (f *JQFilter) Start(raw []byte) tea.Cmd {
	f.editing = true
	f.input.SetValue(f.lastInput)
	f.input.CursorEnd()
	f.selected = 0
	f.suggestions = jqSuggestions(raw)
	return f.input.Focus()
}

// Cancel closes the prompt without applying.
func (f *JQFilter) Cancel() {
	f.lastInput = f.input.Value()
	f.editing = false
	f.input.Blur()
}

// Apply closes the prompt and evaluates the expression in the background.
func (f *JQFilter) Apply(raw []byte) tea.Cmd {
	expr := strings.TrimSpace(f.input.Value())
	f.Cancel()
	if expr == "" || len(raw) == 0 {
		return nil
	}

	body := append([]byte(nil), raw...)
	generation := f.generation
	return func() tea.Msg {
		out, err := runJQ(expr, body)
		return jqResultMsg{expr: expr, result: out, err: err, generation: generation}
	}
}

// Current reports whether msg was evaluated against the body the filter
// holds now. Results started before the last Clear are stale.
func (f *JQFilter) Current(msg jqResultMsg) bool {
	return msg.generation == f.generation
}

// SetResult records a finished evaluation. Stale results are dropped.
func (f *JQFilter) SetResult(msg jqResultMsg) {
	if msg.err != nil || !f.Current(msg) {
		return
	}
	f.applied = msg.expr
	f.output = msg.result
}

// Reset drops the applied expression. The last typed input is kept.
func (f *JQFilter) Reset() {
	f.applied = ""
	f.output = ""
}

// Clear forgets everything, used when a new response arrives.
func (f *JQFilter) Clear() {
	f.generation++
	f.Reset()
	f.lastInput = ""
	f.editing = false
	f.input.SetValue("")
	f.input.Blur()
}

// Update forwards key input to the prompt. Tab completes the selected
// suggestion; up/down move through suggestions.
func (f *JQFilter) Update(msg tea.KeyMsg) tea.Cmd {
	matches := f.FilteredSuggestions()
	switch msg.String() {
	case "tab":
		if len(matches) > 0 && f.selected < len(matches) {
			f.input.SetValue(matches[f.selected])
			f.input.CursorEnd()
			f.selected = 0
		}
		return nil
	case "up":
		if len(matches) > 0 {
			f.selected = (f.selected - 1 + len(matches)) % len(matches)
		}
		return nil
	case "down":
		if len(matches) > 0 {
			f.selected = (f.selected + 1) % len(matches)
		}
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.selected = 0
	return cmd
}

// FilteredSuggestions returns suggestions containing the typed text.
func (f *JQFilter) FilteredSuggestions() []string {
	typed := strings.ToLower(strings.TrimSpace(f.input.Value()))
	if typed == "" {
		return f.suggestions
	}
	var out []string
	for _, s := range f.suggestions {
		if strings.Contains(strings.ToLower(s), typed) && s != f.input.Value() {
			out = append(out, s)
		}
	}
	return out
}

// View renders the prompt and up to five suggestions.
func (f *JQFilter) View(cursorStyle func(string) string) string {
	var b strings.Builder
	b.WriteString(f.input.View())
	matches := f.FilteredSuggestions()
	for i, s := range matches {
		if i == 5 {
			break
		}
		b.WriteString("\n")
		if i == f.selected {
			b.WriteString(cursorStyle("  " + s))
		} else {
			b.WriteString("  " + s)
		}
	}
	return b.String()
}

func runJQ(expr string, raw []byte) (string, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return "", fmt.Errorf("jq parse error: %v", err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("JSON parse error: %v", err)
	}

	iter := query.Run(data)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return "", fmt.Errorf("jq filter error: %v", err)
		}
		results = append(results, v)
	}

	var out any
	switch len(results) {
	case 0:
		out = nil
	case 1:
		out = results[0]
	default:
		out = results
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSON marshal error: %v", err)
	}
	return string(b), nil
}

// jqSuggestions offers a few jq builtins plus field paths found in raw.
func jqSuggestions(raw []byte) []string {
	suggestions := []string{".", "keys", "length"}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return suggestions
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return suggestions
	}

	fields := make([]string, 0, len(obj))
	for k := range obj {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	for _, k := range fields {
		path := "." + k
		suggestions = append(suggestions, path)
		if _, isArray := obj[k].([]any); isArray {
			suggestions = append(suggestions, path+"[]", path+" | length")
		}
	}
	return suggestions
}
