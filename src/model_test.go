package main

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bfhl/src/bfhl"
	"bfhl/src/panels/filter"
)

const validInput = `{ "data": ["M", "1", "334", "4", "B"] }`

type fakeReply struct {
	result *bfhl.Result
	err    error
}

// fakeSubmitter returns queued replies in order and counts calls.
type fakeSubmitter struct {
	mu      sync.Mutex
	replies []fakeReply
	calls   int
}

func (f *fakeSubmitter) Submit(ctx context.Context, req *bfhl.Request) (*bfhl.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.replies) == 0 {
		return nil, fmt.Errorf("%w: no reply queued", bfhl.ErrNetwork)
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.result, r.err
}

func (f *fakeSubmitter) Endpoint() string {
	return "http://test/bfhl"
}

func (f *fakeSubmitter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newResult(id string, numbers ...string) *bfhl.Result {
	return &bfhl.Result{
		ID: id,
		Response: &bfhl.Response{
			Alphabets:       []string{"M", "B"},
			Numbers:         numbers,
			HighestAlphabet: bfhl.HighestAlphabet{Values: []string{"M"}},
		},
		StatusCode: 200,
		Elapsed:    12 * time.Millisecond,
		ReceivedAt: time.Now(),
		Raw:        []byte(`{"alphabets":["M","B"],"numbers":["1"],"highest_alphabet":["M"]}`),
	}
}

func newTestModel(client submitter, opts modelOptions) model {
	m := newModel(context.Background(), client, NewTheme(defaultTheme()), zap.NewNop(), opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(model)
}

func press(t *testing.T, m model, msg tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func submitResults(msgs []tea.Msg) []submitResultMsg {
	var out []submitResultMsg
	for _, msg := range msgs {
		if r, ok := msg.(submitResultMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

// submitAndResolve presses ctrl+s and delivers the reply.
func submitAndResolve(t *testing.T, m model) model {
	t.Helper()
	m, cmd := press(t, m, ctrlS)
	results := submitResults(collect(cmd))
	require.Len(t, results, 1)
	next, _ := m.Update(results[0])
	return next.(model)
}

func TestSubmitRejectsInvalidInputWithoutNetwork(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "not json", input: "not json", want: bfhl.ParseErrorMessage},
		{name: "empty", input: "", want: bfhl.ParseErrorMessage},
		{name: "data not array", input: `{"data": 5}`, want: bfhl.ShapeErrorMessage},
		{name: "missing data", input: `{"items": []}`, want: bfhl.ShapeErrorMessage},
		{name: "array root", input: `[1, 2]`, want: bfhl.ShapeErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSubmitter{}
			m := newTestModel(fake, modelOptions{})
			m.editor.SetValue(tt.input)

			m, cmd := press(t, m, ctrlS)

			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, m.errMessage)
			assert.False(t, m.isLoading())
			assert.Nil(t, m.result)
			assert.Zero(t, fake.Calls())
		})
	}
}

func TestSubmitLoadingLifecycle(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1", "334", "4")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)

	m, cmd := press(t, m, ctrlS)
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading())
	assert.Contains(t, m.View(), "Submitting...")

	results := submitResults(collect(cmd))
	require.Len(t, results, 1)
	assert.Equal(t, 1, fake.Calls())

	next, _ := m.Update(results[0])
	m = next.(model)

	assert.False(t, m.isLoading())
	assert.Empty(t, m.errMessage)
	require.NotNil(t, m.result)
	assert.Equal(t, "one", m.result.ID)
}

func TestSubmitFailureClearsResponseKeepsSelection(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{
		{result: newResult("one", "1")},
		{err: fmt.Errorf("%w: connection refused", bfhl.ErrNetwork)},
	}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)

	m = submitAndResolve(t, m)
	m.dropdown.Selection().Add(filter.Numbers)
	m.dropdown.Open()

	m = submitAndResolve(t, m)

	assert.Equal(t, bfhl.NetworkErrorMessage, m.errMessage)
	assert.Nil(t, m.result)
	assert.False(t, m.isLoading())
	assert.False(t, m.dropdown.IsOpen())
	assert.True(t, m.dropdown.Selection().Has(filter.Numbers))
	assert.Equal(t, editorPanel, m.activePanel)
}

func TestNewResponseResetsSelection(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{
		{result: newResult("one", "1")},
		{result: newResult("two", "2")},
	}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)

	m = submitAndResolve(t, m)
	m.dropdown.Selection().Add(filter.Alphabets)
	m.dropdown.Selection().Add(filter.Numbers)

	m = submitAndResolve(t, m)

	assert.Equal(t, "two", m.result.ID)
	assert.Zero(t, m.dropdown.Selection().Len())
	assert.Empty(t, m.renderedLines())
}

func TestSubmitGuardedWhileInFlight(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)

	m, first := press(t, m, ctrlS)
	require.NotNil(t, first)

	m, second := press(t, m, ctrlS)
	assert.Nil(t, second)
	assert.Equal(t, 1, m.inFlight)

	results := submitResults(collect(first))
	require.Len(t, results, 1)
	next, _ := m.Update(results[0])
	m = next.(model)

	assert.False(t, m.isLoading())
	assert.Equal(t, 1, fake.Calls())
}

func TestConcurrentSubmitsLastResolutionWins(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{
		{result: newResult("first", "1")},
		{result: newResult("second", "2")},
	}}
	m := newTestModel(fake, modelOptions{allowConcurrent: true})
	m.editor.SetValue(validInput)

	m, cmd1 := press(t, m, ctrlS)
	m, cmd2 := press(t, m, ctrlS)
	require.NotNil(t, cmd1)
	require.NotNil(t, cmd2)
	assert.Equal(t, 2, m.inFlight)

	r1 := submitResults(collect(cmd1))
	r2 := submitResults(collect(cmd2))
	require.Len(t, r1, 1)
	require.Len(t, r2, 1)

	// Resolve out of order.
	next, _ := m.Update(r2[0])
	m = next.(model)
	assert.True(t, m.isLoading())

	next, _ = m.Update(r1[0])
	m = next.(model)
	assert.False(t, m.isLoading())
	assert.Equal(t, "first", m.result.ID)
}

func TestViewShowsResultOnlyWithSelection(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1", "334", "4")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)

	assert.NotContains(t, m.View(), "Filter Response")

	m = submitAndResolve(t, m)
	view := m.View()
	assert.Contains(t, view, "Filter Response")
	assert.NotContains(t, view, "Filtered Response")

	m.dropdown.Selection().Add(filter.Numbers)
	m.refreshResultView()
	assert.Contains(t, m.View(), "Filtered Response")
	assert.Equal(t, "Numbers: 1, 334, 4", m.resultText())
}

func TestFilterPanelKeys(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)
	m = submitAndResolve(t, m)

	m, _ = press(t, m, tab)
	require.Equal(t, filterPanel, m.activePanel)

	m, _ = press(t, m, enter)
	assert.True(t, m.dropdown.IsOpen())

	m, _ = press(t, m, down)
	m, _ = press(t, m, enter)
	assert.False(t, m.dropdown.IsOpen())
	assert.Equal(t, []filter.Label{filter.Numbers}, m.dropdown.Selection().Labels())
	assert.Equal(t, "Numbers: 1", m.resultText())

	m, _ = press(t, m, runes("x"))
	assert.Zero(t, m.dropdown.Selection().Len())
	assert.Empty(t, m.resultText())
}

func TestTabStaysOnEditorWithoutResponse(t *testing.T) {
	m := newTestModel(&fakeSubmitter{}, modelOptions{})

	m, _ = press(t, m, tab)

	assert.Equal(t, editorPanel, m.activePanel)
}

func TestPaletteActions(t *testing.T) {
	m := newTestModel(&fakeSubmitter{}, modelOptions{})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.True(t, m.commandPalette.IsVisible())

	for _, r := range "example" {
		m, _ = press(t, m, runes(string(r)))
	}
	m, _ = press(t, m, enter)

	assert.False(t, m.commandPalette.IsVisible())
	assert.Equal(t, bfhl.ExampleInput, m.editor.Value())
}

func TestJQResultForPreviousResponseIsDropped(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{
		{result: newResult("one", "1")},
		{result: newResult("two", "2")},
	}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)
	m = submitAndResolve(t, m)

	m, _ = press(t, m, tab)
	m, _ = press(t, m, tab)
	require.Equal(t, resultPanel, m.activePanel)

	m, _ = press(t, m, runes("/"))
	require.True(t, m.jq.Editing())
	for _, r := range ".numbers" {
		m, _ = press(t, m, runes(string(r)))
	}
	m, jqCmd := press(t, m, enter)
	require.NotNil(t, jqCmd)

	m = submitAndResolve(t, m)
	require.Equal(t, "two", m.result.ID)

	next, _ := m.Update(jqCmd())
	m = next.(model)

	assert.Empty(t, m.jq.Applied())
	assert.Empty(t, m.status)
	assert.Empty(t, m.resultText())
}

func helpKeyNames(m *model) []string {
	var names []string
	for _, b := range m.helpKeys().ShortHelp() {
		names = append(names, b.Help().Key)
	}
	return names
}

func TestHelpKeyOnlyAdvertisedOutsideEditor(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)
	m = submitAndResolve(t, m)

	assert.NotContains(t, helpKeyNames(&m), "?")

	m, _ = press(t, m, runes("?"))
	assert.False(t, m.help.ShowAll)

	m, _ = press(t, m, tab)
	assert.Contains(t, helpKeyNames(&m), "?")

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestPaletteRunsHighlightedActionAfterMoving(t *testing.T) {
	fake := &fakeSubmitter{replies: []fakeReply{{result: newResult("one", "1")}}}
	m := newTestModel(fake, modelOptions{})
	m.editor.SetValue(validInput)
	m = submitAndResolve(t, m)
	m.dropdown.Selection().Add(filter.Numbers)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	for _, r := range "clear" {
		m, _ = press(t, m, runes(string(r)))
	}
	// Matches are Clear Input then Clear Filters.
	m, _ = press(t, m, down)
	require.Equal(t, actionClearFilters, m.commandPalette.GetSelectedCommand().Action)

	m, cmd := press(t, m, enter)

	assert.Nil(t, cmd)
	assert.Zero(t, m.dropdown.Selection().Len())
	assert.Equal(t, validInput, m.editor.Value())
	assert.Equal(t, 1, fake.Calls())
}
