package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"bfhl/src/bfhl"
	"bfhl/src/panels/editor"
	"bfhl/src/panels/filter"
	"bfhl/src/panels/result"
)

type panel int

const (
	editorPanel panel = iota
	filterPanel
	resultPanel
)

// submitter is the network side of the submit controller.
type submitter interface {
	Submit(ctx context.Context, req *bfhl.Request) (*bfhl.Result, error)
	Endpoint() string
}

type submitResultMsg struct {
	result *bfhl.Result
	err    error
}

type clipboardMsg struct {
	err error
}

type model struct {
	ctx    context.Context
	client submitter
	logger *zap.Logger
	theme  *Theme

	allowConcurrent bool

	width       int
	height      int
	activePanel panel

	editor         textarea.Model
	spinner        spinner.Model
	resultViewport viewport.Model
	help           help.Model

	dropdown       *filter.Dropdown
	jq             *JQFilter
	commandPalette *CommandPalette
	inputHandler   *InputHandler

	result     *bfhl.Result
	errMessage string
	inFlight   int
	status     string
}

type modelOptions struct {
	allowConcurrent bool
}

func newModel(ctx context.Context, client submitter, theme *Theme, logger *zap.Logger, opts modelOptions) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.CursorStyle

	ed := editor.New()
	ed.Focus()

	return model{
		ctx:             ctx,
		client:          client,
		logger:          logger,
		theme:           theme,
		allowConcurrent: opts.allowConcurrent,
		activePanel:     editorPanel,
		editor:          ed,
		spinner:         s,
		resultViewport:  viewport.New(40, 5),
		help:            help.New(),
		dropdown:        filter.NewDropdown(),
		jq:              NewJQFilter(),
		commandPalette:  NewCommandPalette(),
		inputHandler:    NewInputHandler(),
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

// isLoading is true while at least one submission is unresolved.
func (m *model) isLoading() bool {
	return m.inFlight > 0
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.inputHandler.HandleKeyboardInput(&m, msg)

	case submitResultMsg:
		m.handleSubmitResult(msg)
		return m, nil

	case jqResultMsg:
		if !m.jq.Current(msg) {
			m.logger.Debug("Dropped jq result for a previous response", zap.String("expr", msg.expr))
			return m, nil
		}
		if msg.err != nil {
			m.status = msg.err.Error()
			m.logger.Debug("jq evaluation failed", zap.String("expr", msg.expr), zap.Error(msg.err))
		} else {
			m.jq.SetResult(msg)
			m.status = ""
		}
		m.refreshResultView()
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.activePanel == editorPanel {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit parses the editor text and, when valid, starts one request. Parse
// and shape failures never reach the network.
func (m *model) submit() tea.Cmd {
	if m.isLoading() && !m.allowConcurrent {
		m.logger.Debug("Submit ignored while a request is in flight")
		return nil
	}

	req, err := bfhl.ParseRequest(m.editor.Value())
	if err != nil {
		m.fail(err)
		return nil
	}

	m.inFlight++
	m.status = ""

	ctx, client := m.ctx, m.client
	send := func() tea.Msg {
		res, err := client.Submit(ctx, req)
		return submitResultMsg{result: res, err: err}
	}

	if m.inFlight == 1 {
		return tea.Batch(send, m.spinner.Tick)
	}
	return send
}

func (m *model) handleSubmitResult(msg submitResultMsg) {
	if m.inFlight > 0 {
		m.inFlight--
	}

	if msg.err != nil {
		m.fail(msg.err)
		return
	}

	m.result = msg.result
	m.errMessage = ""
	m.dropdown.Reset()
	m.jq.Clear()
	m.refreshResultView()
	m.resultViewport.GotoTop()
	m.logger.Debug("Response stored", zap.String("submission", msg.result.ID))
}

// fail records err for the user and drops the previous response.
func (m *model) fail(err error) {
	m.errMessage = bfhl.UserMessage(err)
	m.result = nil
	m.dropdown.Close()
	m.jq.Clear()
	m.refreshResultView()
	if m.activePanel != editorPanel {
		m.focusPanel(editorPanel)
	}
	m.logger.Warn("Submit failed", zap.Error(err))
}

func (m *model) response() *bfhl.Response {
	if m.result == nil {
		return nil
	}
	return m.result.Response
}

// renderedLines is the filtered view of the current response.
func (m *model) renderedLines() []result.Line {
	return result.Lines(m.response(), m.dropdown.Selection())
}

// resultText is the plain text the result panel shows.
func (m *model) resultText() string {
	if m.jq.Applied() != "" {
		return m.jq.Output()
	}
	return result.Text(m.renderedLines())
}

func (m *model) refreshResultView() {
	if m.jq.Applied() != "" {
		m.resultViewport.SetContent(m.jq.Output())
		return
	}
	m.resultViewport.SetContent(result.Colorize(m.renderedLines(), m.theme.ResultStyles()))
}

// panels lists the panels that can take focus right now.
func (m *model) panels() []panel {
	if m.result == nil {
		return []panel{editorPanel}
	}
	return []panel{editorPanel, filterPanel, resultPanel}
}

func (m *model) cyclePanel(delta int) {
	available := m.panels()
	idx := 0
	for i, p := range available {
		if p == m.activePanel {
			idx = i
		}
	}
	idx = (idx + delta + len(available)) % len(available)
	m.focusPanel(available[idx])
}

func (m *model) focusPanel(p panel) {
	m.activePanel = p
	if p == editorPanel {
		m.editor.Focus()
	} else {
		m.editor.Blur()
		m.dropdown.Close()
	}
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	width := m.width - 2

	header := m.theme.TitleStyle.Width(width).Render("bfhl - " + m.client.Endpoint())

	sections := []string{header}
	sections = append(sections, editor.RenderEditor(
		width, &m.editor, m.activePanel == editorPanel, m.isLoading(),
		m.errMessage, m.spinner.View(), m.theme.EditorStyles()))

	used := 1 + editor.Height(m.errMessage) + 1
	if m.result != nil {
		filterView := filter.RenderFilter(width, m.dropdown, m.activePanel == filterPanel, m.theme.FilterStyles(), m.theme.FilterIcons())
		sections = append(sections, filterView)
		used += lipgloss.Height(filterView)

		if m.dropdown.Selection().Len() > 0 || m.jq.Applied() != "" || m.jq.Editing() {
			height := m.height - used - 2
			sections = append(sections, m.renderResultPanel(width, height))
		}
	}

	footer := m.theme.HeaderStyle.Width(width).Render(m.help.View(m.helpKeys()))
	sections = append(sections, footer)

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.commandPalette.IsVisible() {
		return placeOverlay(m.width, m.height, m.commandPalette.Render(m.width, m.theme))
	}
	return view
}

func (m *model) renderResultPanel(width, height int) string {
	title := "Filtered Response"
	if applied := m.jq.Applied(); applied != "" {
		title = "jq: " + applied
	}

	status := m.resultStatus()
	if m.jq.Editing() {
		height -= 6
	}
	panelView := result.RenderResult(width, height, m.activePanel == resultPanel, title, status, &m.resultViewport, m.theme.ResultStyles())
	if m.jq.Editing() {
		prompt := m.jq.View(func(s string) string { return m.theme.CursorStyle.Render(s) })
		return lipgloss.JoinVertical(lipgloss.Left, panelView, prompt)
	}
	return panelView
}

func (m *model) resultStatus() string {
	if m.status != "" {
		return m.status
	}
	if m.result == nil {
		return ""
	}
	return fmt.Sprintf("%d · %s · %s · %s",
		m.result.StatusCode,
		humanize.Bytes(uint64(len(m.result.Raw))),
		m.result.Elapsed.Round(time.Millisecond),
		humanize.Time(m.result.ReceivedAt))
}
