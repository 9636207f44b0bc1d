// Package tui implements the interactive chat screen: the turn log, the
// prompt input, dig-deeper suggestion picks, and the collected-references
// pane. It reads the conversation store, never writes it; every mutation goes
// through the orchestrator.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dlsheets/shepherd/internal/conversation"
	"github.com/dlsheets/shepherd/internal/orchestrator"
)

// Starters are offered while the conversation holds nothing but the welcome
// message
var Starters = []string{
	"Create a sermon about the concept of the Trinity.",
	"What is the significance of Jesus' resurrection?",
	"Write a brief blog post about early church history.",
	"Share some verses about hope in hard times.",
}

type storeUpdatedMsg struct{}

type submitDoneMsg struct {
	err error
}

// Model is the bubbletea model for the chat screen
type Model struct {
	orch   *orchestrator.Orchestrator
	store  *conversation.Store
	styles Styles

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	width    int
	height   int
	ready    bool
	loading  bool
	showRefs bool
	errText  string
}

// New creates the chat screen around an orchestrator and its store
func New(orch *orchestrator.Orchestrator, store *conversation.Store) Model {
	input := textarea.New()
	input.Placeholder = "Ask about the scriptures..."
	input.Prompt = "> "
	input.SetHeight(2)
	input.ShowLineNumbers = false
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		orch:    orch,
		store:   store,
		styles:  DefaultStyles(),
		input:   input,
		spinner: sp,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, waitForUpdate(m.store))
}

// waitForUpdate re-renders whenever the store publishes a mutation, whether
// from the streaming loop or from a background merge
func waitForUpdate(store *conversation.Store) tea.Cmd {
	return func() tea.Msg {
		<-store.Updates()
		return storeUpdatedMsg{}
	}
}

func (m *Model) submit(prompt string) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return submitDoneMsg{err: orch.Submit(context.Background(), prompt)}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - m.chromeHeight()
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		m.input.SetWidth(m.width - 4)
		m.refreshContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			m.showRefs = !m.showRefs
			m.refreshContent()
			return m, nil
		case "enter":
			prompt := m.input.Value()
			if cmd := m.send(prompt); cmd != nil {
				return m, tea.Batch(cmd, m.spinner.Tick)
			}
			return m, nil
		case "1", "2", "3", "4":
			// With an empty input, digits pick a starter or a dig-deeper
			// suggestion; otherwise they type as usual
			if m.input.Value() == "" {
				if offer := m.offerAt(int(msg.String()[0] - '1')); offer != "" {
					if cmd := m.send(offer); cmd != nil {
						return m, tea.Batch(cmd, m.spinner.Tick)
					}
					return m, nil
				}
			}
		}

	case storeUpdatedMsg:
		m.refreshContent()
		cmds = append(cmds, waitForUpdate(m.store))

	case submitDoneMsg:
		m.loading = false
		if msg.err != nil && !errors.Is(msg.err, orchestrator.ErrBusy) {
			m.errText = msg.err.Error()
		}
		m.refreshContent()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// send validates and dispatches a prompt, returning nil when there is
// nothing to do
func (m *Model) send(prompt string) tea.Cmd {
	if prompt == "" || m.loading {
		return nil
	}
	m.loading = true
	m.errText = ""
	m.input.Reset()
	return m.submit(prompt)
}

// offerAt resolves a digit pick against whatever is currently offered
func (m *Model) offerAt(i int) string {
	offers := m.currentOffers()
	if i < 0 || i >= len(offers) {
		return ""
	}
	return offers[i]
}

// currentOffers returns the selectable prompts: conversation starters while
// the chat is pristine, otherwise the latest assistant turn's suggestions
func (m *Model) currentOffers() []string {
	turns := m.store.Turns()
	if len(turns) <= 1 {
		return Starters
	}
	last := turns[len(turns)-1]
	if last.Role == conversation.RoleAssistant && !last.Open {
		return last.Suggestions
	}
	return nil
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	// Offers come and go, so the chrome height varies between renders
	if h := m.height - m.chromeHeight(); h > 0 {
		m.viewport.Height = h
	}
	atBottom := m.viewport.AtBottom()
	if m.showRefs {
		m.viewport.SetContent(m.renderReferences())
	} else {
		m.viewport.SetContent(m.renderTurns())
	}
	if atBottom {
		m.viewport.GotoBottom()
	}
}
