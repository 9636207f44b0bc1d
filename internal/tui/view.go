package tui

import (
	"fmt"
	"strings"

	"github.com/dlsheets/shepherd/internal/conversation"
)

const headerTitle = "Christian Life Assistant"

// chromeHeight is the number of rows taken by everything that is not the
// scrolling content pane
func (m *Model) chromeHeight() int {
	return 2 + m.offersHeight() + 1 + m.input.Height() + 1
}

func (m *Model) offersHeight() int {
	offers := m.currentOffers()
	if len(offers) == 0 {
		return 0
	}
	return len(offers) + 1
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render(headerTitle))
	if m.showRefs {
		b.WriteString(m.styles.Help.Render("  [references - ctrl+r to return]"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if offers := m.currentOffers(); len(offers) > 0 && !m.loading {
		title := "Dig Deeper"
		if len(m.store.Turns()) <= 1 {
			title = "Conversation Starters"
		}
		b.WriteString(m.styles.SectionTitle.Render(title))
		b.WriteString("\n")
		for i, offer := range offers {
			b.WriteString(m.styles.Suggestion.Render(fmt.Sprintf("  %d. %s", i+1, offer)))
			b.WriteString("\n")
		}
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Help.Render(" waiting on the Lord's servers..."))
	case m.errText != "":
		b.WriteString(m.styles.Error.Render(m.errText))
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter send - digits pick a suggestion - ctrl+r references - esc quit"))

	return b.String()
}

func (m *Model) renderTurns() string {
	turns := m.store.Turns()

	var b strings.Builder
	body := m.styles.Body.Width(m.viewport.Width)
	for _, t := range turns {
		if t.Content == "" && !t.Open {
			// A stream that failed before its first chunk leaves an empty
			// closed turn behind; nothing to show
			continue
		}

		switch t.Role {
		case conversation.RoleUser:
			b.WriteString(m.styles.UserLabel.Render("You"))
		case conversation.RoleAssistant:
			b.WriteString(m.styles.AssistantLabel.Render("Shepherd"))
		}
		b.WriteString("\n")

		content := t.Content
		if t.Open && content == "" {
			content = "..."
		}
		b.WriteString(body.Render(content))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m *Model) renderReferences() string {
	refs := m.store.References()
	if len(refs) == 0 {
		return m.styles.Help.Render("No scripture references collected yet.")
	}

	var b strings.Builder
	body := m.styles.Body.Width(m.viewport.Width)
	for _, r := range refs {
		locator := fmt.Sprintf("%s (%s)", r.Reference, r.Version)
		b.WriteString(m.styles.RefLocator.Render(locator))
		if r.Topic != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.RefTopic.Render(r.Topic))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(r.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}
