package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dlsheets/shepherd/internal/conversation"
	"github.com/dlsheets/shepherd/internal/orchestrator"
)

func newTestModel(t *testing.T) (Model, *conversation.Store) {
	t.Helper()
	store := conversation.NewStore()
	orch := orchestrator.New(store, nil, nil, nil, zap.NewNop())
	m := New(orch, store)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, store
}

func TestCurrentOffers_StartersWhilePristine(t *testing.T) {
	m, store := newTestModel(t)
	store.AppendAssistant("Peace be with you.")

	assert.Equal(t, Starters, m.currentOffers())
}

func TestCurrentOffers_SuggestionsAfterAnswer(t *testing.T) {
	m, store := newTestModel(t)
	store.AppendAssistant("Peace be with you.")
	store.AppendUser("a question")
	id := store.AppendAssistant("an answer")
	store.AttachSuggestions(id, []string{"x", "y", "z"})

	assert.Equal(t, []string{"x", "y", "z"}, m.currentOffers())
}

func TestCurrentOffers_NoneWhileStreaming(t *testing.T) {
	m, store := newTestModel(t)
	store.AppendAssistant("Peace be with you.")
	store.AppendUser("a question")
	store.OpenAssistant()

	assert.Nil(t, m.currentOffers())
}

func TestRenderTurns_SkipsEmptyClosedTurns(t *testing.T) {
	m, store := newTestModel(t)
	store.AppendUser("hello")
	id := store.OpenAssistant()
	store.CloseAssistant(id)
	store.AppendAssistant("Sorry, I encountered an error: boom")

	out := m.renderTurns()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "Sorry, I encountered an error: boom")
	// The failed turn that never received a chunk is not rendered as an
	// empty block
	assert.NotContains(t, out, "...\n")
}

func TestView_ShowsErrorLine(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(submitDoneMsg{err: assert.AnError})
	model := updated.(Model)

	assert.Contains(t, model.View(), assert.AnError.Error())
}
