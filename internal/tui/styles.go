package tui

import "github.com/charmbracelet/lipgloss"

var (
	amber  = lipgloss.Color("214")
	gray   = lipgloss.Color("245")
	red    = lipgloss.Color("203")
	purple = lipgloss.Color("105")
)

// Styles holds the lipgloss styles for the chat screen
type Styles struct {
	Header         lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Body           lipgloss.Style
	Suggestion     lipgloss.Style
	SectionTitle   lipgloss.Style
	RefLocator     lipgloss.Style
	RefTopic       lipgloss.Style
	Error          lipgloss.Style
	Help           lipgloss.Style
}

// DefaultStyles returns the default chat screen styles
func DefaultStyles() Styles {
	return Styles{
		Header:         lipgloss.NewStyle().Bold(true).Foreground(amber),
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(purple),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(amber),
		Body:           lipgloss.NewStyle(),
		Suggestion:     lipgloss.NewStyle().Foreground(amber),
		SectionTitle:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(amber),
		RefLocator:     lipgloss.NewStyle().Bold(true),
		RefTopic:       lipgloss.NewStyle().Foreground(gray).Italic(true),
		Error:          lipgloss.NewStyle().Foreground(red),
		Help:           lipgloss.NewStyle().Foreground(gray),
	}
}
