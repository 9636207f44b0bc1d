package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dlsheets/shepherd/internal/tui"
)

const welcomeMessage = "Peace be with you. I am here to serve as your guide through the scriptures. How may I help you in your walk with the Lord today?"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := buildApp(ctx, defaultChatLogPath())
	if err != nil {
		return err
	}
	defer app.shutdown(ctx)

	app.store.AppendAssistant(welcomeMessage)

	program := tea.NewProgram(tui.New(app.orch, app.store), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
