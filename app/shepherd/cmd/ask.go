package cmd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dlsheets/shepherd/internal/conversation"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Ask a single question and print the answer",
	Long: `Streams one answer to stdout, then waits for the background enrichment
passes and prints the scripture references and follow-up suggestions they
found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := buildApp(ctx, "")
	if err != nil {
		return err
	}
	defer app.shutdown(ctx)

	prompt := strings.Join(args, " ")

	// Mirror assistant content to stdout as the store receives it
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var current uuid.UUID
		printed := 0
		flush := func() {
			t, ok := app.store.LastTurn()
			if !ok || t.Role != conversation.RoleAssistant {
				return
			}
			if t.ID != current {
				if printed > 0 {
					fmt.Println()
				}
				current = t.ID
				printed = 0
			}
			if len(t.Content) > printed {
				fmt.Print(t.Content[printed:])
				printed = len(t.Content)
			}
		}
		for {
			select {
			case <-app.store.Updates():
				flush()
			case <-stop:
				flush()
				return
			}
		}
	}()

	submitErr := app.orch.Submit(ctx, prompt)
	close(stop)
	wg.Wait()
	fmt.Println()

	if submitErr != nil {
		return submitErr
	}

	app.orch.WaitForEnrichment()

	if refs := app.store.References(); len(refs) > 0 {
		fmt.Println("\nScripture references:")
		for _, r := range refs {
			fmt.Printf("  - %s (%s) [%s]\n", r.Reference, r.Version, r.Topic)
		}
	}

	if last, ok := app.store.LastTurn(); ok && len(last.Suggestions) > 0 {
		fmt.Println("\nDig deeper:")
		for i, s := range last.Suggestions {
			fmt.Printf("  %d. %s\n", i+1, s)
		}
	}

	return nil
}
