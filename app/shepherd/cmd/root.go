package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "shepherd",
	Short: "A scripture-study assistant for the terminal",
	Long: `Shepherd is a conversational assistant for Christian life and scripture
study. It streams answers from a generative model, collects every scripture
reference quoted along the way, and offers follow-up questions to dig deeper.`,
	PersistentPreRun: loadDotEnv,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo records build-time version information for the version
// command
func SetVersionInfo(version, gitCommit, buildTime string) {
	versionInfo = fmt.Sprintf("shepherd %s (commit %s, built %s)", version, gitCommit, buildTime)
}

func loadDotEnv(_ *cobra.Command, _ []string) {
	// Absence of a .env file is fine; the environment may carry everything
	_ = godotenv.Load()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
