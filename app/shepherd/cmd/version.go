package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionInfo = "shepherd dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionInfo)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
