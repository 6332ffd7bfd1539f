package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marktree",
	Short: "Parse and filter HTML into the marktree arena format",
	Long: `marktree drives the marktree library's buffered, encoding-aware HTML
parser from the command line, for manual testing of the library end to
end.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {}
