package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd без подкоманды поднимает HTTP API и сервер метрик
var rootCmd = &cobra.Command{
	Use:   "berrow",
	Short: "Book lending rooms: friends ask, the owner buys, sends and tracks returns",
	Long: `berrow serves the lending rooms API.

Subcommands:
  migrate  apply embedded schema migrations
  token    issue a session token for an email`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		runApp()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
