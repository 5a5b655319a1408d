package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "royalty-cli",
	Short: "Back-office command line tool",
	Long: `Operational companion for the royalty platform.
Ingest earnings reports from disk and manage administrator accounts
without going through the HTTP API.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
