package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "calllog",
	Short: "Call Log synchronization service for conference-call reservations",
	Long: `calllog mirrors conference-call reservations into the operational
Call Log spreadsheet (one tab per call date, one row per reservation).
It runs as an HTTP service next to the reservation application and doubles
as an ops tool for provisioning tabs and one-off syncs.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(syncCmd)
}
