package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MPC-IT/calllog-sync/internal/calllog"
	"github.com/MPC-IT/calllog-sync/internal/config"
)

var (
	ensureDate        string
	ensureAccessToken string
)

var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Provision the Call Log tab for a date",
	Long: `Creates the date tab (if absent) and writes the header row. Safe to
run repeatedly; existing tabs and headers are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runEnsure,
}

func init() {
	ensureCmd.Flags().StringVar(&ensureDate, "date", "", "Call date (YYYY-MM-DD); defaults to today")
	ensureCmd.Flags().StringVar(&ensureAccessToken, "access-token", "", "OAuth access token (default: service-account credentials)")
}

func runEnsure(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.RequireSpreadsheet(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sheetName := calllog.SheetName(time.Now())
	if ensureDate != "" {
		var perr error
		sheetName, perr = calllog.SheetNameForDate(ensureDate)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value %q: %v\n", ensureDate, perr)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	client, err := cliSheetClient(ctx, cfg, ensureAccessToken)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := calllog.EnsureSheet(ctx, client, cfg.SpreadsheetID, sheetName); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to provision %q: %v\n", sheetName, err)
		os.Exit(2)
	}

	fmt.Printf("Tab %q is ready.\n", sheetName)
	return nil
}
