package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MPC-IT/calllog-sync/internal/audit"
	"github.com/MPC-IT/calllog-sync/internal/calllog"
	"github.com/MPC-IT/calllog-sync/internal/config"
	"github.com/MPC-IT/calllog-sync/internal/model"
)

var (
	syncFile        string
	syncOldFile     string
	syncAccessToken string
	syncDryRun      bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync one reservation from a JSON projection file",
	Long: `Reads a reservation projection from --file and mirrors it into the
Call Log. With --old, runs the update path (including the cross-tab move
when the call date changed) instead of a plain insert.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncFile, "file", "", "Reservation projection JSON (required)")
	syncCmd.Flags().StringVar(&syncOldFile, "old", "", "Previous projection JSON; switches to the update path")
	syncCmd.Flags().StringVar(&syncAccessToken, "access-token", "", "OAuth access token (default: service-account credentials)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the computed tab name and row values without writing")
	syncCmd.MarkFlagRequired("file")
}

func readProjection(path string) (model.Reservation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var r model.Reservation
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Reservation{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r, err := readProjection(syncFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if syncDryRun {
		sheetName, perr := calllog.SheetNameForDate(r.CallDate)
		if perr != nil {
			fmt.Printf("Warning: %v (would file under today)\n", perr)
		}
		entry := calllog.MapReservation(r)
		fmt.Printf("Tab:  %s\n", sheetName)
		fmt.Printf("Row:  %v\n", entry.Row())
		return nil
	}

	if err := cfg.RequireSpreadsheet(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := cliSheetClient(ctx, cfg, syncAccessToken)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	writer := calllog.NewWriter(cfg, audit.LogOnly{}, openLease(cfg))
	actor := calllog.Actor{UserID: "cli"}

	var result calllog.Result
	if syncOldFile != "" {
		old, err := readProjection(syncOldFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		result = writer.Update(ctx, client, old, r, actor)
	} else {
		result = writer.Add(ctx, client, r, actor)
	}

	if !result.Success {
		fmt.Fprintf(os.Stderr, "Sync failed (%s): %s\n", result.Reason, result.Error)
		os.Exit(2)
	}
	fmt.Printf("Synced reservation %d to %q row %d.\n", r.ID, result.SheetName, result.Row)
	return nil
}
