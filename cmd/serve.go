package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/MPC-IT/calllog-sync/internal/audit"
	"github.com/MPC-IT/calllog-sync/internal/calllog"
	"github.com/MPC-IT/calllog-sync/internal/config"
	"github.com/MPC-IT/calllog-sync/internal/server"
	"github.com/MPC-IT/calllog-sync/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Call Log sync HTTP service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.RequireSpreadsheet(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var auditLog audit.Logger = audit.LogOnly{}
	var auditStore *audit.Store
	if cfg.DatabaseURL != "" {
		db, err := storage.OpenDB(cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open audit database: %v\n", err)
			os.Exit(1)
		}
		auditStore = audit.NewStore(db)
		auditLog = auditStore
	} else {
		log.Println("no DB_CONNECTION_STRING set, audit events go to the process log")
	}

	writer := calllog.NewWriter(cfg, auditLog, openLease(cfg))
	srv := server.New(cfg, writer, auditStore, nil)

	app := srv.App()
	log.Printf("calllog service listening on :%s (spreadsheet %s)", cfg.Port, cfg.SpreadsheetID)
	return app.Listen(":" + cfg.Port)
}
