package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// CancelPolicy controls what happens to a Call Log row when its reservation
// is cancelled. Operations wanted cancelled calls to stay visible in the
// log; the policy exists so that decision remains configurable rather than
// hard-coded.
type CancelPolicy string

const (
	// CancelKeep leaves the row in place (default).
	CancelKeep CancelPolicy = "keep"
	// CancelRemove deletes the row from its date tab.
	CancelRemove CancelPolicy = "remove"
)

// Config is the explicit configuration for the sync service. It is loaded
// once at startup and injected into the components that need it; nothing in
// the engine reads the environment ad hoc.
type Config struct {
	// SpreadsheetID names the target Call Log spreadsheet. Required for any
	// sync operation.
	SpreadsheetID string
	// CredentialsFile is an optional service-account JSON key used when a
	// request carries no user access token (and by the ops CLI).
	CredentialsFile string
	// DatabaseURL is the postgres DSN for the audit store. Empty = audit
	// events go to process logs only.
	DatabaseURL string
	// RedisURL enables the cross-instance per-sheet write lease. Empty =
	// in-process serialization only.
	RedisURL string
	// Port is the HTTP listen port for `calllog serve`.
	Port string
	// OnCancel is the cancellation policy for Call Log rows.
	OnCancel CancelPolicy
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured when present (development convenience); a missing
// .env is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	cfg := Config{
		SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_ID"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DatabaseURL:     os.Getenv("DB_CONNECTION_STRING"),
		RedisURL:        os.Getenv("REDIS_URL"),
		Port:            os.Getenv("PORT"),
		OnCancel:        CancelPolicy(os.Getenv("CALLLOG_ON_CANCEL")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	switch cfg.OnCancel {
	case "":
		cfg.OnCancel = CancelKeep
	case CancelKeep, CancelRemove:
	default:
		return cfg, fmt.Errorf("invalid CALLLOG_ON_CANCEL value %q (want keep or remove)", cfg.OnCancel)
	}

	return cfg, nil
}

// RequireSpreadsheet verifies the fatal precondition for any sync call.
func (c Config) RequireSpreadsheet() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SHEETS_ID is not configured")
	}
	return nil
}
