package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/MPC-IT/calllog-sync/internal/config"
	"github.com/MPC-IT/calllog-sync/internal/sheets"
	"github.com/MPC-IT/calllog-sync/internal/storage"
)

// openLease returns a redis client when a lease is configured, nil otherwise.
func openLease(cfg config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	log.Printf("per-sheet write lease enabled via redis at %s", cfg.RedisURL)
	return storage.OpenRedis(cfg.RedisURL)
}

// cliSheetClient builds a sheet client for the ops commands: an explicitly
// passed access token wins, otherwise the configured service account is used.
func cliSheetClient(ctx context.Context, cfg config.Config, accessToken string) (*sheets.Client, error) {
	if accessToken != "" {
		return sheets.NewClient(ctx, sheets.AccessTokenSource(accessToken))
	}
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("no --access-token given and GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	ts, err := sheets.CredentialsTokenSource(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(ctx, ts)
}
