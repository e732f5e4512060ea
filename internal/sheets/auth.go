package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// AccessTokenSource wraps a caller-supplied OAuth access token. The
// reservation CRUD flow hands us the token of the signed-in staff member;
// there is nothing to refresh on our side.
func AccessTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}

// CredentialsTokenSource builds a service-account token source from a JSON
// key file, scoped for spreadsheet read/write. Used by the ops CLI and as a
// fallback when a request carries no user token.
func CredentialsTokenSource(ctx context.Context, path string) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(b, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}
	return cfg.TokenSource(ctx), nil
}
