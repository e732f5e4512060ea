package sheets

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// The client converts backend failures into this typed hierarchy so callers
// can branch with errors.As instead of matching message substrings.

// AuthError means the access token is invalid, expired or revoked.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("sheets: authorization failed: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// PermissionError means the token is valid but lacks access to the
// spreadsheet.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string { return fmt.Sprintf("sheets: permission denied: %v", e.Err) }
func (e *PermissionError) Unwrap() error { return e.Err }

// NotFoundError means the spreadsheet, sheet or range does not exist.
type NotFoundError struct {
	What string
	Err  error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("sheets: %s not found: %v", e.What, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

// RateLimitError means the API quota is exhausted; the operation may succeed
// if retried later.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string { return fmt.Sprintf("sheets: rate limited: %v", e.Err) }
func (e *RateLimitError) Unwrap() error { return e.Err }

// hasReason reports whether a googleapi error carries the given reason code.
func hasReason(gerr *googleapi.Error, reason string) bool {
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}

// wrapAPIError maps a raw Google API error onto the typed hierarchy. The
// classification is structural (HTTP status and reason codes), never based
// on message text.
func wrapAPIError(op, what string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized:
			return &AuthError{Err: err}
		case gerr.Code == http.StatusTooManyRequests,
			gerr.Code == http.StatusForbidden && hasReason(gerr, "rateLimitExceeded"):
			return &RateLimitError{Err: err}
		case gerr.Code == http.StatusForbidden:
			return &PermissionError{Err: err}
		case gerr.Code == http.StatusNotFound:
			return &NotFoundError{What: what, Err: err}
		}
	}

	// Token refresh failures surface as oauth2 errors, not googleapi ones.
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return &AuthError{Err: err}
	}

	return fmt.Errorf("sheets: %s: %w", op, err)
}
