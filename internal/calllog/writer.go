package calllog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/MPC-IT/calllog-sync/internal/audit"
	"github.com/MPC-IT/calllog-sync/internal/config"
	"github.com/MPC-IT/calllog-sync/internal/model"
	"github.com/MPC-IT/calllog-sync/internal/sheets"
)

// Reason is the audit taxonomy for failed sync attempts.
type Reason string

const (
	ReasonAuthExpired      Reason = "auth_expired"
	ReasonPermissionDenied Reason = "permission_denied"
	ReasonSheetMissing     Reason = "sheet_missing"
	ReasonOther            Reason = "other"
)

// classifyReason maps a typed sheets error onto the audit taxonomy.
func classifyReason(err error) Reason {
	var authErr *sheets.AuthError
	if errors.As(err, &authErr) {
		return ReasonAuthExpired
	}
	var permErr *sheets.PermissionError
	if errors.As(err, &permErr) {
		return ReasonPermissionDenied
	}
	var nfErr *sheets.NotFoundError
	if errors.As(err, &nfErr) {
		return ReasonSheetMissing
	}
	return ReasonOther
}

// Actor identifies who triggered the sync, for the audit trail. Both fields
// may be empty.
type Actor struct {
	UserID string
	Email  string
}

// Result is the outcome of a sync operation. The reservation flow treats
// the Call Log as fire-and-forget, so failures are folded in here instead of
// being returned as errors.
type Result struct {
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped,omitempty"`
	SheetName string `json:"sheetName,omitempty"`
	Row       int    `json:"row,omitempty"`
	Reason    Reason `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Writer is the sync orchestrator. Construct once with the service config
// and audit logger; the sheet client is per-call because it carries the
// caller's access token.
type Writer struct {
	cfg   config.Config
	audit audit.Logger
	locks *sheetLocks
	lease *redisLease
}

// NewWriter builds a Writer. rdb may be nil; when set, writes additionally
// take a cross-instance lease per sheet name.
func NewWriter(cfg config.Config, auditLog audit.Logger, rdb *redis.Client) *Writer {
	w := &Writer{
		cfg:   cfg,
		audit: auditLog,
		locks: newSheetLocks(),
	}
	if rdb != nil {
		w.lease = &redisLease{rdb: rdb}
	}
	return w
}

// guard serializes writes to one sheet name; the returned function releases
// both the in-process mutex and the optional cross-instance lease.
func (w *Writer) guard(ctx context.Context, sheetName string) func() {
	unlock := w.locks.Lock(sheetName)
	if w.lease == nil {
		return unlock
	}
	release := w.lease.acquire(ctx, sheetName)
	return func() {
		release()
		unlock()
	}
}

// fail audits a sync failure and folds it into a Result.
func (w *Writer) fail(ctx context.Context, r model.Reservation, actor Actor, sheetName string, err error) Result {
	reason := classifyReason(err)
	log.Printf("calllog: sync failed for reservation %d (sheet %q, reason %s): %v",
		r.ID, sheetName, reason, err)
	w.audit.CallLogWriteFailed(ctx, r.ID, actor.UserID, actor.Email, string(reason), err.Error(), sheetName)
	return Result{Success: false, SheetName: sheetName, Reason: reason, Error: err.Error()}
}

// sheetNameFor resolves a reservation's tab name. A date parse failure is
// logged and the entry is filed under today; misfiling beats dropping the
// entry for this log.
func sheetNameFor(r model.Reservation) string {
	name, err := SheetNameForDate(r.CallDate)
	if err != nil {
		log.Printf("calllog: reservation %d: %v, filing under %q", r.ID, err, name)
	}
	return name
}

// Add mirrors a newly created reservation into its date tab: ensure the tab
// and headers, find the next writable row, write the six columns.
func (w *Writer) Add(ctx context.Context, api SheetAPI, r model.Reservation, actor Actor) Result {
	if err := w.cfg.RequireSpreadsheet(); err != nil {
		return w.fail(ctx, r, actor, "", err)
	}

	sheetName := sheetNameFor(r)
	defer w.guard(ctx, sheetName)()

	if err := EnsureSheet(ctx, api, w.cfg.SpreadsheetID, sheetName); err != nil {
		return w.fail(ctx, r, actor, sheetName, err)
	}

	row, err := NextEmptyRow(ctx, api, w.cfg.SpreadsheetID, sheetName)
	if err != nil {
		return w.fail(ctx, r, actor, sheetName, err)
	}

	entry := MapReservation(r)
	if err := w.writeRow(ctx, api, sheetName, row, entry); err != nil {
		return w.fail(ctx, r, actor, sheetName, err)
	}

	w.audit.CallLogWritten(ctx, r.ID, actor.UserID, actor.Email, sheetName)
	return Result{Success: true, SheetName: sheetName, Row: row}
}

// Update reconciles a reservation change with its Call Log row. When the
// call date moved across a tab boundary the old row is deleted and the entry
// re-inserted in the new tab; otherwise the existing row is overwritten in
// place. A row that has gone missing mid-update is re-inserted at the next
// empty row.
func (w *Writer) Update(ctx context.Context, api SheetAPI, old, updated model.Reservation, actor Actor) Result {
	if err := w.cfg.RequireSpreadsheet(); err != nil {
		return w.fail(ctx, updated, actor, "", err)
	}

	oldName := sheetNameFor(old)
	newName := sheetNameFor(updated)

	if oldName != newName {
		// Date moved across the tab boundary: remove then full insert.
		if err := w.deleteByID(ctx, api, oldName, old.ID); err != nil {
			return w.fail(ctx, updated, actor, oldName, err)
		}
		return w.Add(ctx, api, updated, actor)
	}

	defer w.guard(ctx, newName)()

	id := strconv.FormatUint(uint64(updated.ID), 10)
	row, err := FindRowByID(ctx, api, w.cfg.SpreadsheetID, newName, id)
	if err != nil {
		return w.fail(ctx, updated, actor, newName, err)
	}
	if row < 0 {
		// Row vanished (or was never written). Re-run the insert placement
		// rather than writing at a sentinel index.
		row, err = NextEmptyRow(ctx, api, w.cfg.SpreadsheetID, newName)
		if err != nil {
			return w.fail(ctx, updated, actor, newName, err)
		}
	}

	entry := MapReservation(updated)
	if err := w.writeRow(ctx, api, newName, row, entry); err != nil {
		return w.fail(ctx, updated, actor, newName, err)
	}

	w.audit.CallLogWritten(ctx, updated.ID, actor.UserID, actor.Email, newName)
	return Result{Success: true, SheetName: newName, Row: row}
}

// Remove handles reservation cancellation according to the configured
// policy. Under CancelKeep the row stays as an operational record and the
// call is a successful no-op.
func (w *Writer) Remove(ctx context.Context, api SheetAPI, r model.Reservation, actor Actor) Result {
	if w.cfg.OnCancel == config.CancelKeep {
		return Result{Success: true, Skipped: true}
	}
	if err := w.cfg.RequireSpreadsheet(); err != nil {
		return w.fail(ctx, r, actor, "", err)
	}

	sheetName := sheetNameFor(r)
	defer w.guard(ctx, sheetName)()

	if err := w.deleteByID(ctx, api, sheetName, r.ID); err != nil {
		return w.fail(ctx, r, actor, sheetName, err)
	}
	w.audit.CallLogWritten(ctx, r.ID, actor.UserID, actor.Email, sheetName)
	return Result{Success: true, SheetName: sheetName}
}

// writeRow overwrites columns A–F of one row.
func (w *Writer) writeRow(ctx context.Context, api SheetAPI, sheetName string, row int, entry model.CallLogEntry) error {
	rangeSpec := fmt.Sprintf("%s!A%d:F%d", sheetName, row, row)
	return api.WriteRange(ctx, w.cfg.SpreadsheetID, rangeSpec, [][]interface{}{entry.Row()})
}

// deleteByID removes the row matching the reservation ID from the named
// tab. Absence of the tab or the row is a no-op, not an error.
func (w *Writer) deleteByID(ctx context.Context, api SheetAPI, sheetName string, reservationID uint) error {
	id := strconv.FormatUint(uint64(reservationID), 10)
	row, err := FindRowByID(ctx, api, w.cfg.SpreadsheetID, sheetName, id)
	if err != nil {
		var nfErr *sheets.NotFoundError
		if errors.As(err, &nfErr) {
			return nil
		}
		return err
	}
	if row < 0 {
		return nil
	}

	sheetID, err := api.SheetID(ctx, w.cfg.SpreadsheetID, sheetName)
	if err != nil {
		return err
	}
	return api.DeleteRows(ctx, w.cfg.SpreadsheetID, sheetID, int64(row-1), int64(row))
}
