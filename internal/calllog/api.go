// Package calllog mirrors reservation records into the operational Call Log
// spreadsheet: one tab per call date, one row per reservation. Everything
// here is best effort; failures are audited and reported in a Result, never
// returned as errors to the reservation flow.
package calllog

import "context"

// SheetAPI is the subset of the spreadsheet backend the engine uses. The
// production implementation is *sheets.Client; tests substitute an in-memory
// fake.
type SheetAPI interface {
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	SheetID(ctx context.Context, spreadsheetID, title string) (int64, error)
	ReadRange(ctx context.Context, spreadsheetID, rangeSpec string) ([][]interface{}, error)
	WriteRange(ctx context.Context, spreadsheetID, rangeSpec string, values [][]interface{}) error
	AddSheet(ctx context.Context, spreadsheetID, title string) error
	DeleteRows(ctx context.Context, spreadsheetID string, sheetID, start, end int64) error
}

// Headers is the fixed header row of every Call Log tab (columns A–F).
var Headers = []string{"Time", "Reservation ID", "Call Title", "Type", "Coordinator", "Length of Call"}

const (
	// headerRange is where Headers live in each tab.
	headerRange = "A1:F1"
	// dataStartRow is the first automated data row. Rows 2–8 are reserved
	// for manual operational notes and must never be written.
	dataStartRow = 9
	// scanWindow bounds the find-next-empty scan. Daily volumes are tens of
	// entries; sheets with thousands of same-day rows are out of scope.
	scanWindow = 1000
)
