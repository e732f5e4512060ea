package calllog

import (
	"context"
	"fmt"
)

// cellString renders a cell value the way the Sheets API delivers it.
func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// NextEmptyRow scans column A of the data region (row 9 downwards) and
// returns the first writable row number. When every scanned row is occupied
// the row just past the scanned range is returned.
func NextEmptyRow(ctx context.Context, api SheetAPI, spreadsheetID, sheetName string) (int, error) {
	rangeSpec := fmt.Sprintf("%s!A%d:A%d", sheetName, dataStartRow, dataStartRow+scanWindow-1)
	rows, err := api.ReadRange(ctx, spreadsheetID, rangeSpec)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) == 0 || cellString(row[0]) == "" {
			return dataStartRow + i, nil
		}
	}
	// The backend trims trailing empty rows, so the first row past the
	// returned slice is free.
	return dataStartRow + len(rows), nil
}

// FindRowByID returns the 1-based row whose Reservation ID column (B)
// matches id, or -1 when no row does. Not-found is a normal outcome; the
// caller branches on it.
func FindRowByID(ctx context.Context, api SheetAPI, spreadsheetID, sheetName, id string) (int, error) {
	rows, err := api.ReadRange(ctx, spreadsheetID, sheetName+"!A:Z")
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) > 1 && cellString(row[1]) == id {
			return i + 1, nil
		}
	}
	return -1, nil
}
