package calllog

import (
	"context"
	"slices"
)

// EnsureSheet makes sure the named tab exists and carries the fixed header
// row. Tabs are provisioned lazily, one per call date, so this runs on every
// insert; it is idempotent.
func EnsureSheet(ctx context.Context, api SheetAPI, spreadsheetID, sheetName string) error {
	titles, err := api.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	if !slices.Contains(titles, sheetName) {
		if err := api.AddSheet(ctx, spreadsheetID, sheetName); err != nil {
			return err
		}
		return writeHeaders(ctx, api, spreadsheetID, sheetName)
	}

	row, err := api.ReadRange(ctx, spreadsheetID, sheetName+"!"+headerRange)
	if err != nil {
		return err
	}
	if len(row) == 0 || len(row[0]) == 0 || cellString(row[0][0]) == "" {
		return writeHeaders(ctx, api, spreadsheetID, sheetName)
	}
	return nil
}

func writeHeaders(ctx context.Context, api SheetAPI, spreadsheetID, sheetName string) error {
	values := make([]interface{}, len(Headers))
	for i, h := range Headers {
		values[i] = h
	}
	return api.WriteRange(ctx, spreadsheetID, sheetName+"!"+headerRange, [][]interface{}{values})
}
