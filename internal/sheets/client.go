package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client is a thin wrapper around the Google Sheets API exposing the handful
// of operations the Call Log engine needs. All failures come back as the
// typed errors in errors.go.
type Client struct {
	srv *sheetsapi.Service
}

// NewClient creates an authenticated client from the given token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	srv, err := sheetsapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{srv: srv}, nil
}

// SheetTitles returns the titles of all tabs in the spreadsheet.
func (c *Client) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	sp, err := c.srv.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("get metadata", "spreadsheet", err)
	}
	titles := make([]string, 0, len(sp.Sheets))
	for _, s := range sp.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

// SheetID resolves a tab title to its numeric sheet ID, needed for
// structural requests like row deletion.
func (c *Client) SheetID(ctx context.Context, spreadsheetID, title string) (int64, error) {
	sp, err := c.srv.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return 0, wrapAPIError("get metadata", "spreadsheet", err)
	}
	for _, s := range sp.Sheets {
		if s.Properties.Title == title {
			return s.Properties.SheetId, nil
		}
	}
	return 0, &NotFoundError{What: fmt.Sprintf("sheet %q", title)}
}

// ReadRange reads a range in A1 notation ("{sheet}!{range}") and returns the
// cell values as a 2D slice. Trailing empty rows are omitted by the backend.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, rangeSpec string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("read "+rangeSpec, "range "+rangeSpec, err)
	}
	return resp.Values, nil
}

// WriteRange overwrites a range with the given values.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, rangeSpec string, values [][]interface{}) error {
	vr := &sheetsapi.ValueRange{Values: values}
	_, err := c.srv.Spreadsheets.Values.Update(spreadsheetID, rangeSpec, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return wrapAPIError("write "+rangeSpec, "range "+rangeSpec, err)
}

// AddSheet creates a new tab with the given title.
func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	_, err := c.srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return wrapAPIError("add sheet "+title, "spreadsheet", err)
}

// DeleteRows removes rows [start, end) from the tab with the given sheet ID.
// Indices are zero-based, so deleting spreadsheet row N is (N-1, N).
func (c *Client) DeleteRows(ctx context.Context, spreadsheetID string, sheetID, start, end int64) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   end,
				},
			},
		}},
	}
	_, err := c.srv.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return wrapAPIError("delete rows", "sheet", err)
}
