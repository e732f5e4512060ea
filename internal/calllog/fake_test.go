package calllog_test

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/MPC-IT/calllog-sync/internal/sheets"
)

// fakeSheet is an in-memory spreadsheet backend. Rows are stored 0-based;
// spreadsheet row N is rows[N-1]. When err is set every operation fails
// with it, which is how tests simulate auth/permission/rate-limit outages.
type fakeSheet struct {
	mu     sync.Mutex
	tabs   map[string][][]interface{}
	ids    map[string]int64
	nextID int64

	err       error
	addSheets int
}

func newFakeSheet(tabs ...string) *fakeSheet {
	f := &fakeSheet{
		tabs: make(map[string][][]interface{}),
		ids:  make(map[string]int64),
	}
	for _, t := range tabs {
		f.addTab(t)
	}
	return f
}

func (f *fakeSheet) addTab(title string) {
	f.tabs[title] = nil
	f.ids[title] = f.nextID
	f.nextID++
}

var rangeRe = regexp.MustCompile(`^([A-Z])(\d+):([A-Z])(\d+)$`)

// splitRange parses "{sheet}!{A1 notation}" into tab name, 1-based row
// bounds and 0-based column bounds. endRow == -1 means unbounded ("A:Z").
func splitRange(rangeSpec string) (tab string, startRow, endRow, startCol, endCol int, err error) {
	for i := range rangeSpec {
		if rangeSpec[i] == '!' {
			tab = rangeSpec[:i]
			rangeSpec = rangeSpec[i+1:]
			break
		}
	}
	if tab == "" {
		return "", 0, 0, 0, 0, fmt.Errorf("range without sheet name: %q", rangeSpec)
	}
	if rangeSpec == "A:Z" {
		return tab, 1, -1, 0, 25, nil
	}
	m := rangeRe.FindStringSubmatch(rangeSpec)
	if m == nil {
		return "", 0, 0, 0, 0, fmt.Errorf("unsupported range %q", rangeSpec)
	}
	startRow, _ = strconv.Atoi(m[2])
	endRow, _ = strconv.Atoi(m[4])
	startCol = int(m[1][0] - 'A')
	endCol = int(m[3][0] - 'A')
	return tab, startRow, endRow, startCol, endCol, nil
}

func (f *fakeSheet) SheetTitles(_ context.Context, _ string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var titles []string
	for t := range f.tabs {
		titles = append(titles, t)
	}
	return titles, nil
}

func (f *fakeSheet) SheetID(_ context.Context, _ string, title string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	id, ok := f.ids[title]
	if !ok {
		return 0, &sheets.NotFoundError{What: "sheet " + title}
	}
	return id, nil
}

func (f *fakeSheet) ReadRange(_ context.Context, _ string, rangeSpec string) ([][]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	tab, startRow, endRow, startCol, endCol, err := splitRange(rangeSpec)
	if err != nil {
		return nil, err
	}
	rows, ok := f.tabs[tab]
	if !ok {
		return nil, &sheets.NotFoundError{What: "sheet " + tab}
	}
	if endRow == -1 || endRow > len(rows) {
		endRow = len(rows)
	}

	var out [][]interface{}
	for n := startRow; n <= endRow; n++ {
		row := rows[n-1]
		var cells []interface{}
		for c := startCol; c <= endCol && c < len(row); c++ {
			cells = append(cells, row[c])
		}
		// Trim trailing empty cells the way the Values API does.
		for len(cells) > 0 && (cells[len(cells)-1] == nil || cells[len(cells)-1] == "") {
			cells = cells[:len(cells)-1]
		}
		out = append(out, cells)
	}
	// Trim trailing empty rows.
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeSheet) WriteRange(_ context.Context, _ string, rangeSpec string, values [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	tab, startRow, _, startCol, _, err := splitRange(rangeSpec)
	if err != nil {
		return err
	}
	rows, ok := f.tabs[tab]
	if !ok {
		return &sheets.NotFoundError{What: "sheet " + tab}
	}
	for i, vr := range values {
		n := startRow + i
		for n > len(rows) {
			rows = append(rows, make([]interface{}, 26))
		}
		row := rows[n-1]
		for len(row) < 26 {
			row = append(row, nil)
		}
		for j, v := range vr {
			row[startCol+j] = v
		}
		rows[n-1] = row
	}
	f.tabs[tab] = rows
	return nil
}

func (f *fakeSheet) AddSheet(_ context.Context, _ string, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.addSheets++
	if _, ok := f.tabs[title]; ok {
		return fmt.Errorf("sheet %q already exists", title)
	}
	f.addTab(title)
	return nil
}

func (f *fakeSheet) DeleteRows(_ context.Context, _ string, sheetID, start, end int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for title, id := range f.ids {
		if id != sheetID {
			continue
		}
		rows := f.tabs[title]
		if start < 0 || end > int64(len(rows)) || start >= end {
			return fmt.Errorf("delete range [%d,%d) out of bounds", start, end)
		}
		f.tabs[title] = append(rows[:start], rows[end:]...)
		return nil
	}
	return &sheets.NotFoundError{What: fmt.Sprintf("sheet id %d", sheetID)}
}

// cell returns the value at 1-based row n, 0-based column c, or "".
func (f *fakeSheet) cell(tab string, n, c int) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.tabs[tab]
	if n > len(rows) || c >= len(rows[n-1]) {
		return ""
	}
	v := rows[n-1][c]
	if v == nil {
		return ""
	}
	return v
}
