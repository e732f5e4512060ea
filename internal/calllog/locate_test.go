package calllog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/MPC-IT/calllog-sync/internal/calllog"
)

const testTab = "Wed 12.17.2025"

// seedRow writes a minimal data row (time in A, reservation ID in B) at the
// given 1-based row.
func seedRow(t *testing.T, f *fakeSheet, row int, id string) {
	t.Helper()
	err := f.WriteRange(context.Background(), "sheet", rangeFor(row),
		[][]interface{}{{"12/17/2025 2:00 PM", id, "Title", "Type", "Coord", "60 min"}})
	if err != nil {
		t.Fatalf("seeding row %d: %v", row, err)
	}
}

func rangeFor(row int) string {
	return fmt.Sprintf("%s!A%d:F%d", testTab, row, row)
}

func TestNextEmptyRow_FreshTab(t *testing.T) {
	f := newFakeSheet(testTab)
	row, err := calllog.NextEmptyRow(context.Background(), f, "sheet", testTab)
	if err != nil {
		t.Fatalf("NextEmptyRow: %v", err)
	}
	if row != 9 {
		t.Errorf("row = %d, want 9 (data region start)", row)
	}
}

func TestNextEmptyRow_AppendsAfterOccupied(t *testing.T) {
	f := newFakeSheet(testTab)
	seedRow(t, f, 9, "1")
	seedRow(t, f, 10, "2")

	row, err := calllog.NextEmptyRow(context.Background(), f, "sheet", testTab)
	if err != nil {
		t.Fatalf("NextEmptyRow: %v", err)
	}
	if row != 11 {
		t.Errorf("row = %d, want 11", row)
	}
}

func TestNextEmptyRow_ReusesGap(t *testing.T) {
	f := newFakeSheet(testTab)
	seedRow(t, f, 9, "1")
	seedRow(t, f, 11, "3") // row 10 left empty

	row, err := calllog.NextEmptyRow(context.Background(), f, "sheet", testTab)
	if err != nil {
		t.Fatalf("NextEmptyRow: %v", err)
	}
	if row != 10 {
		t.Errorf("row = %d, want 10 (first gap)", row)
	}
}

func TestFindRowByID(t *testing.T) {
	f := newFakeSheet(testTab)
	seedRow(t, f, 9, "100")
	seedRow(t, f, 10, "200")

	row, err := calllog.FindRowByID(context.Background(), f, "sheet", testTab, "200")
	if err != nil {
		t.Fatalf("FindRowByID: %v", err)
	}
	if row != 10 {
		t.Errorf("row = %d, want 10", row)
	}
}

func TestFindRowByID_NotFound(t *testing.T) {
	f := newFakeSheet(testTab)
	seedRow(t, f, 9, "100")

	row, err := calllog.FindRowByID(context.Background(), f, "sheet", testTab, "999")
	if err != nil {
		t.Fatalf("FindRowByID: %v", err)
	}
	if row != -1 {
		t.Errorf("row = %d, want -1 sentinel", row)
	}
}
