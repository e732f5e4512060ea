package calllog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/MPC-IT/calllog-sync/internal/calllog"
)

func TestSheetNameForDate(t *testing.T) {
	name, err := calllog.SheetNameForDate("2025-12-17")
	if err != nil {
		t.Fatalf("SheetNameForDate: %v", err)
	}
	if name != "Wed 12.17.2025" {
		t.Errorf("name = %q, want %q", name, "Wed 12.17.2025")
	}
}

func TestSheetNameForDate_SlashLayout(t *testing.T) {
	name, err := calllog.SheetNameForDate("12/17/2025")
	if err != nil {
		t.Fatalf("SheetNameForDate: %v", err)
	}
	if name != "Wed 12.17.2025" {
		t.Errorf("name = %q, want %q", name, "Wed 12.17.2025")
	}
}

func TestSheetNameForDate_ManualSplit(t *testing.T) {
	// Single-digit month and day are rejected by the strict layouts and
	// handled by the component split.
	name, err := calllog.SheetNameForDate("2025-3-7")
	if err != nil {
		t.Fatalf("SheetNameForDate: %v", err)
	}
	if name != "Fri 03.07.2025" {
		t.Errorf("name = %q, want %q", name, "Fri 03.07.2025")
	}
}

func TestSheetNameForDate_MalformedFallsBackToToday(t *testing.T) {
	name, err := calllog.SheetNameForDate("not-a-date")
	if err == nil {
		t.Fatal("expected a DateParseError")
	}
	var perr *calllog.DateParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *DateParseError", err)
	}
	if perr.Input != "not-a-date" {
		t.Errorf("Input = %q, want %q", perr.Input, "not-a-date")
	}
	if want := calllog.SheetName(time.Now()); name != want {
		t.Errorf("fallback name = %q, want today %q", name, want)
	}
}

func TestParseCallDate_EmptyInput(t *testing.T) {
	_, err := calllog.ParseCallDate("")
	var perr *calllog.DateParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *DateParseError", err)
	}
}
