package model_test

import (
	"testing"

	"github.com/MPC-IT/calllog-sync/internal/model"
)

func baseReservation() model.Reservation {
	return model.Reservation{
		ID:          42,
		CallType:    "Earnings Call",
		CompanyName: "Acme",
		CallDate:    "2025-12-17",
		StartTime:   "2:00 PM",
		TimeZone:    "America/New_York",
		Duration:    "60 min",
		Status:      model.StatusPendingConfirmation,
	}
}

func TestShouldSyncCallLog_NoRelevantChange(t *testing.T) {
	old := baseReservation()
	updated := old
	// Fields outside the trigger list must not cause a sync.
	updated.CompanyName = "Acme Holdings"
	updated.SetupName = "Someone Else"

	if model.ShouldSyncCallLog(old, updated) {
		t.Error("sync triggered by fields outside the trigger list")
	}
}

func TestShouldSyncCallLog_Identical(t *testing.T) {
	old := baseReservation()
	if model.ShouldSyncCallLog(old, old) {
		t.Error("sync triggered by an identical projection")
	}
}

func TestShouldSyncCallLog_Triggers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Reservation)
	}{
		{"callDate", func(r *model.Reservation) { r.CallDate = "2025-12-18" }},
		{"startTime", func(r *model.Reservation) { r.StartTime = "3:00 PM" }},
		{"timeZone", func(r *model.Reservation) { r.TimeZone = "Europe/London" }},
		{"host", func(r *model.Reservation) { r.Host = "Jane Host" }},
		{"duration", func(r *model.Reservation) { r.Duration = "90 min" }},
		{"status", func(r *model.Reservation) { r.Status = model.StatusCancelled }},
		{"confirmed", func(r *model.Reservation) { r.Status = model.StatusConfirmed }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			old := baseReservation()
			updated := old
			tc.mutate(&updated)
			if !model.ShouldSyncCallLog(old, updated) {
				t.Errorf("%s change did not trigger a sync", tc.name)
			}
		})
	}
}
