package calllog

import (
	"strconv"
	"time"

	"github.com/MPC-IT/calllog-sync/internal/model"
)

// DefaultLength is used when a reservation carries no duration.
const DefaultLength = "60 min"

// MapReservation projects a reservation onto the six-column Call Log row.
// Pure and deterministic apart from the unparseable-date fallback, which
// stamps the entry with the current time.
func MapReservation(r model.Reservation) model.CallLogEntry {
	var entryTime string
	if d, err := ParseCallDate(r.CallDate); err == nil {
		// StartTime is passed through verbatim; no timezone conversion.
		entryTime = d.Format("01/02/2006") + " " + r.StartTime
	} else {
		entryTime = time.Now().Format("01/02/2006 3:04 PM")
	}

	title := r.DealName
	if title == "" {
		title = r.CompanyName + " - " + r.CallType
	}

	coordinator := r.SetupName
	if coordinator == "" {
		coordinator = r.SetupEmail
	}
	if coordinator == "" {
		coordinator = "Unknown"
	}

	length := r.Duration
	if length == "" {
		length = DefaultLength
	}

	return model.CallLogEntry{
		Time:          entryTime,
		ReservationID: strconv.FormatUint(uint64(r.ID), 10),
		CallTitle:     title,
		Type:          r.CallType,
		Coordinator:   coordinator,
		LengthOfCall:  length,
	}
}
