package model

// ProfileType distinguishes the two reservation flavours.
type ProfileType string

const (
	ProfileAssisted ProfileType = "Assisted"
	ProfilePasscode ProfileType = "Passcode"
)

// Status is the reservation lifecycle state.
type Status string

const (
	StatusDraft               Status = "Draft"
	StatusPendingConfirmation Status = "Pending Confirmation"
	StatusConfirmed           Status = "Confirmed"
	StatusCompleted           Status = "Completed"
	StatusCancelled           Status = "Cancelled"
	StatusTBD                 Status = "TBD"
)

// Reservation is the projection of a conference-call reservation the sync
// engine reads. It is owned by the reservation CRUD application; this module
// never mutates it.
type Reservation struct {
	ID          uint        `json:"id" validate:"required"`
	ProfileType ProfileType `json:"profileType"`
	CallType    string      `json:"callType"`
	CompanyName string      `json:"companyName"`
	DealName    string      `json:"dealName"`
	SetupName   string      `json:"setupName"`
	SetupEmail  string      `json:"setupEmail"`
	CallDate    string      `json:"callDate"`  // calendar date, normally YYYY-MM-DD
	StartTime   string      `json:"startTime"` // verbatim, e.g. "2:00 PM"
	TimeZone    string      `json:"timeZone"`
	Host        string      `json:"host"`
	Duration    string      `json:"duration"` // e.g. "90 min", empty = default
	Status      Status      `json:"status"`
}

// CallLogEntry is the six-column row written to the Call Log spreadsheet.
// It is recomputed on every sync and never persisted locally.
type CallLogEntry struct {
	Time          string `json:"time"`
	ReservationID string `json:"reservationId"`
	CallTitle     string `json:"callTitle"`
	Type          string `json:"type"`
	Coordinator   string `json:"coordinator"`
	LengthOfCall  string `json:"lengthOfCall"`
}

// Row returns the entry as a spreadsheet row in column order A–F.
func (e CallLogEntry) Row() []interface{} {
	return []interface{}{e.Time, e.ReservationID, e.CallTitle, e.Type, e.Coordinator, e.LengthOfCall}
}

// ShouldSyncCallLog reports whether an update to a reservation touches a
// field the Call Log mirrors. The CRUD flow calls this before invoking the
// sync engine; edits outside the trigger list (notes, passcodes, dial-ins)
// must not produce a sheet write.
func ShouldSyncCallLog(old, updated Reservation) bool {
	if updated.Status == StatusConfirmed && old.Status != StatusConfirmed {
		return true
	}
	return old.CallDate != updated.CallDate ||
		old.StartTime != updated.StartTime ||
		old.TimeZone != updated.TimeZone ||
		old.Host != updated.Host ||
		old.Duration != updated.Duration ||
		old.Status != updated.Status
}
