// Package audit records the outcome of every Call Log sync attempt. The
// trail is the only place sync failures surface; nothing here may ever
// propagate an error back to the reservation flow, so the store swallows its
// own failures and writes them to the process log instead.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event kinds.
const (
	KindCallLogWritten     = "call_log_written"
	KindCallLogWriteFailed = "call_log_write_failed"
)

// Event is a single audit record.
type Event struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	Kind          string         `json:"kind" gorm:"size:64;index"`
	ReservationID uint           `json:"reservationId" gorm:"index"`
	UserID        string         `json:"userId" gorm:"size:64"`
	UserEmail     string         `json:"userEmail" gorm:"size:255"`
	Metadata      datatypes.JSON `json:"metadata"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Logger is the recorder the sync engine calls. Implementations must be
// fire-and-forget: no return value, no panic.
type Logger interface {
	CallLogWritten(ctx context.Context, reservationID uint, userID, userEmail, sheetName string)
	CallLogWriteFailed(ctx context.Context, reservationID uint, userID, userEmail, reason, errMsg, sheetName string)
}

// Store persists events to postgres via gorm.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) record(ctx context.Context, kind string, reservationID uint, userID, userEmail string, metadata map[string]interface{}) {
	payload, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("audit: marshalling metadata for %s: %v", kind, err)
		payload = []byte("{}")
	}
	ev := Event{
		ID:            uuid.NewString(),
		Kind:          kind,
		ReservationID: reservationID,
		UserID:        userID,
		UserEmail:     userEmail,
		Metadata:      datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&ev).Error; err != nil {
		// Log-failures-of-logging: never surface to the caller.
		log.Printf("audit: recording %s for reservation %d: %v", kind, reservationID, err)
	}
}

func (s *Store) CallLogWritten(ctx context.Context, reservationID uint, userID, userEmail, sheetName string) {
	s.record(ctx, KindCallLogWritten, reservationID, userID, userEmail, map[string]interface{}{
		"sheetName": sheetName,
	})
}

func (s *Store) CallLogWriteFailed(ctx context.Context, reservationID uint, userID, userEmail, reason, errMsg, sheetName string) {
	md := map[string]interface{}{
		"reason": reason,
		"error":  errMsg,
	}
	if sheetName != "" {
		md["sheetName"] = sheetName
	}
	s.record(ctx, KindCallLogWriteFailed, reservationID, userID, userEmail, md)
}

// Recent returns the newest events, optionally filtered by reservation ID
// (0 = all).
func (s *Store) Recent(ctx context.Context, reservationID uint, limit int) ([]Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if reservationID != 0 {
		q = q.Where("reservation_id = ?", reservationID)
	}
	var events []Event
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// LogOnly is the Logger used when no database is configured; events go to
// the process log.
type LogOnly struct{}

func (LogOnly) CallLogWritten(_ context.Context, reservationID uint, userID, userEmail, sheetName string) {
	log.Printf("audit: %s reservation=%d user=%s email=%s sheet=%q",
		KindCallLogWritten, reservationID, userID, userEmail, sheetName)
}

func (LogOnly) CallLogWriteFailed(_ context.Context, reservationID uint, userID, userEmail, reason, errMsg, sheetName string) {
	log.Printf("audit: %s reservation=%d user=%s email=%s reason=%s sheet=%q err=%s",
		KindCallLogWriteFailed, reservationID, userID, userEmail, reason, sheetName, errMsg)
}
