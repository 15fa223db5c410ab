package models

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"
)

// Event is an append-only audit row. The document gate appends a row per
// successful view; it never mutates purchases.
type Event struct {
	ID uint64 `json:"id"`

	IP string `json:"ip"`

	UserID    string `json:"user_id,omitempty"`
	ContentID string `json:"content_id,omitempty"`

	Type    string `json:"type"`
	Changes string `json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for the Event model.
func (Event) TableName() string {
	return tableName("events")
}

// EventType is the type of audit event.
type EventType string

// Audit event types.
const (
	EventViewed    EventType = "viewed"
	EventRefreshed EventType = "refreshed"
)

// LogEvent logs a new event
func LogEvent(db *gorm.DB, ip, userID, contentID string, eventType EventType, changes []string) {
	event := &Event{
		IP:        ip,
		UserID:    userID,
		ContentID: contentID,
		Type:      string(eventType),
	}
	if changes != nil {
		event.Changes = strings.Join(changes, ",")
	}
	db.Create(event)
}
