package notification

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("notification not found")
)

// Event types emitted by the lesson lifecycle.
const (
	TypeLessonBooked    = "lesson_booked"
	TypeLessonConfirmed = "lesson_confirmed"
	TypeLessonCancelled = "lesson_cancelled"
)

// Event is an outbound message for a user. Delivery semantics beyond durable
// storage (push, email) are out of scope here.
type Event struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Link    string
}

// Notification is a stored, per-user event.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Link      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int
	PageSize   int
}
