package lesson

import (
	"net/http"
	"time"

	"github.com/peerlearn/tutoring-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "lesson not found")
	ErrTutorNotFound       = apperror.New(http.StatusNotFound, "tutor not found")
	ErrSkillNotFound       = apperror.New(http.StatusNotFound, "skill not found")
	ErrSelfBooking         = apperror.New(http.StatusBadRequest, "cannot book a lesson with yourself")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "lesson start time must be in the future")
	ErrOutsideAvailability = apperror.New(http.StatusBadRequest, "requested time is outside the tutor's availability")
	// ErrSlotTaken means another booking won the slot. Safe to retry with a
	// fresh slot listing.
	ErrSlotTaken          = apperror.New(http.StatusConflict, "slot is no longer available")
	ErrInvalidTransition  = apperror.New(http.StatusConflict, "lesson is not in a state that allows this action")
	ErrCancellationWindow = apperror.New(http.StatusConflict, "confirmed lessons cannot be cancelled this close to the start time")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "you are not a participant of this lesson")
)

// Status is a lesson's position in its lifecycle.
//
//	pending -> confirmed -> completed
//	pending -> cancelled
//	confirmed -> cancelled
//
// completed and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the lesson still occupies its slot.
// Cancelled lessons free the slot; completed ones are in the past by definition.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DefaultTitle is used for every booking; custom titles are not supported.
const DefaultTitle = "1-on-1 Session"

// Lesson is a booked session between one tutor and one student.
// ScheduledAt is always UTC. TutorName, StudentName and SkillName are
// denormalized at read time for display.
type Lesson struct {
	ID              string // UUID
	TutorID         string
	TutorName       string
	StudentID       string
	StudentName     string
	SkillID         string
	SkillName       string
	Title           string
	ScheduledAt     time.Time
	DurationMinutes int
	Price           float64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EndsAt is the exclusive end of the lesson's time window.
func (l *Lesson) EndsAt() time.Time {
	return l.ScheduledAt.Add(time.Duration(l.DurationMinutes) * time.Minute)
}

// IsParticipant reports whether the user is the lesson's tutor or student.
func (l *Lesson) IsParticipant(userID string) bool {
	return userID == l.TutorID || userID == l.StudentID
}

// Filter defines parameters for listing a user's lessons.
type Filter struct {
	// UserID matches lessons where the user is tutor or student.
	UserID   string
	Status   Status // empty matches all
	Page     int
	PageSize int
}
