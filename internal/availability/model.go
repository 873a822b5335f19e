package availability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/peerlearn/tutoring-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "availability rule not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrDayOutOfRange    = apperror.New(http.StatusBadRequest, "day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrOverlappingRule  = apperror.New(http.StatusConflict, "availability rule overlaps an existing rule")
	ErrInvalidTime      = apperror.New(http.StatusBadRequest, "time must be in HH:MM format")
)

const minutesPerDay = 24 * 60

// Rule is a recurring weekly availability window for a tutor.
// Times are wall-clock UTC, stored as minutes from midnight; the window is
// half-open [StartMin, EndMin). Rules are immutable: editing is delete+recreate.
type Rule struct {
	ID        string // UUID
	TutorID   string
	DayOfWeek int // 0 = Sunday ... 6 = Saturday
	StartMin  int
	EndMin    int
	CreatedAt time.Time
}

// Contains reports whether a lesson of the given length starting at minute m
// fits entirely inside the rule's window.
func (r *Rule) Contains(m, durationMin int) bool {
	return m >= r.StartMin && m+durationMin <= r.EndMin
}

// ParseMinute parses an "HH:MM" wall-clock string into minutes from midnight.
// "24:00" is accepted as the exclusive end of day.
func ParseMinute(s string) (int, error) {
	if s == "24:00" {
		return minutesPerDay, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinute renders minutes from midnight as "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
