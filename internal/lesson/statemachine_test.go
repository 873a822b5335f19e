package lesson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	tutorID   = "tutor-1"
	studentID = "student-1"
	otherID   = "stranger"
)

func testLesson(status Status, scheduledAt time.Time) *Lesson {
	return &Lesson{
		ID:              "lesson-1",
		TutorID:         tutorID,
		StudentID:       studentID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestCheckConfirm(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  Status
		actorID string
		wantErr error
	}{
		{"tutor confirms pending", StatusPending, tutorID, nil},
		{"student cannot confirm", StatusPending, studentID, ErrPermissionDenied},
		{"stranger cannot confirm", StatusPending, otherID, ErrPermissionDenied},
		{"already confirmed", StatusConfirmed, tutorID, ErrInvalidTransition},
		{"completed is terminal", StatusCompleted, tutorID, ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, tutorID, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkConfirm(testLesson(tt.status, start), tt.actorID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckCancel(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name    string
		status  Status
		actorID string
		now     time.Time
		wantErr error
	}{
		{"student cancels pending 25h ahead", StatusPending, studentID, start.Add(-25 * time.Hour), nil},
		{"tutor cancels pending 25h ahead", StatusPending, tutorID, start.Add(-25 * time.Hour), nil},
		{"pending locked 23h ahead", StatusPending, studentID, start.Add(-23 * time.Hour), ErrCancellationWindow},
		{"pending locked just before start", StatusPending, studentID, start.Add(-time.Minute), ErrCancellationWindow},
		{"confirmed cancellable 25h ahead", StatusConfirmed, studentID, start.Add(-25 * time.Hour), nil},
		{"confirmed locked 23h ahead", StatusConfirmed, studentID, start.Add(-23 * time.Hour), ErrCancellationWindow},
		{"confirmed locked at exactly start", StatusConfirmed, tutorID, start, ErrCancellationWindow},
		{"stranger cannot cancel", StatusPending, otherID, start.Add(-25 * time.Hour), ErrPermissionDenied},
		{"completed is terminal", StatusCompleted, tutorID, start.Add(2 * time.Hour), ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, studentID, start.Add(-time.Hour), ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCancel(testLesson(tt.status, start), tt.actorID, tt.now, window)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckCancelAtExactWindowBoundary(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	// The lead time must strictly exceed the window: exactly window before
	// start is already too late, one second earlier is fine. Pending and
	// confirmed behave identically.
	for _, status := range []Status{StatusPending, StatusConfirmed} {
		l := testLesson(status, start)
		assert.NoError(t, checkCancel(l, studentID, start.Add(-window).Add(-time.Second), window))
		assert.ErrorIs(t, checkCancel(l, studentID, start.Add(-window), window), ErrCancellationWindow)
	}
}

func TestApplyCompletion(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     Status
		now        time.Time
		wantFlip   bool
		wantStatus Status
	}{
		{"confirmed past end completes", StatusConfirmed, start.Add(2 * time.Hour), true, StatusCompleted},
		{"exactly at end completes", StatusConfirmed, start.Add(time.Hour), true, StatusCompleted},
		{"still in progress", StatusConfirmed, start.Add(30 * time.Minute), false, StatusConfirmed},
		{"pending never auto-completes", StatusPending, start.Add(2 * time.Hour), false, StatusPending},
		{"cancelled stays cancelled", StatusCancelled, start.Add(2 * time.Hour), false, StatusCancelled},
		{"completed stays completed", StatusCompleted, start.Add(2 * time.Hour), false, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLesson(tt.status, start)
			flipped := applyCompletion(l, tt.now)
			assert.Equal(t, tt.wantFlip, flipped)
			assert.Equal(t, tt.wantStatus, l.Status)
		})
	}
}

func TestApplyCompletionIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	now := start.Add(3 * time.Hour)

	l := testLesson(StatusConfirmed, start)
	assert.True(t, applyCompletion(l, now))
	assert.False(t, applyCompletion(l, now))
	assert.Equal(t, StatusCompleted, l.Status)
}
