package lesson

import "time"

// checkConfirm validates a confirm request against the lesson's current state.
// Only the tutor may confirm, and only from pending.
func checkConfirm(l *Lesson, actorID string) error {
	if !l.IsParticipant(actorID) {
		return ErrPermissionDenied
	}
	if actorID != l.TutorID {
		return ErrPermissionDenied
	}
	if l.Status != StatusPending {
		return ErrInvalidTransition
	}
	return nil
}

// checkCancel validates a cancel request. Either participant may cancel a
// pending or confirmed lesson while the remaining lead time still exceeds
// window; after that the booking is committed.
func checkCancel(l *Lesson, actorID string, now time.Time, window time.Duration) error {
	if !l.IsParticipant(actorID) {
		return ErrPermissionDenied
	}

	switch l.Status {
	case StatusPending, StatusConfirmed:
		if !now.Before(l.ScheduledAt.Add(-window)) {
			return ErrCancellationWindow
		}
		return nil
	default:
		return ErrInvalidTransition
	}
}

// applyCompletion flips a confirmed lesson to completed once its end time has
// passed. It mutates only the in-memory copy and reports whether it did;
// persisting the transition is the caller's concern. Calling it again on an
// already-completed lesson is a no-op, so reads stay idempotent.
func applyCompletion(l *Lesson, now time.Time) bool {
	if l.Status != StatusConfirmed {
		return false
	}
	if now.Before(l.EndsAt()) {
		return false
	}
	l.Status = StatusCompleted
	return true
}
