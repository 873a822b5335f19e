package lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/peerlearn/tutoring-backend/internal/availability"
	"github.com/peerlearn/tutoring-backend/internal/notification"
	"github.com/peerlearn/tutoring-backend/internal/pkg/metrics"
	"github.com/peerlearn/tutoring-backend/internal/user"
)

// ReserveRequest books a slot with a tutor. ScheduledAt must be one of the
// starts returned by Slots; anything else fails validation.
type ReserveRequest struct {
	TutorID     string
	SkillID     string
	ScheduledAt time.Time
}

type Service interface {
	// Reserve books a lesson for the student. Under concurrent requests for
	// the same tutor and start time exactly one caller wins; the others get
	// ErrSlotTaken and should re-list slots.
	Reserve(ctx context.Context, studentID string, req ReserveRequest) (*Lesson, error)

	// Slots returns the bookable start times for a tutor on a UTC date.
	Slots(ctx context.Context, tutorID string, date time.Time) ([]time.Time, error)

	GetByID(ctx context.Context, actorID, id string) (*Lesson, error)
	List(ctx context.Context, filter Filter) ([]*Lesson, int, error)

	// Confirm moves a pending lesson to confirmed. Tutor only.
	Confirm(ctx context.Context, actorID, id string) (*Lesson, error)
	// Cancel moves a pending or confirmed lesson to cancelled, freeing the
	// slot. Confirmed lessons are locked in once the cancellation window
	// before the start time has begun.
	Cancel(ctx context.Context, actorID, id string) (*Lesson, error)
}

type service struct {
	repo            Repository
	availabilitySvc availability.Service
	userSvc         user.Service
	notifier        notification.Service

	durationMin        int
	cancellationWindow time.Duration

	// Injected clock so time-dependent rules are testable.
	nowFn func() time.Time
}

func NewService(
	repo Repository,
	availabilitySvc availability.Service,
	userSvc user.Service,
	notifier notification.Service,
	durationMin int,
	cancellationWindow time.Duration,
) Service {
	return &service{
		repo:               repo,
		availabilitySvc:    availabilitySvc,
		userSvc:            userSvc,
		notifier:           notifier,
		durationMin:        durationMin,
		cancellationWindow: cancellationWindow,
		nowFn:              time.Now,
	}
}

func (s *service) Reserve(ctx context.Context, studentID string, req ReserveRequest) (*Lesson, error) {
	if req.TutorID == studentID {
		return nil, ErrSelfBooking
	}

	tutor, err := s.lookupTutor(ctx, req.TutorID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn().UTC()
	scheduledAt := req.ScheduledAt.UTC().Truncate(time.Minute)

	if !scheduledAt.After(now) {
		return nil, ErrStartTimePast
	}

	if err := s.checkWithinAvailability(ctx, req.TutorID, scheduledAt); err != nil {
		return nil, err
	}

	price := 0.0
	if tutor.HourlyRate != nil {
		price = *tutor.HourlyRate * float64(s.durationMin) / 60.0
	}

	l := &Lesson{
		TutorID:         req.TutorID,
		StudentID:       studentID,
		SkillID:         req.SkillID,
		Title:           DefaultTitle,
		ScheduledAt:     scheduledAt,
		DurationMinutes: s.durationMin,
		Price:           price,
		Status:          StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.IncSlotConflict()
			metrics.IncLessonReserved("conflict")
			return nil, ErrSlotTaken
		}
		if errors.Is(err, ErrSkillNotFound) {
			return nil, ErrSkillNotFound
		}
		metrics.IncLessonReserved("error")
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	metrics.IncLessonReserved("success")

	// Re-read for the joined display names.
	created, err := s.repo.GetByID(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created lesson: %w", err)
	}

	s.notifier.Enqueue(notification.Event{
		UserID:  created.TutorID,
		Type:    notification.TypeLessonBooked,
		Title:   "New lesson request",
		Message: fmt.Sprintf("%s requested a %s lesson on %s.", created.StudentName, created.SkillName, created.ScheduledAt.Format("Jan 2 at 15:04 MST")),
		Link:    "/lessons/" + created.ID,
	})

	return created, nil
}

func (s *service) Slots(ctx context.Context, tutorID string, date time.Time) ([]time.Time, error) {
	if _, err := s.lookupTutor(ctx, tutorID); err != nil {
		return nil, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	rules, err := s.availabilitySvc.ListForDay(ctx, tutorID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	// Widen the lesson window by one duration on both sides so bookings that
	// straddle midnight still count as conflicts.
	duration := time.Duration(s.durationMin) * time.Minute
	booked, err := s.repo.ListActiveBetween(ctx, tutorID, day.Add(-duration), day.Add(24*time.Hour).Add(duration))
	if err != nil {
		return nil, err
	}

	return GenerateSlots(day, rules, booked, s.durationMin, s.nowFn().UTC()), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (*Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsParticipant(actorID) {
		return nil, ErrPermissionDenied
	}

	s.completeIfDue(ctx, l)
	return l, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Lesson, int, error) {
	lessons, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	for _, l := range lessons {
		s.completeIfDue(ctx, l)
	}
	return lessons, total, nil
}

func (s *service) Confirm(ctx context.Context, actorID, id string) (*Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.completeIfDue(ctx, l)

	if err := checkConfirm(l, actorID); err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, StatusPending, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm lesson: %w", err)
	}
	if !ok {
		// Lost the race to a concurrent transition.
		return nil, ErrInvalidTransition
	}
	metrics.IncLessonTransition(string(StatusConfirmed))

	l.Status = StatusConfirmed

	s.notifier.Enqueue(notification.Event{
		UserID:  l.StudentID,
		Type:    notification.TypeLessonConfirmed,
		Title:   "Lesson confirmed",
		Message: fmt.Sprintf("%s confirmed your %s lesson on %s.", l.TutorName, l.SkillName, l.ScheduledAt.Format("Jan 2 at 15:04 MST")),
		Link:    "/lessons/" + l.ID,
	})

	return l, nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (*Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.nowFn().UTC()
	s.completeIfDue(ctx, l)

	if err := checkCancel(l, actorID, now, s.cancellationWindow); err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateStatusIf(ctx, id, l.Status, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel lesson: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	metrics.IncLessonTransition(string(StatusCancelled))

	l.Status = StatusCancelled

	// Tell the other participant.
	recipient := l.TutorID
	if actorID == l.TutorID {
		recipient = l.StudentID
	}
	s.notifier.Enqueue(notification.Event{
		UserID:  recipient,
		Type:    notification.TypeLessonCancelled,
		Title:   "Lesson cancelled",
		Message: fmt.Sprintf("Your %s lesson on %s was cancelled.", l.SkillName, l.ScheduledAt.Format("Jan 2 at 15:04 MST")),
		Link:    "/lessons/" + l.ID,
	})

	return l, nil
}

// lookupTutor resolves an id to an active, tutor-capable user.
func (s *service) lookupTutor(ctx context.Context, tutorID string) (*user.User, error) {
	tutor, err := s.userSvc.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, fmt.Errorf("failed to fetch tutor: %w", err)
	}
	if !tutor.Role.CanTutor() || !tutor.IsActive {
		return nil, ErrTutorNotFound
	}
	return tutor, nil
}

// checkWithinAvailability requires the start to sit on the slot grid of one of
// the tutor's rules for that weekday and the whole lesson to fit inside it.
func (s *service) checkWithinAvailability(ctx context.Context, tutorID string, scheduledAt time.Time) error {
	rules, err := s.availabilitySvc.ListForDay(ctx, tutorID, int(scheduledAt.Weekday()))
	if err != nil {
		return err
	}

	m := scheduledAt.Hour()*60 + scheduledAt.Minute()
	for _, r := range rules {
		if r.Contains(m, s.durationMin) && (m-r.StartMin)%s.durationMin == 0 {
			return nil
		}
	}
	return ErrOutsideAvailability
}

// completeIfDue applies lazy completion to a lesson loaded for a read and
// persists the transition best-effort. The conditional UPDATE makes concurrent
// readers converge: only one of them flips the row, the rest see zero rows
// affected and that is fine.
func (s *service) completeIfDue(ctx context.Context, l *Lesson) {
	if !applyCompletion(l, s.nowFn().UTC()) {
		return
	}
	ok, err := s.repo.UpdateStatusIf(ctx, l.ID, StatusConfirmed, StatusCompleted)
	if err != nil {
		log.Warn().Err(err).Str("lesson_id", l.ID).Msg("failed to persist lesson completion")
		return
	}
	if ok {
		metrics.IncLessonTransition(string(StatusCompleted))
	}
}
