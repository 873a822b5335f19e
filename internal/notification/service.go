package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Service interface {
	// Enqueue stores an event for later delivery. It is fire-and-forget: the
	// write happens on a detached goroutine with its own deadline, and failures
	// are logged, never returned. Callers must not treat it as confirmed.
	Enqueue(e Event)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type service struct {
	repo Repository
	log  zerolog.Logger

	enqueueTimeout time.Duration
}

func NewService(repo Repository, log zerolog.Logger) Service {
	return &service{
		repo:           repo,
		log:            log.With().Str("component", "notification").Logger(),
		enqueueTimeout: 5 * time.Second,
	}
}

func (s *service) Enqueue(e Event) {
	go func() {
		// Detached from the request context: the reservation that triggered this
		// event must not wait on, or fail because of, notification persistence.
		ctx, cancel := context.WithTimeout(context.Background(), s.enqueueTimeout)
		defer cancel()

		n := &Notification{
			UserID:  e.UserID,
			Type:    e.Type,
			Title:   e.Title,
			Message: e.Message,
			Link:    e.Link,
		}

		if err := s.repo.Create(ctx, n); err != nil {
			s.log.Error().Err(err).
				Str("user_id", e.UserID).
				Str("type", e.Type).
				Msg("failed to enqueue notification")
			return
		}

		s.log.Debug().
			Str("user_id", e.UserID).
			Str("type", e.Type).
			Msg("notification enqueued")
	}()
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}
