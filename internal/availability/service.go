package availability

import (
	"context"
)

type CreateRequest struct {
	TutorID   string
	DayOfWeek int
	StartMin  int
	EndMin    int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rule, error)
	Delete(ctx context.Context, tutorID, ruleID string) error
	// ListByTutor returns all rules sorted by (day, start time).
	ListByTutor(ctx context.Context, tutorID string) ([]*Rule, error)
	// ListForDay returns the tutor's rules for one weekday, sorted by start time.
	ListForDay(ctx context.Context, tutorID string, day int) ([]*Rule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Rule, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, ErrDayOutOfRange
	}
	if req.StartMin < 0 || req.EndMin > minutesPerDay {
		return nil, ErrInvalidTimeRange
	}
	if req.StartMin >= req.EndMin {
		return nil, ErrInvalidTimeRange
	}

	// Pre-check for a friendly error. The exclusion constraint still guards
	// the invariant against concurrent inserts for the same tutor/day.
	hasOverlap, err := s.repo.HasOverlap(ctx, req.TutorID, req.DayOfWeek, req.StartMin, req.EndMin)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrOverlappingRule
	}

	rule := &Rule{
		TutorID:   req.TutorID,
		DayOfWeek: req.DayOfWeek,
		StartMin:  req.StartMin,
		EndMin:    req.EndMin,
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *service) Delete(ctx context.Context, tutorID, ruleID string) error {
	return s.repo.Delete(ctx, tutorID, ruleID)
}

func (s *service) ListByTutor(ctx context.Context, tutorID string) ([]*Rule, error) {
	return s.repo.ListByTutor(ctx, tutorID)
}

func (s *service) ListForDay(ctx context.Context, tutorID string, day int) ([]*Rule, error) {
	return s.repo.ListForDay(ctx, tutorID, day)
}
