package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/peerlearn/tutoring-backend/internal/user"
)

// LinkRequest attaches a skill to a user's profile. Either SkillID or
// SkillName must be provided; a name is resolved case-insensitively,
// creating the skill on first use.
type LinkRequest struct {
	SkillID   string
	SkillName string
	Kind      LinkKind
}

type Service interface {
	Link(ctx context.Context, userID string, req LinkRequest) (*Skill, error)
	Unlink(ctx context.Context, userID, skillID string, kind LinkKind) error
	ListForUser(ctx context.Context, userID string) ([]*UserSkill, error)
	List(ctx context.Context, filter Filter) ([]*Skill, int, error)
	GetByID(ctx context.Context, id string) (*Skill, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Link(ctx context.Context, userID string, req LinkRequest) (*Skill, error) {
	if req.Kind != KindTeach && req.Kind != KindLearn {
		return nil, ErrInvalidKind
	}

	var (
		sk  *Skill
		err error
	)

	switch {
	case req.SkillID != "":
		sk, err = s.repo.GetByID(ctx, req.SkillID)
	case strings.TrimSpace(req.SkillName) != "":
		sk, err = s.repo.FindOrCreate(ctx, strings.TrimSpace(req.SkillName))
	default:
		return nil, ErrNameRequired
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Link(ctx, userID, sk.ID, req.Kind); err != nil {
		return nil, err
	}

	// Registering a teachable skill makes the account tutor-capable.
	if req.Kind == KindTeach {
		if err := s.userService.PromoteToTutor(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to promote user to tutor: %w", err)
		}
	}

	return sk, nil
}

func (s *service) Unlink(ctx context.Context, userID, skillID string, kind LinkKind) error {
	if kind != KindTeach && kind != KindLearn {
		return ErrInvalidKind
	}
	return s.repo.Unlink(ctx, userID, skillID, kind)
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*UserSkill, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Skill, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (*Skill, error) {
	return s.repo.GetByID(ctx, id)
}
