package skill

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("skill not found")
	ErrNameRequired  = errors.New("skill name is required")
	ErrInvalidKind   = errors.New("kind must be teach or learn")
	ErrAlreadyLinked = errors.New("skill already linked")
	ErrNotLinked     = errors.New("skill is not linked")
)

// Defaults applied to skills created from free-text user input.
const (
	DefaultCategory    = "User Added"
	DefaultDescription = "Community added skill"
)

// LinkKind distinguishes skills a user offers from skills they want to learn.
type LinkKind string

const (
	KindTeach LinkKind = "teach"
	KindLearn LinkKind = "learn"
)

// Skill is a catalog entry. Names are unique case-insensitively; the stored
// display name is preserved verbatim as first typed.
type Skill struct {
	ID          string
	Name        string
	Category    string
	Description string
	CreatedAt   time.Time
}

// UserSkill is a skill linked to a user's profile.
type UserSkill struct {
	Skill Skill
	Kind  LinkKind
}

// Filter defines parameters for browsing the skill catalog.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
