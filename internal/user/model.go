package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidRole        = errors.New("invalid role")
)

// Role describes what a user can do on the platform.
// A student becomes "both" the moment they register a teachable skill.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleBoth    Role = "both"
)

// CanTutor reports whether the role permits offering lessons.
func (r Role) CanTutor() bool {
	return r == RoleTutor || r == RoleBoth
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	Bio          *string
	Location     *string
	HourlyRate   *float64
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// TutorFilter defines filter options for listing tutors.
type TutorFilter struct {
	Keyword  string // matches display_name or bio
	Page     int
	PageSize int
}
