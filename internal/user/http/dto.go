package http

import (
	"time"

	"github.com/peerlearn/tutoring-backend/internal/pkg/request"
	"github.com/peerlearn/tutoring-backend/internal/user"
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=student tutor"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest defines fields allowed to be updated via PATCH /me.
// Use pointers to distinguish between "field not sent" and "field sent as empty".
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name"`
	Bio         *string  `json:"bio"`
	Location    *string  `json:"location"`
	HourlyRate  *float64 `json:"hourly_rate" binding:"omitempty,min=0"`
}

// ListTutorsRequest defines query parameters for browsing tutors.
type ListTutorsRequest struct {
	request.ListParams
	Keyword string `form:"q"`
}

// UserResponse is the shape of the caller's own account data.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	Role        string     `json:"role"`
	Bio         *string    `json:"bio"`
	Location    *string    `json:"location"`
	HourlyRate  *float64   `json:"hourly_rate"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Bio:         u.Bio,
		Location:    u.Location,
		HourlyRate:  u.HourlyRate,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// TutorResponse is the public shape of a tutor profile (no email).
type TutorResponse struct {
	ID          string   `json:"id"`
	DisplayName *string  `json:"display_name"`
	Bio         *string  `json:"bio"`
	Location    *string  `json:"location"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// NewTutorResponse converts domain user.User to the public tutor shape.
func NewTutorResponse(u *user.User) TutorResponse {
	return TutorResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Location:    u.Location,
		HourlyRate:  u.HourlyRate,
	}
}

// LoginResponse returns the token and user info.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}
