package http

import (
	"time"

	"github.com/peerlearn/tutoring-backend/internal/lesson"
	"github.com/peerlearn/tutoring-backend/internal/pkg/request"
)

// ReserveLessonRequest books one of the slots returned by the slots endpoint.
type ReserveLessonRequest struct {
	TutorID     string    `json:"tutor_id" binding:"required,uuid"`
	SkillID     string    `json:"skill_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// ListLessonsRequest defines query parameters for listing the caller's lessons.
type ListLessonsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
}

// SlotsRequest selects the UTC date to list bookable start times for.
type SlotsRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

type LessonResponse struct {
	ID              string    `json:"id"`
	TutorID         string    `json:"tutor_id"`
	TutorName       string    `json:"tutor_name"`
	StudentID       string    `json:"student_id"`
	StudentName     string    `json:"student_name"`
	SkillID         string    `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	Title           string    `json:"title"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewLessonResponse(l *lesson.Lesson) LessonResponse {
	return LessonResponse{
		ID:              l.ID,
		TutorID:         l.TutorID,
		TutorName:       l.TutorName,
		StudentID:       l.StudentID,
		StudentName:     l.StudentName,
		SkillID:         l.SkillID,
		SkillName:       l.SkillName,
		Title:           l.Title,
		ScheduledAt:     l.ScheduledAt,
		DurationMinutes: l.DurationMinutes,
		Price:           l.Price,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
	}
}

// SlotsResponse lists bookable start times, ascending, as RFC 3339 UTC.
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func NewSlotsResponse(date string, slots []time.Time) SlotsResponse {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Format(time.RFC3339)
	}
	return SlotsResponse{Date: date, Slots: out}
}
