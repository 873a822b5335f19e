package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/lesson"
	"github.com/peerlearn/tutoring-backend/internal/pkg/response"
)

type Handler struct {
	service lesson.Service
}

func NewHandler(service lesson.Service) *Handler {
	return &Handler{service: service}
}

// Reserve books a lesson slot for the authenticated student.
func (h *Handler) Reserve(c *gin.Context) {
	var body ReserveLessonRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Reserve(c.Request.Context(), auth.GetUserID(c), lesson.ReserveRequest{
		TutorID:     body.TutorID,
		SkillID:     body.SkillID,
		ScheduledAt: body.ScheduledAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLessonResponse(l))
}

// List returns the authenticated user's lessons, tutor or student side.
func (h *Handler) List(c *gin.Context) {
	var req ListLessonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	lessons, total, err := h.service.List(c.Request.Context(), lesson.Filter{
		UserID:   auth.GetUserID(c),
		Status:   lesson.Status(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LessonResponse, len(lessons))
	for i, l := range lessons {
		items[i] = NewLessonResponse(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns one lesson. Participants only.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLessonResponse(l))
}

// Confirm accepts a pending lesson. Tutor only.
func (h *Handler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.Confirm(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLessonResponse(l))
}

// Cancel withdraws a pending or confirmed lesson.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.Cancel(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLessonResponse(l))
}

// Slots returns a tutor's bookable start times on a UTC date (public).
func (h *Handler) Slots(c *gin.Context) {
	tutorID := c.Param("id")
	if _, err := uuid.Parse(tutorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter must be YYYY-MM-DD"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter must be YYYY-MM-DD"})
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), tutorID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotsResponse(req.Date, slots))
}
