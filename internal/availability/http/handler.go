package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/availability"
	"github.com/peerlearn/tutoring-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Create adds a recurring weekly availability rule for the authenticated tutor.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	tutorID := auth.GetUserID(c)
	if tutorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	startMin, err := availability.ParseMinute(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	endMin, err := availability.ParseMinute(body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	rule, err := h.service.Create(c.Request.Context(), availability.CreateRequest{
		TutorID:   tutorID,
		DayOfWeek: body.DayOfWeek,
		StartMin:  startMin,
		EndMin:    endMin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRuleResponse(rule))
}

// Delete removes one of the authenticated tutor's own rules.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	tutorID := auth.GetUserID(c)
	if err := h.service.Delete(c.Request.Context(), tutorID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine returns the authenticated tutor's rules grouped by weekday.
func (h *Handler) ListMine(c *gin.Context) {
	tutorID := auth.GetUserID(c)

	rules, err := h.service.ListByTutor(c.Request.Context(), tutorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWeekResponse(rules))
}

// ListForTutor returns a tutor's weekly availability rules (public).
func (h *Handler) ListForTutor(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rules, err := h.service.ListByTutor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWeekResponse(rules))
}
