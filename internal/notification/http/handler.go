package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/notification"
	"github.com/peerlearn/tutoring-backend/internal/pkg/response"
)

type Handler struct {
	service notification.Service
}

func NewHandler(service notification.Service) *Handler {
	return &Handler{service: service}
}

// List returns the authenticated user's notifications, newest first.
func (h *Handler) List(c *gin.Context) {
	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := notification.Filter{
		UserID:     auth.GetUserID(c),
		UnreadOnly: req.UnreadOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = NewNotificationResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(resp, req.Page, req.PageSize, total))
}

// MarkRead marks one of the caller's notifications as read.
func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.MarkRead(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.Status(http.StatusNoContent)
}
