package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/peerlearn/tutoring-backend/internal/auth"
	"github.com/peerlearn/tutoring-backend/internal/pkg/response"
	"github.com/peerlearn/tutoring-backend/internal/skill"
)

type Handler struct {
	service skill.Service
}

func NewHandler(service skill.Service) *Handler {
	return &Handler{service: service}
}

// List returns the public skill catalog.
func (h *Handler) List(c *gin.Context) {
	var req ListSkillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	skills, total, err := h.service.List(c.Request.Context(), skill.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}

	items := make([]SkillResponse, len(skills))
	for i, s := range skills {
		items[i] = NewSkillResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListMine returns the caller's skills grouped into teaching and learning.
func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListForUser(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}

	c.JSON(http.StatusOK, NewUserSkillsResponse(items))
}

// Link attaches a skill to the caller's profile by id or free-text name.
func (h *Handler) Link(c *gin.Context) {
	var body LinkSkillRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sk, err := h.service.Link(c.Request.Context(), auth.GetUserID(c), skill.LinkRequest{
		SkillID:   body.SkillID,
		SkillName: body.SkillName,
		Kind:      skill.LinkKind(body.Kind),
	})
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrAlreadyLinked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, skill.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, skill.ErrNameRequired), errors.Is(err, skill.ErrInvalidKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to link skill"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewSkillResponse(sk))
}

// Unlink removes a skill from the caller's profile.
func (h *Handler) Unlink(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UnlinkSkillRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind query parameter must be teach or learn"})
		return
	}

	err := h.service.Unlink(c.Request.Context(), auth.GetUserID(c), id, skill.LinkKind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrNotLinked):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, skill.ErrInvalidKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unlink skill"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
