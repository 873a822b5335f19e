package http

import (
	"github.com/peerlearn/tutoring-backend/internal/pkg/request"
	"github.com/peerlearn/tutoring-backend/internal/skill"
)

// LinkSkillRequest attaches a skill to the caller's profile.
// Provide either skill_id or skill_name.
type LinkSkillRequest struct {
	SkillID   string `json:"skill_id" binding:"omitempty,uuid"`
	SkillName string `json:"skill_name"`
	Kind      string `json:"kind" binding:"required,oneof=teach learn"`
}

// UnlinkSkillRequest selects which side of the profile to remove the skill from.
type UnlinkSkillRequest struct {
	Kind string `form:"kind" binding:"required,oneof=teach learn"`
}

// ListSkillsRequest defines query parameters for browsing the catalog.
type ListSkillsRequest struct {
	request.ListParams
	Keyword string `form:"q"`
}

type SkillResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewSkillResponse(s *skill.Skill) SkillResponse {
	return SkillResponse{
		ID:       s.ID,
		Name:     s.Name,
		Category: s.Category,
	}
}

// UserSkillsResponse groups a user's skills into teaching and learning lists.
type UserSkillsResponse struct {
	Teaching []SkillResponse `json:"teaching"`
	Learning []SkillResponse `json:"learning"`
}

func NewUserSkillsResponse(items []*skill.UserSkill) UserSkillsResponse {
	resp := UserSkillsResponse{
		Teaching: make([]SkillResponse, 0),
		Learning: make([]SkillResponse, 0),
	}
	for _, us := range items {
		sr := NewSkillResponse(&us.Skill)
		if us.Kind == skill.KindTeach {
			resp.Teaching = append(resp.Teaching, sr)
		} else {
			resp.Learning = append(resp.Learning, sr)
		}
	}
	return resp
}
