package http

import (
	"github.com/peerlearn/tutoring-backend/internal/availability"
)

// CreateRuleRequest defines the payload for adding an availability rule.
type CreateRuleRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// RuleResponse is a single availability rule as returned by the API.
type RuleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewRuleResponse(r *availability.Rule) RuleResponse {
	return RuleResponse{
		ID:        r.ID,
		DayOfWeek: r.DayOfWeek,
		StartTime: availability.FormatMinute(r.StartMin),
		EndTime:   availability.FormatMinute(r.EndMin),
	}
}

// WeekResponse groups a tutor's rules by weekday, each day sorted by start time.
type WeekResponse struct {
	Days [7][]RuleResponse `json:"days"`
}

func NewWeekResponse(rules []*availability.Rule) WeekResponse {
	var resp WeekResponse
	for d := range resp.Days {
		resp.Days[d] = make([]RuleResponse, 0)
	}
	for _, r := range rules {
		resp.Days[r.DayOfWeek] = append(resp.Days[r.DayOfWeek], NewRuleResponse(r))
	}
	return resp
}
