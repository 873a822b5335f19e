package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerlearn/tutoring-backend/internal/availability"
)

func TestNewWeekResponse(t *testing.T) {
	rules := []*availability.Rule{
		{ID: "r1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60},
		{ID: "r2", DayOfWeek: 1, StartMin: 14 * 60, EndMin: 16 * 60},
		{ID: "r3", DayOfWeek: 5, StartMin: 8 * 60, EndMin: 9 * 60},
	}

	resp := NewWeekResponse(rules)

	// Monday keeps both rules in input (start-time) order, formatted HH:MM.
	assert.Equal(t, []RuleResponse{
		{ID: "r1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{ID: "r2", DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"},
	}, resp.Days[1])

	assert.Equal(t, []RuleResponse{
		{ID: "r3", DayOfWeek: 5, StartTime: "08:00", EndTime: "09:00"},
	}, resp.Days[5])

	// Days without rules serialize as [] rather than null.
	for _, d := range []int{0, 2, 3, 4, 6} {
		assert.NotNil(t, resp.Days[d])
		assert.Empty(t, resp.Days[d])
	}
}

func TestNewWeekResponseEmpty(t *testing.T) {
	resp := NewWeekResponse(nil)
	for d := 0; d < 7; d++ {
		assert.NotNil(t, resp.Days[d])
		assert.Empty(t, resp.Days[d])
	}
}
