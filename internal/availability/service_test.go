package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo keeps rules in memory and enforces non-overlap the way the
// database exclusion constraint does.
type fakeRepo struct {
	nextID int
	rules  []*Rule
}

func (r *fakeRepo) Create(_ context.Context, rule *Rule) error {
	for _, existing := range r.rules {
		if existing.TutorID == rule.TutorID &&
			existing.DayOfWeek == rule.DayOfWeek &&
			rule.StartMin < existing.EndMin && rule.EndMin > existing.StartMin {
			return ErrOverlappingRule
		}
	}
	r.nextID++
	rule.ID = fmt.Sprintf("rule-%d", r.nextID)
	rule.CreatedAt = time.Now()
	r.rules = append(r.rules, rule)
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, tutorID, id string) error {
	for i, rule := range r.rules {
		if rule.ID == id && rule.TutorID == tutorID {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) ListByTutor(_ context.Context, tutorID string) ([]*Rule, error) {
	var out []*Rule
	for _, rule := range r.rules {
		if rule.TutorID == tutorID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForDay(_ context.Context, tutorID string, day int) ([]*Rule, error) {
	var out []*Rule
	for _, rule := range r.rules {
		if rule.TutorID == tutorID && rule.DayOfWeek == day {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, tutorID string, day, startMin, endMin int) (bool, error) {
	for _, rule := range r.rules {
		if rule.TutorID == tutorID && rule.DayOfWeek == day &&
			startMin < rule.EndMin && endMin > rule.StartMin {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateRule(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "valid rule",
			req:  CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60},
		},
		{
			name: "full day",
			req:  CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 0, EndMin: 1440},
		},
		{
			name:    "negative day",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: -1, StartMin: 9 * 60, EndMin: 12 * 60},
			wantErr: ErrDayOutOfRange,
		},
		{
			name:    "day above saturday",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 7, StartMin: 9 * 60, EndMin: 12 * 60},
			wantErr: ErrDayOutOfRange,
		},
		{
			name:    "start equals end",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 9 * 60},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "start after end",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 12 * 60, EndMin: 9 * 60},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "end past midnight",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 23 * 60, EndMin: 1441},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{})
			rule, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, rule.ID)
		})
	}
}

func TestCreateRuleOverlap(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(ctx, CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "identical window",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60},
			wantErr: ErrOverlappingRule,
		},
		{
			name:    "partial overlap",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 11 * 60, EndMin: 14 * 60},
			wantErr: ErrOverlappingRule,
		},
		{
			name:    "containing window",
			req:     CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 8 * 60, EndMin: 13 * 60},
			wantErr: ErrOverlappingRule,
		},
		{
			name: "adjacent window is fine",
			req:  CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 12 * 60, EndMin: 14 * 60},
		},
		{
			name: "same window on another day",
			req:  CreateRequest{TutorID: "t1", DayOfWeek: 2, StartMin: 9 * 60, EndMin: 12 * 60},
		},
		{
			name: "same window for another tutor",
			req:  CreateRequest{TutorID: "t2", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteRule(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})

	rule, err := svc.Create(ctx, CreateRequest{TutorID: "t1", DayOfWeek: 1, StartMin: 9 * 60, EndMin: 12 * 60})
	require.NoError(t, err)

	// Someone else's delete looks like a missing rule.
	assert.ErrorIs(t, svc.Delete(ctx, "t2", rule.ID), ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "t1", rule.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "t1", rule.ID), ErrNotFound)
}

func TestParseMinute(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*60 + 30},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", want: 1440},
		{in: "24:01", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMinute(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMinuteRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 9*60 + 30, 23*60 + 59} {
		got, err := ParseMinute(FormatMinute(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestRuleContains(t *testing.T) {
	r := &Rule{StartMin: 9 * 60, EndMin: 12 * 60}

	assert.True(t, r.Contains(9*60, 60))
	assert.True(t, r.Contains(11*60, 60))
	assert.False(t, r.Contains(11*60+30, 60)) // would spill past the end
	assert.False(t, r.Contains(12*60, 60))
	assert.False(t, r.Contains(8*60, 60))
}
