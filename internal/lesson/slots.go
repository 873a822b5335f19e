package lesson

import (
	"sort"
	"time"

	"github.com/peerlearn/tutoring-backend/internal/availability"
)

// GenerateSlots computes the bookable start times on a given UTC date.
//
// Each rule is stepped from its start in duration-sized increments; a
// candidate survives if the whole lesson fits inside the rule's window, the
// start is strictly in the future, and no active lesson sits closer than one
// duration to it. Results are deduplicated across rules and ascending.
//
// Pure function: both the rules and the candidate lessons are inputs, so the
// same arguments always produce the same slots.
func GenerateSlots(date time.Time, rules []*availability.Rule, booked []*Lesson, durationMin int, now time.Time) []time.Time {
	if durationMin <= 0 {
		return []time.Time{}
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	duration := time.Duration(durationMin) * time.Minute

	seen := make(map[time.Time]struct{})
	var slots []time.Time

	for _, r := range rules {
		for m := r.StartMin; m+durationMin <= r.EndMin; m += durationMin {
			candidate := dayStart.Add(time.Duration(m) * time.Minute)

			if !candidate.After(now) {
				continue
			}
			if conflicts(candidate, booked, duration) {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			slots = append(slots, candidate)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })

	if slots == nil {
		slots = []time.Time{}
	}
	return slots
}

// conflicts reports whether a candidate window [candidate, candidate+duration)
// overlaps any active booked lesson. With a uniform duration this is the same
// as the starts being less than one duration apart.
func conflicts(candidate time.Time, booked []*Lesson, duration time.Duration) bool {
	candidateEnd := candidate.Add(duration)
	for _, l := range booked {
		if !l.Status.IsActive() {
			continue
		}
		if candidate.Before(l.EndsAt()) && candidateEnd.After(l.ScheduledAt) {
			return true
		}
	}
	return false
}
