package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	lessonReserved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peerlearn",
			Name:      "lesson_reserved_total",
			Help:      "Count of lesson reservation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	slotConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "peerlearn",
			Name:      "lesson_slot_conflict_total",
			Help:      "Count of reservations lost to a concurrent booking of the same slot.",
		},
	)

	lessonTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peerlearn",
			Name:      "lesson_transition_total",
			Help:      "Count of lesson status transitions by target status.",
		},
		[]string{"to"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(lessonReserved, slotConflict, lessonTransition)
	})
}

func IncLessonReserved(outcome string) {
	lessonReserved.WithLabelValues(outcome).Inc()
}

func IncSlotConflict() {
	slotConflict.Inc()
}

func IncLessonTransition(to string) {
	lessonTransition.WithLabelValues(to).Inc()
}
