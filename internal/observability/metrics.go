package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsSavedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "gateway",
		Name:      "workouts_saved_total",
		Help:      "Number of workouts inserted or updated.",
	})
	exercisesSavedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "gateway",
		Name:      "exercises_saved_total",
		Help:      "Number of exercises inserted or updated.",
	})
	authFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_tracker",
		Subsystem: "auth",
		Name:      "failures_total",
		Help:      "Number of failed login attempts.",
	})
)

func init() {
	prometheus.MustRegister(workoutsSavedCounter, exercisesSavedCounter, authFailuresCounter)
}

// RecordWorkoutSaved increments the workouts-saved counter.
func RecordWorkoutSaved() {
	workoutsSavedCounter.Inc()
}

// RecordExerciseSaved increments the exercises-saved counter.
func RecordExerciseSaved() {
	exercisesSavedCounter.Inc()
}

// RecordAuthFailure increments the failed-login counter.
func RecordAuthFailure() {
	authFailuresCounter.Inc()
}
