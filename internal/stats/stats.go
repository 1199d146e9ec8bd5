// Package stats computes derived statistics over an already-loaded
// collection of workouts. All functions are pure and synchronous: they do
// no I/O and depend only on their inputs and an explicit reference time,
// so they are fully unit-testable without a database.
package stats

import (
	"time"

	"fitlog/workout-tracker/internal/domain"
)

// streakLookbackDays bounds how far back the streak walk goes. The walk
// terminates here even if the run of workout days continues unbroken.
const streakLookbackDays = 60

// normalize truncates t to midnight in loc, keeping only the calendar day.
func normalize(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Streak returns the length of the consecutive run of calendar days ending
// today (or yesterday) on which at least one workout exists, looking back
// at most 60 days from now.
//
// A workout today starts the streak at 1. If today has no workout but
// yesterday does, the streak still starts (counted from yesterday). The
// first empty day after the streak has started breaks it.
func Streak(workouts []domain.Workout, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}

	loc := now.Location()
	today := normalize(now, loc)

	// Collect the distinct workout days for O(1) lookups during the walk.
	days := make(map[time.Time]struct{}, len(workouts))
	for _, w := range workouts {
		days[normalize(w.Date, loc)] = struct{}{}
	}

	streak := 0
	if _, ok := days[today]; ok {
		streak = 1
	}

	day := today
	for i := 1; i <= streakLookbackDays; i++ {
		day = day.AddDate(0, 0, -1)
		if _, ok := days[day]; ok {
			if streak > 0 {
				streak++
			} else if i == 1 {
				// No workout today, but one yesterday: the streak
				// still registers, anchored at yesterday.
				streak = 1
			}
		} else if streak > 0 {
			break
		}
	}

	return streak
}

// OnDate returns the workouts whose date falls on the same calendar day as
// day, preserving the input order. Both sides are normalized into day's
// location before comparing, so dates stored in UTC group onto the same
// local day the streak walk assigns them to.
func OnDate(workouts []domain.Workout, day time.Time) []domain.Workout {
	loc := day.Location()
	target := normalize(day, loc)

	matched := make([]domain.Workout, 0)
	for _, w := range workouts {
		if normalize(w.Date, loc).Equal(target) {
			matched = append(matched, w)
		}
	}
	return matched
}

// WeekdayLabels are the histogram bucket labels, Monday first.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklyHistogram buckets workouts by day of week and returns the seven
// counters in Monday-first order. Go's time.Weekday is Sunday-first, so the
// native ordering is rotated: [Mon..Sun] = [buckets[1..6], buckets[0]].
func WeeklyHistogram(workouts []domain.Workout) [7]int {
	var bySunday [7]int // indexed by time.Weekday (Sunday = 0)
	for _, w := range workouts {
		bySunday[w.Date.Weekday()]++
	}

	var byMonday [7]int
	for i := 1; i < 7; i++ {
		byMonday[i-1] = bySunday[i]
	}
	byMonday[6] = bySunday[time.Sunday]
	return byMonday
}
