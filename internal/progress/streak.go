package progress

import (
	"sort"
	"time"

	"github.com/nholden/habitgrid/internal/models"
)

// periodBounds describes one goal-period variant: how to find the period
// containing a day, where it ends, and how to step to the previous one.
// Keeping each period as its own entry localizes adding a new one.
type periodBounds struct {
	start func(time.Time) time.Time
	end   func(start time.Time) time.Time
	prev  func(start time.Time) time.Time
}

var weekBounds = periodBounds{
	start: startOfWeek,
	end:   func(start time.Time) time.Time { return start.AddDate(0, 0, 6) },
	prev:  func(start time.Time) time.Time { return start.AddDate(0, 0, -7) },
}

var monthBounds = periodBounds{
	start: startOfMonth,
	end:   func(start time.Time) time.Time { return start.AddDate(0, 1, -1) },
	prev:  func(start time.Time) time.Time { return start.AddDate(0, -1, 0) },
}

// Streak computes the habit's current streak: the number of consecutive
// qualifying periods (days, weeks, or months) ending at or adjacent to
// today. The today argument is a YYYY-MM-DD string; activeDates are the
// days satisfying the habit's per-period target.
func Streak(habit models.Habit, activeDates DateSet, today string) int {
	switch habit.GoalPeriod {
	case models.PeriodDay:
		return dailyStreak(activeDates, today)
	case models.PeriodWeek:
		return periodStreak(activeDates, today, habit.GoalTarget, weekBounds)
	case models.PeriodMonth:
		return periodStreak(activeDates, today, habit.GoalTarget, monthBounds)
	default:
		return 0
	}
}

// dailyStreak counts consecutive active days backward from today, or from
// yesterday when today is not yet active. A gap at both today and
// yesterday yields 0.
func dailyStreak(activeDates DateSet, today string) int {
	day, err := ParseDay(today)
	if err != nil {
		return 0
	}

	if !activeDates.Has(today) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for activeDates.Has(FormatDay(day)) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// periodStreak walks periods backward from the one containing today. A
// period counts when it holds at least target active days. The current,
// possibly still in-progress period is skipped rather than treated as a
// break, but only while the streak is still 0, so any earlier incomplete
// period terminates the walk.
func periodStreak(activeDates DateSet, today string, target int, bounds periodBounds) int {
	todayDay, err := ParseDay(today)
	if err != nil {
		return 0
	}

	streak := 0
	start := bounds.start(todayDay)

	for {
		end := bounds.end(start)

		active := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if activeDates.Has(FormatDay(d)) {
				active++
			}
		}

		if active >= target {
			streak++
			start = bounds.prev(start)
			continue
		}

		if streak == 0 && !start.After(todayDay) && !todayDay.After(end) {
			start = bounds.prev(start)
			continue
		}
		break
	}

	return streak
}

// LongestStreak returns the longest run of calendar-adjacent days in the
// set. It always works at daily granularity, regardless of the habit's
// goal period.
func LongestStreak(activeDates DateSet) int {
	if len(activeDates) == 0 {
		return 0
	}

	days := make([]string, 0, len(activeDates))
	for d := range activeDates {
		days = append(days, d)
	}
	sort.Strings(days)

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		prev, err := ParseDay(days[i-1])
		if err != nil {
			continue
		}
		if FormatDay(prev.AddDate(0, 0, 1)) == days[i] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}
