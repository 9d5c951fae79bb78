package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nholden/habitgrid/internal/models"
)

func dailyHabit() models.Habit {
	return models.Habit{GoalPeriod: models.PeriodDay, GoalTarget: 1}
}

func weeklyHabit(target int) models.Habit {
	return models.Habit{GoalPeriod: models.PeriodWeek, GoalTarget: target}
}

func monthlyHabit(target int) models.Habit {
	return models.Habit{GoalPeriod: models.PeriodMonth, GoalTarget: target}
}

func TestDailyStreakCountsBackFromToday(t *testing.T) {
	dates := NewDateSet("2026-08-27", "2026-08-28", "2026-08-29")
	assert.Equal(t, 3, Streak(dailyHabit(), dates, "2026-08-29"))
}

func TestDailyStreakFallsBackToYesterday(t *testing.T) {
	// Today not yet done: streak starts from yesterday
	dates := NewDateSet("2026-08-27", "2026-08-28")
	assert.Equal(t, 2, Streak(dailyHabit(), dates, "2026-08-29"))
}

func TestDailyStreakBrokenByGap(t *testing.T) {
	// Neither today nor yesterday done
	dates := NewDateSet("2026-08-25", "2026-08-26")
	assert.Equal(t, 0, Streak(dailyHabit(), dates, "2026-08-29"))
}

func TestDailyStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, Streak(dailyHabit(), NewDateSet(), "2026-08-29"))
}

func TestDailyStreakIgnoresNonAdjacentHistory(t *testing.T) {
	dates := NewDateSet("2026-08-01", "2026-08-02", "2026-08-29")
	assert.Equal(t, 1, Streak(dailyHabit(), dates, "2026-08-29"))
}

func TestWeeklyStreakSkipsCurrentIncompleteWeek(t *testing.T) {
	// Target 3/week. 2026-08-29 is a Saturday in the week of Aug 23-29.
	// The current week has only 1 active day; the two previous weeks
	// qualify, so the in-progress week is skipped rather than a break.
	dates := NewDateSet(
		"2026-08-24", // current week, 1 day
		"2026-08-16", "2026-08-18", "2026-08-20", // week of Aug 16
		"2026-08-09", "2026-08-11", "2026-08-13", // week of Aug 9
	)
	assert.Equal(t, 2, Streak(weeklyHabit(3), dates, "2026-08-29"))
}

func TestWeeklyStreakIncludesCurrentCompleteWeek(t *testing.T) {
	dates := NewDateSet(
		"2026-08-24", "2026-08-25", "2026-08-26", // current week qualifies
		"2026-08-16", "2026-08-18", "2026-08-20",
	)
	assert.Equal(t, 2, Streak(weeklyHabit(3), dates, "2026-08-29"))
}

func TestWeeklyStreakEarlierIncompleteWeekBreaks(t *testing.T) {
	// Once the streak is nonzero, an incomplete week ends the walk even
	// though the skip rule forgave the current week.
	dates := NewDateSet(
		"2026-08-16", "2026-08-18", "2026-08-20", // week of Aug 16 qualifies
		"2026-08-10",                             // week of Aug 9 has only 1
		"2026-08-02", "2026-08-04", "2026-08-06", // week of Aug 2 qualifies but is unreachable
	)
	assert.Equal(t, 1, Streak(weeklyHabit(3), dates, "2026-08-29"))
}

func TestWeeklyStreakNothingQualifies(t *testing.T) {
	dates := NewDateSet("2026-08-24")
	assert.Equal(t, 0, Streak(weeklyHabit(3), dates, "2026-08-29"))
}

func TestMonthlyStreak(t *testing.T) {
	// Target 5/month. July and June qualify; August is in progress with 2
	// days so it is skipped.
	dates := NewDateSet(
		"2026-08-01", "2026-08-02",
		"2026-07-01", "2026-07-05", "2026-07-10", "2026-07-15", "2026-07-20",
		"2026-06-02", "2026-06-06", "2026-06-11", "2026-06-16", "2026-06-21",
	)
	assert.Equal(t, 2, Streak(monthlyHabit(5), dates, "2026-08-29"))
}

func TestStreakUnknownPeriod(t *testing.T) {
	h := models.Habit{GoalPeriod: "fortnight", GoalTarget: 1}
	assert.Equal(t, 0, Streak(h, NewDateSet("2026-08-29"), "2026-08-29"))
}

func TestStreakBadToday(t *testing.T) {
	assert.Equal(t, 0, Streak(dailyHabit(), NewDateSet("2026-08-29"), "not-a-date"))
}

func TestLongestStreak(t *testing.T) {
	assert.Equal(t, 0, LongestStreak(NewDateSet()))
	assert.Equal(t, 1, LongestStreak(NewDateSet("2026-08-29")))

	// {Jan 1, Jan 2, Jan 4} has a longest run of 2
	assert.Equal(t, 2, LongestStreak(NewDateSet("2024-01-01", "2024-01-02", "2024-01-04")))

	// Month boundary still counts as adjacent
	assert.Equal(t, 4, LongestStreak(NewDateSet(
		"2026-07-30", "2026-07-31", "2026-08-01", "2026-08-02", "2026-08-10",
	)))
}

func TestLongestStreakIsDailyEvenForWeeklyHabits(t *testing.T) {
	// Same computation regardless of goal period: raw adjacent-day runs
	dates := NewDateSet("2026-08-10", "2026-08-11", "2026-08-12")
	assert.Equal(t, 3, LongestStreak(dates))
}
