// Package progress holds the pure habit-tracking logic: streaks, goal
// progress, and calendar-grid generation. It does no I/O; callers hand it
// date sets loaded elsewhere.
package progress

import (
	"time"
)

// DayFormat is the calendar-day layout used everywhere (YYYY-MM-DD).
const DayFormat = "2006-01-02"

// DateSet is a set of YYYY-MM-DD strings.
type DateSet map[string]struct{}

// NewDateSet builds a set from the given days.
func NewDateSet(days ...string) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the day.
func (s DateSet) Has(day string) bool {
	_, ok := s[day]
	return ok
}

// Add inserts a day into the set.
func (s DateSet) Add(day string) {
	s[day] = struct{}{}
}

// Remove deletes a day from the set.
func (s DateSet) Remove(day string) {
	delete(s, day)
}

// ParseDay parses a YYYY-MM-DD string as a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.UTC)
}

// FormatDay formats a time as a YYYY-MM-DD string.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// Today returns the current local calendar day as a YYYY-MM-DD string.
func Today() string {
	return FormatDay(time.Now())
}

// startOfWeek returns the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// startOfMonth returns the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
