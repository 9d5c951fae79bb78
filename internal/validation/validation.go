// Package validation holds the input checks shared by the CLI and the
// backup importer. The storage layer does not enforce these; callers do.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nholden/habitgrid/internal/models"
)

var dayRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsDay reports whether s has the YYYY-MM-DD shape.
func IsDay(s string) bool {
	return dayRe.MatchString(s)
}

// ParseClock parses an HH:MM string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ValidateHabitInput checks a habit about to be created.
func ValidateHabitInput(input models.HabitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}
	if !input.GoalPeriod.Valid() {
		return fmt.Errorf("invalid goal period %q (expected day, week, or month)", input.GoalPeriod)
	}
	if input.GoalTarget < 1 {
		return fmt.Errorf("goal target must be at least 1")
	}
	if input.ReminderEnabled {
		if input.ReminderTime == nil {
			return fmt.Errorf("reminder time is required when the reminder is enabled")
		}
		if _, _, err := ParseClock(*input.ReminderTime); err != nil {
			return err
		}
	} else if input.ReminderTime != nil {
		return fmt.Errorf("reminder time given but the reminder is not enabled")
	}
	return nil
}

// ValidateHabitPatch checks the fields a patch actually sets.
func ValidateHabitPatch(patch models.HabitPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}
	if patch.GoalPeriod != nil && !patch.GoalPeriod.Valid() {
		return fmt.Errorf("invalid goal period %q (expected day, week, or month)", *patch.GoalPeriod)
	}
	if patch.GoalTarget != nil && *patch.GoalTarget < 1 {
		return fmt.Errorf("goal target must be at least 1")
	}
	if patch.ReminderTime != nil {
		if patch.ClearReminderTime {
			return fmt.Errorf("cannot both set and clear the reminder time")
		}
		if _, _, err := ParseClock(*patch.ReminderTime); err != nil {
			return err
		}
	}
	return nil
}
