package progress

import (
	"time"

	"github.com/nholden/habitgrid/internal/models"
)

// GoalProgress reports how the active period is going against the target.
type GoalProgress struct {
	Done        int
	Target      int
	PeriodLabel string
	IsComplete  bool
}

// Progress computes done-vs-target for the period containing today.
//
// For daily goals, todayCount supplies the repetition count when the caller
// has it; pass a negative value to fall back to 1/0 set membership. Weekly
// and monthly goals count distinct completed days in the Sunday-aligned
// week or calendar month.
func Progress(habit models.Habit, completions DateSet, today string, todayCount int) GoalProgress {
	p := GoalProgress{Target: habit.GoalTarget, PeriodLabel: "today"}

	switch habit.GoalPeriod {
	case models.PeriodDay:
		if todayCount >= 0 {
			p.Done = todayCount
		} else if completions.Has(today) {
			p.Done = 1
		}

	case models.PeriodWeek:
		p.PeriodLabel = "this week"
		if day, err := ParseDay(today); err == nil {
			start := startOfWeek(day)
			p.Done = countActiveDays(completions, start, start.AddDate(0, 0, 6))
		}

	case models.PeriodMonth:
		p.PeriodLabel = "this month"
		if day, err := ParseDay(today); err == nil {
			start := startOfMonth(day)
			p.Done = countActiveDays(completions, start, start.AddDate(0, 1, -1))
		}
	}

	p.IsComplete = p.Done >= p.Target
	return p
}

func countActiveDays(completions DateSet, start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if completions.Has(FormatDay(d)) {
			n++
		}
	}
	return n
}
