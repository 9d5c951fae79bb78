package progress

import (
	"fmt"
)

// GridCell is one day in a week-aligned contribution grid. DayOfWeek is
// 0 for Sunday; WeekIndex is zero-based from the aligned start.
type GridCell struct {
	Date      string
	DayOfWeek int
	WeekIndex int
}

// GridCells produces one cell per calendar day from the Sunday-aligned
// week containing start through the Saturday-aligned week containing end.
// The alignment guarantees every week column has exactly 7 slots even when
// the range starts or ends mid-week.
func GridCells(start, end string) ([]GridCell, error) {
	startDay, err := ParseDay(start)
	if err != nil {
		return nil, fmt.Errorf("invalid grid start %q: %w", start, err)
	}
	endDay, err := ParseDay(end)
	if err != nil {
		return nil, fmt.Errorf("invalid grid end %q: %w", end, err)
	}
	if endDay.Before(startDay) {
		return nil, fmt.Errorf("grid end %s is before start %s", end, start)
	}

	aligned := startOfWeek(startDay)
	alignedEnd := startOfWeek(endDay).AddDate(0, 0, 6)
	totalDays := int(alignedEnd.Sub(aligned).Hours()/24) + 1

	cells := make([]GridCell, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		day := aligned.AddDate(0, 0, i)
		cells = append(cells, GridCell{
			Date:      FormatDay(day),
			DayOfWeek: int(day.Weekday()),
			WeekIndex: i / 7,
		})
	}
	return cells, nil
}

// WeekCount returns how many week columns the grid for the range spans.
func WeekCount(start, end string) (int, error) {
	cells, err := GridCells(start, end)
	if err != nil {
		return 0, err
	}
	if len(cells) == 0 {
		return 0, nil
	}
	return cells[len(cells)-1].WeekIndex + 1, nil
}

// GroupCellsByWeek partitions cells into per-week sublists, preserving day
// order inside each week.
func GroupCellsByWeek(cells []GridCell) [][]GridCell {
	var weeks [][]GridCell
	for _, cell := range cells {
		for len(weeks) <= cell.WeekIndex {
			weeks = append(weeks, nil)
		}
		weeks[cell.WeekIndex] = append(weeks[cell.WeekIndex], cell)
	}
	return weeks
}
