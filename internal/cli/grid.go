package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/progress"
)

var (
	gridEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	gridFuture = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	gridLevels = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}
	gridLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type GridCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Weeks int    `short:"w" help:"Number of week columns to show." default:"26"`
}

func (c *GridCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}
	if c.Weeks < 1 {
		return fmt.Errorf("weeks must be at least 1")
	}

	today := progress.Today()
	end := today
	start := progress.FormatDay(time.Now().AddDate(0, 0, -(c.Weeks-1)*7))

	cells, err := progress.GridCells(start, end)
	if err != nil {
		return err
	}
	weeks := progress.GroupCellsByWeek(cells)
	dates := ctx.State.Dates(h.ID)

	fmt.Printf("%s, last %d weeks\n\n", h.Name, len(weeks))

	dayNames := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for dow := 0; dow < 7; dow++ {
		var row strings.Builder
		row.WriteString(gridLabel.Render(dayNames[dow] + " "))
		for _, week := range weeks {
			cell := week[dow]
			switch {
			case cell.Date > today:
				row.WriteString(gridFuture.Render("· "))
			case dates.Has(cell.Date):
				count := ctx.State.CountForDate(h.ID, cell.Date)
				level := count
				if level > len(gridLevels) {
					level = len(gridLevels)
				}
				if level < 1 {
					level = 1
				}
				row.WriteString(gridLevels[level-1].Render("■ "))
			default:
				row.WriteString(gridEmpty.Render("□ "))
			}
		}
		fmt.Println(row.String())
	}

	p := ctx.State.Progress(h)
	fmt.Printf("\n%d/%d %s · streak %d · longest daily run %d\n",
		p.Done, p.Target, p.PeriodLabel, ctx.State.Streak(h), ctx.State.LongestStreak(h.ID))
	return nil
}

type StreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or id (all habits when omitted)."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}

	habits := ctx.State.Habits()
	if c.Habit != "" {
		h, err := ctx.findHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet.")
		return nil
	}

	for _, h := range habits {
		fmt.Printf("%-24s  streak %-4d longest daily run %d\n",
			h.Name, ctx.State.Streak(h), ctx.State.LongestStreak(h.ID))
	}
	return nil
}
