package cli

import (
	"fmt"

	"github.com/nholden/habitgrid/internal/progress"
	"github.com/nholden/habitgrid/internal/validation"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `short:"D" help:"Day to toggle (YYYY-MM-DD)." default:"today"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "today" {
		date = progress.Today()
	} else if !validation.IsDay(date) {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", date)
	}

	if err := ctx.State.ToggleDate(h.ID, date); err != nil {
		return err
	}

	if ctx.State.Dates(h.ID).Has(date) {
		fmt.Printf("✓ %s marked done on %s\n", h.Name, date)
	} else {
		fmt.Printf("✗ %s unmarked on %s\n", h.Name, date)
	}
	return nil
}

type IncrCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *IncrCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	count, err := ctx.State.IncrementToday(h.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d today\n", h.Name, count)
	return nil
}

type DecrCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *DecrCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	count, err := ctx.State.DecrementToday(h.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d today\n", h.Name, count)
	return nil
}

type ResetCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.State.ResetTodayCount(h.ID); err != nil {
		return err
	}
	fmt.Printf("%s: today's count cleared\n", h.Name)
	return nil
}
