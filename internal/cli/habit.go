package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/validation"
)

type AddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
	Icon        string `help:"Icon identifier." default:"spark"`
	Color       string `help:"Color identifier." default:"emerald"`
	Period      string `short:"p" help:"Goal period (day|week|month)." default:"day"`
	Target      int    `short:"t" help:"Completions required per period." default:"1"`
	Remind      string `short:"r" help:"Daily reminder time (HH:MM)."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}

	input := models.HabitInput{
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		GoalPeriod: models.GoalPeriod(c.Period),
		GoalTarget: c.Target,
	}
	if c.Description != "" {
		input.Description = strPtr(c.Description)
	}
	if c.Remind != "" {
		input.ReminderEnabled = true
		input.ReminderTime = strPtr(c.Remind)
	}

	if err := validation.ValidateHabitInput(input); err != nil {
		return err
	}

	habit, err := ctx.State.CreateHabit(input)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type ListCmd struct {
	Archived bool `help:"List archived habits instead of active ones."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}

	if c.Archived {
		habits, err := ctx.Store.ListArchivedHabits()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("No archived habits.")
			return nil
		}
		for _, h := range habits {
			fmt.Printf("%-24s  %-8s  archived %s\n", h.Name, h.GoalPeriod, *h.ArchivedAt)
		}
		return nil
	}

	habits := ctx.State.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitgrid add'.")
		return nil
	}

	for _, h := range habits {
		p := ctx.State.Progress(h)
		mark := " "
		if p.IsComplete {
			mark = "✓"
		}
		fmt.Printf("%s %-24s  %d/%d %s  streak %d\n",
			mark, h.Name, p.Done, p.Target, p.PeriodLabel, ctx.State.Streak(h))
	}
	return nil
}

type ShowCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	fmt.Printf("%s (ID: %s)\n", h.Name, h.ID)
	if h.Description != nil {
		fmt.Printf("  %s\n", *h.Description)
	}
	fmt.Printf("  goal: %d per %s\n", h.GoalTarget, h.GoalPeriod)
	fmt.Printf("  created: %s\n", h.CreatedAt)
	if h.ReminderEnabled && h.ReminderTime != nil {
		fmt.Printf("  reminder: daily at %s\n", *h.ReminderTime)
	}

	p := ctx.State.Progress(h)
	fmt.Printf("  progress: %d/%d %s\n", p.Done, p.Target, p.PeriodLabel)
	fmt.Printf("  streak: %d (longest daily run: %d)\n", ctx.State.Streak(h), ctx.State.LongestStreak(h.ID))
	return nil
}

type EditCmd struct {
	Habit       string `arg:"" help:"Habit name or id."`
	Name        string `help:"New name."`
	Description string `short:"d" help:"New description."`
	Icon        string `help:"New icon identifier."`
	Color       string `help:"New color identifier."`
	Period      string `short:"p" help:"New goal period (day|week|month)."`
	Target      int    `short:"t" help:"New per-period target."`
	Remind      string `short:"r" help:"New daily reminder time (HH:MM)."`
	ClearRemind bool   `help:"Turn the reminder off."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	var patch models.HabitPatch
	if c.Name != "" {
		patch.Name = strPtr(c.Name)
	}
	if c.Description != "" {
		patch.Description = strPtr(c.Description)
	}
	if c.Icon != "" {
		patch.Icon = strPtr(c.Icon)
	}
	if c.Color != "" {
		patch.Color = strPtr(c.Color)
	}
	if c.Period != "" {
		p := models.GoalPeriod(c.Period)
		patch.GoalPeriod = &p
	}
	if c.Target > 0 {
		patch.GoalTarget = &c.Target
	}
	if c.ClearRemind {
		enabled := false
		patch.ReminderEnabled = &enabled
		patch.ClearReminderTime = true
	} else if c.Remind != "" {
		enabled := true
		patch.ReminderEnabled = &enabled
		patch.ReminderTime = strPtr(c.Remind)
	}

	if patch.Empty() {
		fmt.Println("Nothing to change.")
		return nil
	}
	if err := validation.ValidateHabitPatch(patch); err != nil {
		return err
	}

	if err := ctx.State.UpdateHabit(h.ID, patch); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", h.Name)
	return nil
}

type ArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *ArchiveCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.State.ArchiveHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Archived habit: %s (history retained)\n", h.Name)
	return nil
}

type UnarchiveCmd struct {
	Habit string `arg:"" help:"Archived habit name or id."`
}

func (c *UnarchiveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	archived, err := ctx.Store.ListArchivedHabits()
	if err != nil {
		return err
	}
	for _, h := range archived {
		if h.ID == c.Habit || h.Name == c.Habit {
			if err := ctx.Store.UnarchiveHabit(h.ID); err != nil {
				return err
			}
			fmt.Printf("Restored habit: %s\n", h.Name)
			return nil
		}
	}
	return fmt.Errorf("no archived habit matches %q", c.Habit)
}

type DeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.loadState(); err != nil {
		return err
	}
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Force {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its history?", h.Name)).
			Description("This cannot be undone. Archiving keeps the history.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.State.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
