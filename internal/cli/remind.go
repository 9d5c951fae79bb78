package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nholden/habitgrid/internal/logger"
	"github.com/nholden/habitgrid/internal/reminder"
)

type RemindCmd struct {
	Run RemindRunCmd `cmd:"" help:"Run the reminder scheduler in the foreground."`
}

type RemindRunCmd struct{}

func (c *RemindRunCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sched := reminder.NewCronScheduler(func(habitID, name string) {
		fmt.Printf("Reminder: %s\n", name)
		logger.Info("reminder fired", "habit", habitID, "name", name)
	})

	habits, err := ctx.Store.ListActiveHabits()
	if err != nil {
		return err
	}

	scheduled := 0
	for _, h := range habits {
		if !h.ReminderEnabled || h.ReminderTime == nil {
			continue
		}
		handle, err := sched.Schedule(h.ID, h.Name, *h.ReminderTime)
		if err != nil {
			logger.Warn("could not schedule reminder", "habit", h.ID, "err", err)
			continue
		}
		if err := ctx.Store.SetReminderHandle(h.ID, &handle); err != nil {
			return err
		}
		scheduled++
	}

	if scheduled == 0 {
		fmt.Println("No habits have reminders enabled.")
		return nil
	}

	sched.Start()
	fmt.Printf("Scheduled %d reminders. Press Ctrl+C to stop.\n", scheduled)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sched.Stop()
	for _, h := range habits {
		if !h.ReminderEnabled || h.ReminderTime == nil {
			continue
		}
		if err := ctx.Store.SetReminderHandle(h.ID, nil); err != nil {
			logger.Warn("could not clear reminder handle", "habit", h.ID, "err", err)
		}
	}
	fmt.Println("Reminder scheduler stopped.")
	return nil
}
