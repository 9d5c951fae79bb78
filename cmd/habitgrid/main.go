package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/nholden/habitgrid/internal/cli"
	"github.com/nholden/habitgrid/internal/config"
	"github.com/nholden/habitgrid/internal/logger"
	"github.com/nholden/habitgrid/internal/reminder"
	"github.com/nholden/habitgrid/internal/state"
	"github.com/nholden/habitgrid/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path (overrides config)." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize habitgrid storage."`
	Add       cli.AddCmd       `cmd:"" help:"Add a new habit."`
	List      cli.ListCmd      `cmd:"" help:"List habits." default:"1"`
	Show      cli.ShowCmd      `cmd:"" help:"Show a habit in detail."`
	Edit      cli.EditCmd      `cmd:"" help:"Edit a habit."`
	Archive   cli.ArchiveCmd   `cmd:"" help:"Archive a habit, keeping its history."`
	Unarchive cli.UnarchiveCmd `cmd:"" help:"Restore an archived habit."`
	Delete    cli.DeleteCmd    `cmd:"" help:"Delete a habit and its history."`
	Done      cli.DoneCmd      `cmd:"" help:"Toggle a habit's completion for a day."`
	Incr      cli.IncrCmd      `cmd:"" help:"Increment today's count for a habit."`
	Decr      cli.DecrCmd      `cmd:"" help:"Decrement today's count for a habit."`
	Reset     cli.ResetCmd     `cmd:"" help:"Clear today's count for a habit."`
	Streak    cli.StreakCmd    `cmd:"" help:"Show streaks."`
	Grid      cli.GridCmd      `cmd:"" help:"Show a habit's completion grid."`
	Export    cli.ExportCmd    `cmd:"" help:"Export all data to a backup file."`
	Import    cli.ImportCmd    `cmd:"" help:"Replace all data from a backup file."`
	Meta      cli.MetaCmd      `cmd:"" help:"Read and write app metadata."`
	Remind    cli.RemindCmd    `cmd:"" help:"Habit reminders."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitgrid"),
		kong.Description("Local-first habit tracker with streaks and a contribution grid"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: filepath.Dir(cfg.DBPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewSQLiteStore(cfg.DBPath)
	defer store.Close()

	appCtx := &cli.Context{
		Config:    cfg,
		Store:     store,
		State:     state.New(store),
		Scheduler: reminder.Nop{},
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
