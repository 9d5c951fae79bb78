package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/nholden/habitgrid/internal/backup"
	"github.com/nholden/habitgrid/internal/logger"
)

type ExportCmd struct {
	Out string `short:"o" help:"Directory to write the backup file into (defaults to the configured backup dir)." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	env, err := backup.Export(ctx.Store)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	dir := c.Out
	if dir == "" {
		dir = ctx.Config.BackupDir
	}
	path, err := backup.WriteFile(env, dir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := ctx.Store.SetMeta("lastExportAt", env.ExportedAt); err != nil {
		logger.Warn("could not record export time", "err", err)
	}

	fmt.Printf("Exported %d habits and %d completions to %s\n", len(env.Habits), len(env.Completions), path)
	return nil
}

type ImportCmd struct {
	File  string `arg:"" help:"Backup file to import." type:"existingfile"`
	Force bool   `short:"f" help:"Replace existing data without confirmation."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	env, err := backup.ReadFile(c.File)
	if err != nil {
		return err
	}

	if !c.Force {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Replace all current data with %d habits from this backup?", len(env.Habits))).
			Description("Existing habits and completions will be deleted.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	if err := backup.ImportReplace(ctx.Store, ctx.Scheduler, env); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("Imported %d habits and %d completions.\n", len(env.Habits), len(env.Completions))
	return nil
}
