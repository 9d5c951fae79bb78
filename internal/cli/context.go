package cli

import (
	"fmt"
	"strings"

	"github.com/nholden/habitgrid/internal/config"
	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/reminder"
	"github.com/nholden/habitgrid/internal/state"
	"github.com/nholden/habitgrid/internal/storage"
)

// Context carries the app dependencies into every command.
type Context struct {
	Config    config.Config
	Store     storage.Store
	State     *state.Store
	Scheduler reminder.Scheduler
}

// loadState opens the database and fills the state store for commands that
// read or mutate the cached view.
func (ctx *Context) loadState() error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.State.SetGridRangeDays(ctx.Config.GridRangeDays)
	return ctx.State.Refresh()
}

// findHabit resolves a habit reference against the active habits: exact id,
// exact name (case-insensitive), then unique prefix of either.
func (ctx *Context) findHabit(ref string) (models.Habit, error) {
	habits := ctx.State.Habits()

	for _, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	var matches []models.Habit
	lower := strings.ToLower(ref)
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) || strings.HasPrefix(strings.ToLower(h.Name), lower) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		var names []string
		for _, h := range matches {
			names = append(names, h.Name)
		}
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func strPtr(s string) *string { return &s }
