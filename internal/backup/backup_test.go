package backup

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/storage"
)

func setupTestStore(t *testing.T) *storage.SQLiteStore {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeScheduler records scheduling activity for assertions.
type fakeScheduler struct {
	scheduled []string
	cancelled []string
	nextID    int
}

func (f *fakeScheduler) Schedule(habitID, name, clock string) (string, error) {
	f.scheduled = append(f.scheduled, habitID)
	f.nextID++
	return fmt.Sprintf("fake-%d", f.nextID), nil
}

func (f *fakeScheduler) Cancel(handle string) error {
	f.cancelled = append(f.cancelled, handle)
	return nil
}

func TestExportEmptyStore(t *testing.T) {
	store := setupTestStore(t)

	env, err := Export(store)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, env.SchemaVersion)
	assert.Equal(t, AppName, env.App)
	assert.NotEmpty(t, env.ExportedAt)
	// Arrays serialize as [], never null
	assert.NotNil(t, env.Habits)
	assert.NotNil(t, env.Completions)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"habits":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestStore(t)

	h, err := src.CreateHabit(models.HabitInput{
		Name:       "Meditate",
		Icon:       "lotus",
		Color:      "#9c27b0",
		GoalPeriod: models.PeriodWeek,
		GoalTarget: 3,
	})
	require.NoError(t, err)
	require.NoError(t, src.ToggleCompletion(h.ID, "2026-08-10"))
	_, err = src.IncrementCount(h.ID, "2026-08-11")
	require.NoError(t, err)

	env, err := Export(src)
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// Validate accepts what Export produces
	parsed, err := Validate(data)
	require.NoError(t, err)

	dst := setupTestStore(t)
	require.NoError(t, ImportReplace(dst, &fakeScheduler{}, parsed))

	habits, err := dst.AllHabits()
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, h.ID, habits[0].ID)
	assert.Equal(t, "Meditate", habits[0].Name)
	assert.Equal(t, models.PeriodWeek, habits[0].GoalPeriod)

	completions, err := dst.AllCompletions()
	require.NoError(t, err)
	assert.Len(t, completions, 2)
}

func TestValidateRejections(t *testing.T) {
	valid := func(mutate func(m map[string]any)) []byte {
		m := map[string]any{
			"schemaVersion": 1,
			"app":           "HabitGrid",
			"exportedAt":    "2026-08-29T00:00:00Z",
			"habits": []map[string]any{{
				"id":         "h1",
				"name":       "Read",
				"icon":       "book",
				"color":      "#000",
				"goalPeriod": "day",
				"goalTarget": 1,
				"createdAt":  "2026-01-01T00:00:00Z",
			}},
			"completions": []map[string]any{{
				"habitId": "h1",
				"date":    "2026-08-01",
			}},
		}
		if mutate != nil {
			mutate(m)
		}
		data, err := json.Marshal(m)
		require.NoError(t, err)
		return data
	}

	// The unmutated fixture passes
	_, err := Validate(valid(nil))
	require.NoError(t, err)

	cases := []struct {
		name    string
		mutate  func(m map[string]any)
		wantErr string
	}{
		{"wrong schema version", func(m map[string]any) { m["schemaVersion"] = 2 }, "schema version"},
		{"missing schema version", func(m map[string]any) { delete(m, "schemaVersion") }, "schema version"},
		{"wrong app", func(m map[string]any) { m["app"] = "OtherApp" }, "HabitGrid"},
		{"null habits", func(m map[string]any) { m["habits"] = nil }, "habits must be an array"},
		{"null completions", func(m map[string]any) { m["completions"] = nil }, "completions must be an array"},
		{"habit missing id", func(m map[string]any) {
			m["habits"].([]map[string]any)[0]["id"] = ""
		}, "missing an id"},
		{"habit missing name", func(m map[string]any) {
			m["habits"].([]map[string]any)[0]["name"] = ""
		}, "missing a name"},
		{"bad goal period", func(m map[string]any) {
			m["habits"].([]map[string]any)[0]["goalPeriod"] = "fortnight"
		}, "goal period"},
		{"zero goal target", func(m map[string]any) {
			m["habits"].([]map[string]any)[0]["goalTarget"] = 0
		}, "goal target"},
		{"habit missing createdAt", func(m map[string]any) {
			m["habits"].([]map[string]any)[0]["createdAt"] = ""
		}, "createdAt"},
		{"completion missing habitId", func(m map[string]any) {
			m["completions"].([]map[string]any)[0]["habitId"] = ""
		}, "habitId"},
		{"bad completion date", func(m map[string]any) {
			m["completions"].([]map[string]any)[0]["date"] = "August 1st"
		}, "invalid date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(valid(tc.mutate))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateNotJSON(t *testing.T) {
	_, err := Validate([]byte("not json at all"))
	assert.Error(t, err)

	_, err = Validate([]byte(`[1, 2, 3]`))
	assert.Error(t, err)
}

func TestImportReplaceReschedulesReminders(t *testing.T) {
	store := setupTestStore(t)

	// An existing habit with a live reminder handle gets cancelled
	clock := "07:00"
	existing, err := store.CreateHabit(models.HabitInput{
		Name:            "Old",
		Icon:            "x",
		Color:           "#000",
		GoalPeriod:      models.PeriodDay,
		GoalTarget:      1,
		ReminderEnabled: true,
		ReminderTime:    &clock,
	})
	require.NoError(t, err)
	oldHandle := "old-handle"
	require.NoError(t, store.SetReminderHandle(existing.ID, &oldHandle))

	env := Envelope{
		SchemaVersion: SchemaVersion,
		App:           AppName,
		ExportedAt:    "2026-08-29T00:00:00Z",
		Habits: []models.Habit{{
			ID:              "h1",
			Name:            "New",
			Icon:            "y",
			Color:           "#111",
			GoalPeriod:      models.PeriodDay,
			GoalTarget:      1,
			CreatedAt:       "2026-01-01T00:00:00Z",
			ReminderEnabled: true,
			ReminderTime:    &clock,
		}},
		Completions: []models.Completion{},
	}

	sched := &fakeScheduler{}
	require.NoError(t, ImportReplace(store, sched, env))

	assert.Equal(t, []string{"old-handle"}, sched.cancelled)
	assert.Equal(t, []string{"h1"}, sched.scheduled)

	// The fresh handle is persisted on the imported habit
	got, err := store.GetHabit("h1")
	require.NoError(t, err)
	require.NotNil(t, got.ReminderNotifID)
	assert.True(t, strings.HasPrefix(*got.ReminderNotifID, "fake-"))
}

func TestImportReplaceSkipsOrphanedCompletions(t *testing.T) {
	store := setupTestStore(t)

	env := Envelope{
		SchemaVersion: SchemaVersion,
		App:           AppName,
		Habits: []models.Habit{{
			ID: "h1", Name: "Kept", Icon: "a", Color: "#000",
			GoalPeriod: models.PeriodDay, GoalTarget: 1,
			CreatedAt: "2026-01-01T00:00:00Z",
		}},
		Completions: []models.Completion{
			{HabitID: "h1", Date: "2026-08-01"},
			{HabitID: "missing", Date: "2026-08-02"},
		},
	}

	require.NoError(t, ImportReplace(store, &fakeScheduler{}, env))

	completions, err := store.AllCompletions()
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, "h1", completions[0].HabitID)
}

func TestWriteAndReadFile(t *testing.T) {
	store := setupTestStore(t)
	env, err := Export(store)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "backups")
	path, err := WriteFile(env, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, FileSuffix))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, env.SchemaVersion, got.SchemaVersion)
	assert.Equal(t, env.App, got.App)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.habitgrid.json"))
	assert.Error(t, err)
}
