// Package state is the in-memory view of the dataset the UI layer reads:
// active habits plus per-habit completion sets and counts for a sliding
// day window. Mutations apply optimistically and roll back when the
// repository call fails, so memory and storage never silently diverge.
//
// A Store is an explicit context object built once at startup; it is not
// safe for concurrent use.
package state

import (
	"fmt"
	"time"

	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/progress"
	"github.com/nholden/habitgrid/internal/storage"
)

// DefaultGridRangeDays is the sliding window loaded for grid rendering.
const DefaultGridRangeDays = 180

// Store caches habits and completion sets, persisting through the
// repository layer.
type Store struct {
	repo storage.Store

	habits  []models.Habit
	dates   map[string]progress.DateSet
	counts  map[string]map[string]int
	loading bool

	gridRangeDays int
}

func New(repo storage.Store) *Store {
	return &Store{
		repo:          repo,
		dates:         make(map[string]progress.DateSet),
		counts:        make(map[string]map[string]int),
		gridRangeDays: DefaultGridRangeDays,
	}
}

// SetGridRangeDays overrides the sliding window size for subsequent
// refreshes.
func (s *Store) SetGridRangeDays(days int) {
	if days > 0 {
		s.gridRangeDays = days
	}
}

// Window returns the current inclusive date range used for loading.
func (s *Store) Window() (start, end string) {
	now := time.Now()
	return progress.FormatDay(now.AddDate(0, 0, -s.gridRangeDays)), progress.FormatDay(now)
}

// Refresh reloads all active habits and their completions for the window.
func (s *Store) Refresh() error {
	s.loading = true
	defer func() { s.loading = false }()

	habits, err := s.repo.ListActiveHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	s.habits = habits

	start, end := s.Window()
	dates := make(map[string]progress.DateSet, len(habits))
	counts := make(map[string]map[string]int, len(habits))
	for _, h := range habits {
		completions, err := s.repo.ListCompletionsInRange(h.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to load completions for %s: %w", h.ID, err)
		}
		set := make(progress.DateSet, len(completions))
		byDate := make(map[string]int, len(completions))
		for _, c := range completions {
			set.Add(c.Date)
			byDate[c.Date] = c.Count
		}
		dates[h.ID] = set
		counts[h.ID] = byDate
	}
	s.dates = dates
	s.counts = counts

	return nil
}

// Loading reports whether a Refresh is in progress.
func (s *Store) Loading() bool {
	return s.loading
}

// Habits returns the cached active habits in creation order.
func (s *Store) Habits() []models.Habit {
	return s.habits
}

// Habit looks up a cached habit by id.
func (s *Store) Habit(id string) (models.Habit, bool) {
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Dates returns the completion-date set cached for the habit.
func (s *Store) Dates(habitID string) progress.DateSet {
	if set, ok := s.dates[habitID]; ok {
		return set
	}
	return progress.DateSet{}
}

// CountForDate returns the cached repetition count for a day.
func (s *Store) CountForDate(habitID, date string) int {
	return s.counts[habitID][date]
}

// mutate is the single optimistic-update path: apply the in-memory change,
// persist it, and undo the in-memory change when persistence fails. Every
// mutating operation goes through here so rollback behavior is uniform.
func (s *Store) mutate(apply, revert func(), persist func() error) error {
	apply()
	if err := persist(); err != nil {
		revert()
		return err
	}
	return nil
}

func (s *Store) dateSet(habitID string) progress.DateSet {
	set, ok := s.dates[habitID]
	if !ok {
		set = progress.DateSet{}
		s.dates[habitID] = set
	}
	return set
}

func (s *Store) countMap(habitID string) map[string]int {
	m, ok := s.counts[habitID]
	if !ok {
		m = make(map[string]int)
		s.counts[habitID] = m
	}
	return m
}

// ToggleDate flips a day's completion state.
func (s *Store) ToggleDate(habitID, date string) error {
	set := s.dateSet(habitID)
	counts := s.countMap(habitID)
	was := set.Has(date)
	wasCount := counts[date]

	return s.mutate(
		func() {
			if was {
				set.Remove(date)
				delete(counts, date)
			} else {
				set.Add(date)
				counts[date] = 1
			}
		},
		func() {
			if was {
				set.Add(date)
				counts[date] = wasCount
			} else {
				set.Remove(date)
				delete(counts, date)
			}
		},
		func() error { return s.repo.ToggleCompletion(habitID, date) },
	)
}

// ToggleToday flips today's completion state.
func (s *Store) ToggleToday(habitID string) error {
	return s.ToggleDate(habitID, progress.Today())
}

// IncrementToday logs one more repetition for today and returns the new
// count.
func (s *Store) IncrementToday(habitID string) (int, error) {
	today := progress.Today()
	set := s.dateSet(habitID)
	counts := s.countMap(habitID)
	was := set.Has(today)
	wasCount := counts[today]

	err := s.mutate(
		func() {
			set.Add(today)
			counts[today] = wasCount + 1
		},
		func() {
			if was {
				counts[today] = wasCount
			} else {
				set.Remove(today)
				delete(counts, today)
			}
		},
		func() error {
			_, err := s.repo.IncrementCount(habitID, today)
			return err
		},
	)
	if err != nil {
		return wasCount, err
	}
	return counts[today], nil
}

// DecrementToday removes one repetition for today and returns the new
// count; the day leaves the completion set when the count reaches zero.
func (s *Store) DecrementToday(habitID string) (int, error) {
	today := progress.Today()
	set := s.dateSet(habitID)
	counts := s.countMap(habitID)
	was := set.Has(today)
	wasCount := counts[today]

	err := s.mutate(
		func() {
			if wasCount <= 1 {
				set.Remove(today)
				delete(counts, today)
			} else {
				counts[today] = wasCount - 1
			}
		},
		func() {
			if was {
				set.Add(today)
				counts[today] = wasCount
			}
		},
		func() error {
			_, err := s.repo.DecrementCount(habitID, today)
			return err
		},
	)
	if err != nil {
		return wasCount, err
	}
	return counts[today], nil
}

// ResetTodayCount clears today's completion row entirely.
func (s *Store) ResetTodayCount(habitID string) error {
	today := progress.Today()
	set := s.dateSet(habitID)
	counts := s.countMap(habitID)
	was := set.Has(today)
	wasCount := counts[today]

	return s.mutate(
		func() {
			set.Remove(today)
			delete(counts, today)
		},
		func() {
			if was {
				set.Add(today)
				counts[today] = wasCount
			}
		},
		func() error { return s.repo.DeleteCompletionForDate(habitID, today) },
	)
}

// CreateHabit persists a new habit and adds it to the cache. Creation has
// no optimistic step: the repository assigns the id.
func (s *Store) CreateHabit(input models.HabitInput) (models.Habit, error) {
	habit, err := s.repo.CreateHabit(input)
	if err != nil {
		return models.Habit{}, err
	}
	s.habits = append(s.habits, habit)
	s.dates[habit.ID] = progress.DateSet{}
	s.counts[habit.ID] = make(map[string]int)
	return habit, nil
}

// UpdateHabit applies a patch to the cached habit and persists it.
func (s *Store) UpdateHabit(id string, patch models.HabitPatch) error {
	idx := -1
	for i, h := range s.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return storage.ErrHabitNotFound
	}
	before := s.habits[idx]

	return s.mutate(
		func() { s.habits[idx] = patched(before, patch) },
		func() { s.habits[idx] = before },
		func() error { return s.repo.UpdateHabit(id, patch) },
	)
}

// ArchiveHabit removes the habit from the active list; its completion
// cache is dropped with it.
func (s *Store) ArchiveHabit(id string) error {
	idx := -1
	for i, h := range s.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return storage.ErrHabitNotFound
	}
	before := s.habits[idx]

	return s.mutate(
		func() { s.habits = append(s.habits[:idx], s.habits[idx+1:]...) },
		func() {
			s.habits = append(s.habits[:idx], append([]models.Habit{before}, s.habits[idx:]...)...)
		},
		func() error { return s.repo.ArchiveHabit(id) },
	)
}

// DeleteHabit removes the habit and its cached completions, restoring both
// when the hard delete fails.
func (s *Store) DeleteHabit(id string) error {
	idx := -1
	for i, h := range s.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return storage.ErrHabitNotFound
	}
	before := s.habits[idx]
	beforeDates := s.dates[id]
	beforeCounts := s.counts[id]

	return s.mutate(
		func() {
			s.habits = append(s.habits[:idx], s.habits[idx+1:]...)
			delete(s.dates, id)
			delete(s.counts, id)
		},
		func() {
			s.habits = append(s.habits[:idx], append([]models.Habit{before}, s.habits[idx:]...)...)
			s.dates[id] = beforeDates
			s.counts[id] = beforeCounts
		},
		func() error { return s.repo.DeleteHabit(id) },
	)
}

// Streak computes the habit's current streak from the cached dates.
func (s *Store) Streak(habit models.Habit) int {
	return progress.Streak(habit, s.Dates(habit.ID), progress.Today())
}

// LongestStreak computes the longest daily run from the cached dates.
func (s *Store) LongestStreak(habitID string) int {
	return progress.LongestStreak(s.Dates(habitID))
}

// Progress computes goal progress for the current period.
func (s *Store) Progress(habit models.Habit) progress.GoalProgress {
	today := progress.Today()
	todayCount := -1
	if habit.GoalPeriod == models.PeriodDay {
		todayCount = s.CountForDate(habit.ID, today)
	}
	return progress.Progress(habit, s.Dates(habit.ID), today, todayCount)
}

func patched(h models.Habit, p models.HabitPatch) models.Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Description != nil {
		h.Description = p.Description
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.GoalPeriod != nil {
		h.GoalPeriod = *p.GoalPeriod
	}
	if p.GoalTarget != nil {
		h.GoalTarget = *p.GoalTarget
	}
	if p.ReminderEnabled != nil {
		h.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ClearReminderTime {
		h.ReminderTime = nil
	} else if p.ReminderTime != nil {
		h.ReminderTime = p.ReminderTime
	}
	return h
}
