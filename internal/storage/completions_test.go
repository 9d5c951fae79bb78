package storage

import (
	"testing"
)

func TestToggleCompletion(t *testing.T) {
	store := setupTestStore(t)
	h := mustCreateHabit(t, store, "Floss")

	if err := store.ToggleCompletion(h.ID, "2026-08-10"); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	count, err := store.GetCountForDate(h.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("GetCountForDate failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after toggle on, got %d", count)
	}

	// Toggling again removes the row
	if err := store.ToggleCompletion(h.ID, "2026-08-10"); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	count, err = store.GetCountForDate(h.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("GetCountForDate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after toggle off, got %d", count)
	}
}

func TestIncrementDecrementCount(t *testing.T) {
	store := setupTestStore(t)
	h := mustCreateHabit(t, store, "Pushups")

	for want := 1; want <= 3; want++ {
		got, err := store.IncrementCount(h.ID, "2026-08-10")
		if err != nil {
			t.Fatalf("IncrementCount failed: %v", err)
		}
		if got != want {
			t.Errorf("expected count %d, got %d", want, got)
		}
	}

	got, err := store.DecrementCount(h.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("DecrementCount failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected count 2, got %d", got)
	}

	// Decrementing to zero removes the row entirely
	for i := 0; i < 2; i++ {
		if got, err = store.DecrementCount(h.ID, "2026-08-10"); err != nil {
			t.Fatalf("DecrementCount failed: %v", err)
		}
	}
	if got != 0 {
		t.Errorf("expected count 0, got %d", got)
	}
	count, err := store.GetCountForDate(h.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("GetCountForDate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no completion row, got count %d", count)
	}

	// Decrementing a day with no completion is a no-op
	if got, err = store.DecrementCount(h.ID, "2026-08-11"); err != nil {
		t.Fatalf("DecrementCount failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected count 0 for absent day, got %d", got)
	}
}

func TestListCompletionsInRange(t *testing.T) {
	store := setupTestStore(t)
	h := mustCreateHabit(t, store, "Yoga")

	for _, date := range []string{"2026-08-01", "2026-08-05", "2026-08-10", "2026-08-15"} {
		if err := store.ToggleCompletion(h.ID, date); err != nil {
			t.Fatalf("ToggleCompletion failed: %v", err)
		}
	}

	// Range boundaries are inclusive
	completions, err := store.ListCompletionsInRange(h.ID, "2026-08-05", "2026-08-10")
	if err != nil {
		t.Fatalf("ListCompletionsInRange failed: %v", err)
	}
	if len(completions) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(completions))
	}
	if completions[0].Date != "2026-08-05" || completions[1].Date != "2026-08-10" {
		t.Errorf("expected ascending date order, got %s then %s", completions[0].Date, completions[1].Date)
	}
}

func TestCompletionDates(t *testing.T) {
	store := setupTestStore(t)
	h := mustCreateHabit(t, store, "Sketch")

	for _, date := range []string{"2026-08-01", "2026-08-02"} {
		if err := store.ToggleCompletion(h.ID, date); err != nil {
			t.Fatalf("ToggleCompletion failed: %v", err)
		}
	}

	dates, err := store.CompletionDates(h.ID, "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("CompletionDates failed: %v", err)
	}
	if len(dates) != 2 {
		t.Errorf("expected 2 dates, got %d", len(dates))
	}
	if _, ok := dates["2026-08-01"]; !ok {
		t.Error("expected 2026-08-01 in date set")
	}
}

func TestDeleteCompletionForDate(t *testing.T) {
	store := setupTestStore(t)
	h := mustCreateHabit(t, store, "Piano")

	if _, err := store.IncrementCount(h.ID, "2026-08-10"); err != nil {
		t.Fatalf("IncrementCount failed: %v", err)
	}
	if _, err := store.IncrementCount(h.ID, "2026-08-10"); err != nil {
		t.Fatalf("IncrementCount failed: %v", err)
	}

	if err := store.DeleteCompletionForDate(h.ID, "2026-08-10"); err != nil {
		t.Fatalf("DeleteCompletionForDate failed: %v", err)
	}
	count, err := store.GetCountForDate(h.ID, "2026-08-10")
	if err != nil {
		t.Fatalf("GetCountForDate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after delete, got %d", count)
	}

	// Deleting an absent row is fine
	if err := store.DeleteCompletionForDate(h.ID, "2026-08-11"); err != nil {
		t.Fatalf("DeleteCompletionForDate on absent day failed: %v", err)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	_, ok, err := store.GetMeta("onboarded")
	if err != nil {
		t.Fatalf("GetMeta failed: %v", err)
	}
	if ok {
		t.Error("unset key should report ok=false")
	}

	if err := store.SetMeta("onboarded", "1"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	value, ok, err := store.GetMeta("onboarded")
	if err != nil {
		t.Fatalf("GetMeta failed: %v", err)
	}
	if !ok || value != "1" {
		t.Errorf("expected (1, true), got (%s, %v)", value, ok)
	}

	// Upsert overwrites
	if err := store.SetMeta("onboarded", "0"); err != nil {
		t.Fatalf("SetMeta failed: %v", err)
	}
	value, _, _ = store.GetMeta("onboarded")
	if value != "0" {
		t.Errorf("expected 0 after overwrite, got %s", value)
	}

	flag, err := store.GetMetaBool("onboarded")
	if err != nil {
		t.Fatalf("GetMetaBool failed: %v", err)
	}
	if flag {
		t.Error("expected false for stored 0")
	}
	if err := store.SetMetaBool("onboarded", true); err != nil {
		t.Fatalf("SetMetaBool failed: %v", err)
	}
	flag, _ = store.GetMetaBool("onboarded")
	if !flag {
		t.Error("expected true after SetMetaBool")
	}
}
