package tracker

import "testing"

func TestStore_Stats(t *testing.T) {
	store := openTestStore(t)

	a1 := mustAddTask(t, store, "alice", "Ship release", AddTaskOptions{})
	mustAddTask(t, store, "alice", "Write docs", AddTaskOptions{})
	a3 := mustAddTask(t, store, "alice", "Review PRs", AddTaskOptions{})
	b1 := mustAddTask(t, store, "bob", "Bob's chore", AddTaskOptions{})
	mustSetStatus(t, store, a1.ID, StatusCompleted)
	mustSetStatus(t, store, a3.ID, StatusInProgress)
	mustSetStatus(t, store, b1.ID, StatusCompleted)

	got, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	want := Stats{Total: 3, Completed: 1, Pending: 1, InProgress: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestStore_Stats_IncludesHistory(t *testing.T) {
	store := openTestStore(t)
	pinClock(t, store)

	done := mustAddTask(t, store, "alice", "Archived work", AddTaskOptions{})
	mustSetStatus(t, store, done.ID, StatusCompleted)
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}
	if _, err := store.EndDay("alice"); err != nil {
		t.Fatalf("end day: %v", err)
	}

	mustAddTask(t, store, "alice", "Fresh task", AddTaskOptions{})

	got, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	want := Stats{Total: 2, Completed: 1, Pending: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestStore_Stats_LegacySentinelWidensLiveScan(t *testing.T) {
	store := openTestStore(t)

	mustAddTask(t, store, "alice", "Owned task", AddTaskOptions{})
	mustAddTask(t, store, "", "Orphan task", AddTaskOptions{})

	got, err := store.Stats(LegacyUserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got.Total != 2 {
		t.Errorf("legacy query total = %d, want 2 (every live task)", got.Total)
	}
}

func TestStore_GlobalStats(t *testing.T) {
	store := openTestStore(t)
	pinClock(t, store)

	done := mustAddTask(t, store, "alice", "Done", AddTaskOptions{})
	mustSetStatus(t, store, done.ID, StatusCompleted)
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}
	if _, err := store.EndDay("alice"); err != nil {
		t.Fatalf("end day: %v", err)
	}

	mustAddTask(t, store, "alice", "Pending", AddTaskOptions{})
	working := mustAddTask(t, store, "bob", "Working", AddTaskOptions{})
	mustSetStatus(t, store, working.ID, StatusInProgress)

	got, err := store.GlobalStats()
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}

	want := Stats{Total: 3, Completed: 1, Pending: 1, InProgress: 1}
	if got != want {
		t.Errorf("global stats = %+v, want %+v", got, want)
	}
}
