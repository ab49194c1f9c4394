package tracker

import (
	"testing"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(t.TempDir())
}

// pinClock fixes the store's clock to a known IST moment and returns it.
func pinClock(t *testing.T, store *Store) time.Time {
	t.Helper()
	moment := time.Date(2026, time.January, 6, 9, 0, 0, 0, clock.Location())
	store.SetNowFunc(func() time.Time { return moment })
	return moment
}

func mustAddTask(t *testing.T, store *Store, userID, title string, opts AddTaskOptions) *Task {
	t.Helper()
	task, err := store.AddTask(userID, title, opts)
	if err != nil {
		t.Fatalf("add task %q: %v", title, err)
	}
	return task
}

func mustSetStatus(t *testing.T, store *Store, id string, status Status) {
	t.Helper()
	if _, err := store.UpdateTaskStatus(id, status); err != nil {
		t.Fatalf("set status: %v", err)
	}
}
