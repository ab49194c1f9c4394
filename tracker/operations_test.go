package tracker

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
)

func TestStore_AddTask(t *testing.T) {
	store := openTestStore(t)

	task := mustAddTask(t, store, "alice", "Fix login bug", AddTaskOptions{})

	if task.Title != "Fix login bug" {
		t.Errorf("expected title 'Fix login bug', got %q", task.Title)
	}
	if task.Status != StatusPending {
		t.Errorf("expected status 'pending', got %q", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected priority 'medium', got %q", task.Priority)
	}
	if task.TimeElapsed != 0 {
		t.Errorf("expected zero elapsed time, got %d", task.TimeElapsed)
	}
	if task.TimerRunning {
		t.Error("expected timer stopped")
	}
	if len(task.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", task.ID)
	}
}

func TestStore_AddTask_EmptyTitle(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.AddTask("alice", "   ", AddTaskOptions{}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestStore_AddTask_MissingUserGetsLegacySentinel(t *testing.T) {
	store := openTestStore(t)

	task := mustAddTask(t, store, "", "Orphan task", AddTaskOptions{})
	if task.UserID != LegacyUserID {
		t.Errorf("expected legacy sentinel owner, got %q", task.UserID)
	}
}

func TestStore_AddThenRemoveRestoresCollection(t *testing.T) {
	store := openTestStore(t)

	mustAddTask(t, store, "alice", "Keep me", AddTaskOptions{})
	before, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}

	added := mustAddTask(t, store, "alice", "Temporary", AddTaskOptions{})
	if err := store.RemoveTask(added.ID); err != nil {
		t.Fatalf("remove task: %v", err)
	}

	after, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed: before %+v, after %+v", before, after)
	}
}

func TestStore_UpdateTask(t *testing.T) {
	store := openTestStore(t)

	task := mustAddTask(t, store, "alice", "Initial", AddTaskOptions{})

	title := "Renamed"
	priority := PriorityHigh
	updated, err := store.UpdateTask(task.ID, UpdateOptions{Title: &title, Priority: &priority})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated == nil {
		t.Fatal("expected updated task")
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected renamed title, got %q", updated.Title)
	}
	if updated.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %q", updated.Priority)
	}
	if updated.Status != StatusPending {
		t.Errorf("untouched field changed: %q", updated.Status)
	}
}

func TestStore_UpdateTask_AbsentIDIsNoOp(t *testing.T) {
	store := openTestStore(t)
	mustAddTask(t, store, "alice", "Only task", AddTaskOptions{})

	status := StatusCompleted
	updated, err := store.UpdateTask("missing1", UpdateOptions{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil result for absent id, got %+v", updated)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != StatusPending {
		t.Errorf("collection mutated by absent-id update: %+v", tasks)
	}
}

func TestStore_UpdateTask_InvalidStatus(t *testing.T) {
	store := openTestStore(t)
	task := mustAddTask(t, store, "alice", "Task", AddTaskOptions{})

	bad := Status("paused")
	if _, err := store.UpdateTask(task.ID, UpdateOptions{Status: &bad}); err == nil {
		t.Error("expected invalid status to be rejected")
	}
}

func TestStore_UpdateTaskStatus_NormalizesInput(t *testing.T) {
	store := openTestStore(t)
	task := mustAddTask(t, store, "alice", "Task", AddTaskOptions{})

	updated, err := store.UpdateTaskStatus(task.ID, Status("  COMPLETED "))
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Errorf("expected normalized status, got %q", updated.Status)
	}
}

func TestStore_RemoveTask_AbsentIDIsNoOp(t *testing.T) {
	store := openTestStore(t)
	mustAddTask(t, store, "alice", "Task", AddTaskOptions{})

	if err := store.RemoveTask("missing1"); err != nil {
		t.Fatalf("remove absent id should not error: %v", err)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestStore_ToggleTimer(t *testing.T) {
	store := openTestStore(t)
	task := mustAddTask(t, store, "alice", "Timed", AddTaskOptions{})

	toggled, err := store.ToggleTimer(task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.TimerRunning {
		t.Error("expected timer running after first toggle")
	}
	if toggled.TimeElapsed != 0 {
		t.Error("toggle must not advance elapsed time")
	}

	toggled, err = store.ToggleTimer(task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.TimerRunning {
		t.Error("expected timer stopped after second toggle")
	}
}

func TestStore_IncrementTime(t *testing.T) {
	store := openTestStore(t)
	task := mustAddTask(t, store, "alice", "Timed", AddTaskOptions{})

	for i := 0; i < 3; i++ {
		if err := store.IncrementTime(task.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if tasks[0].TimeElapsed != 3 {
		t.Errorf("expected 3 elapsed seconds, got %d", tasks[0].TimeElapsed)
	}
}

func TestStore_IncrementRunning_OnlyAdvancesRunningTimers(t *testing.T) {
	store := openTestStore(t)
	running := mustAddTask(t, store, "alice", "Running", AddTaskOptions{})
	stopped := mustAddTask(t, store, "alice", "Stopped", AddTaskOptions{})

	if _, err := store.ToggleTimer(running.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	advanced, err := store.IncrementRunning()
	if err != nil {
		t.Fatalf("increment running: %v", err)
	}
	if advanced != 1 {
		t.Errorf("expected 1 task advanced, got %d", advanced)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, task := range tasks {
		switch task.ID {
		case running.ID:
			if task.TimeElapsed != 1 {
				t.Errorf("running task elapsed = %d, want 1", task.TimeElapsed)
			}
		case stopped.ID:
			if task.TimeElapsed != 0 {
				t.Errorf("stopped task elapsed = %d, want 0", task.TimeElapsed)
			}
		}
	}
}

func TestStore_StartDay_OverwritesPriorSession(t *testing.T) {
	store := openTestStore(t)

	first := time.Date(2026, time.January, 6, 9, 0, 0, 0, clock.Location())
	second := first.Add(2 * time.Hour)

	store.SetNowFunc(func() time.Time { return first })
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}

	store.SetNowFunc(func() time.Time { return second })
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day again: %v", err)
	}

	startedAt, ok, err := store.ActiveSession("alice")
	if err != nil {
		t.Fatalf("active session: %v", err)
	}
	if !ok {
		t.Fatal("expected an active session")
	}
	if !startedAt.Equal(second) {
		t.Errorf("expected the second start to win, got %v", startedAt)
	}
}

func TestStore_EndDay(t *testing.T) {
	store := openTestStore(t)
	started := pinClock(t, store)

	done := mustAddTask(t, store, "alice", "Finished work", AddTaskOptions{})
	ongoing := mustAddTask(t, store, "alice", "Still going", AddTaskOptions{})
	other := mustAddTask(t, store, "bob", "Bob's task", AddTaskOptions{})
	mustSetStatus(t, store, done.ID, StatusCompleted)
	mustSetStatus(t, store, ongoing.ID, StatusInProgress)

	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}

	ended := started.Add(8*time.Hour + 30*time.Minute)
	store.SetNowFunc(func() time.Time { return ended })

	session, err := store.EndDay("alice")
	if err != nil {
		t.Fatalf("end day: %v", err)
	}
	if session == nil {
		t.Fatal("expected a history session")
	}

	if session.UserID != "alice" {
		t.Errorf("expected owner alice, got %q", session.UserID)
	}
	if session.Date.Raw != "06 Jan 2026" || session.Date.Kind != clock.DialectLong {
		t.Errorf("unexpected date: %+v", session.Date)
	}
	if session.StartTime != "9:00 AM" {
		t.Errorf("expected start 9:00 AM, got %q", session.StartTime)
	}
	if session.EndTime != "5:30 PM" {
		t.Errorf("expected end 5:30 PM, got %q", session.EndTime)
	}
	if session.TaskCount != 1 || len(session.Tasks) != 1 || session.Tasks[0].ID != done.ID {
		t.Errorf("unexpected session tasks: %+v", session.Tasks)
	}

	// Completed tasks leave the live list; ongoing and other users' tasks stay.
	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 surviving tasks, got %d", len(tasks))
	}
	ids := map[string]bool{tasks[0].ID: true, tasks[1].ID: true}
	if !ids[ongoing.ID] || !ids[other.ID] {
		t.Errorf("wrong survivors: %+v", tasks)
	}

	if _, ok, _ := store.ActiveSession("alice"); ok {
		t.Error("expected the active session to be removed")
	}
}

func TestStore_EndDay_NoCompletedTasksLeavesNoTrace(t *testing.T) {
	store := openTestStore(t)
	pinClock(t, store)

	ongoing := mustAddTask(t, store, "alice", "Unfinished", AddTaskOptions{})
	mustSetStatus(t, store, ongoing.ID, StatusInProgress)

	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}

	session, err := store.EndDay("alice")
	if err != nil {
		t.Fatalf("end day: %v", err)
	}
	if session != nil {
		t.Errorf("expected no history record, got %+v", session)
	}

	history, err := store.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d records", len(history))
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("ongoing task should survive, got %+v", tasks)
	}
	if _, ok, _ := store.ActiveSession("alice"); ok {
		t.Error("expected the active session to be removed")
	}
}

func TestStore_EndDay_Idempotent(t *testing.T) {
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

	before, err := store.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	// No intervening StartDay: the second call finds no active session.
	session, err := store.EndDay("alice")
	if err != nil {
		t.Fatalf("second end day: %v", err)
	}
	if session != nil {
		t.Errorf("second end day should produce nothing, got %+v", session)
	}

	after, err := store.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("history changed on second end day")
	}
}

func TestStore_HistoryIsFrozenCopy(t *testing.T) {
	store := openTestStore(t)
	pinClock(t, store)

	done := mustAddTask(t, store, "alice", "Snapshot me", AddTaskOptions{})
	mustSetStatus(t, store, done.ID, StatusCompleted)
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}
	if _, err := store.EndDay("alice"); err != nil {
		t.Fatalf("end day: %v", err)
	}

	// The task now lives only in history; a same-id live task must not
	// retroactively change the frozen record.
	replacement := mustAddTask(t, store, "alice", "Snapshot me", AddTaskOptions{})
	title := "Mutated"
	if _, err := store.UpdateTask(replacement.ID, UpdateOptions{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}

	history, err := store.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history))
	}
	if history[0].Tasks[0].Title != "Snapshot me" {
		t.Errorf("history mutated: %q", history[0].Tasks[0].Title)
	}
}

func TestStore_PersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := Open(dir)
	moment := time.Date(2026, time.January, 6, 9, 0, 0, 0, clock.Location())
	store.SetNowFunc(func() time.Time { return moment })

	done := mustAddTask(t, store, "alice", "Persisted", AddTaskOptions{Priority: PriorityHigh, Description: "details"})
	mustSetStatus(t, store, done.ID, StatusCompleted)
	if _, err := store.StartDay("alice"); err != nil {
		t.Fatalf("start day: %v", err)
	}
	if _, err := store.EndDay("alice"); err != nil {
		t.Fatalf("end day: %v", err)
	}

	original, err := store.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	reopened := Open(dir)
	reloaded, err := reopened.History()
	if err != nil {
		t.Fatalf("history after reopen: %v", err)
	}

	if !reflect.DeepEqual(original, reloaded) {
		t.Errorf("history changed across restart:\n%+v\n%+v", original, reloaded)
	}
}
