// Package tracker implements the work-session lifecycle and task store.
//
// Live tasks, per-user active sessions, and closed-session history are held
// in one persisted record and mutated through single-writer operations that
// save immediately. The public API mirrors the application's events:
//   - AddTask, UpdateTask, UpdateTaskStatus, RemoveTask for task lifecycle
//   - ToggleTimer, IncrementTime for timer accounting
//   - StartDay, EndDay for the session lifecycle
//   - Stats, GlobalStats for dashboard counts
package tracker

import (
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
)

// Status represents the state of a task.
type Status string

const (
	// StatusPending indicates the task has not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted indicates the task is finished.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority represents the importance of a task.
type Priority string

const (
	// PriorityHigh is the most urgent level.
	PriorityHigh Priority = "high"

	// PriorityMedium is the default level.
	PriorityMedium Priority = "medium"

	// PriorityLow is the least urgent level.
	PriorityLow Priority = "low"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// LegacyUserID is the sentinel owner for records that predate user accounts.
// A stats query for this sentinel scans every live task rather than
// filtering by owner.
const LegacyUserID = "legacy"

// DueToday is the only due-date value the report aggregator interprets; a
// live task carrying it is merged into today's attendance row.
const DueToday = "Today"

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500

// Task is a unit of work belonging to exactly one user.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from the
	// initial title + creation timestamp).
	ID string `json:"id"`

	// UserID is the owning user, or LegacyUserID for orphaned records.
	UserID string `json:"user_id"`

	// Title is the short summary of the task.
	Title string `json:"title"`

	// Description provides additional context, rendered as markdown.
	Description string `json:"description,omitempty"`

	// Priority is the importance level.
	Priority Priority `json:"priority"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// TimeElapsed is the accumulated timer seconds. It only grows while
	// the timer runs.
	TimeElapsed int `json:"time_elapsed"`

	// TimerRunning reports whether an external ticker should be advancing
	// TimeElapsed. Multiple tasks may run concurrently.
	TimerRunning bool `json:"timer_running"`

	// DueDate is a display string; only DueToday is meaningful to the
	// report aggregator.
	DueDate string `json:"due_date,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// HistorySession is the immutable snapshot of a closed work period. It is
// created by EndDay when at least one task completed during the session;
// its task list is a frozen copy that later task mutations never touch.
type HistorySession struct {
	ID string `json:"id"`

	// UserID is empty on legacy records; Owner maps those to the sentinel.
	UserID string `json:"user_id,omitempty"`

	// Date is the session's calendar day, tagged with its dialect.
	Date clock.DateString `json:"date"`

	// StartTime and EndTime are formatted 12-hour clock strings, not
	// machine timestamps.
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// Tasks are the tasks completed during the session.
	Tasks []Task `json:"tasks"`

	// TaskCount is len(Tasks), persisted for legacy readers.
	TaskCount int `json:"task_count"`
}

// Owner returns the session's user id, attributing records with a missing
// id to the legacy sentinel.
func (h HistorySession) Owner() string {
	if h.UserID == "" {
		return LegacyUserID
	}
	return h.UserID
}

func cloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	cloned := make([]Task, len(tasks))
	copy(cloned, tasks)
	return cloned
}
