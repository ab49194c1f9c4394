package tracker

import (
	"fmt"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
	"github.com/tasktrack/tasktrack/internal/ids"
)

// AddTaskOptions configures a new task.
type AddTaskOptions struct {
	// Priority is the importance level. Defaults to PriorityMedium.
	Priority Priority

	// Description provides additional context.
	Description string

	// DueDate is a display string; DueToday marks the task for today's
	// attendance row.
	DueDate string
}

// AddTask inserts a new task for userID. Initial fields are forced: the task
// starts pending with zero elapsed time and a stopped timer, whatever the
// caller intends to do next. Duplicate titles are allowed.
func (s *Store) AddTask(userID, title string, opts AddTaskOptions) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	if opts.Priority == "" {
		opts.Priority = PriorityMedium
	}
	priority, err := normalizePriorityInput(opts.Priority)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		userID = LegacyUserID
	}

	now := s.now()
	task := Task{
		ID:           ids.GenerateWithTimestamp(title, now, ids.DefaultLength),
		UserID:       userID,
		Title:        title,
		Description:  opts.Description,
		Priority:     priority,
		Status:       StatusPending,
		TimeElapsed:  0,
		TimerRunning: false,
		DueDate:      opts.DueDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.update(func(st *trackerState) error {
		st.Tasks = append(st.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}

	return &task, nil
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *string
	TimeElapsed *int
}

// UpdateTask merge-patches the task with the given id. Updating an absent id
// is a no-op that returns a nil task: missing references never error here.
func (s *Store) UpdateTask(id string, opts UpdateOptions) (*Task, error) {
	if opts.Title != nil {
		if err := ValidateTitle(*opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Status != nil {
		normalized, err := normalizeStatusInput(*opts.Status)
		if err != nil {
			return nil, err
		}
		opts.Status = &normalized
	}
	if opts.Priority != nil {
		normalized, err := normalizePriorityInput(*opts.Priority)
		if err != nil {
			return nil, err
		}
		opts.Priority = &normalized
	}

	var updated *Task
	err := s.update(func(st *trackerState) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID != id {
				continue
			}

			if opts.Title != nil {
				st.Tasks[i].Title = *opts.Title
			}
			if opts.Description != nil {
				st.Tasks[i].Description = *opts.Description
			}
			if opts.Status != nil {
				st.Tasks[i].Status = *opts.Status
			}
			if opts.Priority != nil {
				st.Tasks[i].Priority = *opts.Priority
			}
			if opts.DueDate != nil {
				st.Tasks[i].DueDate = *opts.DueDate
			}
			if opts.TimeElapsed != nil {
				st.Tasks[i].TimeElapsed = *opts.TimeElapsed
			}
			st.Tasks[i].UpdatedAt = s.now()

			task := st.Tasks[i]
			updated = &task
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}

	return updated, nil
}

// UpdateTaskStatus sets the task's status.
func (s *Store) UpdateTaskStatus(id string, status Status) (*Task, error) {
	return s.UpdateTask(id, UpdateOptions{Status: &status})
}

// RemoveTask deletes the task with the given id. Removing an absent id is a
// no-op.
func (s *Store) RemoveTask(id string) error {
	err := s.update(func(st *trackerState) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID != id {
				continue
			}
			st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// ToggleTimer flips the task's timer flag. It does not advance TimeElapsed;
// an external ticker calls IncrementTime while the flag is set.
func (s *Store) ToggleTimer(id string) (*Task, error) {
	var toggled *Task
	err := s.update(func(st *trackerState) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID != id {
				continue
			}
			st.Tasks[i].TimerRunning = !st.Tasks[i].TimerRunning
			st.Tasks[i].UpdatedAt = s.now()

			task := st.Tasks[i]
			toggled = &task
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return toggled, nil
}

// IncrementTime adds one second of elapsed time to the task. The caller
// guarantees at most one tick source per task.
func (s *Store) IncrementTime(id string) error {
	err := s.update(func(st *trackerState) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID != id {
				continue
			}
			st.Tasks[i].TimeElapsed++
			return nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// StartDay opens an active session for the user, stamped now. A prior
// unclosed session is silently overwritten and its start time lost; callers
// that care must end the day first.
func (s *Store) StartDay(userID string) (time.Time, error) {
	startedAt := s.now()
	err := s.update(func(st *trackerState) error {
		st.ActiveSessions[userID] = startedAt
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("write sessions: %w", err)
	}
	return startedAt, nil
}

// EndDay closes the user's active session. Completed tasks are frozen into a
// new HistorySession (prepended, newest first) and removed from the live
// list; ongoing tasks carry over. A day with zero completed tasks produces
// no history record at all: the session simply vanishes. Without an active
// session EndDay is a no-op, which makes it idempotent.
func (s *Store) EndDay(userID string) (*HistorySession, error) {
	var closed *HistorySession
	err := s.update(func(st *trackerState) error {
		startedAt, ok := st.ActiveSessions[userID]
		if !ok {
			return nil
		}
		delete(st.ActiveSessions, userID)

		var completed, remaining []Task
		for _, task := range st.Tasks {
			if task.UserID == userID && task.Status == StatusCompleted {
				completed = append(completed, task)
				continue
			}
			remaining = append(remaining, task)
		}

		if len(completed) == 0 {
			return nil
		}

		now := s.now()
		session := HistorySession{
			ID:        ids.GenerateWithTimestamp(userID, now, ids.DefaultLength),
			UserID:    userID,
			Date:      clock.LongDate(now),
			StartTime: clock.FormatClock(startedAt),
			EndTime:   clock.FormatClock(now),
			Tasks:     cloneTasks(completed),
			TaskCount: len(completed),
		}

		st.History = append([]HistorySession{session}, st.History...)
		st.Tasks = remaining
		closed = &session
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write tracker record: %w", err)
	}
	return closed, nil
}
