// Package notify keeps a small per-user notification log. The CLI appends
// an entry when a day closes or a task completes; nothing in the tracking
// core depends on this package.
package notify

import (
	"fmt"
	"time"

	"github.com/tasktrack/tasktrack/internal/ids"
	"github.com/tasktrack/tasktrack/internal/state"
)

const (
	// RecordName is the state record holding notifications.
	RecordName = "notifications"

	// SchemaVersion guards the record layout; a mismatch clears the log.
	SchemaVersion = 1
)

// Notification is one log entry.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type notifyState struct {
	Notifications []Notification `json:"notifications"`
}

func defaultState() notifyState {
	return notifyState{}
}

// Log reads and appends notifications for a data directory.
type Log struct {
	state *state.Store
	now   func() time.Time
}

// Open returns a notification log rooted at dir.
func Open(dir string) *Log {
	return &Log{state: state.NewStore(dir), now: time.Now}
}

// SetNowFunc overrides the log's clock. Tests use this to pin timestamps.
func (l *Log) SetNowFunc(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Add appends a notification for the user and returns it.
func (l *Log) Add(userID, message string) (*Notification, error) {
	now := l.now()
	entry := Notification{
		ID:        ids.GenerateWithTimestamp(userID+message, now, ids.DefaultLength),
		UserID:    userID,
		Message:   message,
		CreatedAt: now,
	}
	err := state.Update(l.state, RecordName, SchemaVersion, defaultState, func(st *notifyState) error {
		st.Notifications = append([]Notification{entry}, st.Notifications...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("write notifications: %w", err)
	}
	return &entry, nil
}

// List returns the user's notifications, newest first. unreadOnly drops
// entries already marked read.
func (l *Log) List(userID string, unreadOnly bool) ([]Notification, error) {
	st, err := state.Load(l.state, RecordName, SchemaVersion, defaultState)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	var entries []Notification
	for _, entry := range st.Notifications {
		if entry.UserID != userID {
			continue
		}
		if unreadOnly && entry.Read {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MarkRead marks the user's notifications read and reports how many
// changed. An empty ids list marks everything.
func (l *Log) MarkRead(userID string, notificationIDs ...string) (int, error) {
	wanted := make(map[string]bool, len(notificationIDs))
	for _, id := range notificationIDs {
		wanted[id] = true
	}

	marked := 0
	err := state.Update(l.state, RecordName, SchemaVersion, defaultState, func(st *notifyState) error {
		for i := range st.Notifications {
			entry := &st.Notifications[i]
			if entry.UserID != userID || entry.Read {
				continue
			}
			if len(wanted) > 0 && !wanted[entry.ID] {
				continue
			}
			entry.Read = true
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("write notifications: %w", err)
	}
	return marked, nil
}
