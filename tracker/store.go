package tracker

import (
	"fmt"
	"time"

	"github.com/tasktrack/tasktrack/internal/state"
)

const (
	// RecordName is the state record holding tasks, history, and sessions.
	RecordName = "tracker"

	// SchemaVersion guards the persisted layout. A record written under a
	// different version is discarded and the store starts empty; there is
	// no migration.
	SchemaVersion = 2
)

// trackerState is the persisted record: live tasks, closed-session history
// (newest first), and the per-user active session map.
type trackerState struct {
	Tasks          []Task               `json:"tasks"`
	History        []HistorySession     `json:"history"`
	ActiveSessions map[string]time.Time `json:"active_sessions"`
}

func defaultState() trackerState {
	return trackerState{ActiveSessions: make(map[string]time.Time)}
}

// Store owns the tracker collections. All mutations are synchronous
// read-modify-write operations persisted before they return.
type Store struct {
	state *state.Store
	now   func() time.Time
}

// Open opens the task store rooted at dir. Nothing is read until the first
// operation; an empty directory behaves as an empty store.
func Open(dir string) *Store {
	return &Store{state: state.NewStore(dir), now: time.Now}
}

// SetNowFunc overrides the store's clock. Tests use this to pin dates.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) load() (trackerState, error) {
	st, err := state.Load(s.state, RecordName, SchemaVersion, defaultState)
	if err != nil {
		return trackerState{}, fmt.Errorf("load tracker record: %w", err)
	}
	if st.ActiveSessions == nil {
		st.ActiveSessions = make(map[string]time.Time)
	}
	return st, nil
}

func (s *Store) update(fn func(*trackerState) error) error {
	return state.Update(s.state, RecordName, SchemaVersion, defaultState, func(st *trackerState) error {
		if st.ActiveSessions == nil {
			st.ActiveSessions = make(map[string]time.Time)
		}
		return fn(st)
	})
}

// Snapshot is a point-in-time copy of the store's collections for read-only
// consumers such as the report aggregator.
type Snapshot struct {
	Tasks          []Task
	History        []HistorySession
	ActiveSessions map[string]time.Time
}

// Snapshot returns copies of the live collections.
func (s *Store) Snapshot() (Snapshot, error) {
	st, err := s.load()
	if err != nil {
		return Snapshot{}, err
	}

	sessions := make(map[string]time.Time, len(st.ActiveSessions))
	for userID, startedAt := range st.ActiveSessions {
		sessions[userID] = startedAt
	}

	history := make([]HistorySession, len(st.History))
	for i, session := range st.History {
		session.Tasks = cloneTasks(session.Tasks)
		history[i] = session
	}

	return Snapshot{
		Tasks:          cloneTasks(st.Tasks),
		History:        history,
		ActiveSessions: sessions,
	}, nil
}

// Tasks returns a copy of the live task list.
func (s *Store) Tasks() ([]Task, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	return cloneTasks(st.Tasks), nil
}

// History returns a copy of the closed-session history, newest first.
func (s *Store) History() ([]HistorySession, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.History, nil
}

// ActiveSession returns the start time of the user's open session, if any.
func (s *Store) ActiveSession(userID string) (time.Time, bool, error) {
	st, err := s.load()
	if err != nil {
		return time.Time{}, false, err
	}
	startedAt, ok := st.ActiveSessions[userID]
	return startedAt, ok, nil
}
