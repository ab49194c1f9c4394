// Package userdir supplies the set of known users and their static
// attributes. The reporting and stats code reads from it for name
// resolution and work-mode filtering; nothing in this module creates,
// mutates, or deletes users.
package userdir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tasktrack/tasktrack/internal/state"
	tstrings "github.com/tasktrack/tasktrack/internal/strings"
)

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleHR    Role = "hr"
)

// WorkType is where a user works from.
type WorkType string

const (
	WorkTypeOnsite WorkType = "onsite"
	WorkTypeRemote WorkType = "remote"

	// WorkTypeAll is the filter value that disables work-type filtering.
	// It is never stored on a user.
	WorkTypeAll WorkType = "all"
)

// User is one directory entry.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	WorkType WorkType `json:"workType"`
}

// IsAdmin reports whether the user may see other users' data.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MatchesWorkType reports whether the user passes the given work-type
// filter. Comparison is case-insensitive; WorkTypeAll or an empty filter
// matches everyone.
func (u User) MatchesWorkType(filter WorkType) bool {
	normalized := WorkType(tstrings.NormalizeLowerTrimSpace(string(filter)))
	if normalized == "" || normalized == WorkTypeAll {
		return true
	}
	return WorkType(tstrings.NormalizeLowerTrimSpace(string(u.WorkType))) == normalized
}

const (
	// RecordName is the state record holding the directory.
	RecordName = "users"

	// SchemaVersion is bumped whenever the record layout changes. A stored
	// record with a different version is reset to the seed set.
	SchemaVersion = 1
)

type directoryState struct {
	Users []User `json:"users"`
}

// seedUsers is the directory's built-in population, used when no record
// exists yet or after a schema reset.
func seedUsers() directoryState {
	return directoryState{Users: []User{
		{ID: "admin", Name: "Administrator", Email: "admin@tasktrack.local", Role: RoleAdmin, WorkType: WorkTypeOnsite},
		{ID: "hr", Name: "HR Desk", Email: "hr@tasktrack.local", Role: RoleHR, WorkType: WorkTypeOnsite},
	}}
}

// Directory reads users from a persisted record.
type Directory struct {
	state *state.Store
}

// Open returns a directory backed by the given data directory.
func Open(dir string) *Directory {
	return &Directory{state: state.NewStore(dir)}
}

// NewFromStore returns a directory sharing an existing state store.
func NewFromStore(s *state.Store) *Directory {
	return &Directory{state: s}
}

func (d *Directory) load() (directoryState, error) {
	return state.Load(d.state, RecordName, SchemaVersion, seedUsers)
}

// ListUsers returns every known user sorted by name, then id.
func (d *Directory) ListUsers() ([]User, error) {
	st, err := d.load()
	if err != nil {
		return nil, err
	}
	users := make([]User, len(st.Users))
	copy(users, st.Users)
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// Get returns the user with the given id.
func (d *Directory) Get(id string) (User, error) {
	st, err := d.load()
	if err != nil {
		return User{}, err
	}
	for _, user := range st.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, fmt.Errorf("no user %q", id)
}

// FindByName returns the user whose name matches, case-insensitively.
func (d *Directory) FindByName(name string) (User, bool, error) {
	st, err := d.load()
	if err != nil {
		return User{}, false, err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for _, user := range st.Users {
		if strings.ToLower(user.Name) == want {
			return user, true, nil
		}
	}
	return User{}, false, nil
}

// Seed writes the given users as the directory contents. It exists for
// installations that provision users out of band; the tracking core never
// calls it.
func Seed(dir string, users []User) error {
	s := state.NewStore(dir)
	return state.Save(s, RecordName, SchemaVersion, directoryState{Users: users})
}
