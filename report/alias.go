package report

import (
	"strings"

	"github.com/tasktrack/tasktrack/tracker"
	"github.com/tasktrack/tasktrack/userdir"
)

// legacyAccountName is the historical account whose sessions were written
// before user ids existed. Sentinel-owned sessions are attributed to the
// directory user whose name contains it.
const legacyAccountName = "legacy"

// AttributeSession resolves which directory user a history session belongs
// to. The rules, in order:
//
//  1. A session whose owner matches a directory user's id belongs to that
//     user.
//  2. A session owned by the legacy sentinel belongs to the directory user
//     whose name contains the historical account name, case-insensitively.
//  3. Anything else is unattributed.
//
// Rule 2 is a name-substring match and breaks if the historical account is
// renamed. That fragility is inherited from the data, not fixable here;
// reseeding the directory with a stable id is the real cure.
func AttributeSession(session tracker.HistorySession, users []userdir.User) (userdir.User, bool) {
	owner := session.Owner()

	for _, user := range users {
		if user.ID == owner {
			return user, true
		}
	}

	if owner == tracker.LegacyUserID {
		for _, user := range users {
			if strings.Contains(strings.ToLower(user.Name), legacyAccountName) {
				return user, true
			}
		}
	}

	return userdir.User{}, false
}

// sessionBelongsTo reports whether a session counts as the given user's data
// under the attribution rules.
func sessionBelongsTo(session tracker.HistorySession, user userdir.User) bool {
	owner := session.Owner()
	if owner == user.ID {
		return true
	}
	if owner != tracker.LegacyUserID {
		return false
	}
	return strings.Contains(strings.ToLower(user.Name), legacyAccountName)
}
