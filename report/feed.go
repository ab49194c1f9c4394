package report

import (
	"sort"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
	"github.com/tasktrack/tasktrack/tracker"
	"github.com/tasktrack/tasktrack/userdir"
)

// FeedRow is one entry in the interactive history view: either a closed
// session or, for the current month, a synthetic row for a user's live
// "Today" tasks.
type FeedRow struct {
	SessionID string           `json:"session_id,omitempty"`
	UserID    string           `json:"user_id"`
	UserName  string           `json:"user_name"`
	Date      clock.DateString `json:"date"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Tasks     []tracker.Task   `json:"tasks"`
	TaskCount int              `json:"task_count"`
	Live      bool             `json:"live,omitempty"`

	parsedDate time.Time
}

// FeedOptions narrows a session feed.
type FeedOptions struct {
	// Viewer is the requesting user. Non-admins only ever see their own
	// rows, whatever else is set.
	Viewer userdir.User

	// TargetUserID restricts an admin's view to one user. Ignored for
	// non-admin viewers; empty means every user.
	TargetUserID string

	Year  int
	Month time.Month
}

// BuildSessionFeed produces one row per closed session in the selected
// month plus, when that month is the current one, one synthetic row per
// visible user who has live tasks due "Today" that no closed session
// already contains. Rows are sorted by date, newest first. Sessions whose
// stored date fails to parse are excluded rather than guessed at.
func BuildSessionFeed(snapshot tracker.Snapshot, users []userdir.User, opts FeedOptions, now time.Time) []FeedRow {
	visible := visibleUsers(users, opts)

	var rows []FeedRow
	// Task keys already shown in a history row, per user, so the synthetic
	// live row does not repeat them.
	shown := make(map[string]map[string]bool)

	for _, session := range snapshot.History {
		user, ok := AttributeSession(session, users)
		if !ok || !visible[user.ID] {
			continue
		}
		parsed, ok := session.Date.Time()
		if !ok {
			continue
		}
		if parsed.Year() != opts.Year || parsed.Month() != opts.Month {
			continue
		}

		tasks := dedupeTasks(session.Tasks)
		rows = append(rows, FeedRow{
			SessionID:  session.ID,
			UserID:     user.ID,
			UserName:   user.Name,
			Date:       session.Date,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
			Tasks:      tasks,
			TaskCount:  len(tasks),
			parsedDate: parsed,
		})

		if clock.SameCalendarDay(parsed, now) {
			if shown[user.ID] == nil {
				shown[user.ID] = make(map[string]bool)
			}
			for _, task := range tasks {
				shown[user.ID][taskKey(task)] = true
			}
		}
	}

	if opts.Year == now.In(clock.Location()).Year() && opts.Month == now.In(clock.Location()).Month() {
		for _, user := range users {
			if !visible[user.ID] {
				continue
			}
			if row, ok := buildLiveRow(snapshot, user, shown[user.ID], now); ok {
				rows = append(rows, row)
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].parsedDate.Equal(rows[j].parsedDate) {
			return rows[i].parsedDate.After(rows[j].parsedDate)
		}
		// Live rows sort ahead of closed sessions on the same day.
		return rows[i].Live && !rows[j].Live
	})

	return rows
}

// buildLiveRow synthesizes today's row from a user's live "Today" tasks,
// skipping tasks a closed session for today already showed.
func buildLiveRow(snapshot tracker.Snapshot, user userdir.User, alreadyShown map[string]bool, now time.Time) (FeedRow, bool) {
	var tasks []tracker.Task
	for _, task := range snapshot.Tasks {
		if task.UserID != user.ID || task.DueDate != tracker.DueToday {
			continue
		}
		if alreadyShown[taskKey(task)] {
			continue
		}
		tasks = append(tasks, task)
	}
	tasks = dedupeTasks(tasks)
	if len(tasks) == 0 {
		return FeedRow{}, false
	}

	startTime := TimePlaceholder
	if startedAt, ok := snapshot.ActiveSessions[user.ID]; ok {
		startTime = clock.FormatClock(startedAt)
	}

	return FeedRow{
		UserID:     user.ID,
		UserName:   user.Name,
		Date:       clock.ShortDate(now),
		StartTime:  startTime,
		EndTime:    ActiveEndTime,
		Tasks:      tasks,
		TaskCount:  len(tasks),
		Live:       true,
		parsedDate: now.In(clock.Location()),
	}, true
}

// visibleUsers maps user ids to whether the viewer may see their rows.
func visibleUsers(users []userdir.User, opts FeedOptions) map[string]bool {
	visible := make(map[string]bool, len(users))
	for _, user := range users {
		switch {
		case !opts.Viewer.IsAdmin():
			visible[user.ID] = user.ID == opts.Viewer.ID
		case opts.TargetUserID != "":
			visible[user.ID] = user.ID == opts.TargetUserID
		default:
			visible[user.ID] = true
		}
	}
	return visible
}

func taskKey(task tracker.Task) string {
	if task.ID != "" {
		return task.ID
	}
	return "title:" + task.Title + "|" + string(task.Priority)
}
