// Package report reconstructs attendance views from the task store's
// history and live state. History accumulated under two date dialects over
// the product's lifetime, so every day-level match runs both a string
// comparison against each dialect and a parse-based comparison, and an
// entry counts if either succeeds.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tasktrack/tasktrack/internal/clock"
	"github.com/tasktrack/tasktrack/tracker"
	"github.com/tasktrack/tasktrack/userdir"
)

// Work-status labels for a day row.
const (
	WorkStatusWorked    = "Worked"
	WorkStatusNotWorked = "Not Worked"
)

// TimePlaceholder fills the start/end columns of a day with no session.
const TimePlaceholder = "-"

// ActiveEndTime marks a day whose session is still open.
const ActiveEndTime = "Active"

// Row is one attendance row: one user, one calendar day.
type Row struct {
	SrNo       int    `json:"sr_no"`
	UserName   string `json:"user_name"`
	Date       string `json:"date"`
	Day        string `json:"day"`
	WorkStatus string `json:"work_status"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	TaskDetail string `json:"task_detail"`
}

// Summary is the per-user attendance block appended after the user's days.
type Summary struct {
	UserID               string  `json:"user_id"`
	UserName             string  `json:"user_name"`
	PossibleWorkingDays  int     `json:"possible_working_days"`
	ActualWorkingDays    int     `json:"actual_working_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// MonthlyReport is the full attendance matrix for one month.
type MonthlyReport struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	Rows      []Row      `json:"rows"`
	Summaries []Summary  `json:"summaries"`
}

// BuildMonthlyReport walks every calendar day of the month for every user
// passing the work-type filter and emits one attendance row per user per
// day, followed by one summary per user. Live tasks due "Today" are merged
// into the current day without double counting tasks already in history.
// now supplies the current moment; callers pass time.Now() outside tests.
func BuildMonthlyReport(snapshot tracker.Snapshot, users []userdir.User, year int, month time.Month, workType userdir.WorkType, now time.Time) MonthlyReport {
	result := MonthlyReport{Year: year, Month: month}
	days := clock.DaysInMonth(year, month)

	for _, user := range SortUsersForReport(users) {
		if !user.MatchesWorkType(workType) {
			continue
		}

		possible, worked := 0, 0
		for d := 1; d <= days; d++ {
			dayStart := time.Date(year, month, d, 0, 0, 0, 0, clock.Location())
			row := buildDayRow(snapshot, user, dayStart, now)
			row.SrNo = d
			result.Rows = append(result.Rows, row)

			if dayStart.Weekday() != time.Sunday {
				possible++
			}
			if row.WorkStatus == WorkStatusWorked {
				worked++
			}
		}

		result.Summaries = append(result.Summaries, Summary{
			UserID:               user.ID,
			UserName:             user.Name,
			PossibleWorkingDays:  possible,
			ActualWorkingDays:    worked,
			AttendancePercentage: attendancePercentage(worked, possible),
		})
	}

	return result
}

// buildDayRow reconciles one user's history and live state for one day.
func buildDayRow(snapshot tracker.Snapshot, user userdir.User, dayStart, now time.Time) Row {
	shortStr := clock.FormatShort(dayStart)
	longStr := clock.FormatLong(dayStart)

	var sessions []tracker.HistorySession
	for _, session := range snapshot.History {
		if !sessionBelongsTo(session, user) {
			continue
		}
		if !dateMatchesDay(session.Date, shortStr, longStr, dayStart) {
			continue
		}
		sessions = append(sessions, session)
	}

	isToday := clock.SameCalendarDay(dayStart, now)
	var liveToday []tracker.Task
	if isToday {
		for _, task := range snapshot.Tasks {
			if task.UserID == user.ID && task.DueDate == tracker.DueToday {
				liveToday = append(liveToday, task)
			}
		}
	}

	var combined []tracker.Task
	for _, session := range sessions {
		combined = append(combined, session.Tasks...)
	}
	combined = append(combined, liveToday...)
	tasks := dedupeTasks(combined)

	startTime, endTime := TimePlaceholder, TimePlaceholder
	for _, session := range sessions {
		if startTime == TimePlaceholder || session.StartTime < startTime {
			startTime = session.StartTime
		}
		if endTime == TimePlaceholder || session.EndTime > endTime {
			endTime = session.EndTime
		}
	}
	for _, task := range liveToday {
		if task.Status == tracker.StatusInProgress {
			endTime = ActiveEndTime
			break
		}
	}

	status := WorkStatusNotWorked
	if len(tasks) > 0 {
		status = WorkStatusWorked
	}

	return Row{
		UserName:   user.Name,
		Date:       shortStr,
		Day:        clock.WeekdayName(dayStart),
		WorkStatus: status,
		StartTime:  startTime,
		EndTime:    endTime,
		TaskDetail: FormatTaskDetail(tasks),
	}
}

// dateMatchesDay reports whether a stored date refers to the given day.
// The string test and the parse test disagree on some legacy inputs, so a
// record matches if either succeeds.
func dateMatchesDay(date clock.DateString, shortStr, longStr string, dayStart time.Time) bool {
	if date.Raw == shortStr || date.Raw == longStr {
		return true
	}
	parsed, ok := date.Time()
	if !ok {
		return false
	}
	return clock.SameCalendarDay(parsed, dayStart)
}

// dedupeTasks drops duplicate tasks, keeping the first-seen instance. The
// key is the task id; tasks without one fall back to (title, priority) so a
// live copy and its historical twin still collapse.
func dedupeTasks(tasks []tracker.Task) []tracker.Task {
	seen := make(map[string]bool, len(tasks))
	var unique []tracker.Task
	for _, task := range tasks {
		key := taskKey(task)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, task)
	}
	return unique
}

// FormatTaskDetail renders a task list as numbered titles for the Task
// Detail column.
func FormatTaskDetail(tasks []tracker.Task) string {
	if len(tasks) == 0 {
		return ""
	}
	parts := make([]string, len(tasks))
	for i, task := range tasks {
		parts[i] = fmt.Sprintf("%d. %s", i+1, task.Title)
	}
	return strings.Join(parts, "; ")
}

// attendancePercentage is worked/possible as a percentage rounded to two
// decimals, with zero possible days yielding 0.00 rather than dividing.
func attendancePercentage(worked, possible int) float64 {
	if possible == 0 {
		return 0
	}
	return math.Round(float64(worked)/float64(possible)*100*100) / 100
}

// SortUsersForReport orders users the way rows are grouped, by name then id.
func SortUsersForReport(users []userdir.User) []userdir.User {
	sorted := make([]userdir.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
