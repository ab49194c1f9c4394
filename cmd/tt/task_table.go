package main

import (
	"fmt"
	"strings"

	"github.com/tasktrack/tasktrack/internal/markdown"
	"github.com/tasktrack/tasktrack/internal/ui"
	"github.com/tasktrack/tasktrack/tracker"
)

const detailRenderWidth = 80

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []tracker.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	fmt.Print(formatTaskTable(tasks))
}

func formatTaskTable(tasks []tracker.Task) string {
	builder := ui.NewTableBuilder([]string{"ID", "USER", "PRI", "STATUS", "TIMER", "ELAPSED", "DUE", "TITLE"}, len(tasks))

	for _, task := range tasks {
		timer := "-"
		if task.TimerRunning {
			timer = "on"
		}
		due := task.DueDate
		if due == "" {
			due = "-"
		}
		builder.AddRow([]string{
			ui.HighlightID(task.ID),
			task.UserID,
			priorityShort(task.Priority),
			string(task.Status),
			timer,
			ui.FormatElapsedSeconds(task.TimeElapsed),
			due,
			ui.TruncateTableCell(task.Title),
		})
	}

	return builder.String()
}

// printTaskDetail prints detailed information about a task, rendering the
// description as markdown.
func printTaskDetail(task tracker.Task) {
	fmt.Printf("ID:       %s\n", ui.HighlightID(task.ID))
	fmt.Printf("Title:    %s\n", task.Title)
	fmt.Printf("User:     %s\n", task.UserID)
	fmt.Printf("Status:   %s\n", task.Status)
	fmt.Printf("Priority: %s\n", task.Priority)
	fmt.Printf("Timer:    %v\n", task.TimerRunning)
	fmt.Printf("Elapsed:  %s\n", ui.FormatElapsedSeconds(task.TimeElapsed))

	if task.DueDate != "" {
		fmt.Printf("Due:      %s\n", task.DueDate)
	}
	fmt.Printf("Created:  %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:  %s\n", task.UpdatedAt.Format("2006-01-02 15:04:05"))

	if task.Description != "" {
		rendered := markdown.Render(detailRenderWidth, task.Description)
		fmt.Printf("\nDescription:\n%s\n", strings.TrimRight(rendered, "\n"))
	}
}

// priorityShort returns a short representation of priority.
func priorityShort(p tracker.Priority) string {
	switch p {
	case tracker.PriorityHigh:
		return "P1"
	case tracker.PriorityMedium:
		return "P2"
	case tracker.PriorityLow:
		return "P3"
	default:
		return string(p)
	}
}
