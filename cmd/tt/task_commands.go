package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/ui"
	"github.com/tasktrack/tasktrack/tracker"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var (
	taskAddPriority    string
	taskAddDescription string
	taskAddDueToday    bool
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdateStatus      string
	taskUpdatePriority    string
	taskUpdateDueDate     string
)

// task done
var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDone,
}

// task start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark one or more tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskStart,
}

// task remove
var taskRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskRemove,
}

// task timer
var taskTimerCmd = &cobra.Command{
	Use:   "timer <id>",
	Short: "Toggle a task's timer",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskTimer,
}

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var (
	taskListStatus   string
	taskListPriority string
	taskListAll      bool
	taskListJSON     bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskUpdateCmd, taskDoneCmd, taskStartCmd, taskRemoveCmd,
		taskTimerCmd, taskShowCmd, taskListCmd)

	// task add flags
	taskAddCmd.Flags().StringVarP(&taskAddPriority, "priority", "p", "medium", "Priority (high, medium, low)")
	taskAddCmd.Flags().StringVarP(&taskAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	taskAddCmd.Flags().BoolVar(&taskAddDueToday, "today", false, "Mark the task due today")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status (pending, in_progress, completed)")
	taskUpdateCmd.Flags().StringVar(&taskUpdatePriority, "priority", "", "New priority (high, medium, low)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDueDate, "due", "", "New due date (only \"Today\" affects reports)")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task list flags
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status")
	taskListCmd.Flags().StringVar(&taskListPriority, "priority", "", "Filter by priority")
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "Include every user's tasks")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskAddDescription, os.Stdin)
		if err != nil {
			return err
		}
		taskAddDescription = desc
	}

	opts := tracker.AddTaskOptions{
		Priority:    tracker.Priority(taskAddPriority),
		Description: taskAddDescription,
	}
	if taskAddDueToday {
		opts.DueDate = tracker.DueToday
	}

	created, err := store.AddTask(currentUserID(), args[0], opts)
	if err != nil {
		return err
	}

	fmt.Printf("Added task %s: %s\n", ui.HighlightID(created.ID), created.Title)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskUpdateDescription, os.Stdin)
		if err != nil {
			return err
		}
		taskUpdateDescription = desc
	}

	opts := tracker.UpdateOptions{}
	if cmd.Flags().Changed("title") {
		opts.Title = &taskUpdateTitle
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &taskUpdateDescription
	}
	if cmd.Flags().Changed("status") {
		status := tracker.Status(taskUpdateStatus)
		opts.Status = &status
	}
	if cmd.Flags().Changed("priority") {
		priority := tracker.Priority(taskUpdatePriority)
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("due") {
		opts.DueDate = &taskUpdateDueDate
	}

	updated, err := store.UpdateTask(args[0], opts)
	if err != nil {
		return err
	}
	if updated == nil {
		fmt.Printf("No task %s\n", args[0])
		return nil
	}

	fmt.Printf("Updated %s: %s\n", ui.HighlightID(updated.ID), updated.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return setTaskStatus(args, tracker.StatusCompleted, "Completed")
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	return setTaskStatus(args, tracker.StatusInProgress, "Started")
}

func setTaskStatus(ids []string, status tracker.Status, verb string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	for _, id := range ids {
		updated, err := store.UpdateTaskStatus(id, status)
		if err != nil {
			return err
		}
		if updated == nil {
			fmt.Printf("No task %s\n", id)
			continue
		}
		fmt.Printf("%s %s: %s\n", verb, ui.HighlightID(updated.ID), updated.Title)

		if status == tracker.StatusCompleted {
			if log, err := openNotifyLog(); err == nil {
				log.Add(updated.UserID, "Task completed: "+updated.Title)
			}
		}
	}
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	for _, id := range args {
		if err := store.RemoveTask(id); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", ui.HighlightID(id))
	}
	return nil
}

func runTaskTimer(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	toggled, err := store.ToggleTimer(args[0])
	if err != nil {
		return err
	}
	if toggled == nil {
		fmt.Printf("No task %s\n", args[0])
		return nil
	}

	state := "stopped"
	if toggled.TimerRunning {
		state = "running"
	}
	fmt.Printf("Timer %s for %s: %s (%s elapsed)\n",
		state, ui.HighlightID(toggled.ID), toggled.Title, ui.FormatElapsedSeconds(toggled.TimeElapsed))
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	var selected []tracker.Task
	for _, id := range args {
		for _, task := range tasks {
			if task.ID == id {
				selected = append(selected, task)
			}
		}
	}

	if taskShowJSON {
		return encodeJSONToStdout(selected)
	}

	for i, task := range selected {
		if i > 0 {
			fmt.Println("---")
		}
		printTaskDetail(task)
	}
	if len(selected) == 0 {
		fmt.Println("No tasks found.")
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	userID := currentUserID()
	filtered := tasks[:0]
	for _, task := range tasks {
		if !taskListAll && userID != tracker.LegacyUserID && task.UserID != userID {
			continue
		}
		if taskListStatus != "" && task.Status != tracker.Status(taskListStatus) {
			continue
		}
		if taskListPriority != "" && task.Priority != tracker.Priority(taskListPriority) {
			continue
		}
		filtered = append(filtered, task)
	}
	tasks = filtered

	if taskListJSON {
		return encodeJSONToStdout(tasks)
	}

	printTaskTable(tasks)
	return nil
}
