package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/clock"
	"github.com/tasktrack/tasktrack/internal/ui"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage the work day",
}

// day start
var dayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Clock in: open a work session",
	Long: `Clock in: open a work session.

Starting a day while a session is already open replaces it and the
original start time is lost.`,
	Args: cobra.NoArgs,
	RunE: runDayStart,
}

// day end
var dayEndCmd = &cobra.Command{
	Use:   "end",
	Short: "Clock out: close the work session",
	Long: `Clock out: close the work session.

Completed tasks move into the day's history record; tasks still pending
or in progress carry over. A day with no completed tasks leaves no
history record. Without an open session this command does nothing.`,
	Args: cobra.NoArgs,
	RunE: runDayEnd,
}

// day status
var dayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	RunE:  runDayStatus,
}

// day watch
var dayWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Advance running task timers once per second until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runDayWatch,
}

var dayWatchInterval time.Duration

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.AddCommand(dayStartCmd, dayEndCmd, dayStatusCmd, dayWatchCmd)

	// day watch flags
	dayWatchCmd.Flags().DurationVar(&dayWatchInterval, "interval", time.Second, "Tick interval")
}

func runDayStart(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	userID := currentUserID()
	if _, open, err := store.ActiveSession(userID); err != nil {
		return err
	} else if open {
		fmt.Println("A session was already open; its start time has been replaced.")
	}

	startedAt, err := store.StartDay(userID)
	if err != nil {
		return err
	}

	fmt.Printf("Day started at %s\n", clock.FormatClock(startedAt))
	return nil
}

func runDayEnd(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	userID := currentUserID()
	_, open, err := store.ActiveSession(userID)
	if err != nil {
		return err
	}

	session, err := store.EndDay(userID)
	if err != nil {
		return err
	}
	if session == nil {
		if open {
			fmt.Println("No completed tasks; the day was not recorded.")
		} else {
			fmt.Println("No open session.")
		}
		return nil
	}

	fmt.Printf("Day ended: %s, %s to %s, %d completed\n",
		session.Date, session.StartTime, session.EndTime, session.TaskCount)

	if log, err := openNotifyLog(); err == nil {
		log.Add(userID, fmt.Sprintf("Day ended with %d completed tasks", session.TaskCount))
	}
	return nil
}

func runDayStatus(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	userID := currentUserID()
	startedAt, open, err := store.ActiveSession(userID)
	if err != nil {
		return err
	}
	if !open {
		fmt.Println("No open session.")
		return nil
	}

	elapsed := time.Since(startedAt)
	fmt.Printf("Session open since %s (%s)\n",
		clock.FormatClock(startedAt), ui.FormatDurationShort(elapsed))
	return nil
}

func runDayWatch(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching running timers. Press Ctrl-C to stop.")
	if err := store.RunTicker(ctx, dayWatchInterval); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
