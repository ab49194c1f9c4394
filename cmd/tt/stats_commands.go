package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var (
	statsGlobal bool
	statsJSON   bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVarP(&statsGlobal, "global", "g", false, "Count every user's tasks")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openTracker()
	if err != nil {
		return err
	}

	var counts tracker.Stats
	if statsGlobal {
		counts, err = store.GlobalStats()
	} else {
		counts, err = store.Stats(currentUserID())
	}
	if err != nil {
		return err
	}

	if statsJSON {
		return encodeJSONToStdout(counts)
	}

	scope := currentUserID()
	if statsGlobal {
		scope = "everyone"
	}
	fmt.Println(renderHeader(fmt.Sprintf("Stats for %s", scope)))
	fmt.Printf("Total:       %d\n", counts.Total)
	fmt.Printf("Completed:   %d\n", counts.Completed)
	fmt.Printf("Pending:     %d\n", counts.Pending)
	fmt.Printf("In Progress: %d\n", counts.InProgress)
	return nil
}
