package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/ui"
)

var notifyCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "Review notifications",
}

// notifications list
var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE:  runNotifyList,
}

var (
	notifyListAll  bool
	notifyListJSON bool
)

// notifications read
var notifyReadCmd = &cobra.Command{
	Use:   "read [id]...",
	Short: "Mark notifications as read (all of them without arguments)",
	RunE:  runNotifyRead,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyListCmd, notifyReadCmd)

	// notifications list flags
	notifyListCmd.Flags().BoolVarP(&notifyListAll, "all", "a", false, "Include notifications already read")
	notifyListCmd.Flags().BoolVar(&notifyListJSON, "json", false, "Output as JSON")
}

func runNotifyList(cmd *cobra.Command, args []string) error {
	log, err := openNotifyLog()
	if err != nil {
		return err
	}

	entries, err := log.List(currentUserID(), !notifyListAll)
	if err != nil {
		return err
	}

	if notifyListJSON {
		return encodeJSONToStdout(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No notifications.")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "WHEN", "READ", "MESSAGE"}, len(entries))
	for _, entry := range entries {
		read := "-"
		if entry.Read {
			read = "yes"
		}
		builder.AddRow([]string{
			ui.HighlightID(entry.ID),
			entry.CreatedAt.Format("2006-01-02 15:04"),
			read,
			ui.TruncateTableCell(entry.Message),
		})
	}
	fmt.Print(builder.String())
	return nil
}

func runNotifyRead(cmd *cobra.Command, args []string) error {
	log, err := openNotifyLog()
	if err != nil {
		return err
	}

	marked, err := log.MarkRead(currentUserID(), args...)
	if err != nil {
		return err
	}

	fmt.Printf("Marked %d notifications read\n", marked)
	return nil
}
