package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/export"
	"github.com/tasktrack/tasktrack/internal/clock"
	"github.com/tasktrack/tasktrack/internal/ui"
	"github.com/tasktrack/tasktrack/report"
	"github.com/tasktrack/tasktrack/userdir"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Attendance reports",
}

// report month
var reportMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the monthly attendance matrix",
	Args:  cobra.NoArgs,
	RunE:  runReportMonth,
}

var (
	reportMonth    int
	reportYear     int
	reportWorkType string
	reportJSON     bool
)

// report feed
var reportFeedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the session history feed",
	Args:  cobra.NoArgs,
	RunE:  runReportFeed,
}

var (
	reportFeedMonth  int
	reportFeedYear   int
	reportFeedTarget string
	reportFeedJSON   bool
)

// report export
var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the monthly report rows to a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runReportExport,
}

var reportExportDir string

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportMonthCmd, reportFeedCmd, reportExportCmd)

	// report month flags
	reportMonthCmd.Flags().IntVarP(&reportMonth, "month", "m", 0, "Month (1-12, defaults to the current month)")
	reportMonthCmd.Flags().IntVarP(&reportYear, "year", "y", 0, "Year (defaults to the current year)")
	reportMonthCmd.Flags().StringVar(&reportWorkType, "work-type", "", "Filter by work type (onsite, remote, all)")
	reportMonthCmd.Flags().BoolVar(&reportJSON, "json", false, "Output as JSON")

	// report feed flags
	reportFeedCmd.Flags().IntVarP(&reportFeedMonth, "month", "m", 0, "Month (1-12, defaults to the current month)")
	reportFeedCmd.Flags().IntVarP(&reportFeedYear, "year", "y", 0, "Year (defaults to the current year)")
	reportFeedCmd.Flags().StringVar(&reportFeedTarget, "for", "", "Restrict to one user (admin only)")
	reportFeedCmd.Flags().BoolVar(&reportFeedJSON, "json", false, "Output as JSON")

	// report export flags
	reportExportCmd.Flags().IntVarP(&reportMonth, "month", "m", 0, "Month (1-12, defaults to the current month)")
	reportExportCmd.Flags().IntVarP(&reportYear, "year", "y", 0, "Year (defaults to the current year)")
	reportExportCmd.Flags().StringVar(&reportWorkType, "work-type", "", "Filter by work type (onsite, remote, all)")
	reportExportCmd.Flags().StringVarP(&reportExportDir, "out", "o", ".", "Output directory")
}

// resolvePeriod fills month/year defaults from the reporting timezone's
// current day.
func resolvePeriod(month, year int, now time.Time) (time.Month, int) {
	local := now.In(clock.Location())
	if month < 1 || month > 12 {
		month = int(local.Month())
	}
	if year == 0 {
		year = local.Year()
	}
	return time.Month(month), year
}

func buildMonthly(month time.Month, year int, workType string, now time.Time) (report.MonthlyReport, error) {
	store, err := openTracker()
	if err != nil {
		return report.MonthlyReport{}, err
	}
	directory, err := openDirectory()
	if err != nil {
		return report.MonthlyReport{}, err
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		return report.MonthlyReport{}, err
	}
	users, err := directory.ListUsers()
	if err != nil {
		return report.MonthlyReport{}, err
	}

	if workType == "" {
		cfg, err := loadConfig()
		if err != nil {
			return report.MonthlyReport{}, err
		}
		workType = cfg.Report.WorkType
	}

	return report.BuildMonthlyReport(snapshot, users, year, month, userdir.WorkType(workType), now), nil
}

func runReportMonth(cmd *cobra.Command, args []string) error {
	now := time.Now()
	month, year := resolvePeriod(reportMonth, reportYear, now)

	result, err := buildMonthly(month, year, reportWorkType, now)
	if err != nil {
		return err
	}

	if reportJSON {
		return encodeJSONToStdout(result)
	}

	fmt.Println(renderHeader(fmt.Sprintf("Attendance %s %d", month, year)))

	builder := ui.NewTableBuilder([]string{"#", "USER", "DATE", "DAY", "STATUS", "START", "END", "TASKS"}, len(result.Rows))
	for _, row := range result.Rows {
		builder.AddRow([]string{
			fmt.Sprintf("%d", row.SrNo),
			row.UserName,
			row.Date,
			row.Day,
			renderWorkStatus(row.WorkStatus),
			row.StartTime,
			row.EndTime,
			ui.TruncateTableCell(row.TaskDetail),
		})
	}
	fmt.Print(builder.String())

	for _, summary := range result.Summaries {
		fmt.Println(renderSummaryLine("%s: %d/%d days worked (%.2f%%)",
			summary.UserName, summary.ActualWorkingDays, summary.PossibleWorkingDays, summary.AttendancePercentage))
	}
	return nil
}

func runReportFeed(cmd *cobra.Command, args []string) error {
	now := time.Now()
	month, year := resolvePeriod(reportFeedMonth, reportFeedYear, now)

	store, err := openTracker()
	if err != nil {
		return err
	}
	directory, err := openDirectory()
	if err != nil {
		return err
	}

	snapshot, err := store.Snapshot()
	if err != nil {
		return err
	}
	users, err := directory.ListUsers()
	if err != nil {
		return err
	}
	viewer, err := currentUser()
	if err != nil {
		return err
	}

	rows := report.BuildSessionFeed(snapshot, users, report.FeedOptions{
		Viewer:       viewer,
		TargetUserID: reportFeedTarget,
		Year:         year,
		Month:        month,
	}, now)

	if reportFeedJSON {
		return encodeJSONToStdout(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	for i, row := range rows {
		if i > 0 {
			fmt.Println()
		}
		printFeedRow(row)
	}
	return nil
}

const feedDetailWidth = 72

func printFeedRow(row report.FeedRow) {
	label := fmt.Sprintf("%s  %s  %s to %s", row.Date, row.UserName, row.StartTime, row.EndTime)
	if minutes := clock.DurationMinutes(row.StartTime, row.EndTime); minutes != clock.UnknownDuration {
		label += fmt.Sprintf("  (%s)", ui.FormatSessionMinutes(minutes))
	}
	if row.Live {
		label += "  (live)"
	}
	fmt.Println(renderHeader(label))

	detail := report.FormatTaskDetail(row.Tasks)
	if detail == "" {
		return
	}
	wrapped := wordwrap.String(detail, feedDetailWidth)
	for _, line := range strings.Split(wrapped, "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func runReportExport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	month, year := resolvePeriod(reportMonth, reportYear, now)

	result, err := buildMonthly(month, year, reportWorkType, now)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := filepath.Join(reportExportDir, export.CSVFileName(cfg.Report.Product, month, year))
	if err := export.WriteCSV(path, result); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
