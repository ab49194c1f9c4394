// Package export serializes a monthly attendance report into the flat
// row contract the spreadsheet formatter consumes: a fixed header, each
// user's day rows, then that user's summary rows. The xlsx encoding itself
// happens downstream; this package writes the rows as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tasktrack/tasktrack/report"
)

// Columns is the fixed header row. Downstream formatters key on these
// strings, so order and spelling are part of the contract.
var Columns = []string{
	"Sr No",
	"User Name",
	"Date",
	"Day",
	"Work Status",
	"Start Time",
	"End Time",
	"Task Detail",
}

// FileName builds the spreadsheet name for a report period, for example
// "TaskTracker_Report_1_2026.xlsx" for January 2026. The month is the
// 1-based calendar month.
func FileName(product string, month time.Month, year int) string {
	return fmt.Sprintf("%s_Report_%d_%d.xlsx", product, int(month), year)
}

// CSVFileName is FileName with the extension this package actually writes.
func CSVFileName(product string, month time.Month, year int) string {
	return fmt.Sprintf("%s_Report_%d_%d.csv", product, int(month), year)
}

// Rows flattens a monthly report into ordered string rows: the header,
// then for each user their day rows followed by three summary rows.
func Rows(r report.MonthlyReport) [][]string {
	rows := [][]string{Columns}

	for _, summary := range r.Summaries {
		for _, row := range r.Rows {
			if row.UserName != summary.UserName {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(row.SrNo),
				row.UserName,
				row.Date,
				row.Day,
				row.WorkStatus,
				row.StartTime,
				row.EndTime,
				row.TaskDetail,
			})
		}
		rows = append(rows,
			summaryRow("Possible Working Days", strconv.Itoa(summary.PossibleWorkingDays)),
			summaryRow("Actual Working Days", strconv.Itoa(summary.ActualWorkingDays)),
			summaryRow("Attendance %", fmt.Sprintf("%.2f", summary.AttendancePercentage)),
		)
	}

	return rows
}

func summaryRow(label, value string) []string {
	return []string{"", "", "", "", "", "", label, value}
}

// WriteCSV writes the report to path. The file appears atomically: a
// serialization or write failure leaves no partial file behind.
func WriteCSV(path string, r report.MonthlyReport) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	tmpName := tmpFile.Name()

	writer := csv.NewWriter(tmpFile)
	err = writer.WriteAll(Rows(r))
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write export rows: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}
