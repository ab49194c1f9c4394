package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tasktrack/tasktrack/internal/ui"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	workedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func renderHeader(text string) string {
	if !ui.ANSIEnabled() {
		return text
	}
	return headerStyle.Render(text)
}

func renderSummaryLine(format string, args ...any) string {
	line := fmt.Sprintf(format, args...)
	if !ui.ANSIEnabled() {
		return line
	}
	return summaryStyle.Render(line)
}

func renderWorkStatus(status string) string {
	if !ui.ANSIEnabled() {
		return status
	}
	if status == "Worked" {
		return workedStyle.Render(status)
	}
	return status
}
