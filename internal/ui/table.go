package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	tableCellMaxWidth = 60
	tableCellEllipsis = "..."
)

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned plain-text table.
// Cell padding ignores ANSI escape sequences so styled cells stay aligned.
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}

	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = flattenCell(cell)
			if i < len(widths) {
				if w := displayWidth(cells[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
		cleaned = append(cleaned, cells)
	}

	var out strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			out.WriteString(cell)
			if i == len(cells)-1 {
				break
			}
			out.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+2))
		}
		out.WriteByte('\n')
	}

	writeRow(headers)
	for _, row := range cleaned {
		writeRow(row)
	}

	return out.String()
}

// TruncateTableCell limits a cell's visible width, keeping escape codes intact.
func TruncateTableCell(value string) string {
	value = flattenCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	limit := tableCellMaxWidth - len(tableCellEllipsis)
	return takeVisible(value, limit) + tableCellEllipsis
}

func flattenCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func displayWidth(value string) int {
	width := 0
	forEachRune(value, func(r rune) bool {
		width++
		return true
	})
	return width
}

func takeVisible(value string, max int) string {
	if max <= 0 {
		return ""
	}
	var out strings.Builder
	taken := 0
	forEachRuneWithEscapes(value, func(chunk string, visible bool) bool {
		if !visible {
			out.WriteString(chunk)
			return true
		}
		if taken >= max {
			return false
		}
		out.WriteString(chunk)
		taken++
		return true
	})
	return out.String()
}

// forEachRune visits visible runes, skipping ANSI escape sequences.
func forEachRune(value string, fn func(rune) bool) {
	forEachRuneWithEscapes(value, func(chunk string, visible bool) bool {
		if !visible {
			return true
		}
		r, _ := utf8.DecodeRuneInString(chunk)
		return fn(r)
	})
}

// forEachRuneWithEscapes walks value chunk by chunk. Escape sequences are
// delivered whole with visible=false; each visible rune is its own chunk.
func forEachRuneWithEscapes(value string, fn func(chunk string, visible bool) bool) {
	for i := 0; i < len(value); {
		if value[i] == '\x1b' && i+1 < len(value) && value[i+1] == '[' {
			end := i + 2
			for end < len(value) && value[end] != 'm' {
				end++
			}
			if end < len(value) {
				end++
			}
			if !fn(value[i:end], false) {
				return
			}
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(value[i:])
		if !fn(value[i:i+size], true) {
			return
		}
		i += size
	}
}
