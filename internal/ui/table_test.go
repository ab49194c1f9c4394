package ui

import (
	"strings"
	"testing"
)

func TestFormatTable_Alignment(t *testing.T) {
	output := FormatTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{"a1", "Fix login"},
			{"b22", "Ship"},
		},
	)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), output)
	}
	if !strings.HasPrefix(lines[1], "a1   Fix login") {
		t.Errorf("unexpected row alignment: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "b22  Ship") {
		t.Errorf("unexpected row alignment: %q", lines[2])
	}
}

func TestFormatTable_IgnoresANSIWidth(t *testing.T) {
	styled := "\x1b[1m\x1b[36mab\x1b[0m"
	output := FormatTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{styled, "one"},
			{"cd", "two"},
		},
	)

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if !strings.HasSuffix(lines[1], "one") || !strings.HasSuffix(lines[2], "two") {
		t.Fatalf("unexpected output: %q", output)
	}

	// Both data cells are two visible characters wide, so after stripping
	// escapes the rows must be identical apart from their content.
	plain := strings.NewReplacer("\x1b[1m", "", "\x1b[36m", "", "\x1b[0m", "").Replace(lines[1])
	if len(plain) != len(lines[2]) {
		t.Errorf("styled row misaligned: %q vs %q", plain, lines[2])
	}
}

func TestFormatTable_FlattensNewlines(t *testing.T) {
	output := FormatTable(
		[]string{"TITLE"},
		[][]string{{"line one\nline two"}},
	)
	if strings.Count(output, "\n") != 2 {
		t.Errorf("embedded newline should be flattened: %q", output)
	}
}

func TestTruncateTableCell(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := TruncateTableCell(long)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if displayWidth(got) != tableCellMaxWidth {
		t.Errorf("expected width %d, got %d", tableCellMaxWidth, displayWidth(got))
	}

	short := "short"
	if TruncateTableCell(short) != short {
		t.Errorf("short cell should be untouched")
	}
}

func TestTableBuilder(t *testing.T) {
	builder := NewTableBuilder([]string{"A"}, 2)
	builder.AddRow([]string{"1"})
	builder.AddRow([]string{"2"})

	output := builder.String()
	if !strings.Contains(output, "A\n1\n2\n") {
		t.Errorf("unexpected builder output: %q", output)
	}
}
