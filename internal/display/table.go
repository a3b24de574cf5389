package display

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Style renders a whole table row, e.g. Dim or Accent.
type Style func(string) string

// Table renders an aligned text table with optional color support.
type Table struct {
	headers []string
	rows    [][]string
	styles  map[int]Style
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		styles:  make(map[int]Style),
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// AddStyledRow appends a row that is rendered through style.
func (t *Table) AddStyledRow(style Style, values []string) {
	t.AddRow(values)
	if style != nil {
		t.styles[len(t.rows)-1] = style
	}
}

// SetHighlightRow marks the row index (0-based) to render in the accent
// color, typically the next prayer or today's entry.
func (t *Table) SetHighlightRow(idx int) {
	t.styles[idx] = Accent
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sepParts, "  ")) + "\n")

	for i, row := range t.rows {
		line := formatRow(row, widths)
		if style, ok := t.styles[i]; ok {
			line = style(line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

// formatRow pads each cell to its column width and joins them.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(cell, w)
	}
	return strings.Join(parts, "  ")
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// KeyValue renders label/value pairs with aligned labels, the layout used by
// the profile and settings screens.
func KeyValue(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if n := utf8.RuneCountInString(p[0]); n > width {
			width = n
		}
	}
	var sb strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&sb, "  %s  %s\n", Gray(padRight(p[0], width)), p[1])
	}
	return sb.String()
}
