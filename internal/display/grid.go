package display

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
)

// cellWidth is the rendered width of one grid cell, excluding the gap.
const cellWidth = 4

// gridWidth is the width of a full week row.
const gridWidth = 7*cellWidth + 6

// RenderMonth draws a month grid with the title, weekday headers and one row
// per week. Today is drawn as "(19)" and the selected day as "[19]"; both are
// also colored when colors are enabled.
func RenderMonth(v calendar.MonthView, cells []calendar.Cell) string {
	var sb strings.Builder

	title := v.YearMonth.String()
	pad := (gridWidth - len(title)) / 2
	sb.WriteString("  " + strings.Repeat(" ", max(pad, 0)) + Bold(title) + "\n")

	headers := make([]string, len(v.WeekdayHeaders()))
	for i, h := range v.WeekdayHeaders() {
		headers[i] = padRight(h, cellWidth)
	}
	sb.WriteString("  " + Gray(strings.TrimRight(strings.Join(headers, " "), " ")) + "\n")

	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		row := make([]string, 0, 7)
		for _, c := range cells[i:end] {
			row = append(row, renderCell(c))
		}
		sb.WriteString("  " + strings.TrimRight(strings.Join(row, " "), " ") + "\n")
	}

	return sb.String()
}

// renderCell formats one grid cell to cellWidth columns.
func renderCell(c calendar.Cell) string {
	if c.Day.IsBlank() {
		return strings.Repeat(" ", cellWidth)
	}
	n := c.Day.Number()
	switch {
	case c.Selected && c.Today:
		return Accent(fmt.Sprintf("[%2d]", n))
	case c.Selected:
		return Bold(fmt.Sprintf("[%2d]", n))
	case c.Today:
		return Accent(fmt.Sprintf("(%2d)", n))
	default:
		return fmt.Sprintf(" %2d ", n)
	}
}
