package calendar

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
	pkgerrors "github.com/pkg/errors"
)

// YearMonth identifies a displayed month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates month (1-12). Any integer year is accepted.
func NewYearMonth(year int, month time.Month) (YearMonth, error) {
	if month < time.January || month > time.December {
		return YearMonth{}, pkgerrors.Wrapf(ErrInvalidArgument, "month %d out of range 1-12", int(month))
	}
	return YearMonth{Year: year, Month: month}, nil
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, pkgerrors.Wrapf(ErrInvalidArgument, "month %q must be YYYY-MM", s)
	}
	return YearMonthOf(t), nil
}

// Add returns the month n months away. n may be negative. Only the year
// itself can overflow, at the limits of int.
func (ym YearMonth) Add(n int) YearMonth {
	year := ym.Year + n/12
	m := int(ym.Month) - 1 + n%12
	switch {
	case m < 0:
		m += 12
		year--
	case m >= 12:
		m -= 12
		year++
	}
	return YearMonth{Year: year, Month: time.Month(m + 1)}
}

// DaysInMonth returns the number of days in the month using the proleptic
// Gregorian leap year rule.
func (ym YearMonth) DaysInMonth() int {
	return datetime.DaysInMonth(ym.Year, datetime.Month(ym.Month))
}

// Contains reports whether day falls in this month.
func (ym YearMonth) Contains(day Day) bool {
	return !day.IsBlank() && day.YearMonth() == ym
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// Direction is a month navigation step.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// ParseDirection accepts "prev", "previous" and "next".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return Previous, nil
	case "next":
		return Next, nil
	}
	return 0, pkgerrors.Wrapf(ErrInvalidArgument, "unknown direction %q", s)
}

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Navigate moves one month in the given direction, rolling the year over
// at December and January.
func Navigate(current YearMonth, dir Direction) YearMonth {
	if dir < 0 {
		return current.Add(-1)
	}
	return current.Add(1)
}

// MonthView is the ordered cell sequence of a month grid: leading blanks up
// to the weekday of the 1st, then one cell per day. It has no trailing
// padding, so the last week may be short.
type MonthView struct {
	YearMonth
	FirstWeekday time.Weekday
	Days         []Day
}

// BuildMonthView builds the grid for a month with weeks starting on Sunday.
func BuildMonthView(year int, month time.Month) (MonthView, error) {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		return MonthView{}, err
	}
	return BuildMonthViewFrom(ym, time.Sunday)
}

// BuildMonthViewFrom builds the grid for ym with weeks starting on firstWeekday.
func BuildMonthViewFrom(ym YearMonth, firstWeekday time.Weekday) (MonthView, error) {
	if _, err := NewYearMonth(ym.Year, ym.Month); err != nil {
		return MonthView{}, err
	}
	if firstWeekday < time.Sunday || firstWeekday > time.Saturday {
		return MonthView{}, pkgerrors.Wrapf(ErrInvalidArgument, "weekday %d out of range 0-6", int(firstWeekday))
	}

	first := firstWeekdayOf(ym)
	blanks := (int(first) - int(firstWeekday) + 7) % 7
	n := ym.DaysInMonth()

	days := make([]Day, 0, blanks+n)
	for i := 0; i < blanks; i++ {
		days = append(days, Blank())
	}
	for d := 1; d <= n; d++ {
		days = append(days, NewDay(ym.Year, ym.Month, d))
	}

	return MonthView{YearMonth: ym, FirstWeekday: firstWeekday, Days: days}, nil
}

// firstWeekdayOf returns the weekday of the 1st of ym. The Gregorian calendar
// repeats every 400 years (146097 days, a whole number of weeks), so the year
// is folded into 2000-2399 before asking the time package.
func firstWeekdayOf(ym YearMonth) time.Weekday {
	year := (ym.Year%400+400)%400 + 2000
	return time.Date(year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// LeadingBlanks returns the number of padding cells before the 1st.
func (v MonthView) LeadingBlanks() int {
	n := 0
	for _, d := range v.Days {
		if !d.IsBlank() {
			break
		}
		n++
	}
	return n
}

// Index returns the position of day in the grid, or -1.
func (v MonthView) Index(day Day) int {
	if !v.YearMonth.Contains(day) {
		return -1
	}
	return v.LeadingBlanks() + day.Number() - 1
}

// Weeks splits the grid into rows of seven cells. The final row may be shorter.
func (v MonthView) Weeks() [][]Day {
	var weeks [][]Day
	for i := 0; i < len(v.Days); i += 7 {
		end := min(i+7, len(v.Days))
		weeks = append(weeks, v.Days[i:end])
	}
	return weeks
}

// WeekdayHeaders returns three-letter weekday names in grid column order.
func (v MonthView) WeekdayHeaders() []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(v.FirstWeekday) + i) % 7).String()[:3]
	}
	return headers
}
