// Package calendar builds month grids for the schedule screen and tracks
// which date is selected and which one is today.
//
// Months use the time.Month convention (January = 1). Out-of-range months
// are rejected with an error wrapping ErrInvalidArgument rather than being
// normalized.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/datetime"
	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidArgument is returned for malformed month, year, date or weekday input.
var ErrInvalidArgument = pkgerrors.New("invalid argument")

// Day is one cell of a month grid: either a blank padding cell or a concrete date.
// The zero value is a blank cell.
type Day struct {
	date datetime.CalendarDate
	set  bool
}

// Blank returns a padding cell.
func Blank() Day {
	return Day{}
}

// NewDay returns the cell for the given date. It does not validate the day of month.
func NewDay(year int, month time.Month, day int) Day {
	return Day{
		date: datetime.CalendarDate{Year: year, Month: datetime.Month(month), Day: day},
		set:  true,
	}
}

// DayOf returns the cell for the calendar date of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// IsBlank reports whether the cell is padding.
func (d Day) IsBlank() bool {
	return !d.set
}

// Date returns the wrapped date. It is the zero CalendarDate for blank cells.
func (d Day) Date() datetime.CalendarDate {
	return d.date
}

// Year returns the year of the date.
func (d Day) Year() int { return d.date.Year }

// Month returns the month of the date.
func (d Day) Month() time.Month { return time.Month(d.date.Month) }

// Number returns the day of the month, 1-31.
func (d Day) Number() int { return d.date.Day }

// YearMonth returns the month the date belongs to.
func (d Day) YearMonth() YearMonth {
	return YearMonth{Year: d.date.Year, Month: time.Month(d.date.Month)}
}

// Equal reports whether both cells are non-blank and hold the same date.
func (d Day) Equal(o Day) bool {
	return d.set && o.set && d.date == o.date
}

// Time returns midnight of the date in loc.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.date.Year, time.Month(d.date.Month), d.date.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the cell n days away, crossing month and year boundaries.
// A blank cell stays blank.
func (d Day) AddDays(n int) Day {
	if !d.set {
		return d
	}
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// String formats the date as YYYY-MM-DD, or "" for a blank cell.
func (d Day) String() string {
	if !d.set {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.date.Year, d.date.Month, d.date.Day)
}

// ParseDate parses a YYYY-MM-DD date into a cell.
func ParseDate(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Day{}, pkgerrors.Wrapf(ErrInvalidArgument, "date %q must be YYYY-MM-DD", s)
	}
	return DayOf(t), nil
}

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// ParseWeekday parses a weekday name or any prefix of at least three letters
// ("sun", "Monday").
func ParseWeekday(s string) (time.Weekday, error) {
	lc := strings.ToLower(strings.TrimSpace(s))
	if len(lc) >= 3 {
		for i, name := range weekdayNames {
			if strings.HasPrefix(name, lc) {
				return time.Weekday(i), nil
			}
		}
	}
	return 0, pkgerrors.Wrapf(ErrInvalidArgument, "unknown weekday %q", s)
}
