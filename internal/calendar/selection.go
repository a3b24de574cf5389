package calendar

import "time"

// Selection is the schedule screen's view state: the selected date and the
// displayed month. The two fields move independently; navigating months
// never clears the selection and selecting never moves the displayed month.
type Selection struct {
	Selected  Day
	Displayed YearMonth
}

// NewSelection selects today and displays the current month.
func NewSelection(now time.Time) Selection {
	return Selection{
		Selected:  DayOf(now),
		Displayed: YearMonthOf(now),
	}
}

// Navigate returns the state with the displayed month moved one step.
func (s Selection) Navigate(dir Direction) Selection {
	s.Displayed = Navigate(s.Displayed, dir)
	return s
}

// Show returns the state displaying ym.
func (s Selection) Show(ym YearMonth) Selection {
	s.Displayed = ym
	return s
}

// View builds the grid for the displayed month.
func (s Selection) View(firstWeekday time.Weekday) (MonthView, error) {
	return BuildMonthViewFrom(s.Displayed, firstWeekday)
}

// SelectDate replaces the selected date. Blank cells leave s unchanged.
func SelectDate(day Day, s Selection) Selection {
	if day.IsBlank() {
		return s
	}
	s.Selected = day
	return s
}

// IsSelected reports whether day is the selected date.
func IsSelected(day Day, s Selection) bool {
	return day.Equal(s.Selected)
}

// IsToday reports whether day is the calendar date of now. Callers rendering
// a whole grid capture now once so every cell sees the same date.
func IsToday(day Day, now time.Time) bool {
	return day.Equal(DayOf(now))
}

// Cell is a grid cell with its highlight state.
type Cell struct {
	Day      Day
	Today    bool
	Selected bool
}

// Cells evaluates today and selection for every cell against a single now.
func (v MonthView) Cells(now time.Time, s Selection) []Cell {
	today := DayOf(now)
	cells := make([]Cell, len(v.Days))
	for i, d := range v.Days {
		cells[i] = Cell{
			Day:      d,
			Today:    d.Equal(today),
			Selected: IsSelected(d, s),
		}
	}
	return cells
}
