package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagSelect string
	flagOffset int
	flagMonth  string
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [year [month] | next | prev]",
		Short: "Show a month calendar with today and the selected date",
		Long: "Print a month grid. Today is marked (19), the selected date [19].\n" +
			"With no arguments the current month is shown; a year alone keeps the current month.\n" +
			"\"next\" and \"prev\" show the month after or before the current one.\n\n" +
			"Examples:\n" +
			"  prayer-companion calendar\n" +
			"  prayer-companion calendar 2024 2 --select 2024-02-29\n" +
			"  prayer-companion calendar --month 2024-02\n" +
			"  prayer-companion calendar next\n" +
			"  prayer-companion calendar --offset -1",
		Aliases: []string{"cal"},
		Args:    cobra.MaximumNArgs(2),
		RunE:    runCalendar,
	}

	cmd.Flags().StringVar(&flagSelect, "select", "", "Selected date, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&flagOffset, "offset", 0, "Months to move from the chosen month, e.g. -1 or 3")
	cmd.Flags().StringVar(&flagMonth, "month", "", "Month to show, YYYY-MM (instead of the year and month arguments)")

	return cmd
}

func runCalendar(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	if err := validateFlags(cfg); err != nil {
		return err
	}

	now := currentTime(cfg)
	ym, err := monthFromArgs(args, now)
	if err != nil {
		return err
	}
	if flagMonth != "" {
		if len(args) > 0 {
			return fmt.Errorf("--month cannot be combined with month arguments")
		}
		if ym, err = calendar.ParseYearMonth(flagMonth); err != nil {
			return fmt.Errorf("invalid --month: %w", err)
		}
	}
	ym = ym.Add(flagOffset)

	sel := calendar.NewSelection(now).Show(ym)
	if flagSelect != "" {
		day, err := calendar.ParseDate(flagSelect)
		if err != nil {
			return fmt.Errorf("invalid --select: %w", err)
		}
		sel = calendar.SelectDate(day, sel)
	}

	view, err := sel.View(cfg.FirstWeekday())
	if err != nil {
		return err
	}
	cells := view.Cells(now, sel)

	timings, err := cfg.Timings()
	if err != nil {
		return err
	}
	agenda := prayer.MarkCompleted(prayer.DefaultAgenda(timings), sel.Selected.Time(now.Location()), now)

	if FlagJSON {
		return printCalendarJSON(cmd.OutOrStdout(), view, cells, sel, agenda)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprint(w, display.RenderMonth(view, cells))
	fmt.Fprintln(w)
	printAgenda(w, sel.Selected, agenda, prayer.TimeLayout(cfg.TimeFormat))
	return nil
}

// monthFromArgs parses the optional [year [month]] arguments, or a single
// "next"/"prev" relative to now. Missing parts come from now.
func monthFromArgs(args []string, now time.Time) (calendar.YearMonth, error) {
	ym := calendar.YearMonthOf(now)
	if len(args) == 1 {
		if dir, err := calendar.ParseDirection(args[0]); err == nil {
			return calendar.Navigate(ym, dir), nil
		}
	}
	if len(args) > 0 {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return calendar.YearMonth{}, pkgerrors.Wrapf(calendar.ErrInvalidArgument, "year %q is not a number", args[0])
		}
		ym.Year = year
	}
	if len(args) > 1 {
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return calendar.YearMonth{}, pkgerrors.Wrapf(calendar.ErrInvalidArgument, "month %q is not a number", args[1])
		}
		ym.Month = time.Month(month)
	}
	return calendar.NewYearMonth(ym.Year, ym.Month)
}

// printAgenda renders the agenda of day as a table.
func printAgenda(w io.Writer, day calendar.Day, items []prayer.Item, layout string) {
	fmt.Fprintf(w, "  %s\n\n", display.Bold("Schedule for "+day.Time(time.UTC).Format("Monday, January 2, 2006")))

	tbl := display.NewTable([]string{"Time", "Item", "Type", ""})
	for _, it := range items {
		at := it.Time
		if t, err := time.Parse(prayer.Layout24h, it.Time); err == nil {
			at = t.Format(layout)
		}
		if it.Completed {
			tbl.AddStyledRow(display.Dim, []string{at, it.Title, string(it.Kind), "done"})
			continue
		}
		tbl.AddRow([]string{at, it.Title, string(it.Kind), ""})
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

// calendarJSON is the JSON output structure for the calendar command.
type calendarJSON struct {
	Year          int                `json:"year"`
	Month         int                `json:"month"`
	MonthName     string             `json:"month_name"`
	FirstWeekday  string             `json:"first_weekday"`
	LeadingBlanks int                `json:"leading_blanks"`
	DaysInMonth   int                `json:"days_in_month"`
	Selected      string             `json:"selected"`
	Cells         []calendarJSONCell `json:"cells"`
	Agenda        []prayer.Item      `json:"agenda"`
}

// calendarJSONCell is one grid cell; blanks have no date.
type calendarJSONCell struct {
	Date     string `json:"date,omitempty"`
	Day      int    `json:"day,omitempty"`
	Today    bool   `json:"today,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

func printCalendarJSON(w io.Writer, view calendar.MonthView, cells []calendar.Cell, sel calendar.Selection, agenda []prayer.Item) error {
	out := calendarJSON{
		Year:          view.Year,
		Month:         int(view.Month),
		MonthName:     view.Month.String(),
		FirstWeekday:  view.FirstWeekday.String(),
		LeadingBlanks: view.LeadingBlanks(),
		DaysInMonth:   view.DaysInMonth(),
		Selected:      sel.Selected.String(),
		Cells:         make([]calendarJSONCell, len(cells)),
		Agenda:        agenda,
	}
	for i, c := range cells {
		out.Cells[i] = calendarJSONCell{
			Date:     c.Day.String(),
			Day:      c.Day.Number(),
			Today:    c.Today,
			Selected: c.Selected,
		}
	}
	return writeJSON(w, out)
}
