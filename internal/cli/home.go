package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/smokyabdulrahman/prayer-companion/internal/location"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
	"github.com/spf13/cobra"
)

// homeScreen is everything the home screen shows.
type homeScreen struct {
	Location string
	Now      time.Time
	Layout   string
	Prayers  []prayer.Prayer
	Current  *prayer.Prayer
	Next     *prayer.Prayer
}

func runHome(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)
	if err := validateFlags(cfg); err != nil {
		return err
	}

	timings, err := cfg.Timings()
	if err != nil {
		return err
	}

	now := currentTime(cfg)
	prayers, err := prayer.ParseTimings(timings, now, now.Location(), cfg.PrayerNames())
	if err != nil {
		return err
	}
	next, err := prayer.NextOrTomorrow(timings, now, cfg.PrayerNames())
	if err != nil {
		return err
	}

	screen := homeScreen{
		Location: location.Label(cmd.Context(), resolver(cfg)),
		Now:      now,
		Layout:   prayer.TimeLayout(cfg.TimeFormat),
		Prayers:  prayers,
		Current:  prayer.CurrentPrayer(prayers, now),
		Next:     next,
	}

	if FlagJSON {
		return printHomeJSON(cmd.OutOrStdout(), screen)
	}
	printHomeRich(cmd.OutOrStdout(), screen)
	return nil
}

// printHomeRich renders the colored terminal output for the home screen.
func printHomeRich(w io.Writer, s homeScreen) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Gray(s.Location))
	fmt.Fprintf(w, "  %s\n", display.Bold(s.Now.Format(s.Layout)))
	fmt.Fprintf(w, "  %s\n", s.Now.Format("Monday, January 2, 2006"))
	fmt.Fprintln(w)

	if s.Next != nil {
		fmt.Fprintf(w, "  %s\n", display.Dim("Next Prayer"))
		fmt.Fprintf(w, "  %s  %s\n", display.Accent(s.Next.Name), display.Bold(s.Next.Time.Format(s.Layout)))
		fmt.Fprintf(w, "  %s\n", prayer.FormatRemainingLong(prayer.TimeRemaining(*s.Next, s.Now)))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  %s\n\n", display.Bold("Today's Prayer Times"))

	tbl := display.NewTable([]string{"Prayer", "Time", ""})
	for _, p := range s.Prayers {
		switch {
		case s.Next != nil && p.Name == s.Next.Name && p.Time.Equal(s.Next.Time):
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.Now))
			tbl.AddStyledRow(display.Accent, []string{p.Name, p.Time.Format(s.Layout), "<- next in " + remaining})
		case s.Current != nil && p.Name == s.Current.Name:
			tbl.AddStyledRow(display.Yellow, []string{p.Name, p.Time.Format(s.Layout), "current"})
		case p.Time.Before(s.Now):
			tbl.AddStyledRow(display.Dim, []string{p.Name, p.Time.Format(s.Layout), ""})
		default:
			tbl.AddRow([]string{p.Name, p.Time.Format(s.Layout), ""})
		}
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

// homeJSON is the JSON output structure for the root command.
type homeJSON struct {
	Location string            `json:"location"`
	Time     string            `json:"time"`
	Date     string            `json:"date"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *homeJSONNext     `json:"next"`
}

type homeJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Countdown string `json:"countdown"`
}

// printHomeJSON renders structured JSON output.
func printHomeJSON(w io.Writer, s homeScreen) error {
	timings := make(map[string]string)
	for _, p := range s.Prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(s.Layout)
	}

	out := homeJSON{
		Location: s.Location,
		Time:     s.Now.Format(s.Layout),
		Date:     s.Now.Format("2006-01-02"),
		Timings:  timings,
	}
	if s.Current != nil {
		out.Current = strings.ToLower(s.Current.Name)
	}
	if s.Next != nil {
		d := prayer.TimeRemaining(*s.Next, s.Now)
		out.Next = &homeJSONNext{
			Prayer:    strings.ToLower(s.Next.Name),
			Time:      s.Next.Time.Format(s.Layout),
			Remaining: prayer.FormatRemaining(d),
			Countdown: prayer.FormatRemainingLong(d),
		}
	}

	return writeJSON(w, out)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
