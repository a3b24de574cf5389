package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/clock"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
	"github.com/smokyabdulrahman/prayer-companion/internal/tui"
	"github.com/spf13/cobra"
)

var (
	flagPlain bool
	flagDate  string
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Interactive month calendar with the daily agenda",
		Long: "Open the interactive schedule: move with the arrow keys, n/p change month,\n" +
			"enter selects a date, t jumps to today, tab switches to the agenda, q quits.\n" +
			"With --plain the agenda of --date is printed instead.",
		Args: cobra.NoArgs,
		RunE: runSchedule,
	}

	cmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the agenda instead of opening the interactive screen")
	cmd.Flags().StringVar(&flagDate, "date", "", "Agenda date for --plain, YYYY-MM-DD (default: today)")

	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	if err := validateFlags(cfg); err != nil {
		return err
	}

	timings, err := cfg.Timings()
	if err != nil {
		return err
	}
	layout := prayer.TimeLayout(cfg.TimeFormat)

	if !flagPlain && !FlagJSON {
		now := currentTime(cfg)
		return tui.Run(cmd.Context(), tui.Options{
			Clock:        clock.In(appClock, now.Location()),
			FirstWeekday: cfg.FirstWeekday(),
			Location:     resolver(cfg),
			Timings:      timings,
			TimeLayout:   layout,
			Dark:         cfg.Enabled("dark_mode", false),
		}, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	}

	now := currentTime(cfg)
	day := calendar.DayOf(now)
	if flagDate != "" {
		day, err = calendar.ParseDate(flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}
	agenda := prayer.MarkCompleted(prayer.DefaultAgenda(timings), day.Time(now.Location()), now)

	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			Date   string        `json:"date"`
			Agenda []prayer.Item `json:"agenda"`
		}{day.String(), agenda})
	}

	fmt.Fprintln(cmd.OutOrStdout())
	printAgenda(cmd.OutOrStdout(), day, agenda, layout)
	return nil
}
