package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smokyabdulrahman/prayer-companion/internal/clock"
	"github.com/smokyabdulrahman/prayer-companion/internal/config"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat   string
	flagPrayers  string
	flagWatch    bool
	flagInterval time.Duration
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Display the next upcoming prayer time with a countdown.\n" +
			"The single-line output suits status bars such as tmux; --watch keeps it updated.",
		Args: cobra.NoArgs,
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, countdown, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")
	cmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Keep running and print a new line on every tick")
	cmd.Flags().DurationVar(&flagInterval, "interval", time.Minute, "Tick interval for --watch (at least 1s)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)
	if err := validateFlags(cfg); err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	selected := cfg.PrayerNames()
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		names, err := prayer.ParseNames(flagPrayers)
		if err != nil {
			return err
		}
		selected = names
	}

	timings, err := cfg.Timings()
	if err != nil {
		return err
	}
	formatter := prayer.NewFormatter(flagFormat, cfg.TimeFormat)

	line := func(now time.Time) (string, error) {
		next, err := prayer.NextOrTomorrow(timings, now, selected)
		if err != nil {
			return "", err
		}
		return formatter.Format(*next, now), nil
	}

	out, err := line(currentTime(cfg))
	if err != nil {
		return err
	}
	if !flagWatch {
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return watchNext(cmd, cfg, line)
}

// watchNext prints a fresh line on every tick until interrupted.
func watchNext(cmd *cobra.Command, cfg *config.Config, line func(time.Time) (string, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker, err := clock.NewTicker(flagInterval, func(time.Time) {
		out, err := line(currentTime(cfg))
		if err != nil {
			logrus.Warnf("cannot determine next prayer: %v", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	})
	if err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}

	ticker.Start()
	defer ticker.Stop()
	logrus.Debugf("watching next prayer every %s", ticker.Interval())

	<-ctx.Done()
	logrus.Debugf("watch stopped: %v", context.Cause(ctx))
	return nil
}
