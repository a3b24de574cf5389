package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/clock"
	"github.com/smokyabdulrahman/prayer-companion/internal/config"
	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/smokyabdulrahman/prayer-companion/internal/location"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagCountry    string
	FlagTimeFormat string
	FlagWeekStart  string
	FlagJSON       bool
	FlagVerbose    bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// appClock is the time source of every screen. Tests replace it.
var appClock clock.Clock = clock.System

// NewRootCmd creates the root command for the prayer-companion CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prayer-companion",
		Short: "Prayer times, calendar and daily schedule in your terminal",
		Long: "A companion for the daily prayers: today's prayer times with a countdown,\n" +
			"a month calendar, an interactive schedule, your profile and settings.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg

			if FlagJSON {
				display.SetEnabled(false)
			}
			return nil
		},
		// Default action: the home screen.
		RunE:          runHome,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagWeekStart, "week-start", "", "First day of the calendar week, e.g. sunday or monday (overrides config)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Enable debug logging on stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newSettingsCmd())

	return rootCmd
}

// setupLogger configures logrus for the command's error stream.
func setupLogger(cmd *cobra.Command) {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logrus.SetLevel(logrus.WarnLevel)
	if FlagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}
	merged := *cfg
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		merged.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		merged.Country = FlagCountry
	}

	// Time format: CLI flag > config > default ("12h").
	if flagWasSet(flags, root, "time-format") {
		merged.TimeFormat = FlagTimeFormat
	}
	if merged.TimeFormat == "" {
		merged.TimeFormat = defaults.TimeFormat
	}

	if flagWasSet(flags, root, "week-start") {
		merged.WeekStart = FlagWeekStart
	}
	if merged.WeekStart == "" {
		merged.WeekStart = defaults.WeekStart
	}

	for _, key := range []string{"notifications", "prayer_reminders", "dark_mode", "location_services"} {
		if v, _ := merged.Get(key); v == "" {
			dv, _ := defaults.Get(key)
			_ = merged.Set(key, dv)
		}
	}
	if merged.Language == "" {
		merged.Language = defaults.Language
	}

	return &merged
}

// validateFlags rejects malformed global flag values before a screen renders.
func validateFlags(cfg *config.Config) error {
	if cfg.TimeFormat != "12h" && cfg.TimeFormat != "24h" {
		return fmt.Errorf("invalid time format %q: must be \"12h\" or \"24h\"", cfg.TimeFormat)
	}
	if _, err := calendar.ParseWeekday(cfg.WeekStart); err != nil {
		return fmt.Errorf("invalid week start %q: %w", cfg.WeekStart, err)
	}
	return nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// resolver builds the location collaborator from the merged config.
func resolver(cfg *config.Config) location.Resolver {
	return location.Static{
		Place: location.Place{
			City:     cfg.City,
			Country:  cfg.Country,
			Timezone: cfg.Timezone,
		},
		Enabled: cfg.Enabled("location_services", true),
	}
}

// currentTime returns now in the configured timezone. An invalid timezone is
// logged and the local zone is used instead.
func currentTime(cfg *config.Config) time.Time {
	now := appClock.Now()
	loc, err := (location.Place{Timezone: cfg.Timezone}).TimeLocation()
	if err != nil {
		logrus.Warnf("using local time: %v", err)
		return now
	}
	return now.In(loc)
}
