package cli

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/prayer-companion/internal/config"
	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/spf13/cobra"
)

// settingRow is one line of the settings screen.
type settingRow struct {
	Key   string
	Title string
}

// settingSections groups the config keys the way the settings screen shows them.
var settingSections = []struct {
	Title string
	Rows  []settingRow
}{
	{"Notifications", []settingRow{
		{"notifications", "Push Notifications"},
		{"prayer_reminders", "Prayer Reminders"},
	}},
	{"Appearance", []settingRow{
		{"dark_mode", "Dark Mode"},
		{"language", "Language"},
		{"time_format", "Time Format"},
		{"week_start", "Week Starts On"},
	}},
	{"Location", []settingRow{
		{"location_services", "Location Services"},
		{"city", "City"},
		{"country", "Country"},
		{"timezone", "Timezone"},
	}},
	{"Prayers", []settingRow{
		{"prayers", "Tracked Prayers"},
		{"times", "Time Overrides"},
	}},
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Show or modify settings",
		Long:    "Display current settings, or use subcommands to modify them.\nWhen run without subcommands, shows the effective settings.",
		RunE:    runSettingsShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-companion settings set city Riyadh\n  prayer-companion settings set country \"Saudi Arabia\"\n  prayer-companion settings set dark_mode true\n  prayer-companion settings set week_start monday\n  prayer-companion settings set times Fajr=05:12,Isha=20:00",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runSettingsSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset settings to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runSettingsReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runSettingsPath,
	})

	return cmd
}

// runSettingsShow displays the effective settings, grouped in sections.
func runSettingsShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	cfg := effectiveConfig(cmd)

	if FlagJSON {
		values := make(map[string]string, len(config.ValidKeys))
		for _, key := range config.ValidKeys {
			values[key], _ = cfg.Get(key)
		}
		return writeJSON(cmd.OutOrStdout(), values)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\n  %s %s\n\n", display.Bold("Settings"), display.Gray("("+path+")"))
	for _, section := range settingSections {
		fmt.Fprintf(w, "  %s\n", display.Cyan(section.Title))
		pairs := make([][2]string, 0, len(section.Rows))
		for _, row := range section.Rows {
			pairs = append(pairs, [2]string{row.Title, settingValue(cfg, row.Key)})
		}
		fmt.Fprint(w, display.KeyValue(pairs))
		fmt.Fprintln(w)
	}
	return nil
}

// settingValue renders the value of key for the settings screen.
func settingValue(cfg *config.Config, key string) string {
	switch key {
	case "notifications", "prayer_reminders", "dark_mode", "location_services":
		return display.Check(cfg.Enabled(key, false))
	case "prayers":
		return strings.Join(cfg.PrayerNames(), ", ")
	}
	val, _ := cfg.Get(key)
	if val == "" {
		return display.Dim("(not set)")
	}
	return val
}

// runSettingsSet sets a config key to the given value.
func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runSettingsReset deletes the config file.
func runSettingsReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
	return nil
}

// runSettingsPath prints the config file path.
func runSettingsPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
