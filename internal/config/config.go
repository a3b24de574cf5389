// Package config provides persistent configuration for the prayer-companion CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-companion/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
// The settings screen's toggles live here too.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
)

const (
	configDirName  = "prayer-companion"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `settings set`.
var ValidKeys = []string{
	"city", "country", "timezone",
	"time_format", "week_start",
	"prayers", "times",
	"notifications", "prayer_reminders",
	"dark_mode", "location_services",
	"language",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	Timezone   string `json:"timezone,omitempty"`    // IANA name; empty means the system zone
	TimeFormat string `json:"time_format,omitempty"` // "12h" or "24h"
	WeekStart  string `json:"week_start,omitempty"`  // weekday name, e.g. "sunday"
	Prayers    string `json:"prayers,omitempty"`     // comma-separated list
	Times      string `json:"times,omitempty"`       // overrides, e.g. "Fajr=05:12,Isha=20:00"

	// Toggles are pointers so we can distinguish "not set" from false.
	Notifications    *bool `json:"notifications,omitempty"`
	PrayerReminders  *bool `json:"prayer_reminders,omitempty"`
	DarkMode         *bool `json:"dark_mode,omitempty"`
	LocationServices *bool `json:"location_services,omitempty"`

	Language string `json:"language,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	on, off := true, false
	return Config{
		TimeFormat:       "12h",
		WeekStart:        "sunday",
		Notifications:    &on,
		PrayerReminders:  &on,
		DarkMode:         &off,
		LocationServices: &on,
		Language:         "English",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "timezone":
		if value != "" {
			if _, err := time.LoadLocation(value); err != nil {
				return fmt.Errorf("invalid timezone %q: must be an IANA name such as \"Asia/Riyadh\"", value)
			}
		}
		c.Timezone = value
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "week_start":
		if _, err := calendar.ParseWeekday(value); err != nil {
			return fmt.Errorf("invalid week_start %q: must be a weekday name", value)
		}
		c.WeekStart = strings.ToLower(value)
	case "prayers":
		if _, err := prayer.ParseNames(value); err != nil {
			return err
		}
		c.Prayers = value
	case "times":
		if _, err := prayer.ParseOverrides(value); err != nil {
			return err
		}
		c.Times = value
	case "notifications", "prayer_reminders", "dark_mode", "location_services":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be true or false", key, value)
		}
		*c.toggle(key) = &v
	case "language":
		c.Language = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "timezone":
		return c.Timezone, nil
	case "time_format":
		return c.TimeFormat, nil
	case "week_start":
		return c.WeekStart, nil
	case "prayers":
		return c.Prayers, nil
	case "times":
		return c.Times, nil
	case "notifications", "prayer_reminders", "dark_mode", "location_services":
		if v := *c.toggle(key); v != nil {
			return strconv.FormatBool(*v), nil
		}
		return "", nil
	case "language":
		return c.Language, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// toggle returns the field backing a boolean key, or nil for any other key.
func (c *Config) toggle(key string) **bool {
	switch key {
	case "notifications":
		return &c.Notifications
	case "prayer_reminders":
		return &c.PrayerReminders
	case "dark_mode":
		return &c.DarkMode
	case "location_services":
		return &c.LocationServices
	default:
		return nil
	}
}

// Enabled returns the value of a toggle key, falling back to the given
// default when it is unset or key is not a toggle.
func (c *Config) Enabled(key string, def bool) bool {
	if f := c.toggle(key); f != nil && *f != nil {
		return **f
	}
	return def
}

// FirstWeekday returns the configured first day of the week, Sunday if unset
// or invalid.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "" {
		return time.Sunday
	}
	wd, err := calendar.ParseWeekday(c.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// PrayerNames returns the configured prayer list, or the defaults.
func (c *Config) PrayerNames() []string {
	if c.Prayers == "" {
		return prayer.DefaultPrayerNames
	}
	names, err := prayer.ParseNames(c.Prayers)
	if err != nil {
		return prayer.DefaultPrayerNames
	}
	return names
}

// Timings returns the built-in timings with the configured overrides applied.
func (c *Config) Timings() (prayer.Timings, error) {
	overrides, err := prayer.ParseOverrides(c.Times)
	if err != nil {
		return nil, err
	}
	return prayer.DefaultTimings().Merge(overrides), nil
}
