// Package prayer holds the daily prayer schedule and the helpers that
// decide which prayer is current, which is next, and how long remains.
//
// Times are literal "HH:MM" strings. There is no astronomical calculation;
// users adjust individual times through the "times" setting.
package prayer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every entry the schedule can hold, in chronological order.
var AllPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// DefaultPrayerNames are the prayers shown on the home screen.
var DefaultPrayerNames = []string{
	"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// Timings maps prayer names to "HH:MM" times.
type Timings map[string]string

// DefaultTimings returns the built-in daily schedule.
func DefaultTimings() Timings {
	return Timings{
		"Fajr":    "05:30",
		"Sunrise": "06:50",
		"Dhuhr":   "12:45",
		"Asr":     "15:30",
		"Maghrib": "18:15",
		"Isha":    "19:45",
	}
}

// CanonicalName returns the schedule's spelling of name, matched case-insensitively.
func CanonicalName(name string) (string, bool) {
	for _, n := range AllPrayerNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}

// ParseNames splits a comma-separated prayer list and validates every entry.
func ParseNames(list string) ([]string, error) {
	var names []string
	for _, raw := range strings.Split(list, ",") {
		name, ok := CanonicalName(raw)
		if !ok {
			return nil, fmt.Errorf("invalid prayer name %q; valid names: %s", strings.TrimSpace(raw), strings.Join(AllPrayerNames, ", "))
		}
		names = append(names, name)
	}
	return names, nil
}

// ParseOverrides parses "Fajr=05:12,Isha=20:00" into Timings.
// An empty string yields no overrides.
func ParseOverrides(s string) (Timings, error) {
	out := Timings{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid time override %q: expected Name=HH:MM", strings.TrimSpace(pair))
		}
		name, known := CanonicalName(k)
		if !known {
			return nil, fmt.Errorf("invalid time override %q: unknown prayer %q", strings.TrimSpace(pair), strings.TrimSpace(k))
		}
		v = strings.TrimSpace(v)
		if _, _, err := parseClock(v); err != nil {
			return nil, fmt.Errorf("invalid time override %q: %w", strings.TrimSpace(pair), err)
		}
		out[name] = v
	}
	return out, nil
}

// Merge returns a copy of t with the entries of o applied on top.
func (t Timings) Merge(o Timings) Timings {
	out := make(Timings, len(t)+len(o))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

// ParseTimings converts timings into a slice of Prayer structs for the given date.
// It filters to only include the specified prayer names and returns them in
// chronological order.
func ParseTimings(timings Timings, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	var prayers []Prayer
	for _, name := range selected {
		raw, ok := timings[name]
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}

		t, err := parseTimeStr(raw, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s (%q): %w", name, raw, err)
		}

		prayers = append(prayers, Prayer{Name: name, Time: t})
	}

	sort.SliceStable(prayers, func(i, j int) bool {
		return prayers[i].Time.Before(prayers[j].Time)
	})
	return prayers, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should roll over
// to tomorrow's first prayer).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil before the first.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// NextOrTomorrow returns today's next prayer, or tomorrow's first prayer when
// today's have all passed. Tomorrow uses the same literal timings.
func NextOrTomorrow(timings Timings, now time.Time, selected []string) (*Prayer, error) {
	today, err := ParseTimings(timings, now, now.Location(), selected)
	if err != nil {
		return nil, err
	}
	if next := NextPrayer(today, now); next != nil {
		return next, nil
	}

	tomorrow, err := ParseTimings(timings, now.AddDate(0, 0, 1), now.Location(), selected)
	if err != nil {
		return nil, err
	}
	if len(tomorrow) == 0 {
		return nil, fmt.Errorf("could not determine next prayer")
	}
	return &tomorrow[0], nil
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatRemainingLong formats a duration the way the home screen card does:
// "in 2 hours 15 minutes", "in 1 hour", "in 5 minutes".
func FormatRemainingLong(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	var parts []string
	if h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m > 0 {
		parts = append(parts, plural(m, "minute"))
	}
	if len(parts) == 0 {
		return "in less than a minute"
	}
	return "in " + strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// parseTimeStr parses a time string like "15:02" or "15:02 (BST)" into a time.Time
// on the given date in the given location.
func parseTimeStr(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	hour, min, err := parseClock(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}

// parseClock validates an "HH:MM" string, ignoring a trailing " (TZ)" suffix.
func parseClock(raw string) (hour, min int, err error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", raw)
	}

	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", raw)
	}
	return hour, min, nil
}
