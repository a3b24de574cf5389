package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatCountdown          = "countdown"
	FormatFull               = "full"
)

// Go time layouts for the two supported clock styles.
const (
	Layout24h = "15:04"
	Layout12h = "3:04 PM"
)

// TimeLayout maps a "12h"/"24h" setting to a Go time layout. Anything other
// than "12h" yields the 24 hour layout.
func TimeLayout(timeFormat string) string {
	if timeFormat == "12h" {
		return Layout12h
	}
	return Layout24h
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Full prayer name, e.g. "Asr"
	ShortName string // Abbreviated name, e.g. "A"
	Time      string // Formatted prayer time, e.g. "15:30" or "3:30 PM"
	Remaining string // Time remaining, e.g. "2h 15m"
	Countdown string // Long form, e.g. "in 2 hours 15 minutes"
	Hours     int    // Whole hours remaining
	Minutes   int    // Remaining minutes after hours
}

// Formatter renders a prayer as a single status line.
//
// If Mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .ShortName, .Time, .Remaining, .Countdown,
// .Hours, .Minutes
//
// Example: "{{.Name}} {{.Countdown}}" -> "Asr in 2 hours 15 minutes"
type Formatter struct {
	Mode   string
	Layout string
}

// NewFormatter returns a Formatter for mode using the "12h"/"24h" setting.
func NewFormatter(mode, timeFormat string) Formatter {
	return Formatter{Mode: mode, Layout: TimeLayout(timeFormat)}
}

// Format formats p relative to now.
func (f Formatter) Format(p Prayer, now time.Time) string {
	layout := f.Layout
	if layout == "" {
		layout = Layout24h
	}

	d := TimeRemaining(p, now)
	data := FormatData{
		Name:      p.Name,
		ShortName: ShortNames[p.Name],
		Time:      p.Time.Format(layout),
		Remaining: FormatRemaining(d),
		Countdown: FormatRemainingLong(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
	}

	if strings.Contains(f.Mode, "{{") {
		return formatCustom(f.Mode, data)
	}

	switch f.Mode {
	case FormatTimeRemaining:
		return data.Remaining
	case FormatNextPrayerTime:
		return data.Time
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", data.Name, data.Remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", data.ShortName, data.Time)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", data.ShortName, data.Remaining)
	case FormatCountdown:
		return fmt.Sprintf("%s %s", data.Name, data.Countdown)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", data.Name, data.Time, data.Remaining)
	default:
		return fmt.Sprintf("%s %s", data.Name, data.Time)
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
