// Package display renders the companion's screens for the terminal.
//
// Colors come from fatih/color, which disables itself when stdout is not a
// terminal. NO_COLOR (https://no-color.org/) always turns colors off;
// otherwise FORCE_COLOR turns them on.
package display

import (
	"os"

	"github.com/fatih/color"
)

var (
	boldColor   = color.New(color.Bold)
	dimColor    = color.New(color.Faint)
	greenColor  = color.New(color.FgGreen)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
	grayColor   = color.New(color.FgHiBlack)
	redColor    = color.New(color.FgRed, color.Bold)
	accentColor = color.New(color.Bold, color.FgCyan)
)

func init() {
	applyEnv(os.LookupEnv)
}

// applyEnv sets the color state from NO_COLOR and FORCE_COLOR. NO_COLOR wins.
func applyEnv(lookup func(string) (string, bool)) {
	if _, ok := lookup("NO_COLOR"); ok {
		color.NoColor = true
		return
	}
	if _, ok := lookup("FORCE_COLOR"); ok {
		color.NoColor = false
	}
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	color.NoColor = !b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return !color.NoColor
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return boldColor.Sprint(text)
}

// Dim returns text rendered in dim/faint.
func Dim(text string) string {
	return dimColor.Sprint(text)
}

// Green returns text rendered in green.
func Green(text string) string {
	return greenColor.Sprint(text)
}

// Yellow returns text rendered in yellow.
func Yellow(text string) string {
	return yellowColor.Sprint(text)
}

// Cyan returns text rendered in cyan.
func Cyan(text string) string {
	return cyanColor.Sprint(text)
}

// Gray returns text rendered in gray (bright black).
func Gray(text string) string {
	return grayColor.Sprint(text)
}

// Red returns text rendered in bold red. Used for errors.
func Red(text string) string {
	return redColor.Sprint(text)
}

// Accent returns text rendered in the accent color (cyan + bold).
// Used for the "next prayer" and "today" highlights.
func Accent(text string) string {
	return accentColor.Sprint(text)
}

// Check renders a toggle value as a colored mark.
func Check(on bool) string {
	if on {
		return Green("on")
	}
	return Gray("off")
}
