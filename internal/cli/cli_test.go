package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/clock"
	"github.com/smokyabdulrahman/prayer-companion/internal/config"
	"github.com/smokyabdulrahman/prayer-companion/internal/display"
	"github.com/smokyabdulrahman/prayer-companion/internal/location"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
	"github.com/smokyabdulrahman/prayer-companion/internal/profile"
)

// 2026-10-19 is a Monday. At 14:30 Dhuhr has passed and Asr is next.
var fixedNow = time.Date(2026, time.October, 19, 14, 30, 0, 0, time.UTC)

// newEnv points the config at a temp directory, saves cfg there (pinned to
// UTC) and freezes the clock.
func newEnv(t *testing.T, cfg config.Config) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if err := cfg.SaveTo(filepath.Join(dir, "prayer-companion", "config.json")); err != nil {
		t.Fatal(err)
	}

	appClock = clock.Fixed(fixedNow)
	t.Cleanup(func() { appClock = clock.System })
	display.SetEnabled(false)
}

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("v1.2.3-test")

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

// --- version ---

func TestVersionFlag(t *testing.T) {
	newEnv(t, config.Config{})

	got := strings.TrimSpace(mustExecute(t, "--version"))
	want := "prayer-companion version v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// --- home ---

func TestHome_Rich(t *testing.T) {
	newEnv(t, config.Config{City: "Riyadh", Country: "Saudi Arabia"})

	out := mustExecute(t)
	for _, want := range []string{
		"Riyadh, Saudi Arabia",
		"2:30 PM",
		"Monday, October 19, 2026",
		"Next Prayer",
		"in 1 hour",
		"Today's Prayer Times",
		"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha",
		"<- next in 1h 0m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Sunrise") {
		t.Error("Sunrise is not tracked by default")
	}
}

func TestHome_JSON(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "--json", "--time-format", "24h")

	var got homeJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Current != "dhuhr" {
		t.Errorf("current = %q, want dhuhr", got.Current)
	}
	if got.Next == nil || got.Next.Prayer != "asr" || got.Next.Time != "15:30" {
		t.Errorf("next = %+v, want asr at 15:30", got.Next)
	}
	if got.Next != nil && got.Next.Countdown != "in 1 hour" {
		t.Errorf("countdown = %q, want in 1 hour", got.Next.Countdown)
	}
	if got.Timings["fajr"] != "05:30" || len(got.Timings) != 5 {
		t.Errorf("timings = %v", got.Timings)
	}
	if got.Date != "2026-10-19" {
		t.Errorf("date = %q, want 2026-10-19", got.Date)
	}
	// Nothing configured: the location lookup fails softly.
	if got.Location != location.Unavailable {
		t.Errorf("location = %q, want %q", got.Location, location.Unavailable)
	}
}

func TestHome_LocationLabels(t *testing.T) {
	off := false
	tests := []struct {
		name string
		cfg  config.Config
		args []string
		want string
	}{
		{"flags", config.Config{}, []string{"--city", "Cairo", "--country", "Egypt"}, "Cairo, Egypt"},
		{"config", config.Config{City: "Medina", Country: "Saudi Arabia"}, nil, "Medina, Saudi Arabia"},
		{"flag overrides config", config.Config{City: "Medina", Country: "Saudi Arabia"}, []string{"--city", "Mecca"}, "Mecca, Saudi Arabia"},
		{"services off", config.Config{City: "Medina", LocationServices: &off}, nil, location.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newEnv(t, tt.cfg)
			out := mustExecute(t, append([]string{"--json"}, tt.args...)...)

			var got homeJSON
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if got.Location != tt.want {
				t.Errorf("location = %q, want %q", got.Location, tt.want)
			}
		})
	}
}

func TestHome_TimeOverrides(t *testing.T) {
	newEnv(t, config.Config{Times: "Asr=14:00"})

	out := mustExecute(t, "--json", "--time-format", "24h")
	var got homeJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Current != "asr" {
		t.Errorf("current = %q, want asr after moving it to 14:00", got.Current)
	}
	if got.Next == nil || got.Next.Prayer != "maghrib" {
		t.Errorf("next = %+v, want maghrib", got.Next)
	}
}

func TestHome_InvalidTimeFormat(t *testing.T) {
	newEnv(t, config.Config{})

	if _, err := execute(t, "--time-format", "13h"); err == nil {
		t.Error("expected an error for --time-format 13h")
	}
}

// --- next ---

func TestNext_Formats(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"next"}, "Asr 3:30 PM (1h 0m)"},
		{[]string{"next", "--format", "name-and-time", "--time-format", "24h"}, "Asr 15:30"},
		{[]string{"next", "--format", "time-remaining"}, "1h 0m"},
		{[]string{"next", "--format", "countdown"}, "Asr in 1 hour"},
		{[]string{"next", "--format", "{{.ShortName}} {{.Remaining}}"}, "A 1h 0m"},
		{[]string{"next", "--prayers", "isha,fajr", "--time-format", "24h"}, "Isha 19:45 (5h 15m)"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			newEnv(t, config.Config{})
			if got := mustExecute(t, tt.args...); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNext_RollsOverToTomorrow(t *testing.T) {
	newEnv(t, config.Config{Prayers: "Fajr,Dhuhr"})

	got := mustExecute(t, "next", "--format", "full", "--time-format", "24h")
	if got != "Fajr 05:30 (15h 0m)" {
		t.Errorf("output = %q, want tomorrow's Fajr", got)
	}
}

func TestNext_InvalidPrayer(t *testing.T) {
	newEnv(t, config.Config{})

	if _, err := execute(t, "next", "--prayers", "Fajr,Tahajjud"); err == nil {
		t.Error("expected an error for an unknown prayer")
	}
}

func TestNext_WatchRejectsShortInterval(t *testing.T) {
	newEnv(t, config.Config{})

	out, err := execute(t, "next", "--watch", "--interval", "500ms")
	if !errors.Is(err, clock.ErrInterval) {
		t.Fatalf("error = %v, want ErrInterval", err)
	}
	// The first line is printed before the ticker starts.
	if !strings.HasPrefix(out, "Asr") {
		t.Errorf("output = %q, want the current line first", out)
	}
}

// --- calendar ---

func TestCalendar_Grid(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "calendar", "2024", "2", "--select", "2024-02-29")
	for _, want := range []string{"February 2024", "Sun", "[29]", "Schedule for Thursday, February 29, 2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(19)") {
		t.Error("today is not in February 2024 and must not be marked")
	}
}

func TestCalendar_JSON(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "calendar", "2024", "2", "--json")

	var got calendarJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.LeadingBlanks != 4 || got.DaysInMonth != 29 || len(got.Cells) != 33 {
		t.Errorf("blanks=%d days=%d cells=%d, want 4/29/33", got.LeadingBlanks, got.DaysInMonth, len(got.Cells))
	}
	if got.Selected != "2026-10-19" {
		t.Errorf("selected = %q, want today", got.Selected)
	}
	for _, c := range got.Cells {
		if c.Today || c.Selected {
			t.Errorf("cell %s highlighted outside the current month", c.Date)
		}
	}
	if got.Cells[4].Date != "2024-02-01" || got.Cells[3].Date != "" {
		t.Errorf("cells[3..4] = %+v, %+v", got.Cells[3], got.Cells[4])
	}
}

func TestCalendar_CurrentMonthHighlights(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "calendar", "--json")
	var got calendarJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}

	var today, selected int
	for _, c := range got.Cells {
		if c.Today {
			today++
		}
		if c.Selected {
			selected++
		}
	}
	if today != 1 || selected != 1 {
		t.Errorf("today cells = %d, selected cells = %d, want 1 and 1", today, selected)
	}
	if len(got.Agenda) != 8 {
		t.Errorf("agenda items = %d, want 8", len(got.Agenda))
	}
}

func TestCalendar_WeekStart(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.Config
		args   []string
		blanks int
		first  string
	}{
		{"default sunday", config.Config{}, nil, 4, "Sunday"},
		{"config monday", config.Config{WeekStart: "monday"}, nil, 3, "Monday"},
		{"flag saturday", config.Config{WeekStart: "monday"}, []string{"--week-start", "sat"}, 5, "Saturday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newEnv(t, tt.cfg)
			out := mustExecute(t, append([]string{"calendar", "--json"}, tt.args...)...)

			var got calendarJSON
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatal(err)
			}
			// October 1st 2026 is a Thursday.
			if got.LeadingBlanks != tt.blanks || got.FirstWeekday != tt.first {
				t.Errorf("blanks=%d first=%s, want %d %s", got.LeadingBlanks, got.FirstWeekday, tt.blanks, tt.first)
			}
		})
	}
}

func TestCalendar_Offset(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "calendar", "--offset", "3", "--json")
	var got calendarJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Year != 2027 || got.Month != 1 {
		t.Errorf("month = %d-%02d, want 2027-01", got.Year, got.Month)
	}
}

func TestCalendar_RelativeAndMonthFlag(t *testing.T) {
	tests := []struct {
		args  []string
		year  int
		month int
	}{
		{[]string{"calendar", "next"}, 2026, 11},
		{[]string{"calendar", "prev"}, 2026, 9},
		{[]string{"calendar", "previous", "--offset", "-9"}, 2025, 12},
		{[]string{"calendar", "--month", "2024-02"}, 2024, 2},
		{[]string{"calendar", "--month", "2024-12", "--offset", "1"}, 2025, 1},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			newEnv(t, config.Config{})

			out := mustExecute(t, append(tt.args, "--json")...)
			var got calendarJSON
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatal(err)
			}
			if got.Year != tt.year || got.Month != tt.month {
				t.Errorf("month = %d-%02d, want %d-%02d", got.Year, got.Month, tt.year, tt.month)
			}
		})
	}
}

func TestCalendar_MonthFlagWithArgs(t *testing.T) {
	newEnv(t, config.Config{})

	if _, err := execute(t, "calendar", "2024", "--month", "2024-02"); err == nil {
		t.Error("expected an error when --month is combined with arguments")
	}
}

func TestCalendar_InvalidArgs(t *testing.T) {
	tests := [][]string{
		{"calendar", "2024", "13"},
		{"calendar", "2024", "0"},
		{"calendar", "twenty"},
		{"calendar", "sideways"},
		{"calendar", "--select", "2024-02-30"},
		{"calendar", "--month", "2024-13"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			newEnv(t, config.Config{})
			if _, err := execute(t, args...); !errors.Is(err, calendar.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCalendar_InvalidWeekStart(t *testing.T) {
	newEnv(t, config.Config{})

	if _, err := execute(t, "calendar", "--week-start", "funday"); err == nil {
		t.Error("expected an error for --week-start funday")
	}
}

// --- schedule ---

func TestSchedule_Plain(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "schedule", "--plain")
	if !strings.Contains(out, "Schedule for Monday, October 19, 2026") {
		t.Errorf("missing heading:\n%s", out)
	}
	// Fajr, Morning Dhikr, Dhuhr and Quran Reading are behind us at 14:30.
	if n := strings.Count(out, "done"); n != 4 {
		t.Errorf("done items = %d, want 4:\n%s", n, out)
	}
}

func TestSchedule_PlainFutureDate(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "schedule", "--plain", "--date", "2026-10-20")
	if !strings.Contains(out, "Tuesday, October 20, 2026") {
		t.Errorf("missing heading:\n%s", out)
	}
	if strings.Contains(out, "done") {
		t.Errorf("future agenda should have nothing done:\n%s", out)
	}
}

func TestSchedule_JSON(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "schedule", "--json", "--date", "2026-10-18")
	var got struct {
		Date   string        `json:"date"`
		Agenda []prayer.Item `json:"agenda"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Date != "2026-10-18" || len(got.Agenda) != 8 {
		t.Errorf("date=%s items=%d", got.Date, len(got.Agenda))
	}
	for _, it := range got.Agenda {
		if !it.Completed {
			t.Errorf("%q should be completed yesterday", it.Title)
		}
	}
}

// --- profile ---

func TestProfile(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "profile")
	for _, want := range []string{"Ahmed Hassan", "Prayers Completed", "847", "Achievements", "(4/6)", "Early Bird"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile output missing %q:\n%s", want, out)
		}
	}
}

func TestProfile_JSON(t *testing.T) {
	newEnv(t, config.Config{})

	var got profile.Profile
	if err := json.Unmarshal([]byte(mustExecute(t, "profile", "--json")), &got); err != nil {
		t.Fatal(err)
	}
	if got.User.Name != "Ahmed Hassan" || len(got.Stats) != 4 || len(got.Achievements) != 6 {
		t.Errorf("profile = %+v", got)
	}
}

// --- settings ---

func TestSettings_SetAndShow(t *testing.T) {
	newEnv(t, config.Config{})

	if out := mustExecute(t, "settings", "set", "dark_mode", "true"); !strings.Contains(out, "Set dark_mode = true") {
		t.Errorf("set output = %q", out)
	}
	mustExecute(t, "settings", "set", "city", "Riyadh")

	out := mustExecute(t, "settings", "--json")
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got["dark_mode"] != "true" || got["city"] != "Riyadh" {
		t.Errorf("settings = %v", got)
	}
	// Unset toggles report their defaults.
	if got["notifications"] != "true" || got["time_format"] != "12h" || got["language"] != "English" {
		t.Errorf("defaults not applied: %v", got)
	}
}

func TestSettings_ShowSections(t *testing.T) {
	newEnv(t, config.Config{})

	out := mustExecute(t, "settings")
	for _, want := range []string{"Notifications", "Push Notifications", "Appearance", "Dark Mode", "off", "Location", "Prayers", "Fajr, Dhuhr, Asr, Maghrib, Isha"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings output missing %q:\n%s", want, out)
		}
	}
}

func TestSettings_SetInvalid(t *testing.T) {
	newEnv(t, config.Config{})

	if _, err := execute(t, "settings", "set", "method", "4"); err == nil {
		t.Error("expected an error for an unknown key")
	}
	if _, err := execute(t, "settings", "set", "week_start", "funday"); err == nil {
		t.Error("expected an error for an invalid weekday")
	}
}

func TestSettings_PathAndReset(t *testing.T) {
	newEnv(t, config.Config{City: "Riyadh"})

	path := strings.TrimSpace(mustExecute(t, "settings", "path"))
	if !strings.HasSuffix(path, filepath.Join("prayer-companion", "config.json")) {
		t.Errorf("path = %q", path)
	}

	if out := mustExecute(t, "settings", "reset"); !strings.Contains(out, "reset") {
		t.Errorf("reset output = %q", out)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.City != "" {
		t.Errorf("city = %q after reset, want empty", cfg.City)
	}
}
