// Package tui implements the interactive schedule screen: a month calendar
// with today and the selected date highlighted, and the agenda of the
// selected date below it.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/smokyabdulrahman/prayer-companion/internal/calendar"
	"github.com/smokyabdulrahman/prayer-companion/internal/clock"
	"github.com/smokyabdulrahman/prayer-companion/internal/location"
	"github.com/smokyabdulrahman/prayer-companion/internal/prayer"
)

// DefaultTickInterval is how often the screen refreshes the current time.
const DefaultTickInterval = time.Second

// Options configures the schedule screen.
type Options struct {
	Clock        clock.Clock
	FirstWeekday time.Weekday
	Location     location.Resolver
	Timings      prayer.Timings
	TimeLayout   string
	Dark         bool
	TickInterval time.Duration
}

type focus int

const (
	focusCalendar focus = iota
	focusAgenda
)

// TickMsg carries the current time from the clock ticker.
type TickMsg struct {
	Now time.Time
}

// locationMsg delivers the resolved location label.
type locationMsg string

// Model is the bubbletea model of the schedule screen.
type Model struct {
	ctx  context.Context
	opts Options
	st   styles

	now      time.Time
	sel      calendar.Selection
	cursor   calendar.Day
	focus    focus
	location string

	base       []prayer.Item
	agenda     []prayer.Item
	toggled    map[string]bool // "YYYY-MM-DD/itemID" flipped this session
	itemCursor int

	width int
}

// New creates the screen with today selected and displayed.
func New(ctx context.Context, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	if opts.Timings == nil {
		opts.Timings = prayer.DefaultTimings()
	}
	if opts.TimeLayout == "" {
		opts.TimeLayout = prayer.Layout12h
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = DefaultTickInterval
	}

	now := opts.Clock.Now()
	m := Model{
		ctx:      ctx,
		opts:     opts,
		st:       newStyles(opts.Dark),
		now:      now,
		sel:      calendar.NewSelection(now),
		cursor:   calendar.DayOf(now),
		location: location.Loading,
		base:     prayer.DefaultAgenda(opts.Timings),
	}
	m.refreshAgenda()
	return m
}

// Selection returns the current selection state.
func (m Model) Selection() calendar.Selection { return m.sel }

// Cursor returns the highlighted day of the calendar.
func (m Model) Cursor() calendar.Day { return m.cursor }

// Agenda returns the agenda of the selected date.
func (m Model) Agenda() []prayer.Item { return m.agenda }

// Location returns the location label shown in the header.
func (m Model) Location() string { return m.location }

// Init starts the location lookup.
func (m Model) Init() tea.Cmd {
	if m.opts.Location == nil {
		return nil
	}
	ctx, r := m.ctx, m.opts.Location
	return func() tea.Msg {
		return locationMsg(location.Label(ctx, r))
	}
}

// Update handles ticks, the location result and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		m.now = msg.Now
		m.computeAgenda()
		return m, nil

	case locationMsg:
		m.location = string(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.focus == focusCalendar {
				m.focus = focusAgenda
			} else {
				m.focus = focusCalendar
			}
			return m, nil
		case "t":
			m.sel = calendar.NewSelection(m.now)
			m.cursor = calendar.DayOf(m.now)
			m.refreshAgenda()
			return m, nil
		case "n", "pgdown", "]":
			m.navigate(calendar.Next)
			return m, nil
		case "p", "pgup", "[":
			m.navigate(calendar.Previous)
			return m, nil
		}
		if m.focus == focusAgenda {
			return m.updateAgenda(msg)
		}
		return m.updateCalendar(msg)
	}

	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-7)
	case "down", "j":
		m.moveCursor(7)
	case "enter", " ":
		m.sel = calendar.SelectDate(m.cursor, m.sel)
		m.refreshAgenda()
	}
	return m, nil
}

func (m Model) updateAgenda(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case "down", "j":
		if m.itemCursor < len(m.agenda)-1 {
			m.itemCursor++
		}
	case "enter", " ", "x":
		if m.itemCursor < len(m.agenda) {
			m.toggle(m.agenda[m.itemCursor].ID)
		}
	}
	return m, nil
}

// moveCursor moves the cursor n days, showing its month when it leaves the
// displayed one. The selection is left alone.
func (m *Model) moveCursor(n int) {
	m.cursor = m.cursor.AddDays(n)
	if !m.sel.Displayed.Contains(m.cursor) {
		m.sel = m.sel.Show(m.cursor.YearMonth())
	}
}

// navigate changes the displayed month and keeps the cursor on the same day
// number, clamped to the new month's length.
func (m *Model) navigate(dir calendar.Direction) {
	m.sel = m.sel.Navigate(dir)
	ym := m.sel.Displayed
	m.cursor = calendar.NewDay(ym.Year, ym.Month, min(m.cursor.Number(), ym.DaysInMonth()))
}

// refreshAgenda rebuilds the agenda for a newly selected date.
func (m *Model) refreshAgenda() {
	m.computeAgenda()
	m.itemCursor = 0
}

// computeAgenda derives completion from the clock, then reapplies the
// session's toggles for the selected date.
func (m *Model) computeAgenda() {
	date := m.sel.Selected.Time(m.now.Location())
	agenda := prayer.MarkCompleted(m.base, date, m.now)
	day := m.sel.Selected.String()
	for _, it := range m.base {
		if m.toggled[day+"/"+it.ID] {
			agenda = prayer.Toggle(agenda, it.ID)
		}
	}
	m.agenda = agenda
}

// toggle flips the completion of item id on the selected date. The map is
// copied so earlier Model values keep their own state.
func (m *Model) toggle(id string) {
	k := m.sel.Selected.String() + "/" + id
	toggled := make(map[string]bool, len(m.toggled)+1)
	for key, v := range m.toggled {
		toggled[key] = v
	}
	if toggled[k] {
		delete(toggled, k)
	} else {
		toggled[k] = true
	}
	m.toggled = toggled
	m.computeAgenda()
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	title := m.st.Title.Render("Schedule")
	loc := m.st.Muted.Render(m.location)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", loc))
	b.WriteString("\n")
	b.WriteString(m.st.Muted.Render(fmt.Sprintf(" %s  %s",
		m.now.Format("Monday, January 2, 2006"), m.now.Format(m.opts.TimeLayout))))
	b.WriteString("\n\n")

	b.WriteString(m.renderCalendar())
	b.WriteString("\n")
	b.WriteString(m.st.Muted.Render(strings.Repeat("─", 35)))
	b.WriteString("\n\n")
	b.WriteString(m.renderAgenda())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return m.st.Frame.Render(b.String())
}

func (m Model) renderCalendar() string {
	view, err := m.sel.View(m.opts.FirstWeekday)
	if err != nil {
		logrus.Warnf("cannot build month view: %v", err)
		return m.st.Muted.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.st.Title.Render("‹ " + view.YearMonth.String() + " ›"))
	b.WriteString("\n")
	for _, h := range view.WeekdayHeaders() {
		b.WriteString(m.st.Header.Render(h))
	}
	b.WriteString("\n")

	cells := view.Cells(m.now, m.sel)
	for i, c := range cells {
		b.WriteString(m.renderCell(c))
		if (i+1)%7 == 0 || i == len(cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderCell(c calendar.Cell) string {
	if c.Day.IsBlank() {
		return m.st.Day.Render("")
	}
	text := fmt.Sprintf("%d", c.Day.Number())
	cursor := m.focus == focusCalendar && c.Day.Equal(m.cursor)
	switch {
	case c.Selected && cursor:
		return m.st.Selected.Underline(true).Render(text)
	case c.Selected:
		return m.st.Selected.Render(text)
	case cursor:
		return m.st.Cursor.Render(text)
	case c.Today:
		return m.st.Today.Render(text)
	default:
		return m.st.Day.Render(text)
	}
}

func (m Model) renderAgenda() string {
	var b strings.Builder
	heading := "Schedule for " + m.sel.Selected.Time(time.UTC).Format("Monday, January 2")
	b.WriteString(m.st.Focus.Render(heading))
	b.WriteString("\n\n")

	if len(m.agenda) == 0 {
		b.WriteString(m.st.Muted.Italic(true).Render("  Nothing scheduled"))
		b.WriteString("\n")
		return b.String()
	}

	for i, it := range m.agenda {
		prefix := "  "
		if m.focus == focusAgenda && i == m.itemCursor {
			prefix = m.st.Focus.Render("▸ ")
		}
		check := "[ ]"
		style := m.st.Item
		if it.Completed {
			check = "[x]"
			style = m.st.Done
		}
		kind := lipgloss.NewStyle().Foreground(m.st.kindColor(string(it.Kind))).Render(string(it.Kind))
		fmt.Fprintf(&b, "%s%s %s  %s  %s\n", prefix, check, m.formatTime(it.Time), style.Render(fmt.Sprintf("%-22s", it.Title)), kind)
	}
	return b.String()
}

// formatTime renders an "HH:MM" agenda time in the configured layout.
func (m Model) formatTime(hhmm string) string {
	t, err := time.Parse(prayer.Layout24h, hhmm)
	if err != nil {
		return hhmm
	}
	return fmt.Sprintf("%8s", t.Format(m.opts.TimeLayout))
}

func (m Model) renderHelp() string {
	keys := "←/→ day  ↑/↓ week  n/p month  enter select  t today  tab agenda  q quit"
	if m.focus == focusAgenda {
		keys = "↑/↓ move  space toggle  n/p month  t today  tab calendar  q quit"
	}
	return m.st.Muted.Render(keys)
}

// Run shows the schedule screen until the user quits. The clock ticker is
// owned by the screen and released when it closes.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, programOpts...)

	ticker, err := clock.NewTicker(m.opts.TickInterval, func(now time.Time) {
		p.Send(TickMsg{Now: now})
	})
	if err != nil {
		return fmt.Errorf("cannot start clock: %w", err)
	}
	ticker.WithClock(m.opts.Clock).Start()
	defer ticker.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("schedule screen failed: %w", err)
	}
	return nil
}
