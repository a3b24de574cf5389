package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colors of one theme.
type palette struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Today   lipgloss.Color
	Done    lipgloss.Color
	Prayer  lipgloss.Color
	Event   lipgloss.Color
	Remind  lipgloss.Color
}

var (
	lightPalette = palette{
		Primary: lipgloss.Color("#667EEA"),
		Text:    lipgloss.Color("#1A1A1A"),
		Muted:   lipgloss.Color("#8E8E93"),
		Today:   lipgloss.Color("#764BA2"),
		Done:    lipgloss.Color("#34C759"),
		Prayer:  lipgloss.Color("#4A90E2"),
		Event:   lipgloss.Color("#F5A623"),
		Remind:  lipgloss.Color("#7B68EE"),
	}
	darkPalette = palette{
		Primary: lipgloss.Color("#8C9EFF"),
		Text:    lipgloss.Color("#F2F2F7"),
		Muted:   lipgloss.Color("#636366"),
		Today:   lipgloss.Color("#B388FF"),
		Done:    lipgloss.Color("#30D158"),
		Prayer:  lipgloss.Color("#64B5F6"),
		Event:   lipgloss.Color("#FFB74D"),
		Remind:  lipgloss.Color("#9575CD"),
	}
)

// styles are the lipgloss styles used by the schedule screen.
type styles struct {
	p palette

	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Muted    lipgloss.Style
	Item     lipgloss.Style
	Done     lipgloss.Style
	Focus    lipgloss.Style
	Frame    lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	day := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	return styles{
		p:        p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Padding(0, 1),
		Header:   day.Foreground(p.Muted),
		Day:      day.Foreground(p.Text),
		Today:    day.Bold(true).Foreground(p.Today),
		Selected: day.Bold(true).Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF")),
		Cursor:   day.Underline(true).Foreground(p.Primary),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Item:     lipgloss.NewStyle().Foreground(p.Text),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Focus:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}

// kindColor returns the accent color for an agenda item kind.
func (s styles) kindColor(kind string) lipgloss.Color {
	switch kind {
	case "prayer":
		return s.p.Prayer
	case "event":
		return s.p.Event
	default:
		return s.p.Remind
	}
}
