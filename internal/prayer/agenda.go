package prayer

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an agenda item.
type Kind string

const (
	KindPrayer   Kind = "prayer"
	KindEvent    Kind = "event"
	KindReminder Kind = "reminder"
)

// agendaNamespace scopes the name-based item IDs.
var agendaNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/smokyabdulrahman/prayer-companion/agenda"))

// Item is one entry of a day's agenda.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Time      string `json:"time"` // HH:MM
	Kind      Kind   `json:"kind"`
	Completed bool   `json:"completed"`
}

// NewItem builds an item whose ID is derived from its title and time, so
// the same entry keeps its ID across runs.
func NewItem(title, at string, kind Kind) Item {
	return Item{
		ID:    uuid.NewSHA1(agendaNamespace, []byte(title+"|"+at)).String(),
		Title: title,
		Time:  at,
		Kind:  kind,
	}
}

// DefaultAgenda returns the daily agenda built from timings plus the fixed
// reminders and events, sorted by time.
func DefaultAgenda(timings Timings) []Item {
	items := []Item{
		NewItem("Morning Dhikr", "06:00", KindReminder),
		NewItem("Quran Reading", "14:00", KindReminder),
		NewItem("Islamic Study Circle", "19:00", KindEvent),
	}
	for _, name := range DefaultPrayerNames {
		if at, ok := timings[name]; ok {
			items = append(items, NewItem(name+" Prayer", at, KindPrayer))
		}
	}
	return SortAgenda(items)
}

// SortAgenda returns a copy of items ordered by time. Items with an
// unparsable time sort last.
func SortAgenda(items []Item) []Item {
	out := append([]Item(nil), items...)
	key := func(it Item) int {
		h, m, err := parseClock(it.Time)
		if err != nil {
			return 24 * 60
		}
		return h*60 + m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

// MarkCompleted returns a copy of items with Completed set for everything
// scheduled before now on date: all items on past dates, none on future dates.
func MarkCompleted(items []Item, date, now time.Time) []Item {
	out := append([]Item(nil), items...)
	for i := range out {
		at, err := parseTimeStr(out[i].Time, date, now.Location())
		out[i].Completed = err == nil && !at.After(now)
	}
	return out
}

// Toggle returns a copy of items with the completion of the item with id flipped.
func Toggle(items []Item, id string) []Item {
	out := append([]Item(nil), items...)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
		}
	}
	return out
}
