// Package clock supplies the real-world "now" and a periodic tick that
// screens use to refresh the current time and today's highlight.
package clock

import "time"

// Clock is a read-only source of the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }

// System is the wall clock.
var System Clock = Func(time.Now)

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// In returns a Clock reporting c's time in loc.
func In(c Clock, loc *time.Location) Clock {
	return Func(func() time.Time { return c.Now().In(loc) })
}
