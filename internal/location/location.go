// Package location produces the location label shown on the home and
// schedule screens. Callers only ever see a display string: a resolved
// "City, Country", or a placeholder for loading, denied and failed lookups.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Display placeholders.
const (
	Loading          = "Loading..."
	PermissionDenied = "Location permission denied"
	Unavailable      = "Unable to get location"
)

var (
	// ErrPermissionDenied means the user turned location services off.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnavailable means no location could be determined.
	ErrUnavailable = errors.New("location unavailable")
)

// Place is a resolved location.
type Place struct {
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"` // IANA name, e.g. "Asia/Riyadh"
}

// String returns "City, Country", or whichever half is set.
func (p Place) String() string {
	var parts []string
	for _, s := range []string{p.City, p.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// TimeLocation loads the place's timezone. An empty timezone yields time.Local.
func (p Place) TimeLocation() (*time.Location, error) {
	if p.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
	}
	return loc, nil
}

// Resolver looks up the current place.
type Resolver interface {
	Resolve(ctx context.Context) (Place, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context) (Place, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context) (Place, error) { return f(ctx) }

// Static resolves to a configured place. Enabled mirrors the
// "location services" setting.
type Static struct {
	Place   Place
	Enabled bool
}

// Resolve returns the configured place.
func (s Static) Resolve(ctx context.Context) (Place, error) {
	if err := ctx.Err(); err != nil {
		return Place{}, err
	}
	if !s.Enabled {
		return Place{}, ErrPermissionDenied
	}
	if s.Place.String() == "" {
		return Place{}, ErrUnavailable
	}
	return s.Place, nil
}

// Label resolves r and returns the string to display. Failures never
// propagate; they become placeholders.
func Label(ctx context.Context, r Resolver) string {
	p, err := r.Resolve(ctx)
	switch {
	case err == nil && p.String() != "":
		return p.String()
	case errors.Is(err, ErrPermissionDenied):
		return PermissionDenied
	default:
		logrus.Debugf("location lookup failed: %v", err)
		return Unavailable
	}
}
