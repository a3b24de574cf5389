package location

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPlace_String(t *testing.T) {
	tests := []struct {
		place Place
		want  string
	}{
		{Place{City: "Riyadh", Country: "Saudi Arabia"}, "Riyadh, Saudi Arabia"},
		{Place{City: "Riyadh"}, "Riyadh"},
		{Place{Country: "Saudi Arabia"}, "Saudi Arabia"},
		{Place{City: "  ", Country: ""}, ""},
	}
	for _, tt := range tests {
		if got := tt.place.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.place, got, tt.want)
		}
	}
}

func TestPlace_TimeLocation(t *testing.T) {
	loc, err := Place{}.TimeLocation()
	if err != nil || loc != time.Local {
		t.Errorf("empty timezone = %v, %v; want time.Local", loc, err)
	}

	loc, err = Place{Timezone: "UTC"}.TimeLocation()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("UTC timezone = %v, %v", loc, err)
	}

	if _, err := (Place{Timezone: "Mars/Olympus"}).TimeLocation(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestStatic_Resolve(t *testing.T) {
	ctx := context.Background()

	_, err := Static{Place: Place{City: "Cairo"}, Enabled: false}.Resolve(ctx)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("disabled error = %v, want ErrPermissionDenied", err)
	}

	_, err = Static{Enabled: true}.Resolve(ctx)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("empty error = %v, want ErrUnavailable", err)
	}

	p, err := Static{Place: Place{City: "Cairo", Country: "Egypt"}, Enabled: true}.Resolve(ctx)
	if err != nil || p.City != "Cairo" {
		t.Errorf("Resolve = %+v, %v", p, err)
	}
}

func TestStatic_ResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Static{Place: Place{City: "Cairo"}, Enabled: true}.Resolve(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLabel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		r    Resolver
		want string
	}{
		{"resolved", Static{Place: Place{City: "New York", Country: "USA"}, Enabled: true}, "New York, USA"},
		{"denied", Static{Enabled: false}, PermissionDenied},
		{"nothing configured", Static{Enabled: true}, Unavailable},
		{"lookup error", ResolverFunc(func(context.Context) (Place, error) {
			return Place{}, errors.New("gps offline")
		}), Unavailable},
		{"empty place", ResolverFunc(func(context.Context) (Place, error) {
			return Place{}, nil
		}), Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(ctx, tt.r); got != tt.want {
				t.Errorf("Label = %q, want %q", got, tt.want)
			}
		})
	}
}
