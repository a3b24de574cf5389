package clock

import (
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrInterval is returned for tick intervals shorter than one second.
var ErrInterval = errors.New("tick interval must be at least one second")

// Ticker invokes a callback at a fixed interval until stopped. A screen that
// starts a Ticker owns it and must Stop it on teardown.
type Ticker struct {
	interval time.Duration
	fn       func(now time.Time)
	clock    Clock

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	stopped bool
}

// NewTicker creates a stopped Ticker calling fn with the current time every
// interval. Intervals are truncated to whole seconds.
func NewTicker(interval time.Duration, fn func(now time.Time)) (*Ticker, error) {
	if interval < time.Second {
		return nil, ErrInterval
	}
	if fn == nil {
		return nil, errors.New("tick callback cannot be nil")
	}
	return &Ticker{
		interval: interval.Truncate(time.Second),
		fn:       fn,
		clock:    System,
	}, nil
}

// WithClock sets the time source passed to the callback.
func (t *Ticker) WithClock(c Clock) *Ticker {
	t.clock = c
	return t
}

// Interval returns the effective tick interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Start begins ticking. It is a no-op if the ticker is running or was stopped.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.stopped {
		return
	}

	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(logrus.StandardLogger())),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(cron.Every(t.interval), cron.FuncJob(func() {
		t.fn(t.clock.Now())
	}))
	c.Start()

	t.cron = c
	t.running = true
	logrus.Debugf("clock ticker started, interval %s", t.interval)
}

// Stop releases the schedule and waits for a callback in flight to return.
// It is safe to call more than once, but not from inside the callback.
// A stopped Ticker cannot be restarted.
func (t *Ticker) Stop() {
	t.mu.Lock()
	c := t.cron
	wasRunning := t.running
	t.cron = nil
	t.running = false
	t.stopped = true
	t.mu.Unlock()

	if !wasRunning {
		return
	}
	<-c.Stop().Done()
	logrus.Debug("clock ticker stopped")
}
