package reminder

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// manualTicker only fires when the test sends on ch.
type manualTicker struct {
	ch chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type tickerRecorder struct {
	mu        sync.Mutex
	tickers   []*manualTicker
	intervals []time.Duration
}

func (r *tickerRecorder) factory(d time.Duration) Ticker {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	r.tickers = append(r.tickers, t)
	r.intervals = append(r.intervals, d)
	return t
}

func (r *tickerRecorder) last() *manualTicker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickers[len(r.tickers)-1]
}

// recorder collects emitted reminders.
type recorder struct {
	mu     sync.Mutex
	events []models.Reminder
}

func (r *recorder) sink(reminder models.Reminder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reminder)
}

func (r *recorder) all() []models.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Reminder, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) count(module string) int {
	n := 0
	for _, e := range r.all() {
		if e.Module == module {
			n++
		}
	}
	return n
}

type harness struct {
	clock   *fakeClock
	tickers *tickerRecorder
	events  *recorder
	sched   *Scheduler
}

func newHarness(t *testing.T, start time.Time) *harness {
	t.Helper()
	h := &harness{
		clock:   newFakeClock(start),
		tickers: &tickerRecorder{},
		events:  &recorder{},
	}
	h.sched = New(h.events.sink,
		WithClock(h.clock),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithTicker(h.tickers.factory),
	)
	t.Cleanup(h.sched.Stop)
	return h
}

// step advances the clock and runs one tick.
func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Tick()
}

func (h *harness) state(t *testing.T, key string) ModuleState {
	t.Helper()
	for _, s := range h.sched.Snapshot() {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("no state for module %q", key)
	return ModuleState{}
}

// fixedRand returns the same draw every time.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func at(hour, minute int) time.Time { return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC) }

func msg(id, text string) models.Message {
	return models.Message{ID: id, Text: text}
}

func elapsedTrigger(id string, threshold float64) models.Trigger {
	return models.Trigger{ID: id, Type: models.TriggerTimeElapsed, ThresholdMinutes: floatPtr(threshold)}
}
