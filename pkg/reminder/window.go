package reminder

import (
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

// RandomWindow bounds when a surprise module may fire.
// Before Earliest it is blocked, inside [Earliest, Latest) it fires by chance,
// at or after Latest it fires unconditionally.
type RandomWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// NewRandomWindow derives the next window from now. The minimum interval is
// floored at one minute and the maximum at the minimum.
func NewRandomWindow(now time.Time, strategy models.RandomStrategy) RandomWindow {
	minMinutes := max(strategy.MinIntervalMinutes, 1)
	maxMinutes := max(strategy.MaxIntervalMinutes, strategy.MinIntervalMinutes)

	window := RandomWindow{
		Earliest: now.Add(time.Duration(minMinutes) * time.Minute),
		Latest:   now.Add(time.Duration(maxMinutes) * time.Minute),
	}
	if window.Latest.Before(window.Earliest) {
		window.Latest = window.Earliest
	}
	return window
}

// Open reports whether t lies inside [Earliest, Latest).
func (w RandomWindow) Open(t time.Time) bool {
	return !t.Before(w.Earliest) && t.Before(w.Latest)
}
