package calendar

import (
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

func shouldIncludeEvent(event models.Event, window Window, stats *filterStats) bool {
	// Filter events with missing time information
	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		stats.filteredMissingTime++
		return false
	}

	if event.Status == models.EventStatusCancelled {
		stats.filteredCancelled++
		return false
	}

	// All-day events never mean "in a meeting"
	if isAllDayEvent(event) {
		stats.filteredAllDay++
		return false
	}

	if event.StartTime.Before(window.To) && event.EndTime.After(window.From) {
		return true
	}

	stats.filteredOutsideWindow++
	return false
}

func isAllDayEvent(event models.Event) bool {
	startDate := event.StartTime.Format("2006-01-02")
	endDate := event.EndTime.Format("2006-01-02")
	duration := event.EndTime.Sub(event.StartTime)

	// An event is considered all-day if it spans multiple days and is >= 24 hours
	return startDate != endDate && duration >= 24*time.Hour
}
