package models

import "time"

const EventStatusCancelled = "CANCELLED"

// Event represents a calendar event
type Event struct {
	ID        string    // iCal event UID
	Title     string    // Event title/summary
	StartTime time.Time // Event start time
	EndTime   time.Time // Event end time
	Status    string    // Event status (CONFIRMED, TENTATIVE, CANCELLED)
	SourceID  string    // ID of the iCal source this event came from
}

// Overlaps reports whether the event is running at t.
func (e *Event) Overlaps(t time.Time) bool {
	return !t.Before(e.StartTime) && t.Before(e.EndTime)
}
