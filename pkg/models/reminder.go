package models

import "time"

// ReminderStatus tracks what the host did with an emitted reminder
type ReminderStatus string

const (
	ReminderStatusShown ReminderStatus = "Shown" // OS notification was sent
	ReminderStatusMuted ReminderStatus = "Muted" // suppressed (quiet time or notifications off)
)

// Reminder is the event emitted by the scheduler when a module fires.
type Reminder struct {
	ID        string         // Unique identifier (UUID)
	Module    string         // Key of the module that fired
	MessageID string         // ID of the selected message
	Text      string         // Rendered message text
	Timestamp time.Time      // Tick time the module fired at
	Context   map[string]any // Values used to render Text
	Tags      []string       // Tags of the selected message
	Media     *Media         // Media of the selected message, may be nil
}

// RoundToMinute rounds a time down to the nearest minute
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
