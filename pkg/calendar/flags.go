package calendar

import (
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

// Custom trigger IDs raised from calendar state.
const (
	FlagInMeeting    = "calendar.inMeeting"
	FlagMeetingEnded = "calendar.meetingEnded"
)

// Flags derives custom trigger flags from events at now.
//
// FlagInMeeting is set while any event is running. FlagMeetingEnded is set
// when no event is running and one ended within grace. Both keys are always
// present so a cleared flag overwrites an earlier raised one.
func Flags(events []models.Event, now time.Time, grace time.Duration) map[string]bool {
	inMeeting := false
	recentlyEnded := false

	for i := range events {
		event := &events[i]
		if event.Status == models.EventStatusCancelled {
			continue
		}
		if event.Overlaps(now) {
			inMeeting = true
			continue
		}
		if !event.EndTime.After(now) && now.Sub(event.EndTime) < grace {
			recentlyEnded = true
		}
	}

	return map[string]bool{
		FlagInMeeting:    inMeeting,
		FlagMeetingEnded: recentlyEnded && !inMeeting,
	}
}
