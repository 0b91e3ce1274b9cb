package models

import (
	"strconv"
	"strings"
	"time"
)

// Config holds the general application settings kept in preferences.
type Config struct {
	AutoStart            bool         `json:"auto_start"`
	ICalSources          []ICalSource `json:"ical_sources"`
	UpdateInterval       int          `json:"update_interval"`       // minutes between calendar syncs
	NotificationsEnabled bool         `json:"notifications_enabled"` // show OS notifications
	NotificationsSilent  bool         `json:"notifications_silent"`  // never play message sounds
	MeetingGraceMinutes  int          `json:"meeting_grace_minutes"` // how long "meeting ended" stays set
	QuietTimeRanges      []TimeRange  `json:"quiet_time_ranges"`     // notifications muted
}

// ICalSource represents a named iCal calendar source
type ICalSource struct {
	ID   string `json:"id"`   // Unique identifier
	Name string `json:"name"` // Display name
	URL  string `json:"url"`  // iCal URL
}

// TimeRange represents a time range within a day
type TimeRange struct {
	StartHour   int `json:"start_hour"`   // 0-23
	StartMinute int `json:"start_minute"` // 0-59
	EndHour     int `json:"end_hour"`     // 0-23
	EndMinute   int `json:"end_minute"`   // 0-59
}

// Contains reports whether the minute of day falls into [start, end).
// Ranges where end is before start wrap past midnight (e.g. 22:00 to 06:00).
func (tr TimeRange) Contains(minuteOfDay int) bool {
	start := tr.StartHour*60 + tr.StartMinute
	end := tr.EndHour*60 + tr.EndMinute

	if end < start {
		return minuteOfDay >= start || minuteOfDay < end
	}
	return minuteOfDay >= start && minuteOfDay < end
}

// ParseTimeRange builds a range from two "HH:mm" strings.
// ok is false if either side does not parse.
func ParseTimeRange(start, end string) (TimeRange, bool) {
	sh, sm, ok := parseClock(start)
	if !ok {
		return TimeRange{}, false
	}
	eh, em, ok := parseClock(end)
	if !ok {
		return TimeRange{}, false
	}
	return TimeRange{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}, true
}

func parseClock(value string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// MinuteOfDay returns minutes since local midnight of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NeedsCalendar returns true if at least one calendar source is configured
func (c *Config) NeedsCalendar() bool {
	return len(c.ICalSources) > 0
}

// IsTimeInQuietTime returns true if the given time is in a quiet time range
func (c *Config) IsTimeInQuietTime(t time.Time) bool {
	minutes := MinuteOfDay(t)
	for _, tr := range c.QuietTimeRanges {
		if tr.Contains(minutes) {
			return true
		}
	}
	return false
}

// MeetingGrace returns how long after a calendar event ends the
// "meeting ended" flag stays raised.
func (c *Config) MeetingGrace() time.Duration {
	if c.MeetingGraceMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.MeetingGraceMinutes) * time.Minute
}

// Validate checks if the iCal source has required fields
func (s *ICalSource) Validate() bool {
	return s.Name != "" && s.URL != ""
}
