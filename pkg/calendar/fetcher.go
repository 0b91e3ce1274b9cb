package calendar

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/emersion/go-ical"
)

// Window bounds the events kept from a feed. An event is kept when it
// overlaps [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// SyncWindow returns the window used for periodic syncs: from lookback
// before now until a day ahead.
func SyncWindow(now time.Time, lookback time.Duration) Window {
	return Window{From: now.Add(-lookback), To: now.Add(24 * time.Hour)}
}

// FetchEvents fetches and parses events from an iCal source
func FetchEvents(ctx context.Context, client *http.Client, source models.ICalSource, window Window) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar URL: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	events, err := ParseEvents(string(body), window)
	if err != nil {
		return nil, err
	}

	// Set the source ID for all events
	eventsWithoutUID := 0
	for i := range events {
		events[i].SourceID = source.ID
		// Fallback: if no iCal UID, use deterministic ID based on start time and title
		if events[i].ID == "" {
			events[i].ID = source.ID + "-" + events[i].StartTime.Format(time.RFC3339) + "-" + events[i].Title
			eventsWithoutUID++
		}
	}

	if eventsWithoutUID > 0 {
		log.Printf("[CALENDAR] Generated fallback IDs for %d events without UID", eventsWithoutUID)
	}

	return events, nil
}

// FetchAll fetches every valid source. Sources that fail are logged and skipped.
func FetchAll(ctx context.Context, client *http.Client, sources []models.ICalSource, window Window) []models.Event {
	var all []models.Event
	for _, source := range sources {
		if !source.Validate() {
			continue
		}
		events, err := FetchEvents(ctx, client, source, window)
		if err != nil {
			log.Printf("[CALENDAR] Error fetching %q: %v", source.Name, err)
			continue
		}
		log.Printf("[CALENDAR] Fetched %d events from %q", len(events), source.Name)
		all = append(all, events...)
	}
	return all
}

// ParseEvents decodes an iCalendar document and returns the timed events
// overlapping window, with recurring events expanded.
func ParseEvents(body string, window Window) ([]models.Event, error) {
	if err := validateICalFormat(body); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(body))
	events := []models.Event{}
	seenEventIDs := make(map[string]bool)
	seenEventKeys := make(map[string]bool) // key: title + start time

	// Tracking filtered events
	stats := &filterStats{}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			stats.totalComponents++
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			normalizeComponentTimezones(comp)
			event := parseEvent(comp)

			candidates := []models.Event{event}
			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				expanded, err := expandRecurringEvent(comp, event, rruleProp.Value, window)
				if err != nil {
					log.Printf("[CALENDAR] Skipping recurring event %q: %v", event.Title, err)
					continue
				}
				candidates = expanded
			}

			for _, candidate := range candidates {
				if shouldIncludeEvent(candidate, window, stats) && !isDuplicate(candidate, seenEventIDs, seenEventKeys, stats) {
					events = append(events, candidate)
				}
			}
		}
	}

	// Log filtering summary
	stats.logSummary(len(events))

	return events, nil
}

func validateICalFormat(bodyStr string) error {
	trimmed := strings.TrimSpace(bodyStr)

	// Check if response is HTML instead of iCalendar
	upperBody := strings.ToUpper(trimmed)
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}

	// Check if it starts with BEGIN:VCALENDAR
	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		preview := trimmed
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", preview)
	}

	return nil
}

func isDuplicate(event models.Event, seenEventIDs, seenEventKeys map[string]bool, stats *filterStats) bool {
	// Check for duplicates by ID
	if event.ID != "" && seenEventIDs[event.ID] {
		stats.filteredDuplicates++
		return true
	}

	// Check for duplicates by title + start time
	eventKey := event.Title + "|" + event.StartTime.Format(time.RFC3339)
	if seenEventKeys[eventKey] {
		stats.filteredDuplicates++
		return true
	}

	if event.ID != "" {
		seenEventIDs[event.ID] = true
	}
	seenEventKeys[eventKey] = true
	return false
}

type filterStats struct {
	totalComponents       int
	totalEvents           int
	filteredMissingTime   int
	filteredCancelled     int
	filteredAllDay        int
	filteredOutsideWindow int
	filteredDuplicates    int
}

func (s *filterStats) logSummary(includedCount int) {
	totalFiltered := s.filteredMissingTime + s.filteredCancelled + s.filteredAllDay + s.filteredOutsideWindow + s.filteredDuplicates
	log.Printf("[CALENDAR] Total components: %d, Events: %d, Included: %d, Filtered: %d",
		s.totalComponents, s.totalEvents, includedCount, totalFiltered)
	if totalFiltered > 0 {
		log.Printf("[CALENDAR] Filtered breakdown: %d cancelled, %d all-day, %d outside window, %d missing time, %d duplicates",
			s.filteredCancelled, s.filteredAllDay, s.filteredOutsideWindow, s.filteredMissingTime, s.filteredDuplicates)
	}
}
