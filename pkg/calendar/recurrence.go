package calendar

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// expandRecurringEvent returns the instances of a recurring event that may
// overlap window. EXDATE entries are honored.
func expandRecurringEvent(comp *ical.Component, base models.Event, rule string, window Window) ([]models.Event, error) {
	if base.StartTime.IsZero() || base.EndTime.IsZero() {
		return nil, fmt.Errorf("recurring event without start or end")
	}

	loc := getTimezoneFromComponent(comp)
	option, err := rrule.StrToROptionInLocation(rule, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", rule, err)
	}
	option.Dtstart = base.StartTime.In(loc)

	r, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q: %w", rule, err)
	}

	set := &rrule.Set{}
	set.RRule(r)
	for _, exdate := range exceptionDates(comp, loc) {
		set.ExDate(exdate)
	}

	duration := base.EndTime.Sub(base.StartTime)
	occurrences := set.Between(window.From.Add(-duration), window.To, true)

	events := make([]models.Event, 0, len(occurrences))
	for _, start := range occurrences {
		instance := base
		instance.StartTime = start.In(time.Local)
		instance.EndTime = instance.StartTime.Add(duration)
		instance.ID = base.ID + "-" + start.UTC().Format(time.RFC3339)
		events = append(events, instance)
	}

	if len(events) > 0 {
		log.Printf("[CALENDAR] Expanded %q into %d instances", base.Title, len(events))
	}
	return events, nil
}

func exceptionDates(comp *ical.Component, loc *time.Location) []time.Time {
	var dates []time.Time
	for _, prop := range comp.Props.Values(ical.PropExceptionDates) {
		propLoc := loc
		if tzid := prop.Params.Get(ical.ParamTimezoneID); tzid != "" {
			if l, err := time.LoadLocation(tzid); err == nil {
				propLoc = l
			}
		}

		for _, value := range strings.Split(prop.Value, ",") {
			t, err := parseDateTimeValue(strings.TrimSpace(value), propLoc)
			if err != nil {
				log.Printf("[CALENDAR] Ignoring EXDATE %q: %v", value, err)
				continue
			}
			dates = append(dates, t)
		}
	}
	return dates
}
