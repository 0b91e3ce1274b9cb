package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/borgmon/focus-nudge/pkg/calendar"
	"github.com/borgmon/focus-nudge/pkg/reminder"
	"github.com/robfig/cron/v3"
)

func syncSpec(minutes int) string {
	return fmt.Sprintf("@every %dm", max(minutes, 1))
}

func (fn *FocusNudge) startCron() error {
	fn.cron = cron.New()

	if err := fn.scheduleCalendarSync(); err != nil {
		return err
	}

	// Meeting flags and the tray status change as time passes.
	if _, err := fn.cron.AddFunc("* * * * *", func() {
		fn.refreshCalendarFlags()
		fn.updateSystemTrayMenu()
	}); err != nil {
		return fmt.Errorf("add minute refresh: %w", err)
	}

	if _, err := fn.cron.AddFunc("@hourly", func() { fn.history.Prune(time.Now()) }); err != nil {
		return fmt.Errorf("add history prune: %w", err)
	}

	fn.cron.Start()
	return nil
}

// scheduleCalendarSync (re)registers the periodic sync with the configured interval.
func (fn *FocusNudge) scheduleCalendarSync() error {
	if fn.syncJob != 0 {
		fn.cron.Remove(fn.syncJob)
	}

	spec := syncSpec(fn.currentConfig().UpdateInterval)
	id, err := fn.cron.AddFunc(spec, fn.syncCalendars)
	if err != nil {
		return fmt.Errorf("add calendar sync: %w", err)
	}
	fn.syncJob = id
	log.Printf("[CALENDAR] Sync scheduled (%s)", spec)
	return nil
}

func (fn *FocusNudge) syncCalendars() {
	cfg := fn.currentConfig()

	if !cfg.NeedsCalendar() {
		fn.mu.Lock()
		fn.events = nil
		fn.mu.Unlock()
		fn.refreshCalendarFlags()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	window := calendar.SyncWindow(time.Now(), cfg.MeetingGrace())
	events := calendar.FetchAll(ctx, fn.httpClient, cfg.ICalSources, window)
	log.Printf("[CALENDAR] Total synced %d events from %d iCal sources", len(events), len(cfg.ICalSources))

	fn.mu.Lock()
	fn.events = events
	fn.mu.Unlock()

	fn.refreshCalendarFlags()
}

// refreshCalendarFlags pushes the meeting state of the cached events to the scheduler.
func (fn *FocusNudge) refreshCalendarFlags() {
	fn.mu.RLock()
	events := fn.events
	grace := fn.config.MeetingGrace()
	fn.mu.RUnlock()

	flags := calendar.Flags(events, time.Now(), grace)
	fn.scheduler.UpdateRuntimeContext(reminder.RuntimeContext{CustomFlags: flags})
}
