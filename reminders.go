package main

import (
	"context"
	"log"
	"time"

	"github.com/borgmon/focus-nudge/pkg/store"
)

// Editors often write a file in several steps.
const reminderReloadDebounce = 500 * time.Millisecond

func (fn *FocusNudge) startWatchingReminders() {
	ctx, cancel := context.WithCancel(context.Background())
	fn.stopWatch = cancel

	go func() {
		err := store.WatchFile(ctx, fn.reminders.Path(), reminderReloadDebounce, func() {
			log.Printf("[CONFIG] %s changed", fn.reminders.Path())
			fn.reloadReminders()
		})
		if err != nil {
			log.Printf("[CONFIG] Not watching reminders: %v", err)
		}
	}()
}

// reloadReminders re-reads the reminder file and restarts the scheduler with
// it. A file that fails to load leaves the running configuration in place.
func (fn *FocusNudge) reloadReminders() {
	appConfig, err := fn.reminders.Load()
	if err != nil {
		log.Printf("[CONFIG] Keeping previous reminders: %v", err)
		return
	}

	fn.mu.Lock()
	fn.appConfig = appConfig
	paused := fn.paused
	fn.mu.Unlock()

	if !paused {
		fn.scheduler.Start(*appConfig)
	}
	log.Printf("[CONFIG] Loaded %d reminder modules", len(appConfig.Modules))
	fn.updateSystemTrayMenu()
}

func (fn *FocusNudge) setPaused(paused bool) {
	fn.mu.Lock()
	fn.paused = paused
	appConfig := fn.appConfig
	fn.mu.Unlock()

	if paused {
		fn.scheduler.Stop()
	} else {
		fn.scheduler.Start(*appConfig)
		fn.refreshCalendarFlags()
	}
	fn.updateSystemTrayMenu()
}

func (fn *FocusNudge) isPaused() bool {
	fn.mu.RLock()
	defer fn.mu.RUnlock()
	return fn.paused
}
