package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/borgmon/focus-nudge/pkg/reminder"
	"github.com/borgmon/focus-nudge/pkg/store"
)

var syncIntervals = []int{15, 30, 60}

// setupSystemTray installs the tray before the app loop runs.
func (fn *FocusNudge) setupSystemTray() {
	if desk, ok := fn.app.(desktop.App); ok {
		desk.SetSystemTrayMenu(fn.buildTrayMenu())
		desk.SetSystemTrayIcon(theme.HistoryIcon())
	}
}

// updateSystemTrayMenu rebuilds the tray menu. Call it off the main goroutine.
func (fn *FocusNudge) updateSystemTrayMenu() {
	desk, ok := fn.app.(desktop.App)
	if !ok {
		return
	}

	menu := fn.buildTrayMenu()
	fyne.Do(func() {
		desk.SetSystemTrayMenu(menu)
	})
}

func (fn *FocusNudge) buildTrayMenu() *fyne.Menu {
	now := time.Now()
	cfg := fn.currentConfig()
	menuItems := []*fyne.MenuItem{}

	if fn.isPaused() {
		menuItems = append(menuItems, disabledItem("Reminders paused"))
	} else if appConfig := fn.currentAppConfig(); appConfig != nil {
		for _, state := range fn.scheduler.Snapshot() {
			module, ok := appConfig.Module(state.Key)
			if !ok {
				continue
			}
			line := moduleStatusLine(state, module, now)
			if count := fn.history.CountToday(state.Key, now); count > 0 {
				line += fmt.Sprintf(" (%d today)", count)
			}
			menuItems = append(menuItems, disabledItem(line))
		}
	}
	menuItems = append(menuItems, fyne.NewMenuItemSeparator())

	if recent := fn.history.Recent(5); len(recent) > 0 {
		menuItems = append(menuItems, disabledItem("Recent:"))
		for _, entry := range recent {
			menuItems = append(menuItems, disabledItem(historyLine(entry)))
		}
		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	pauseLabel := "Pause Reminders"
	if fn.isPaused() {
		pauseLabel = "Resume Reminders"
	}
	menuItems = append(menuItems,
		fyne.NewMenuItem(pauseLabel, func() {
			go fn.setPaused(!fn.isPaused())
		}),
		fyne.NewMenuItem("Reload Reminders", func() {
			go fn.reloadReminders()
		}),
		fyne.NewMenuItem("Sync Calendars", func() {
			go fn.syncCalendars()
		}),
		fyne.NewMenuItemSeparator(),
		fn.settingsMenu(cfg),
		fyne.NewMenuItem("Open Settings Folder", func() {
			openFolder(filepath.Dir(fn.reminders.Path()))
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			fn.quit()
		}),
	)

	return fyne.NewMenu("Focus Nudge", menuItems...)
}

func (fn *FocusNudge) settingsMenu(cfg *models.Config) *fyne.MenuItem {
	notifications := fyne.NewMenuItem("Notifications", func() {
		fn.updateConfig(func(c *models.Config) { c.NotificationsEnabled = !c.NotificationsEnabled })
		go fn.updateSystemTrayMenu()
	})
	notifications.Checked = cfg.NotificationsEnabled

	sounds := fyne.NewMenuItem("Play Sounds", func() {
		fn.updateConfig(func(c *models.Config) { c.NotificationsSilent = !c.NotificationsSilent })
		go fn.updateSystemTrayMenu()
	})
	sounds.Checked = !cfg.NotificationsSilent

	autoStart := fyne.NewMenuItem("Launch at Login", func() {
		updated := fn.updateConfig(func(c *models.Config) { c.AutoStart = !c.AutoStart })
		if err := setupAutostart(updated.AutoStart); err != nil {
			log.Printf("Warning: failed to setup autostart: %v", err)
		}
		go fn.updateSystemTrayMenu()
	})
	autoStart.Checked = cfg.AutoStart

	intervalItems := make([]*fyne.MenuItem, 0, len(syncIntervals))
	for _, minutes := range syncIntervals {
		item := fyne.NewMenuItem(fmt.Sprintf("Every %d minutes", minutes), func() {
			fn.updateConfig(func(c *models.Config) { c.UpdateInterval = minutes })
			if err := fn.scheduleCalendarSync(); err != nil {
				log.Printf("[CALENDAR] %v", err)
			}
			go fn.updateSystemTrayMenu()
		})
		item.Checked = cfg.UpdateInterval == minutes
		intervalItems = append(intervalItems, item)
	}
	syncInterval := fyne.NewMenuItem("Calendar Sync", nil)
	syncInterval.ChildMenu = fyne.NewMenu("", intervalItems...)

	settings := fyne.NewMenuItem("Settings", nil)
	settings.ChildMenu = fyne.NewMenu("", notifications, sounds, autoStart, syncInterval)
	return settings
}

func disabledItem(label string) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, nil)
	item.Disabled = true
	return item
}

// moduleStatusLine describes a module's state for the tray menu.
func moduleStatusLine(state reminder.ModuleState, module *models.ModuleConfig, now time.Time) string {
	if !state.NextAvailableAt.IsZero() && now.Before(state.NextAvailableAt) {
		return fmt.Sprintf("%s: resting, %s left", state.Key, formatMinutes(state.NextAvailableAt.Sub(now).Minutes()))
	}

	switch {
	case state.Income != nil:
		return fmt.Sprintf("%s: %s worked, %.2f %s", state.Key,
			formatMinutes(state.Income.WorkedMinutesToday), state.Income.IncomeToday, module.Income.Currency)
	case state.Surprise != nil && state.Surprise.Window != nil:
		if now.Before(state.Surprise.Window.Earliest) {
			return fmt.Sprintf("%s: quiet until %s", state.Key, state.Surprise.Window.Earliest.Format("15:04"))
		}
		return fmt.Sprintf("%s: any moment now", state.Key)
	default:
		return fmt.Sprintf("%s: %s since last", state.Key, formatMinutes(state.ElapsedMinutes))
	}
}

func historyLine(entry store.LoggedReminder) string {
	line := fmt.Sprintf("  %s  %s", entry.Timestamp.Format("15:04"), truncateString(entry.Text, 40))
	if entry.Status == models.ReminderStatusMuted {
		line += " (muted)"
	}
	return line
}

// formatMinutes renders whole minutes as "45m" or "2h 05m".
func formatMinutes(minutes float64) string {
	total := int(minutes)
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
