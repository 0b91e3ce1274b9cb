package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/focus-nudge/pkg/audio"
	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/borgmon/focus-nudge/pkg/platform"
	"github.com/borgmon/focus-nudge/pkg/reminder"
	"github.com/borgmon/focus-nudge/pkg/store"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	cli "github.com/spf13/pflag"
)

const appID = "com.borgmon.focus-nudge"

type FocusNudge struct {
	app        fyne.App
	configs    *store.ConfigStore
	reminders  *store.ReminderFile
	history    *store.ReminderLog
	notifier   *Notifier
	scheduler  *reminder.Scheduler
	cron       *cron.Cron
	syncJob    cron.EntryID
	httpClient *http.Client
	stopWatch  context.CancelFunc

	mu        sync.RWMutex
	config    *models.Config
	appConfig *models.AppConfig
	events    []models.Event
	paused    bool
}

func main() {
	remindersPath := cli.StringP("reminders", "r", "", "Reminder file (default: reminders.yaml in the app storage)")
	soundsDir := cli.StringP("sounds", "s", "", "Directory with <sound id>.wav files (default: sounds/ in the app storage)")
	cli.Parse()

	fn := newFocusNudge(app.NewWithID(appID), *remindersPath, *soundsDir)
	if err := fn.initialize(); err != nil {
		log.Fatal(err)
	}

	fn.run()
}

func newFocusNudge(a fyne.App, remindersPath, soundsDir string) *FocusNudge {
	root := a.Storage().RootURI().Path()
	if remindersPath == "" {
		remindersPath = filepath.Join(root, store.RemindersFileName)
	}
	if soundsDir == "" {
		soundsDir = filepath.Join(root, "sounds")
	}

	fs := afero.NewOsFs()
	history := store.NewReminderLog(store.DefaultRetention)

	fn := &FocusNudge{
		app:        a,
		configs:    store.NewConfigStore(a),
		reminders:  store.NewReminderFile(fs, remindersPath),
		history:    history,
		notifier:   NewNotifier(a, audio.NewLibrary(fs, soundsDir), history),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	fn.scheduler = reminder.New(fn.deliver)
	return fn
}

func (fn *FocusNudge) initialize() error {
	fn.config = fn.configs.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(fn.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	fn.configs.Save(fn.config)

	appConfig, err := fn.reminders.Load()
	if err != nil {
		log.Printf("[CONFIG] %v, using built-in reminders", err)
		if appConfig, err = store.ParseReminders(store.DefaultReminders()); err != nil {
			return err
		}
	}
	fn.appConfig = appConfig

	if err := fn.startCron(); err != nil {
		return err
	}
	go fn.syncCalendars()

	fn.scheduler.Start(*appConfig)
	fn.startWatchingReminders()
	fn.setupSystemTray()

	return nil
}

func (fn *FocusNudge) run() {
	fn.app.Lifecycle().SetOnStarted(func() {
		platform.HideDockIcon()
	})
	fn.app.Lifecycle().SetOnStopped(fn.shutdown)
	fn.app.Run()
}

// deliver is the scheduler sink. It runs inside a tick and must not block on the scheduler.
func (fn *FocusNudge) deliver(r models.Reminder) {
	fn.notifier.Deliver(r, fn.currentConfig())
	go fn.updateSystemTrayMenu()
}

func (fn *FocusNudge) currentConfig() *models.Config {
	fn.mu.RLock()
	defer fn.mu.RUnlock()
	return fn.config
}

func (fn *FocusNudge) currentAppConfig() *models.AppConfig {
	fn.mu.RLock()
	defer fn.mu.RUnlock()
	return fn.appConfig
}

// updateConfig applies change to a copy of the settings, persists it and
// swaps it in.
func (fn *FocusNudge) updateConfig(change func(cfg *models.Config)) *models.Config {
	fn.mu.Lock()
	updated := *fn.config
	change(&updated)
	fn.config = &updated
	fn.mu.Unlock()

	fn.configs.Save(&updated)
	return &updated
}

func (fn *FocusNudge) shutdown() {
	if fn.stopWatch != nil {
		fn.stopWatch()
	}
	if fn.cron != nil {
		<-fn.cron.Stop().Done()
	}
	fn.scheduler.Stop()
}

// quit stops the app; shutdown runs from the lifecycle hook.
func (fn *FocusNudge) quit() {
	fn.app.Quit()
}
