package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/borgmon/focus-nudge/pkg/models"
)

// ConfigStore handles general settings persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	config := &models.Config{
		AutoStart:            prefs.BoolWithFallback("auto_start", false),
		UpdateInterval:       prefs.IntWithFallback("update_interval", 30),
		NotificationsEnabled: prefs.BoolWithFallback("notifications_enabled", true),
		NotificationsSilent:  prefs.BoolWithFallback("notifications_silent", false),
		MeetingGraceMinutes:  prefs.IntWithFallback("meeting_grace_minutes", 10),
	}

	// Load iCal sources from JSON string
	config.ICalSources = []models.ICalSource{}
	if raw := prefs.String("ical_sources"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &config.ICalSources); err != nil {
			config.ICalSources = []models.ICalSource{}
		}
	}

	// Load quiet time ranges from JSON string
	config.QuietTimeRanges = []models.TimeRange{}
	if raw := prefs.String("quiet_time_ranges"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &config.QuietTimeRanges); err != nil {
			config.QuietTimeRanges = []models.TimeRange{}
		}
	}

	if config.UpdateInterval < 1 {
		config.UpdateInterval = 1
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("update_interval", config.UpdateInterval)
	prefs.SetBool("notifications_enabled", config.NotificationsEnabled)
	prefs.SetBool("notifications_silent", config.NotificationsSilent)
	prefs.SetInt("meeting_grace_minutes", config.MeetingGraceMinutes)

	if icalSourcesJSON, err := json.Marshal(config.ICalSources); err == nil {
		prefs.SetString("ical_sources", string(icalSourcesJSON))
	}

	if quietTimeJSON, err := json.Marshal(config.QuietTimeRanges); err == nil {
		prefs.SetString("quiet_time_ranges", string(quietTimeJSON))
	}
}
