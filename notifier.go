package main

import (
	"log"

	"fyne.io/fyne/v2"
	"github.com/borgmon/focus-nudge/pkg/audio"
	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/borgmon/focus-nudge/pkg/store"
)

var moduleTitles = map[string]string{
	"progress": "Focus check",
	"income":   "Earnings",
	"wellness": "Wellness",
	"surprise": "Surprise",
}

func notificationTitle(module string) string {
	if title, ok := moduleTitles[module]; ok {
		return title
	}
	return "Reminder"
}

type notificationSender interface {
	SendNotification(*fyne.Notification)
}

type soundPlayer interface {
	Play(id string) (*audio.Player, error)
}

// Notifier turns reminders into OS notifications and records them.
type Notifier struct {
	sender  notificationSender
	sounds  soundPlayer
	history *store.ReminderLog
}

func NewNotifier(sender notificationSender, sounds soundPlayer, history *store.ReminderLog) *Notifier {
	return &Notifier{sender: sender, sounds: sounds, history: history}
}

// Deliver shows r unless notifications are off or it is quiet time, and
// logs it either way.
func (n *Notifier) Deliver(r models.Reminder, cfg *models.Config) models.ReminderStatus {
	status := models.ReminderStatusShown

	switch {
	case !cfg.NotificationsEnabled:
		status = models.ReminderStatusMuted
	case cfg.IsTimeInQuietTime(r.Timestamp):
		status = models.ReminderStatusMuted
		log.Printf("[NOTIFY] Muted %q during quiet time", r.Module)
	}

	if status == models.ReminderStatusShown {
		n.sender.SendNotification(fyne.NewNotification(notificationTitle(r.Module), r.Text))

		if !cfg.NotificationsSilent && r.Media != nil && r.Media.SoundID != "" && n.sounds != nil {
			soundID := r.Media.SoundID
			// The first sound waits for the audio device.
			go func() {
				if _, err := n.sounds.Play(soundID); err != nil {
					log.Printf("[NOTIFY] Failed to play sound: %v", err)
				}
			}()
		}
	}

	n.history.Add(r, status)
	return status
}
