package main

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/borgmon/focus-nudge/pkg/audio"
	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/borgmon/focus-nudge/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*fyne.Notification
}

func (f *fakeSender) SendNotification(n *fyne.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
}

func (f *fakeSender) all() []*fyne.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fyne.Notification(nil), f.sent...)
}

type fakeSounds struct {
	mu     sync.Mutex
	played []string
}

func (f *fakeSounds) Play(id string) (*audio.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, id)
	return nil, nil
}

func (f *fakeSounds) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.played)
}

var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func newTestNotifier() (*Notifier, *fakeSender, *fakeSounds, *store.ReminderLog) {
	sender := &fakeSender{}
	sounds := &fakeSounds{}
	history := store.NewReminderLog(store.DefaultRetention)
	return NewNotifier(sender, sounds, history), sender, sounds, history
}

func TestNotifier_ShowsNotification(t *testing.T) {
	n, sender, sounds, history := newTestNotifier()
	cfg := &models.Config{NotificationsEnabled: true}

	r := models.Reminder{
		ID: "r1", Module: "income", Text: "Earned 10.00 USD", Timestamp: noon,
		Media: &models.Media{SoundID: "coin"},
	}
	status := n.Deliver(r, cfg)

	assert.Equal(t, models.ReminderStatusShown, status)
	require.Len(t, sender.all(), 1)
	assert.Equal(t, "Earnings", sender.all()[0].Title)
	assert.Equal(t, "Earned 10.00 USD", sender.all()[0].Content)

	require.Eventually(t, func() bool { return sounds.count() == 1 }, time.Second, 5*time.Millisecond)

	logged, ok := history.Get("r1")
	require.True(t, ok)
	assert.Equal(t, models.ReminderStatusShown, logged.Status)
}

func TestNotifier_Silent(t *testing.T) {
	n, sender, sounds, _ := newTestNotifier()
	cfg := &models.Config{NotificationsEnabled: true, NotificationsSilent: true}

	n.Deliver(models.Reminder{Module: "progress", Timestamp: noon, Media: &models.Media{SoundID: "chime"}}, cfg)

	assert.Len(t, sender.all(), 1)
	assert.Never(t, func() bool { return sounds.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestNotifier_Muted(t *testing.T) {
	tests := []struct {
		name string
		cfg  *models.Config
	}{
		{"notifications off", &models.Config{NotificationsEnabled: false}},
		{"quiet time", &models.Config{
			NotificationsEnabled: true,
			QuietTimeRanges:      []models.TimeRange{{StartHour: 11, EndHour: 13}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, sender, sounds, history := newTestNotifier()

			status := n.Deliver(models.Reminder{ID: "m", Module: "surprise", Timestamp: noon, Media: &models.Media{SoundID: "pop"}}, tt.cfg)

			assert.Equal(t, models.ReminderStatusMuted, status)
			assert.Empty(t, sender.all())
			assert.Zero(t, sounds.count())

			logged, ok := history.Get("m")
			require.True(t, ok)
			assert.Equal(t, models.ReminderStatusMuted, logged.Status)
		})
	}
}

func TestNotificationTitle(t *testing.T) {
	assert.Equal(t, "Focus check", notificationTitle("progress"))
	assert.Equal(t, "Earnings", notificationTitle("income"))
	assert.Equal(t, "Wellness", notificationTitle("wellness"))
	assert.Equal(t, "Surprise", notificationTitle("surprise"))
	assert.Equal(t, "Reminder", notificationTitle("hydration"))
}
