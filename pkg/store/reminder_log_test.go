package store

import (
	"testing"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderAt(id, module string, ts time.Time) models.Reminder {
	return models.Reminder{ID: id, Module: module, Text: id, Timestamp: ts}
}

func TestReminderLog_RecentNewestFirst(t *testing.T) {
	rl := NewReminderLog(0)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rl.Add(reminderAt("a", "progress", base), models.ReminderStatusShown)
	rl.Add(reminderAt("b", "income", base.Add(time.Minute)), models.ReminderStatusShown)
	rl.Add(reminderAt("c", "progress", base.Add(2*time.Minute)), models.ReminderStatusMuted)

	recent := rl.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, models.ReminderStatusMuted, recent[0].Status)
	assert.Equal(t, "b", recent[1].ID)

	assert.Len(t, rl.Recent(0), 3)
}

func TestReminderLog_AssignsMissingID(t *testing.T) {
	rl := NewReminderLog(time.Hour)

	entry := rl.Add(models.Reminder{Module: "progress", Timestamp: time.Now()}, models.ReminderStatusShown)
	require.NotEmpty(t, entry.ID)

	got, ok := rl.Get(entry.ID)
	require.True(t, ok)
	assert.Equal(t, "progress", got.Module)
}

func TestReminderLog_Retention(t *testing.T) {
	rl := NewReminderLog(time.Hour)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rl.Add(reminderAt("old", "progress", base), models.ReminderStatusShown)
	rl.Add(reminderAt("new", "progress", base.Add(90*time.Minute)), models.ReminderStatusShown)

	_, ok := rl.Get("old")
	assert.False(t, ok)
	_, ok = rl.Get("new")
	assert.True(t, ok)

	rl.Prune(base.Add(3 * time.Hour))
	assert.Empty(t, rl.Recent(0))
}

func TestReminderLog_CountToday(t *testing.T) {
	rl := NewReminderLog(0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	rl.Add(reminderAt("y", "progress", day.Add(-time.Minute)), models.ReminderStatusShown)
	rl.Add(reminderAt("a", "progress", day), models.ReminderStatusShown)
	rl.Add(reminderAt("b", "progress", day.Add(8*time.Hour)), models.ReminderStatusMuted)
	rl.Add(reminderAt("c", "income", day.Add(9*time.Hour)), models.ReminderStatusShown)

	now := day.Add(10 * time.Hour)
	assert.Equal(t, 2, rl.CountToday("progress", now))
	assert.Equal(t, 1, rl.CountToday("income", now))
	assert.Equal(t, 0, rl.CountToday("surprise", now))
}
