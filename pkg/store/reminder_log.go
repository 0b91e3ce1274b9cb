package store

import (
	"sort"
	"sync"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/google/uuid"
)

// DefaultRetention is how long reminders stay in the log.
const DefaultRetention = 24 * time.Hour

// LoggedReminder is a reminder together with what the host did with it.
type LoggedReminder struct {
	models.Reminder
	Status models.ReminderStatus
}

// ReminderLog keeps recently emitted reminders
type ReminderLog struct {
	mu sync.RWMutex

	retention time.Duration

	// Map of reminder ID to entry
	byID map[string]*LoggedReminder

	// Map of timestamp (minute precision) to reminders emitted in that minute
	byMinute map[int64][]*LoggedReminder
}

// NewReminderLog creates a new ReminderLog instance
func NewReminderLog(retention time.Duration) *ReminderLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &ReminderLog{
		retention: retention,
		byID:      make(map[string]*LoggedReminder),
		byMinute:  make(map[int64][]*LoggedReminder),
	}
}

// Add records a reminder and drops entries older than the retention
// relative to the reminder's timestamp. Reminders without an ID get one.
func (rl *ReminderLog) Add(reminder models.Reminder, status models.ReminderStatus) LoggedReminder {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}

	entry := &LoggedReminder{Reminder: reminder, Status: status}
	rl.byID[reminder.ID] = entry

	timeKey := models.RoundToMinute(reminder.Timestamp).Unix()
	rl.byMinute[timeKey] = append(rl.byMinute[timeKey], entry)

	rl.cleanupOld(reminder.Timestamp.Add(-rl.retention))
	return *entry
}

// Get returns a logged reminder by ID
func (rl *ReminderLog) Get(id string) (LoggedReminder, bool) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	entry, exists := rl.byID[id]
	if !exists {
		return LoggedReminder{}, false
	}
	return *entry, true
}

// Recent returns up to n reminders, newest first. n <= 0 returns all.
func (rl *ReminderLog) Recent(n int) []LoggedReminder {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	result := make([]LoggedReminder, 0, len(rl.byID))
	for _, entry := range rl.byID {
		result = append(result, *entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// CountToday returns how many reminders of module were emitted on now's calendar day.
func (rl *ReminderLog) CountToday(module string, now time.Time) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	fromKey := midnight.Unix()
	toKey := midnight.AddDate(0, 0, 1).Unix()

	count := 0
	for timeKey, entries := range rl.byMinute {
		if timeKey < fromKey || timeKey >= toKey {
			continue
		}
		for _, entry := range entries {
			if entry.Module == module {
				count++
			}
		}
	}
	return count
}

// Prune removes reminders older than the retention relative to now
func (rl *ReminderLog) Prune(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.cleanupOld(now.Add(-rl.retention))
}

// cleanupOld removes reminders older than cutoff time
func (rl *ReminderLog) cleanupOld(cutoffTime time.Time) {
	cutoffKey := models.RoundToMinute(cutoffTime).Unix()

	for timeKey, entries := range rl.byMinute {
		if timeKey < cutoffKey {
			for _, entry := range entries {
				delete(rl.byID, entry.ID)
			}
			delete(rl.byMinute, timeKey)
		}
	}
}
