package reminder

import (
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

// withinWorkday reports whether now's local time of day falls inside the
// configured workday. Unparseable bounds count as always inside.
func withinWorkday(cfg models.IncomeConfig, now time.Time) bool {
	workday, ok := models.ParseTimeRange(cfg.WorkdayStart, cfg.WorkdayEnd)
	if !ok {
		return true
	}
	return workday.Contains(models.MinuteOfDay(now))
}

// applyIncomeProgress attributes the whole tick delta to one side of the
// workday boundary and recomputes the day's income.
func applyIncomeProgress(cfg models.IncomeConfig, progress *IncomeProgress, now time.Time, deltaMinutes float64) {
	if withinWorkday(cfg, now) {
		progress.WorkedMinutesToday += deltaMinutes
	}
	progress.IncomeToday = progress.WorkedMinutesToday / 60 * cfg.HourlyRate
}
