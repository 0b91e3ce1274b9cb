package reminder

import (
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

// ModuleState is the mutable runtime record of one module.
// Income is non-nil only for income modules and Surprise only for surprise modules.
type ModuleState struct {
	Key             string
	Kind            models.ModuleKind
	ElapsedMinutes  float64   // minutes since the last fire or rollover
	LastTriggerAt   time.Time // zero until the module fires
	NextAvailableAt time.Time // zero when no cooldown is pending

	Income   *IncomeProgress
	Surprise *SurpriseState
}

// IncomeProgress is the per-day accrual of an income module.
type IncomeProgress struct {
	WorkedMinutesToday float64
	IncomeToday        float64
}

// SurpriseState holds the window for the next surprise fire.
type SurpriseState struct {
	Window *RandomWindow // nil until first evaluated
}

func newModuleState(module *models.ModuleConfig) *ModuleState {
	state := &ModuleState{
		Key:  module.Key,
		Kind: module.EffectiveKind(),
	}
	switch state.Kind {
	case models.ModuleKindIncome:
		state.Income = &IncomeProgress{}
	case models.ModuleKindSurprise:
		state.Surprise = &SurpriseState{}
	}
	return state
}

// resetDaily returns the state to Idle, clearing every per-day field.
func (s *ModuleState) resetDaily() {
	s.ElapsedMinutes = 0
	s.LastTriggerAt = time.Time{}
	s.NextAvailableAt = time.Time{}

	if s.Income != nil {
		*s.Income = IncomeProgress{}
	}
	if s.Surprise != nil {
		s.Surprise.Window = nil
	}
}

// coolingDown reports whether the cooldown set by the last fire is still active.
func (s *ModuleState) coolingDown(now time.Time) bool {
	return !s.NextAvailableAt.IsZero() && now.Before(s.NextAvailableAt)
}

func (s *ModuleState) markFired(now time.Time, cooldown time.Duration) {
	s.LastTriggerAt = now
	s.NextAvailableAt = now.Add(cooldown)
	s.ElapsedMinutes = 0
}

// clone returns a deep copy safe to hand outside the scheduler.
func (s *ModuleState) clone() ModuleState {
	out := *s
	if s.Income != nil {
		income := *s.Income
		out.Income = &income
	}
	if s.Surprise != nil {
		surprise := SurpriseState{}
		if s.Surprise.Window != nil {
			window := *s.Surprise.Window
			surprise.Window = &window
		}
		out.Surprise = &surprise
	}
	return out
}
