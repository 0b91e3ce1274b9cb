package reminder

import (
	"maps"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
)

// RuntimeContext carries host supplied signals consumed by custom triggers.
type RuntimeContext struct {
	// CustomFlags is keyed by trigger ID.
	CustomFlags map[string]bool
}

func (c RuntimeContext) clone() RuntimeContext {
	return RuntimeContext{CustomFlags: maps.Clone(c.CustomFlags)}
}

// triggersSatisfied applies "any of" semantics. An empty list is always eligible.
func triggersSatisfied(triggers []models.Trigger, state *ModuleState, runtime RuntimeContext) bool {
	if len(triggers) == 0 {
		return true
	}

	for _, trigger := range triggers {
		switch trigger.Type {
		case models.TriggerTimeElapsed:
			if trigger.ThresholdMinutes != nil && state.ElapsedMinutes >= *trigger.ThresholdMinutes {
				return true
			}
		case models.TriggerCustom:
			if trigger.ID != "" && runtime.CustomFlags[trigger.ID] {
				return true
			}
		case models.TriggerIdle:
			// Input-idle detection is not available yet.
		}
	}
	return false
}

// surpriseGate decides whether a surprise module whose base triggers passed
// may fire at now. The window is created lazily on first evaluation.
func surpriseGate(state *SurpriseState, strategy models.RandomStrategy, now time.Time, rng Rand) bool {
	if state.Window == nil {
		window := NewRandomWindow(now, strategy)
		state.Window = &window
	}

	switch {
	case now.Before(state.Window.Earliest):
		return false
	case !now.Before(state.Window.Latest):
		return true
	default:
		return rng.Float64() <= clampProbability(strategy.Probability)
	}
}

func clampProbability(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// shouldFire combines trigger evaluation with the kind specific gate.
func shouldFire(module *models.ModuleConfig, state *ModuleState, now time.Time, runtime RuntimeContext, rng Rand) bool {
	if !triggersSatisfied(module.Triggers, state, runtime) {
		return false
	}
	if state.Surprise != nil {
		return surpriseGate(state.Surprise, module.Random, now, rng)
	}
	return true
}
