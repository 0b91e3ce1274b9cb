package reminder

import "github.com/borgmon/focus-nudge/pkg/models"

// Rand is the source of uniform draws in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// PickMessage selects one message with probability proportional to its weight.
// Ties are resolved by list order. ok is false when messages is empty.
func PickMessage(messages []models.Message, rng Rand) (msg models.Message, ok bool) {
	if len(messages) == 0 {
		return models.Message{}, false
	}

	total := 0.0
	for i := range messages {
		total += messages[i].EffectiveWeight()
	}
	if total <= 0 {
		return messages[0], true
	}

	threshold := rng.Float64() * total
	cumulative := 0.0
	for i := range messages {
		cumulative += messages[i].EffectiveWeight()
		if threshold < cumulative {
			return messages[i], true
		}
	}

	// Floating point rounding can leave the threshold unmatched.
	return messages[0], true
}
