package models

import "time"

// ModuleKind is the closed set of reminder module variants.
type ModuleKind string

const (
	ModuleKindBase     ModuleKind = "base"     // cooldown and triggers only
	ModuleKindIncome   ModuleKind = "income"   // accrues earnings during the workday
	ModuleKindSurprise ModuleKind = "surprise" // fires inside a randomized window
)

// TriggerType identifies how a trigger decides eligibility.
type TriggerType string

const (
	TriggerTimeElapsed TriggerType = "timeElapsed"
	TriggerIdle        TriggerType = "idle" // reserved for input-idle detection, never matches
	TriggerCustom      TriggerType = "custom"
)

// AppConfig is the reminder configuration snapshot handed to the scheduler.
type AppConfig struct {
	Version             string         `json:"version" yaml:"version"`
	BaseIntervalMinutes int            `json:"baseIntervalMinutes" yaml:"baseIntervalMinutes"`
	Modules             []ModuleConfig `json:"modules" yaml:"modules"`
}

// ModuleConfig configures one reminder category.
type ModuleConfig struct {
	Key                    string     `json:"key" yaml:"key"`
	Kind                   ModuleKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Enabled                bool       `json:"enabled" yaml:"enabled"`
	DefaultIntervalMinutes int        `json:"defaultIntervalMinutes" yaml:"defaultIntervalMinutes"`
	CooldownMinutes        *int       `json:"cooldownMinutes,omitempty" yaml:"cooldownMinutes,omitempty"`
	Triggers               []Trigger  `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Messages               []Message  `json:"messages" yaml:"messages"`

	// Only read when Kind is ModuleKindIncome.
	Income IncomeConfig `json:"incomeConfig,omitempty" yaml:"incomeConfig,omitempty"`
	// Only read when Kind is ModuleKindSurprise.
	Random RandomStrategy `json:"randomStrategy,omitempty" yaml:"randomStrategy,omitempty"`
}

// IncomeConfig describes a time-rate based module.
type IncomeConfig struct {
	HourlyRate   float64 `json:"hourlyRate" yaml:"hourlyRate"`
	Currency     string  `json:"currency" yaml:"currency"`
	WorkdayStart string  `json:"workdayStart" yaml:"workdayStart"` // HH:mm
	WorkdayEnd   string  `json:"workdayEnd" yaml:"workdayEnd"`     // HH:mm
	IgnoreBreaks bool    `json:"ignoreBreaks,omitempty" yaml:"ignoreBreaks,omitempty"`
}

// RandomStrategy bounds when a surprise module may fire.
type RandomStrategy struct {
	MinIntervalMinutes int     `json:"minIntervalMinutes" yaml:"minIntervalMinutes"`
	MaxIntervalMinutes int     `json:"maxIntervalMinutes" yaml:"maxIntervalMinutes"`
	Probability        float64 `json:"probability" yaml:"probability"` // 0..1, per tick inside the window
}

// Trigger gates a module's eligibility to fire.
type Trigger struct {
	ID               string      `json:"id" yaml:"id"`
	Type             TriggerType `json:"type" yaml:"type"`
	ThresholdMinutes *float64    `json:"thresholdMinutes,omitempty" yaml:"thresholdMinutes,omitempty"`
}

// Message is one candidate reminder text.
type Message struct {
	ID     string   `json:"id" yaml:"id"`
	Text   string   `json:"text" yaml:"text"` // supports {{key}} placeholders
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Media  *Media   `json:"media,omitempty" yaml:"media,omitempty"`
}

// Media references assets the host may play alongside a message.
type Media struct {
	AnimationID string `json:"animationId,omitempty" yaml:"animationId,omitempty"`
	SoundID     string `json:"soundId,omitempty" yaml:"soundId,omitempty"`
}

// EffectiveInterval returns the tick interval, never shorter than one minute.
func (c *AppConfig) EffectiveInterval() time.Duration {
	minutes := c.BaseIntervalMinutes
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

// Cooldown returns the configured cooldown, falling back to the default interval.
func (m *ModuleConfig) Cooldown() time.Duration {
	minutes := m.DefaultIntervalMinutes
	if m.CooldownMinutes != nil {
		minutes = *m.CooldownMinutes
	}
	if minutes < 0 {
		minutes = 0
	}
	return time.Duration(minutes) * time.Minute
}

// EffectiveKind maps unknown or empty kinds to ModuleKindBase.
func (m *ModuleConfig) EffectiveKind() ModuleKind {
	switch m.Kind {
	case ModuleKindIncome, ModuleKindSurprise:
		return m.Kind
	default:
		return ModuleKindBase
	}
}

// EffectiveWeight returns the selection weight of the message.
// Missing weights count as 1, negative ones as 0.
func (m *Message) EffectiveWeight() float64 {
	if m.Weight == nil {
		return 1
	}
	if *m.Weight < 0 {
		return 0
	}
	return *m.Weight
}

// Module returns the configuration for key.
func (c *AppConfig) Module(key string) (*ModuleConfig, bool) {
	for i := range c.Modules {
		if c.Modules[i].Key == key {
			return &c.Modules[i], true
		}
	}
	return nil, false
}
