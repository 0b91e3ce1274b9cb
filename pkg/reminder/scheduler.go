package reminder

import (
	"log"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/borgmon/focus-nudge/pkg/models"
	"github.com/google/uuid"
)

// Clock is the time source of the scheduler.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Ticker delivers the periodic tick signal.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// WithRand replaces the random source used for message selection and
// surprise windows. It is only used while holding the tick lock.
func WithRand(rng Rand) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// WithTicker replaces the ticker driving the tick loop.
func WithTicker(factory TickerFactory) Option {
	return func(s *Scheduler) { s.newTicker = factory }
}

// Scheduler drives reminder modules from a fixed-interval tick.
//
// The sink is called synchronously from inside the tick, once per fired
// module and in configuration order. It must not call Start or Stop.
type Scheduler struct {
	sink      func(models.Reminder)
	clock     Clock
	rng       Rand
	newTicker TickerFactory

	// lifecycle serializes Start and Stop.
	lifecycle sync.Mutex

	// mu guards everything below and serializes ticks.
	mu         sync.Mutex
	config     *models.AppConfig
	states     map[string]*ModuleState
	lastTickAt time.Time
	dayStamp   time.Time
	interval   time.Duration
	running    bool
	generation uint64
	stopCh     chan struct{}
	doneCh     chan struct{}

	runtimeMu sync.Mutex
	runtime   RuntimeContext
}

// New creates a stopped Scheduler delivering reminders to sink.
func New(sink func(models.Reminder), opts ...Option) *Scheduler {
	s := &Scheduler{
		sink:      sink,
		clock:     ClockFunc(time.Now),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newTicker: newTimeTicker,
		states:    make(map[string]*ModuleState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start replaces any previous run with cfg: all module state is reset, one
// tick runs immediately and then every cfg.EffectiveInterval() until Stop.
func (s *Scheduler) Start(cfg models.AppConfig) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.stopRun()

	s.mu.Lock()
	now := s.clock.Now()
	cfg.Modules = slices.Clone(cfg.Modules)
	s.config = &cfg
	s.states = make(map[string]*ModuleState)
	s.lastTickAt = now
	s.dayStamp = dayStamp(now)
	s.interval = cfg.EffectiveInterval()
	s.running = true
	s.generation++

	gen := s.generation
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	s.stopCh, s.doneCh = stopCh, doneCh
	ticker := s.newTicker(s.interval)

	log.Printf("[REMINDER] Scheduler started (interval: %s, modules: %d)", s.interval, len(cfg.Modules))
	s.tickLocked()
	s.mu.Unlock()

	go s.loop(gen, ticker, stopCh, doneCh)
}

// Stop cancels the repeating tick. When it returns no further tick runs.
// Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.stopRun() {
		log.Println("[REMINDER] Scheduler stopped")
	}
}

func (s *Scheduler) stopRun() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	return true
}

func (s *Scheduler) loop(gen uint64, ticker Ticker, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			s.mu.Lock()
			// A tick queued before Stop or a restart must not touch the new state.
			if s.running && s.generation == gen {
				s.tickLocked()
			}
			s.mu.Unlock()
		}
	}
}

// Tick runs one evaluation pass over all modules. It is a no-op while the
// scheduler is stopped. Ticks never overlap.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.tickLocked()
}

// UpdateRuntimeContext merges flags into the context used by custom triggers.
// A tick in progress keeps the snapshot it started with.
func (s *Scheduler) UpdateRuntimeContext(update RuntimeContext) {
	s.runtimeMu.Lock()
	defer s.runtimeMu.Unlock()

	if s.runtime.CustomFlags == nil {
		s.runtime.CustomFlags = make(map[string]bool, len(update.CustomFlags))
	}
	maps.Copy(s.runtime.CustomFlags, update.CustomFlags)
}

func (s *Scheduler) runtimeSnapshot() RuntimeContext {
	s.runtimeMu.Lock()
	defer s.runtimeMu.Unlock()
	return s.runtime.clone()
}

// Running reports whether the tick loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the tick interval of the current or last run.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Snapshot returns copies of the module states in configuration order.
// Modules that have not been visited by a tick yet are omitted.
func (s *Scheduler) Snapshot() []ModuleState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return nil
	}
	out := make([]ModuleState, 0, len(s.states))
	seen := make(map[string]bool, len(s.states))
	for _, module := range s.config.Modules {
		state, ok := s.states[module.Key]
		if !ok || seen[module.Key] {
			continue
		}
		seen[module.Key] = true
		out = append(out, state.clone())
	}
	return out
}

func (s *Scheduler) tickLocked() {
	now := s.clock.Now()
	deltaMinutes := max(now.Sub(s.lastTickAt).Minutes(), 0)
	s.lastTickAt = now

	if stamp := dayStamp(now); !stamp.Equal(s.dayStamp) {
		s.resetDailyStates()
		s.dayStamp = stamp
		log.Printf("[REMINDER] New day %s, module state reset", stamp.Format("2006-01-02"))
	}

	runtime := s.runtimeSnapshot()
	visited := make(map[string]bool, len(s.config.Modules))

	for i := range s.config.Modules {
		module := &s.config.Modules[i]
		if visited[module.Key] {
			continue
		}
		visited[module.Key] = true

		if !module.Enabled {
			continue
		}
		s.processModule(module, deltaMinutes, now, runtime)
	}
}

func (s *Scheduler) processModule(module *models.ModuleConfig, deltaMinutes float64, now time.Time, runtime RuntimeContext) {
	state, ok := s.states[module.Key]
	if !ok {
		state = newModuleState(module)
		s.states[module.Key] = state
	}
	state.ElapsedMinutes += deltaMinutes

	if state.Income != nil {
		applyIncomeProgress(module.Income, state.Income, now, deltaMinutes)
	}

	if state.coolingDown(now) {
		return
	}

	if !shouldFire(module, state, now, runtime, s.rng) {
		return
	}

	message, ok := PickMessage(module.Messages, s.rng)
	if !ok {
		return
	}

	context := buildContext(module, state, deltaMinutes, now)
	s.sink(models.Reminder{
		ID:        uuid.NewString(),
		Module:    module.Key,
		MessageID: message.ID,
		Text:      Interpolate(message.Text, context),
		Timestamp: now,
		Context:   context,
		Tags:      message.Tags,
		Media:     message.Media,
	})
	log.Printf("[REMINDER] Fired module %q with message %q", module.Key, message.ID)

	state.markFired(now, module.Cooldown())
	if state.Surprise != nil {
		window := NewRandomWindow(now, module.Random)
		state.Surprise.Window = &window
	}
}

func (s *Scheduler) resetDailyStates() {
	for _, state := range s.states {
		state.resetDaily()
	}
}

// buildContext returns the values available to message templates.
func buildContext(module *models.ModuleConfig, state *ModuleState, deltaMinutes float64, now time.Time) map[string]any {
	context := map[string]any{
		"deltaMinutes": math.Round(deltaMinutes*100) / 100,
		"timestamp":    now.UnixMilli(),
		"module":       module.Key,
	}

	if state.Income != nil {
		context["income"] = strconv.FormatFloat(state.Income.IncomeToday, 'f', 2, 64)
		context["workedMinutes"] = strconv.Itoa(int(math.Floor(state.Income.WorkedMinutesToday)))
		context["currency"] = module.Income.Currency
		context["hourlyRate"] = strconv.FormatFloat(module.Income.HourlyRate, 'f', -1, 64)
	}
	return context
}

// dayStamp returns local midnight of t's calendar date.
func dayStamp(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
