package survival

import (
	"math"
	"time"

	"github.com/abhisek/closer/internal/balance"
)

// State is the clock's mode.
type State int

const (
	StateRunning State = iota
	StateFever
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFever:
		return "fever"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event reports what a single answer did to the clock.
type Event struct {
	Points       int
	BudgetDelta  time.Duration
	ComboBonus   bool
	FeverStarted bool
	FeverEnded   bool
	Expired      bool
}

// Clock is the survival countdown for one session. Answers and ticks must
// be applied in the order they happen. Once expired, every call is a no-op.
type Clock struct {
	cfg   balance.Survival
	level Level

	state     State
	budget    time.Duration
	fever     time.Duration
	combo     int
	maxCombo  int
	points    int
	stunUntil time.Time
}

// NewClock starts a clock at the initial budget.
func NewClock(cfg balance.Survival, level Level) *Clock {
	return &Clock{
		cfg:    cfg,
		level:  level,
		state:  StateRunning,
		budget: min(cfg.Initial, cfg.Max),
	}
}

func (c *Clock) State() State                  { return c.state }
func (c *Clock) Level() Level                  { return c.level }
func (c *Clock) Budget() time.Duration         { return c.budget }
func (c *Clock) FeverRemaining() time.Duration { return c.fever }
func (c *Clock) Combo() int                    { return c.combo }
func (c *Clock) MaxCombo() int                 { return c.maxCombo }
func (c *Clock) Points() int                   { return c.points }
func (c *Clock) Expired() bool                 { return c.state == StateExpired }

// Correct applies a correct answer.
func (c *Clock) Correct() Event {
	if c.Expired() {
		return Event{}
	}

	c.combo++
	c.maxCombo = max(c.maxCombo, c.combo)

	ev := Event{Points: c.ScorePerCorrect(c.combo)}
	c.points += ev.Points

	bonus := c.cfg.CorrectBonus
	if c.cfg.ComboInterval > 0 && c.combo%c.cfg.ComboInterval == 0 {
		bonus += c.cfg.ComboBonus
		ev.ComboBonus = true
	}
	ev.BudgetDelta = c.addBudget(bonus)

	if c.state == StateRunning && c.combo == c.cfg.FeverEntryCombo {
		c.state = StateFever
		c.fever = c.cfg.FeverDuration
		ev.FeverStarted = true
	}
	return ev
}

// Wrong applies a wrong answer given at now. It resets combo, cancels
// fever and stuns input for the configured window.
func (c *Clock) Wrong(now time.Time) Event {
	if c.Expired() {
		return Event{}
	}
	c.stunUntil = now.Add(c.cfg.Stun)
	return c.miss(c.cfg.WrongPenalty)
}

// Skip applies a skipped or timed-out question.
func (c *Clock) Skip() Event {
	if c.Expired() {
		return Event{}
	}
	return c.miss(c.cfg.SkipPenalty)
}

func (c *Clock) miss(penalty time.Duration) Event {
	ev := Event{FeverEnded: c.state == StateFever}
	c.combo = 0
	c.endFever()
	ev.BudgetDelta = c.addBudget(-penalty)
	ev.Expired = c.Expired()
	return ev
}

// Tick decays the budget and any fever window by delta. It returns the
// state after the tick.
func (c *Clock) Tick(delta time.Duration) State {
	if c.Expired() || delta <= 0 {
		return c.state
	}
	if c.state == StateFever {
		c.fever -= delta
		if c.fever <= 0 {
			c.endFever()
		}
	}
	c.addBudget(-delta)
	return c.state
}

// Stunned reports whether input should be ignored at now.
func (c *Clock) Stunned(now time.Time) bool {
	return now.Before(c.stunUntil)
}

// BarDuration is how long the current question stays on screen before it
// times out.
func (c *Clock) BarDuration() time.Duration {
	if c.state == StateFever {
		return c.cfg.FeverBar
	}
	edgeMs := float64(c.level.Edge(c.cfg).Milliseconds())
	return time.Duration(math.Round(edgeMs/c.SpeedMultiplier(c.combo))) * time.Millisecond
}

// SpeedMultiplier returns how much faster bars move at combo.
func (c *Clock) SpeedMultiplier(combo int) float64 {
	for _, step := range c.cfg.SpeedSteps {
		if combo >= step.MinCombo {
			return step.Multiplier
		}
	}
	return 1
}

// ScorePerCorrect returns the survival points a correct answer at combo
// earns. This is separate from the SHUN score.
func (c *Clock) ScorePerCorrect(combo int) int {
	if combo >= c.cfg.DoubleScoreCombo {
		return 2
	}
	return 1
}

// addBudget applies delta with clamping and returns the change actually
// applied.
func (c *Clock) addBudget(delta time.Duration) time.Duration {
	before := c.budget
	c.budget = max(0, min(c.cfg.Max, c.budget+delta))
	if c.budget == 0 {
		c.state = StateExpired
		c.fever = 0
	}
	return c.budget - before
}

func (c *Clock) endFever() {
	c.fever = 0
	if c.state == StateFever {
		c.state = StateRunning
	}
}
