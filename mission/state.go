// Package mission coordinates the objective: the gate flag, the enemy count,
// the countdown and the final outcome.
package mission

import (
	"log"

	"github.com/milk9111/gatebreach/common"
)

// Outcome is decided at most once per mission.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "pending"
	}
}

// Defeat reasons passed to Sink.ShowGameOver.
const (
	ReasonTimeExpired = "time expired"
	ReasonPlayerDied  = "player died"
)

// Sink receives UI notifications. Panels are delivered after PanelDelay.
type Sink interface {
	HideObjective()
	ShowVictory()
	ShowGameOver(reason string)
}

// Config is the authored mission tuning.
type Config struct {
	TimeLimit  float64 `yaml:"timeLimit"`
	PanelDelay float64 `yaml:"panelDelay"`
}

// DefaultConfig matches the shipped mission.yaml.
func DefaultConfig() Config {
	return Config{TimeLimit: 180, PanelDelay: 2}
}

// State is the mission coordinator shared by systems. The zero value is not
// usable; construct it with NewState. A nil *State reads as "gate intact".
type State struct {
	cfg Config

	gateDestroyed   bool
	objectiveHidden bool
	playerDead      bool

	enemiesAlive int
	kills        int

	remaining float64
	elapsed   float64

	outcome    Outcome
	reason     string
	panelTimer float64
	panelShown bool

	rules    Rules
	sink     Sink
	finished []func(Record)
}

// NewState starts a mission with the given number of live enemies.
func NewState(cfg Config, enemies int) *State {
	if enemies < 0 {
		enemies = 0
	}
	return &State{
		cfg:          cfg,
		enemiesAlive: enemies,
		remaining:    cfg.TimeLimit,
		rules:        BuiltinRules{},
	}
}

// SetRules replaces the decision rules. nil restores the built-in rules.
func (s *State) SetRules(r Rules) {
	if s == nil {
		return
	}
	if r == nil {
		r = BuiltinRules{}
	}
	s.rules = r
}

func (s *State) SetSink(sink Sink) {
	if s == nil {
		return
	}
	s.sink = sink
}

// OnFinish registers a callback invoked once the outcome is decided.
func (s *State) OnFinish(fn func(Record)) {
	if s == nil || fn == nil {
		return
	}
	s.finished = append(s.finished, fn)
}

func (s *State) GateDestroyed() bool   { return s != nil && s.gateDestroyed }
func (s *State) ObjectiveHidden() bool { return s != nil && s.objectiveHidden }
func (s *State) EnemiesAlive() int {
	if s == nil {
		return 0
	}
	return s.enemiesAlive
}
func (s *State) Kills() int {
	if s == nil {
		return 0
	}
	return s.kills
}
func (s *State) TimeRemaining() float64 {
	if s == nil {
		return 0
	}
	return s.remaining
}
func (s *State) Elapsed() float64 {
	if s == nil {
		return 0
	}
	return s.elapsed
}
func (s *State) Outcome() Outcome {
	if s == nil {
		return OutcomePending
	}
	return s.outcome
}
func (s *State) Reason() string {
	if s == nil {
		return ""
	}
	return s.reason
}

// PanelShown reports whether the end-of-mission panel has been delivered.
func (s *State) PanelShown() bool { return s != nil && s.panelShown }

// TimerRunning is true until the gate falls or the mission ends.
func (s *State) TimerRunning() bool {
	return s != nil && !s.gateDestroyed && s.outcome == OutcomePending && s.remaining > 0
}

// DestroyGate flips the gate flag. Only the first call has any effect.
func (s *State) DestroyGate() bool {
	if s == nil || s.gateDestroyed {
		return false
	}
	s.gateDestroyed = true
	log.Printf("mission: gate destroyed, %d enemies alive", s.enemiesAlive)
	s.dispatch(EventGateDestroyed)
	return true
}

// OnEnemyDeath records one enemy death. The live count never goes negative.
func (s *State) OnEnemyDeath() {
	if s == nil {
		return
	}
	if s.enemiesAlive > 0 {
		s.enemiesAlive--
	}
	s.kills++
	s.dispatch(EventEnemyDeath)
}

// PlayerDied records the player's death once.
func (s *State) PlayerDied() {
	if s == nil || s.playerDead {
		return
	}
	s.playerDead = true
	s.dispatch(EventPlayerDeath)
}

// Update advances the countdown and the delayed end panels.
func (s *State) Update(dt float64) {
	if s == nil || dt <= 0 {
		return
	}
	if s.outcome == OutcomePending {
		s.elapsed += dt
		if !s.gateDestroyed && s.remaining > 0 {
			s.remaining -= dt
			if common.Expired(s.remaining) {
				s.remaining = 0
				s.dispatch(EventTimerExpired)
			}
		}
		return
	}

	if s.panelShown {
		return
	}
	s.panelTimer -= dt
	if !common.Expired(s.panelTimer) {
		return
	}
	s.panelShown = true
	if s.sink == nil {
		return
	}
	if s.outcome == OutcomeVictory {
		s.sink.ShowVictory()
	} else {
		s.sink.ShowGameOver(s.reason)
	}
}

// HideObjective removes the objective text. Repeated calls are ignored.
func (s *State) HideObjective() {
	if s == nil || s.objectiveHidden {
		return
	}
	s.objectiveHidden = true
	if s.sink != nil {
		s.sink.HideObjective()
	}
}

// Victory decides the mission in the player's favour unless already decided.
func (s *State) Victory() bool {
	return s.finish(OutcomeVictory, "")
}

// Defeat decides the mission against the player unless already decided.
func (s *State) Defeat(reason string) bool {
	return s.finish(OutcomeDefeat, reason)
}

func (s *State) finish(o Outcome, reason string) bool {
	if s == nil || s.outcome != OutcomePending {
		return false
	}
	s.outcome = o
	s.reason = reason
	s.panelTimer = s.cfg.PanelDelay
	log.Printf("mission: %s after %.1fs (%d kills) %s", o, s.elapsed, s.kills, reason)

	rec := s.Record()
	for _, fn := range s.finished {
		fn(rec)
	}
	return true
}

// Record summarises the mission for persistence.
func (s *State) Record() Record {
	if s == nil {
		return Record{}
	}
	return Record{
		Outcome: s.outcome.String(),
		Reason:  s.reason,
		Elapsed: s.elapsed,
		Kills:   s.kills,
	}
}

func (s *State) dispatch(ev Event) {
	if s.rules == nil {
		s.rules = BuiltinRules{}
	}
	s.rules.Handle(ev, s)
}
