package mission

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Event is a mission decision point handed to Rules.
type Event string

const (
	EventGateDestroyed Event = "gate_destroyed"
	EventEnemyDeath    Event = "enemy_death"
	EventTimerExpired  Event = "timer_expired"
	EventPlayerDeath   Event = "player_death"
)

// Rules decides what a mission event means for the outcome.
type Rules interface {
	Handle(ev Event, s *State)
}

// BuiltinRules are used when no script is configured or a script fails.
type BuiltinRules struct{}

func (BuiltinRules) Handle(ev Event, s *State) {
	switch ev {
	case EventGateDestroyed:
		s.HideObjective()
		if s.EnemiesAlive() <= 0 {
			s.Victory()
		}
	case EventEnemyDeath:
		if s.GateDestroyed() && s.EnemiesAlive() <= 0 {
			s.Victory()
		}
	case EventTimerExpired:
		if !s.GateDestroyed() {
			s.Defeat(ReasonTimeExpired)
		}
	case EventPlayerDeath:
		s.Defeat(ReasonPlayerDied)
	}
}

// Each script must define on_gate_destroyed, on_enemy_death,
// on_timer_expired and on_player_death, all taking (engine, mission).
const missionDispatchScript = `
if __event == "gate_destroyed" {
	on_gate_destroyed(__engine, __mission)
} else if __event == "enemy_death" {
	on_enemy_death(__engine, __mission)
} else if __event == "timer_expired" {
	on_timer_expired(__engine, __mission)
} else if __event == "player_death" {
	on_player_death(__engine, __mission)
}
`

// ScriptRules runs mission decisions through a tengo script.
type ScriptRules struct {
	name     string
	compiled *tengo.Compiled
	fallback Rules
}

// NewScriptRules compiles src. name is only used in log lines.
func NewScriptRules(name string, src []byte) (*ScriptRules, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + missionDispatchScript))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__mission", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("mission: compile %s: %w", name, err)
	}
	return &ScriptRules{name: name, compiled: compiled, fallback: BuiltinRules{}}, nil
}

func (r *ScriptRules) Handle(ev Event, s *State) {
	if r == nil || r.compiled == nil {
		BuiltinRules{}.Handle(ev, s)
		return
	}
	if err := r.run(ev, s); err != nil {
		log.Printf("mission: script %s %s error: %v (using built-in rules)", r.name, ev, err)
		r.fallback.Handle(ev, s)
	}
}

func (r *ScriptRules) run(ev Event, s *State) error {
	if err := r.compiled.Set("__event", string(ev)); err != nil {
		return err
	}
	if err := r.compiled.Set("__engine", buildMissionEngine(s, r.name)); err != nil {
		return err
	}
	if err := r.compiled.Set("__mission", missionSnapshot(s)); err != nil {
		return err
	}
	return r.compiled.Run()
}

func buildMissionEngine(s *State, name string) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["victory"] = &tengo.UserFunction{Name: "victory", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.Victory()), nil
	}}

	values["defeat"] = &tengo.UserFunction{Name: "defeat", Value: func(args ...tengo.Object) (tengo.Object, error) {
		reason := ""
		if len(args) > 0 {
			reason = strings.TrimSpace(objectAsString(args[0]))
		}
		return boolObject(s.Defeat(reason)), nil
	}}

	values["hide_objective"] = &tengo.UserFunction{Name: "hide_objective", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s.HideObjective()
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("mission: [%s] %s", name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func missionSnapshot(s *State) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"gate_destroyed": boolObject(s.GateDestroyed()),
		"enemies_alive":  &tengo.Int{Value: int64(s.EnemiesAlive())},
		"kills":          &tengo.Int{Value: int64(s.Kills())},
		"time_remaining": &tengo.Float{Value: s.TimeRemaining()},
		"elapsed":        &tengo.Float{Value: s.Elapsed()},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
