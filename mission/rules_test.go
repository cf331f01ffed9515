package mission

import "testing"

const testScript = `
on_gate_destroyed := func(engine, mission) {
	engine.hide_objective()
	if mission.enemies_alive <= 0 {
		engine.victory()
	}
}

on_enemy_death := func(engine, mission) {
	if mission.gate_destroyed && mission.enemies_alive <= 0 {
		engine.victory()
	}
}

on_timer_expired := func(engine, mission) {
	engine.defeat("out of time")
}

on_player_death := func(engine, mission) {
	engine.log("player down after", mission.elapsed)
	engine.defeat("killed")
}
`

func TestScriptRules(t *testing.T) {
	rules, err := NewScriptRules("test", []byte(testScript))
	if err != nil {
		t.Fatalf("NewScriptRules: %v", err)
	}

	tests := []struct {
		name       string
		run        func(s *State)
		want       Outcome
		wantReason string
	}{
		{
			name: "victory",
			run: func(s *State) {
				s.DestroyGate()
				s.OnEnemyDeath()
			},
			want: OutcomeVictory,
		},
		{
			name:       "timer",
			run:        func(s *State) { step(s, 6) },
			want:       OutcomeDefeat,
			wantReason: "out of time",
		},
		{
			name:       "player_death",
			run:        func(s *State) { s.PlayerDied() },
			want:       OutcomeDefeat,
			wantReason: "killed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(Config{TimeLimit: 5}, 1)
			sink := &recordingSink{}
			s.SetSink(sink)
			s.SetRules(rules)
			tc.run(s)
			if s.Outcome() != tc.want || s.Reason() != tc.wantReason {
				t.Fatalf("expected %v %q, got %v %q", tc.want, tc.wantReason, s.Outcome(), s.Reason())
			}
		})
	}
}

func TestScriptRulesCompileError(t *testing.T) {
	if _, err := NewScriptRules("broken", []byte("on_gate_destroyed := func(")); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestScriptRulesFallBackOnRuntimeError(t *testing.T) {
	src := testScript + `
on_enemy_death = func(engine, mission) {
	mission.kills()
}
`
	rules, err := NewScriptRules("faulty", []byte(src))
	if err != nil {
		t.Fatalf("NewScriptRules: %v", err)
	}
	s := NewState(DefaultConfig(), 1)
	s.SetRules(rules)
	s.DestroyGate()
	s.OnEnemyDeath()
	if s.Outcome() != OutcomeVictory {
		t.Fatalf("expected built-in rules to decide victory, got %v", s.Outcome())
	}
}
