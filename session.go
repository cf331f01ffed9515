package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/ecs/system"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/spectate"
)

// spectateEvery is the number of ticks between spectator snapshots.
const spectateEvery = 6

// session is one mission run: a fresh world built from specs and the
// scheduler that advances it.
type session struct {
	seed  int64
	specs *entity.Specs
	world *ecs.World
	arena *entity.Arena
	sim   *ecs.Scheduler
	hub   *spectate.Hub
}

// newSession builds a fresh run. hub may be nil when nobody spectates.
func newSession(specs *entity.Specs, seed int64, interactive bool, records *mission.Records, hub *spectate.Hub) (*session, error) {
	w := ecs.NewWorld()
	arena, err := entity.BuildArena(w, specs)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	arena.Mission.OnFinish(func(rec mission.Record) {
		if records == nil {
			return
		}
		rec.Seed = seed
		if err := records.Append(rec); err != nil {
			log.Printf("session: save record: %v", err)
		}
	})

	rng := rand.New(rand.NewSource(seed))
	return &session{
		seed:  seed,
		specs: specs,
		world: w,
		arena: arena,
		sim:   system.NewSimulation(arena, specs, rng, interactive),
		hub:   hub,
	}, nil
}

func (s *session) step() {
	s.sim.Step(s.world, common.FixedDelta)
	if s.hub != nil && s.world.Clock().Tick%spectateEvery == 0 {
		s.hub.Publish(spectate.Capture(s.world, s.arena))
	}
}

// playerStatus is what the HUD shows about the player.
type playerStatus struct {
	HP, MaxHP     int
	Ammo, MaxAmmo int
	HasAmmo       bool
	Prompt        string
}

func (s *session) playerStatus() playerStatus {
	var st playerStatus
	if h, ok := ecs.Get(s.world, s.arena.Player, component.HealthComponent.Kind()); ok {
		st.HP, st.MaxHP = h.Current, h.Max
	}
	if a, ok := ecs.Get(s.world, s.arena.Player, component.AmmoComponent.Kind()); ok {
		st.Ammo, st.MaxAmmo, st.HasAmmo = a.Current, a.Max, true
	}
	st.Prompt = system.Prompt(s.world, s.arena.Player)
	return st
}

// reloadRobots applies the current robot prefab to every live robot.
func (s *session) reloadRobots(specs *entity.Specs) {
	s.specs.Robot, s.specs.Bullet = specs.Robot, specs.Bullet
	for _, r := range s.arena.Robots {
		if !ecs.IsAlive(s.world, r) {
			continue
		}
		if err := entity.ApplyRobotSpec(s.world, r, specs.Robot, specs.Bullet); err != nil {
			log.Printf("session: reload robot %s: %v", r, err)
		}
	}
}

// runHeadless plays a session without a window until the mission ends and its
// panel delay passes, or seconds of simulated time elapse.
func runHeadless(specs *entity.Specs, seed int64, seconds float64, records *mission.Records, hub *spectate.Hub) (mission.Record, error) {
	s, err := newSession(specs, seed, false, records, hub)
	if err != nil {
		return mission.Record{}, err
	}
	ticks := int(seconds * common.TPS)
	for i := 0; i < ticks && !s.arena.Mission.PanelShown(); i++ {
		s.step()
	}
	rec := s.arena.Mission.Record()
	rec.Seed = seed
	return rec, nil
}
