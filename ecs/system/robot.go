package system

import (
	"math/rand"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/mission"
)

// chaseTurnDeadZone is the squared horizontal offset below which a chasing
// robot does not turn.
const chaseTurnDeadZone = 0.01

// NavSampler snaps a point to the nearest navigable position within radius.
type NavSampler interface {
	SampleReachable(p common.Vec3, radius float64) (common.Vec3, bool)
}

// RobotSystem selects each robot's locomotion mode once per tick: idle while
// the gate stands, chasing when the player is within detection radius,
// wandering otherwise.
type RobotSystem struct {
	mission *mission.State
	sampler NavSampler
	rng     *rand.Rand
}

func NewRobotSystem(m *mission.State, sampler NavSampler, rng *rand.Rand) *RobotSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RobotSystem{mission: m, sampler: sampler, rng: rng}
}

func (s *RobotSystem) Update(w *ecs.World) {
	if w == nil || s.mission == nil {
		return
	}

	_, playerPos, ok := playerPosition(w)
	if !ok {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.RobotComponent.Kind(), func(e ecs.Entity, cfg *component.Robot) {
		state, ok := ecs.Get(w, e, component.RobotStateComponent.Kind())
		if !ok {
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		agent, ok := ecs.Get(w, e, component.NavAgentComponent.Kind())
		if !ok {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}

		if !state.Spawned {
			state.Spawned = true
			state.LastPosition = transform.Position
			s.pickWanderTarget(cfg, state, transform, agent)
		}

		if !s.mission.GateDestroyed() {
			state.Mode = component.ModeIdle
			state.Phase = component.WanderTraveling
			agent.Stopped = true
			return
		}

		if common.Distance(transform.Position, playerPos) <= cfg.DetectionRadius {
			s.chase(cfg, state, transform, agent, playerPos, dt)
			return
		}

		state.Mode = component.ModeWandering
		agent.UpdateRotation = true
		s.wander(cfg, state, transform, agent, dt)
	})
}

func (s *RobotSystem) chase(cfg *component.Robot, state *component.RobotState, t *component.Transform, agent *component.NavAgent, target common.Vec3, dt float64) {
	state.Mode = component.ModeChasing
	state.Phase = component.WanderTraveling
	agent.Stopped = false
	agent.UpdateRotation = false
	agent.StoppingDistance = cfg.StoppingDistance
	agent.SetDestination(target)

	dir := target.Sub(t.Position)
	dir.Y = 0
	if dir.SqrLength() > chaseTurnDeadZone {
		t.Yaw = common.LerpAngle(t.Yaw, common.YawOf(dir), cfg.RotationSpeed*dt)
	}
}

func playerPosition(w *ecs.World) (ecs.Entity, common.Vec3, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, common.Vec3{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return 0, common.Vec3{}, false
	}
	return player, t.Position, true
}
