package system

import (
	"math"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs/component"
)

const (
	stuckCheckInterval = 0.5
	stuckThreshold     = 0.1
	minWanderDistance  = 2.0
	minWanderRadius    = 5.0
	arrivalSlack       = 1.0
	wanderStopDistance = 1.0

	fallbackDistance     = 3.0
	fallbackSearchRadius = 5.0

	minWanderAttempts = 3
	maxWanderAttempts = 8 // exclusive
)

func (s *RobotSystem) wander(cfg *component.Robot, state *component.RobotState, t *component.Transform, agent *component.NavAgent, dt float64) {
	state.StuckTimer += dt
	if common.Reached(state.StuckTimer, stuckCheckInterval) {
		moved := common.Distance(t.Position, state.LastPosition)
		if moved < stuckThreshold && agent.HasPath() && state.Phase != component.WanderWaiting {
			s.pickWanderTarget(cfg, state, t, agent)
		}
		state.LastPosition = t.Position
		state.StuckTimer = 0
	}

	// A request still waiting on the planner has not arrived anywhere yet.
	arrived := !agent.PathPending() &&
		(!agent.HasPath() || agent.RemainingDistance(t.Position) <= agent.StoppingDistance+arrivalSlack)
	if !arrived {
		return
	}

	if state.Phase != component.WanderWaiting {
		state.Phase = component.WanderWaiting
		state.WaitTimer = s.randRange(cfg.MinWaitTime, cfg.MaxWaitTime)
	}
	state.WaitTimer -= dt
	if common.Expired(state.WaitTimer) {
		s.pickWanderTarget(cfg, state, t, agent)
	}
}

// pickWanderTarget samples a new wander destination. It reports false when
// neither the sampled attempts nor the short fallback found navigable ground;
// the previous target is kept in that case.
func (s *RobotSystem) pickWanderTarget(cfg *component.Robot, state *component.RobotState, t *component.Transform, agent *component.NavAgent) bool {
	if s.sampler == nil {
		return false
	}
	pos := t.Position

	attempts := minWanderAttempts + s.rng.Intn(maxWanderAttempts-minWanderAttempts)
	for i := 0; i < attempts; i++ {
		dist := s.randRange(minWanderRadius, cfg.WanderRadius)
		candidate := pos.Add(s.randomDirection().Scale(dist))

		hit, ok := s.sampler.SampleReachable(candidate, cfg.WanderRadius)
		if !ok || common.Distance(pos, hit) <= minWanderDistance {
			continue
		}
		agent.StoppingDistance = wanderStopDistance
		state.WanderTarget = hit
		state.HasTarget = true
		s.startTravel(state, pos, agent, hit)
		return true
	}

	candidate := pos.Add(s.randomDirection().Scale(fallbackDistance))
	hit, ok := s.sampler.SampleReachable(candidate, fallbackSearchRadius)
	if !ok {
		return false
	}
	s.startTravel(state, pos, agent, hit)
	return true
}

func (s *RobotSystem) startTravel(state *component.RobotState, pos common.Vec3, agent *component.NavAgent, dest common.Vec3) {
	agent.Stopped = false
	agent.SetDestination(dest)
	state.Phase = component.WanderTraveling
	state.StuckTimer = 0
	state.LastPosition = pos
}

func (s *RobotSystem) randomDirection() common.Vec3 {
	return common.Forward(s.rng.Float64() * 2 * math.Pi)
}

func (s *RobotSystem) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
