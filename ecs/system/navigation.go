package system

import (
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// arriveEpsilon is how close an agent must get to a waypoint to advance.
const arriveEpsilon = 1e-6

// NavPlanner plans a walkable path between two points.
type NavPlanner interface {
	FindPath(from, to common.Vec3) ([]common.Vec3, bool)
}

// NavigationSystem resolves pending destinations into paths and moves agents
// along them, halting within their stopping distance of the destination.
type NavigationSystem struct {
	planner NavPlanner
}

func NewNavigationSystem(planner NavPlanner) *NavigationSystem {
	return &NavigationSystem{planner: planner}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, agent *component.NavAgent, t *component.Transform) {
		if agent.Pending {
			s.plan(agent, t.Position)
		}
		if agent.Stopped || !agent.HasPath() || agent.Speed <= 0 {
			return
		}
		if agent.RemainingDistance(t.Position) <= agent.StoppingDistance {
			return
		}
		step(agent, t, agent.Speed*dt)
	})
}

func (s *NavigationSystem) plan(agent *component.NavAgent, from common.Vec3) {
	agent.Pending = false
	agent.ClearPath()
	if s.planner == nil {
		return
	}
	path, ok := s.planner.FindPath(from, agent.Destination)
	if !ok {
		return
	}
	agent.Path = path
}

// step advances t up to budget units along the agent's path without passing
// the stopping point.
func step(agent *component.NavAgent, t *component.Transform, budget float64) {
	budget = min(budget, agent.RemainingDistance(t.Position)-agent.StoppingDistance)
	for budget > 0 && agent.HasPath() {
		wp := agent.Path[agent.Next]
		wp.Y = t.Position.Y

		offset := wp.Sub(t.Position)
		dist := offset.Length()
		if dist > 0 && agent.UpdateRotation {
			t.Yaw = common.YawOf(offset)
		}
		if dist <= budget+arriveEpsilon {
			t.Position = wp
			budget -= dist
			agent.Next++
			continue
		}
		t.Position = t.Position.Add(offset.Scale(budget / dist))
		return
	}
}
