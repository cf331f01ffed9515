package system

import (
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// PhysicsSystem mirrors colliders into the world's trigger space and
// publishes the resulting contacts as EventContact events for this tick.
type PhysicsSystem struct {
	physics *ecs.PhysicsWorld
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{physics: ecs.NewPhysicsWorld()}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		pw = s.physics
		w.SetPhysicsWorld(pw)
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, t *component.Transform) {
		if ecs.PendingDestroy(w, e) {
			pw.Remove(e)
			return
		}
		pw.Sync(e, t.Position, c.Radius, c.Group)
	})
	for _, e := range pw.Tracked() {
		if !ecs.Has(w, e, component.ColliderComponent.Kind()) {
			pw.Remove(e)
		}
	}

	for _, c := range pw.Step(w.Delta()) {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: c})
	}
}
