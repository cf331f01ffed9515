package system

import (
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// Walkable reports whether a point is on navigable ground.
type Walkable interface {
	Walkable(p common.Vec3) bool
}

// PlayerControlSystem applies the player's Input: movement blocked by
// unwalkable ground, carrying and dropping items, and an auto-aimed shot at
// the nearest target in weapon range. A shot spends a round when the player
// has an Ammo magazine and is refused when it is empty.
type PlayerControlSystem struct {
	ground Walkable
}

func NewPlayerControlSystem(ground Walkable) *PlayerControlSystem {
	return &PlayerControlSystem{ground: ground}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
		interact, fire := in.Interact, in.Fire
		in.Interact, in.Fire = false, false

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}

		if dir := in.Move.Flat(); dir.SqrLength() > 0 {
			if dir.SqrLength() > 1 {
				dir = dir.Normalized()
			}
			t.Yaw = common.YawOf(dir)
			s.move(t, dir.Scale(p.MoveSpeed*dt))
		}

		if interact {
			Interact(w, e)
		}
		if carrier, ok := ecs.Get(w, e, component.CarrierComponent.Kind()); ok {
			holdCarried(w, carrier, t)
		}

		if fire && s.spendRound(w, e) {
			if target, ok := NearestTarget(w, t.Position, p.WeaponRange); ok {
				Damage(w, target, e, p.WeaponDamage)
			}
		}
	})
}

// spendRound takes a round from the player's magazine. Players without one
// fire freely.
func (s *PlayerControlSystem) spendRound(w *ecs.World, player ecs.Entity) bool {
	ammo, ok := ecs.Get(w, player, component.AmmoComponent.Kind())
	if !ok {
		return true
	}
	return ammo.Spend()
}

// move slides along each axis separately so walls do not stop motion dead.
func (s *PlayerControlSystem) move(t *component.Transform, delta common.Vec3) {
	if s.ground == nil {
		t.Position = t.Position.Add(delta)
		return
	}
	if next := t.Position.Add(common.Vec3{X: delta.X}); s.ground.Walkable(next) {
		t.Position = next
	}
	if next := t.Position.Add(common.Vec3{Z: delta.Z}); s.ground.Walkable(next) {
		t.Position = next
	}
}

// NearestTarget finds the closest live robot or unexploded explosive within
// maxRange of pos. Carried items are never targets.
func NearestTarget(w *ecs.World, pos common.Vec3, maxRange float64) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := maxRange
	found := false
	consider := func(e ecs.Entity, t *component.Transform) {
		if d := common.Distance(pos.Flat(), t.Position.Flat()); d <= bestDist {
			best, bestDist, found = e, d, true
		}
	}

	ecs.ForEach2(w, component.RobotTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.RobotTag, t *component.Transform) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}
		consider(e, t)
	})
	ecs.ForEach2(w, component.ExplosiveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ex *component.Explosive, t *component.Transform) {
		if ex.Exploded {
			return
		}
		if c, ok := ecs.Get(w, e, component.CarriableComponent.Kind()); ok && c.Carried {
			return
		}
		consider(e, t)
	})
	return best, found
}
