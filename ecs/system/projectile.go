package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"

	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
)

// ProjectileSystem resolves projectile hits reported by the physics system
// this tick, then moves surviving projectiles and counts down their lifetime.
type ProjectileSystem struct {
	mission *mission.State
}

func NewProjectileSystem(m *mission.State) *ProjectileSystem {
	return &ProjectileSystem{mission: m}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, c := range ecs.Contacts(w, ecs.ContactEnter) {
		s.resolve(w, c.A, c.B)
		s.resolve(w, c.B, c.A)
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if p.Resolved {
			return
		}
		t.Position = t.Position.Add(t.Forward().Scale(p.Speed * dt))
		p.Remaining -= dt
		if common.Expired(p.Remaining) {
			ecs.QueueDestroy(w, e)
		}
	})
}

// resolve handles projectile hitting other. Only the player stops a
// projectile; damage additionally requires the gate to be down.
func (s *ProjectileSystem) resolve(w *ecs.World, projectile, other ecs.Entity) {
	p, ok := ecs.Get(w, projectile, component.ProjectileComponent.Kind())
	if !ok || p.Resolved {
		return
	}
	if !ecs.Has(w, other, component.PlayerTagComponent.Kind()) {
		return
	}
	p.Resolved = true

	if s.mission.GateDestroyed() {
		applyDamage(w, other, ecs.Entity(p.Shooter), p.Damage)
	}

	if t, ok := ecs.Get(w, projectile, component.TransformComponent.Kind()); ok && p.HitEffectLifetime > 0 {
		if _, err := entity.NewEffect(w, component.EffectHit, t.Position, p.HitEffectRadius, p.HitEffectLifetime); err != nil {
			log.Printf("projectile: entity=%s hit effect: %v", projectile, err)
		}
	}
	ecs.QueueDestroy(w, projectile)
}
