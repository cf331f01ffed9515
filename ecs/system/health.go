package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
)

// HealthSystem regenerates health and handles each death exactly once:
// robots notify the mission, explode and are destroyed at the end of the
// tick, or after their DeathDelay with collider and navigation switched off;
// the player's death ends the mission.
type HealthSystem struct {
	mission   *mission.State
	explosion EffectConfig
}

func NewHealthSystem(m *mission.State, explosion EffectConfig) *HealthSystem {
	return &HealthSystem{mission: m, explosion: explosion}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.HealthComponent.Kind(), component.RegenComponent.Kind(), func(e ecs.Entity, h *component.Health, r *component.Regen) {
		regenerate(h, r, dt)
	})

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if !h.Dead || h.Reported {
			return
		}
		h.Reported = true
		s.die(w, e)
	})
}

func regenerate(h *component.Health, r *component.Regen, dt float64) {
	if h.Current < r.LastHealth {
		r.SinceDamage = 0
		r.Accum = 0
	}
	defer func() { r.LastHealth = h.Current }()

	if h.Dead || h.Current >= h.Max {
		return
	}
	r.SinceDamage += dt
	if !common.Reached(r.SinceDamage, r.Delay) {
		return
	}
	r.Accum += dt
	if common.Reached(r.Accum, r.Interval) {
		h.Heal(r.Amount)
		r.Accum = 0
	}
}

func (s *HealthSystem) die(w *ecs.World, e ecs.Entity) {
	var pos common.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	w.Events().Push(ecs.Event{Type: ecs.EventEntityDied, Data: ecs.DeathEvent{Entity: e, Position: pos}})

	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		log.Printf("health: player entity=%s died", e)
		s.mission.PlayerDied()
		return
	}

	if ecs.Has(w, e, component.RobotTagComponent.Kind()) {
		s.mission.OnEnemyDeath()
	}
	if s.explosion.TTL > 0 {
		if _, err := entity.NewEffect(w, component.EffectExplosion, pos, s.explosion.Radius, s.explosion.TTL); err != nil {
			log.Printf("health: entity=%s explosion: %v", e, err)
		}
	}
	if cfg, ok := ecs.Get(w, e, component.RobotComponent.Kind()); ok && cfg.DeathDelay > 0 {
		ecs.Remove(w, e, component.ColliderComponent.Kind())
		if agent, ok := ecs.Get(w, e, component.NavAgentComponent.Kind()); ok {
			agent.Stopped = true
		}
		scheduleDestroy(w, e, cfg.DeathDelay)
		return
	}
	ecs.QueueDestroy(w, e)
}

// applyDamage routes damage to whatever the target can take it with.
func applyDamage(w *ecs.World, target, source ecs.Entity, amount int) bool {
	if ex, ok := ecs.Get(w, target, component.ExplosiveComponent.Kind()); ok {
		if !ex.Armed || ex.Exploded {
			return false
		}
		ex.Triggered = true
		return true
	}
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || h.Dead || amount <= 0 {
		return false
	}
	h.ApplyDamage(amount)
	w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Data: ecs.DamageEvent{Target: target, Source: source, Amount: amount}})
	return true
}

// Damage applies amount to target from outside a system, e.g. player input.
// Explosives only react once armed.
func Damage(w *ecs.World, target, source ecs.Entity, amount int) bool {
	if w == nil || !ecs.IsAlive(w, target) {
		return false
	}
	return applyDamage(w, target, source, amount)
}
