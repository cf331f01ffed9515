package system

import (
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/mission"
)

// ContactDamageSystem hurts the player when a ContactDamage owner touches it.
// Self-destructing owners die on contact and are counted as kills.
type ContactDamageSystem struct {
	mission *mission.State
}

func NewContactDamageSystem(m *mission.State) *ContactDamageSystem {
	return &ContactDamageSystem{mission: m}
}

func (s *ContactDamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, c := range ecs.Contacts(w, ecs.ContactEnter) {
		s.touch(w, c.A, c.B)
		s.touch(w, c.B, c.A)
	}
}

func (s *ContactDamageSystem) touch(w *ecs.World, owner, other ecs.Entity) {
	cd, ok := ecs.Get(w, owner, component.ContactDamageComponent.Kind())
	if !ok || !ecs.Has(w, other, component.PlayerTagComponent.Kind()) {
		return
	}
	if cd.RequireGateDestroyed && !s.mission.GateDestroyed() {
		return
	}
	h, hasHealth := ecs.Get(w, owner, component.HealthComponent.Kind())
	if hasHealth && h.Dead {
		return
	}

	applyDamage(w, other, owner, cd.Damage)

	if !cd.SelfDestruct {
		return
	}
	if hasHealth {
		h.Kill()
		return
	}
	ecs.QueueDestroy(w, owner)
}
