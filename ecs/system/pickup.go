package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// AmmoPickupSystem hands out ammo when the player touches a pickup and brings
// taken pickups back once their respawn countdown runs out.
type AmmoPickupSystem struct{}

func NewAmmoPickupSystem() *AmmoPickupSystem {
	return &AmmoPickupSystem{}
}

func (s *AmmoPickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach(w, component.AmmoPickupComponent.Kind(), func(e ecs.Entity, p *component.AmmoPickup) {
		if !p.Taken {
			return
		}
		p.Respawn -= dt
		if !common.Expired(p.Respawn) {
			return
		}
		p.Taken = false
		if p.Radius > 0 {
			_ = ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: p.Radius})
		}
	})

	for _, c := range ecs.Contacts(w, ecs.ContactEnter) {
		s.collect(w, c.A, c.B)
		s.collect(w, c.B, c.A)
	}
}

func (s *AmmoPickupSystem) collect(w *ecs.World, pickup, other ecs.Entity) {
	p, ok := ecs.Get(w, pickup, component.AmmoPickupComponent.Kind())
	if !ok || p.Taken {
		return
	}
	ammo, ok := ecs.Get(w, other, component.AmmoComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Get(w, other, component.HealthComponent.Kind()); ok && h.Dead {
		return
	}

	ammo.Add(p.Amount)
	p.Taken = true
	p.Respawn = p.RespawnDelay
	ecs.Remove(w, pickup, component.ColliderComponent.Kind())
	log.Printf("pickup: entity=%s gave %d ammo (now %d)", pickup, p.Amount, ammo.Current)
}
