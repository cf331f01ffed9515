package system

import (
	"testing"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/prefabs"
)

func addAmmoPickup(t *testing.T, w *ecs.World, pos common.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.NewAmmoPickup(w, prefabs.AmmoPickupSpec{
		Transform:    prefabs.TransformSpec{X: pos.X, Z: pos.Z},
		Amount:       15,
		RespawnDelay: 30,
		Radius:       0.7,
	})
	if err != nil {
		t.Fatalf("NewAmmoPickup: %v", err)
	}
	return e
}

func TestAmmoPickupRefills(t *testing.T) {
	tests := []struct {
		name    string
		current int
		dead    bool
		want    int
		taken   bool
	}{
		{name: "adds amount", current: 40, want: 55, taken: true},
		{name: "capped at max", current: 90, want: 99, taken: true},
		{name: "full magazine still takes it", current: 99, want: 99, taken: true},
		{name: "dead player", current: 40, dead: true, want: 40, taken: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addPlayer(t, w, common.Vec3{X: 5})
			mustAdd(t, ecs.Add(w, player, component.AmmoComponent.Kind(), &component.Ammo{Current: tt.current, Max: 99}))
			if tt.dead {
				mustGet(t, w, player, component.HealthComponent.Kind()).Kill()
			}
			pickup := addAmmoPickup(t, w, common.Vec3{X: 5})

			ecs.NewScheduler(NewPhysicsSystem(), NewAmmoPickupSystem()).Step(w, testDT)

			if got := mustGet(t, w, player, component.AmmoComponent.Kind()).Current; got != tt.want {
				t.Fatalf("expected %d rounds, got %d", tt.want, got)
			}
			if got := mustGet(t, w, pickup, component.AmmoPickupComponent.Kind()).Taken; got != tt.taken {
				t.Fatalf("expected taken=%v, got %v", tt.taken, got)
			}
			if got := ecs.Has(w, pickup, component.ColliderComponent.Kind()); got == tt.taken {
				t.Fatalf("expected collider present=%v", !tt.taken)
			}
		})
	}
}

func TestAmmoPickupIgnoresEntitiesWithoutAmmo(t *testing.T) {
	w := ecs.NewWorld()
	robot := addRobot(t, w, common.Vec3{X: 5}, 0)
	mustAdd(t, ecs.Add(w, robot, component.ColliderComponent.Kind(), &component.Collider{Radius: 0.5}))
	pickup := addAmmoPickup(t, w, common.Vec3{X: 5})

	ecs.NewScheduler(NewPhysicsSystem(), NewAmmoPickupSystem()).Step(w, testDT)

	if mustGet(t, w, pickup, component.AmmoPickupComponent.Kind()).Taken {
		t.Fatalf("expected pickup left for the player")
	}
}

func TestAmmoPickupRespawns(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	mustAdd(t, ecs.Add(w, player, component.AmmoComponent.Kind(), &component.Ammo{Current: 10, Max: 99}))
	pickup := addAmmoPickup(t, w, common.Vec3{})
	p := mustGet(t, w, pickup, component.AmmoPickupComponent.Kind())
	s := ecs.NewScheduler(NewPhysicsSystem(), NewAmmoPickupSystem())

	s.Step(w, testDT)
	if !p.Taken {
		t.Fatalf("expected pickup taken on touch")
	}
	mustGet(t, w, player, component.TransformComponent.Kind()).Position = common.Vec3{X: 10}

	s.Run(w, 1799, testDT)
	if !p.Taken || ecs.Has(w, pickup, component.ColliderComponent.Kind()) {
		t.Fatalf("expected pickup still gone before 30s")
	}
	s.Step(w, testDT)
	if p.Taken || !ecs.Has(w, pickup, component.ColliderComponent.Kind()) {
		t.Fatalf("expected pickup back after 30s")
	}
	if got := mustGet(t, w, player, component.AmmoComponent.Kind()).Current; got != 25 {
		t.Fatalf("expected a single refill, got %d rounds", got)
	}
}
