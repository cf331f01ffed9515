package system

import (
	"testing"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
)

func spawnBullet(t *testing.T, w *ecs.World, pos common.Vec3, speed float64) ecs.Entity {
	t.Helper()
	tmpl := &component.ProjectileTemplate{Speed: speed, Damage: 10, Lifetime: 5, Radius: 0.2, HitEffectLifetime: 0.3, HitEffectRadius: 0.4}
	e, err := entity.NewProjectile(w, tmpl, pos, 0, 0, 3)
	if err != nil {
		t.Fatalf("NewProjectile: %v", err)
	}
	return e
}

func TestProjectileLifetime(t *testing.T) {
	w := ecs.NewWorld()
	bullet := spawnBullet(t, w, common.Vec3{}, 30)
	s := ecs.NewScheduler(NewProjectileSystem(newMission(t, true)))

	// A 5s lifetime at 60 ticks per second ends on tick 300.
	s.Run(w, 299, common.FixedDelta)
	if !ecs.IsAlive(w, bullet) {
		t.Fatalf("expected projectile alive after 299 ticks")
	}
	tr := mustGet(t, w, bullet, component.TransformComponent.Kind())
	if tr.Position.Z < 30*4.9 {
		t.Fatalf("expected projectile to travel along +Z, got %v", tr.Position)
	}

	s.Step(w, common.FixedDelta)
	if ecs.IsAlive(w, bullet) {
		t.Fatalf("expected projectile destroyed on tick 300 (t=%v)", w.Now())
	}
}

func TestProjectileHitsPlayer(t *testing.T) {
	tests := []struct {
		name       string
		gateDown   bool
		wantHealth int
	}{
		{name: "gate_down_damages", gateDown: true, wantHealth: 90},
		{name: "gate_intact_no_damage", gateDown: false, wantHealth: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addPlayer(t, w, common.Vec3{})
			bullet := spawnBullet(t, w, common.Vec3{X: 0.3}, 0)

			s := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(newMission(t, tc.gateDown)))
			s.Step(w, testDT)

			if ecs.IsAlive(w, bullet) {
				t.Fatalf("expected projectile destroyed on hit")
			}
			if got := mustGet(t, w, player, component.HealthComponent.Kind()).Current; got != tc.wantHealth {
				t.Fatalf("expected health %d, got %d", tc.wantHealth, got)
			}
			if countWith(w, component.EffectComponent.Kind()) != 1 {
				t.Fatalf("expected a hit effect")
			}

			s.Run(w, 10, testDT)
			if got := mustGet(t, w, player, component.HealthComponent.Kind()).Current; got != tc.wantHealth {
				t.Fatalf("expected no further damage, got %d", got)
			}
		})
	}
}

func TestProjectileDamageAppliedOnce(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	bullet := spawnBullet(t, w, common.Vec3{}, 0)

	// Duplicate contacts in one tick, in both orders.
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{A: bullet, B: player, Kind: ecs.ContactEnter}})
	w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: ecs.ContactEvent{A: player, B: bullet, Kind: ecs.ContactEnter}})

	ecs.NewScheduler(NewProjectileSystem(newMission(t, true))).Step(w, testDT)

	if got := mustGet(t, w, player, component.HealthComponent.Kind()).Current; got != 90 {
		t.Fatalf("expected a single 10 damage hit, got health %d", got)
	}
}

func TestProjectileIgnoresNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{Z: 50})
	robot := addRobot(t, w, common.Vec3{}, 0)
	mustAdd(t, ecs.Add(w, robot, component.ColliderComponent.Kind(), &component.Collider{Radius: 0.6, Group: 1}))
	bullet := spawnBullet(t, w, common.Vec3{X: 0.2}, 0)

	s := ecs.NewScheduler(NewPhysicsSystem(), NewProjectileSystem(newMission(t, true)))
	s.Run(w, 3, testDT)

	if !ecs.IsAlive(w, bullet) {
		t.Fatalf("expected projectile to pass through a robot")
	}
	if got := mustGet(t, w, robot, component.HealthComponent.Kind()).Current; got != 3 {
		t.Fatalf("expected robot untouched, got %d", got)
	}
}
