package system

import (
	"testing"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/prefabs"
)

func addDropZone(t *testing.T, w *ecs.World, pos common.Vec3) ecs.Entity {
	t.Helper()
	zone, err := entity.NewDropZone(w, prefabs.DropZoneSpec{
		Transform: prefabs.TransformSpec{X: pos.X, Z: pos.Z},
		Radius:    2,
	})
	if err != nil {
		t.Fatalf("NewDropZone: %v", err)
	}
	return zone
}

func interact(w *ecs.World, s *ecs.Scheduler, in *component.Input) {
	in.Interact = true
	s.Step(w, testDT)
}

func TestPickUpRequiresReach(t *testing.T) {
	tests := []struct {
		name     string
		playerZ  float64
		wantHeld bool
	}{
		{name: "close", playerZ: 9, wantHeld: true},
		{name: "edge of reach", playerZ: 8.5, wantHeld: true},
		{name: "too far", playerZ: 5, wantHeld: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, fuel := newFuelFixture(t, w, 0.5)
			player, in := addControlledPlayer(t, w, common.Vec3{Z: tt.playerZ})

			interact(w, ecs.NewScheduler(NewPlayerControlSystem(nil)), in)

			carrier := mustGet(t, w, player, component.CarrierComponent.Kind())
			if carrier.Holding != tt.wantHeld {
				t.Fatalf("expected holding=%v, got %v", tt.wantHeld, carrier.Holding)
			}
			if got := mustGet(t, w, fuel, component.CarriableComponent.Kind()).Carried; got != tt.wantHeld {
				t.Fatalf("expected carried=%v, got %v", tt.wantHeld, got)
			}
			if got := ecs.Has(w, fuel, component.ColliderComponent.Kind()); got == tt.wantHeld {
				t.Fatalf("expected collider present=%v while carried=%v", !tt.wantHeld, tt.wantHeld)
			}
		})
	}
}

func TestCarriedItemFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	_, fuel := newFuelFixture(t, w, 0.5)
	player, in := addControlledPlayer(t, w, common.Vec3{Z: 9})
	s := ecs.NewScheduler(NewPlayerControlSystem(nil))

	interact(w, s, in)
	for i := 0; i < 30; i++ {
		in.Move = common.Vec3{X: 1}
		s.Step(w, testDT)
	}

	pt := mustGet(t, w, player, component.TransformComponent.Kind())
	ft := mustGet(t, w, fuel, component.TransformComponent.Kind())
	want := pt.Position.Add(pt.Forward().Scale(1.2))
	if d := common.Distance(ft.Position, want); d > 1e-6 {
		t.Fatalf("expected fuel held at %v, got %v", want, ft.Position)
	}
	if pt.Position.X < 2.9 {
		t.Fatalf("expected the player to have moved, got %v", pt.Position)
	}
}

func TestDropOutsideZoneKeepsItem(t *testing.T) {
	w := ecs.NewWorld()
	_, fuel := newFuelFixture(t, w, 0.5)
	player, in := addControlledPlayer(t, w, common.Vec3{Z: 9})
	addDropZone(t, w, common.Vec3{X: 20})
	s := ecs.NewScheduler(NewPlayerControlSystem(nil))

	interact(w, s, in)
	interact(w, s, in)

	if !mustGet(t, w, player, component.CarrierComponent.Kind()).Holding {
		t.Fatalf("expected the item to stay in hand outside a drop zone")
	}
	if mustGet(t, w, fuel, component.ExplosiveComponent.Kind()).Armed {
		t.Fatalf("expected fuel to stay unarmed")
	}
}

func TestDropInZoneArmsFuel(t *testing.T) {
	w := ecs.NewWorld()
	_, fuel := newFuelFixture(t, w, 0.5)
	player, in := addControlledPlayer(t, w, common.Vec3{Z: 9})
	zone := addDropZone(t, w, common.Vec3{Z: 9})
	s := ecs.NewScheduler(NewPlayerControlSystem(nil))

	interact(w, s, in)
	if Damage(w, fuel, player, 1) {
		t.Fatalf("expected carried fuel to ignore damage")
	}
	interact(w, s, in)

	if mustGet(t, w, player, component.CarrierComponent.Kind()).Holding {
		t.Fatalf("expected the item to leave the player's hands")
	}
	if pos := mustGet(t, w, fuel, component.TransformComponent.Kind()).Position; pos != (common.Vec3{Z: 9}) {
		t.Fatalf("expected fuel placed on the zone, got %v", pos)
	}
	if !mustGet(t, w, fuel, component.ExplosiveComponent.Kind()).Armed {
		t.Fatalf("expected dropped fuel to be armed")
	}
	if got := mustGet(t, w, fuel, component.ColliderComponent.Kind()).Radius; got != 0.8 {
		t.Fatalf("expected collider restored, radius %v", got)
	}
	if ecs.Has(w, fuel, component.CarriableComponent.Kind()) {
		t.Fatalf("expected placed fuel to no longer be carriable")
	}
	if ecs.IsAlive(w, zone) {
		t.Fatalf("expected the drop zone to be used up")
	}
	if !Damage(w, fuel, player, 1) {
		t.Fatalf("expected armed fuel to react to damage")
	}
}

func TestCarriedFuelIsNotATarget(t *testing.T) {
	w := ecs.NewWorld()
	_, fuel := newFuelFixture(t, w, 0.5)
	_, in := addControlledPlayer(t, w, common.Vec3{Z: 9})

	if got, ok := NearestTarget(w, common.Vec3{Z: 9}, 25); !ok || got != fuel {
		t.Fatalf("expected fuel on the ground to be a target")
	}
	interact(w, ecs.NewScheduler(NewPlayerControlSystem(nil)), in)
	if _, ok := NearestTarget(w, common.Vec3{Z: 9}, 25); ok {
		t.Fatalf("expected carried fuel not to be a target")
	}
}

func TestPrompt(t *testing.T) {
	w := ecs.NewWorld()
	newFuelFixture(t, w, 0.5)
	player, in := addControlledPlayer(t, w, common.Vec3{Z: 9})
	addDropZone(t, w, common.Vec3{X: 10, Z: 9})
	s := ecs.NewScheduler(NewPlayerControlSystem(nil))
	tr := mustGet(t, w, player, component.TransformComponent.Kind())

	if got := Prompt(w, player); got != "Press E to pick up fuel" {
		t.Fatalf("unexpected prompt near fuel: %q", got)
	}
	interact(w, s, in)
	if got := Prompt(w, player); got != "Carrying fuel" {
		t.Fatalf("unexpected prompt while carrying: %q", got)
	}
	tr.Position = common.Vec3{X: 10, Z: 9}
	if got := Prompt(w, player); got != "Press E to drop fuel" {
		t.Fatalf("unexpected prompt in zone: %q", got)
	}
	tr.Position = common.Vec3{X: -20}
	s.Step(w, testDT)
	interact(w, s, in)
	if got := Prompt(w, player); got != "Carrying fuel" {
		t.Fatalf("unexpected prompt far from everything: %q", got)
	}
}
