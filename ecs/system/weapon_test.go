package system

import (
	"math"
	"testing"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

func TestWeaponPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		gateDown bool
		mode     component.Mode
		noState  bool
		noPlayer bool
		noProj   bool
		player   common.Vec3
		yaw      float64
		cooldown float64
		want     int
	}{
		{name: "fires_when_all_hold", gateDown: true, mode: component.ModeChasing, player: common.Vec3{Z: 8}, want: 1},
		{name: "gate_intact", gateDown: false, mode: component.ModeChasing, player: common.Vec3{Z: 8}},
		{name: "wandering", gateDown: true, mode: component.ModeWandering, player: common.Vec3{Z: 8}},
		{name: "idle", gateDown: true, mode: component.ModeIdle, player: common.Vec3{Z: 8}},
		{name: "no_mode_component", gateDown: true, noState: true, player: common.Vec3{Z: 8}, want: 1},
		{name: "out_of_range", gateDown: true, mode: component.ModeChasing, player: common.Vec3{Z: 20.5}},
		{name: "range_edge", gateDown: true, mode: component.ModeChasing, player: common.Vec3{Z: 20}, want: 1},
		{name: "outside_cone", gateDown: true, mode: component.ModeChasing, player: common.Vec3{X: 8, Z: 7}},
		{name: "inside_cone", gateDown: true, mode: component.ModeChasing, player: common.Vec3{X: 7, Z: 8}, want: 1},
		{name: "behind", gateDown: true, mode: component.ModeChasing, player: common.Vec3{Z: 8}, yaw: math.Pi},
		{name: "cooling_down", gateDown: true, mode: component.ModeChasing, player: common.Vec3{Z: 8}, cooldown: 0.5},
		{name: "no_projectile", gateDown: true, mode: component.ModeChasing, noProj: true, player: common.Vec3{Z: 8}},
		{name: "no_player", gateDown: true, mode: component.ModeChasing, noPlayer: true, player: common.Vec3{Z: 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if !tc.noPlayer {
				addPlayer(t, w, tc.player)
			}
			robot := addRobot(t, w, common.Vec3{}, tc.yaw)
			if tc.noState {
				ecs.Remove(w, robot, component.RobotStateComponent.Kind())
			} else {
				mustGet(t, w, robot, component.RobotStateComponent.Kind()).Mode = tc.mode
			}
			sh := addShooter(t, w, robot)
			sh.NextFireAt = tc.cooldown
			if tc.noProj {
				sh.Projectile = nil
			}

			ecs.NewScheduler(NewWeaponSystem(newMission(t, tc.gateDown), EffectConfig{})).Step(w, testDT)

			if got := countWith(w, component.ProjectileComponent.Kind()); got != tc.want {
				t.Fatalf("expected %d projectiles, got %d", tc.want, got)
			}
		})
	}
}

func TestWeaponFireInterval(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{Z: 8})
	robot := addRobot(t, w, common.Vec3{}, 0)
	mustGet(t, w, robot, component.RobotStateComponent.Kind()).Mode = component.ModeChasing
	sh := addShooter(t, w, robot)

	s := ecs.NewScheduler(NewWeaponSystem(newMission(t, true), EffectConfig{}))

	// Attempts at t=0, t=0.5 and t=1.1.
	s.Step(w, 0.5)
	if sh.ShotsFired != 1 {
		t.Fatalf("expected a shot at t=0, got %d", sh.ShotsFired)
	}
	s.Step(w, 0.6)
	if sh.ShotsFired != 1 {
		t.Fatalf("expected no shot at t=0.5, got %d", sh.ShotsFired)
	}
	s.Step(w, testDT)
	if sh.ShotsFired != 2 {
		t.Fatalf("expected a shot at t=1.1, got %d", sh.ShotsFired)
	}
	if math.Abs(sh.NextFireAt-2.1) > 1e-9 {
		t.Fatalf("expected next fire at 2.1, got %v", sh.NextFireAt)
	}
}

func TestWeaponCadenceAtFixedRate(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{Z: 8})
	robot := addRobot(t, w, common.Vec3{}, 0)
	mustGet(t, w, robot, component.RobotStateComponent.Kind()).Mode = component.ModeChasing
	sh := addShooter(t, w, robot)

	s := ecs.NewScheduler(NewWeaponSystem(newMission(t, true), EffectConfig{}))

	// Shots land on ticks 0, 60 and 120.
	s.Run(w, 60, common.FixedDelta)
	if sh.ShotsFired != 1 {
		t.Fatalf("expected one shot in the first second, got %d", sh.ShotsFired)
	}
	s.Step(w, common.FixedDelta)
	if sh.ShotsFired != 2 {
		t.Fatalf("expected a shot on tick 60, got %d", sh.ShotsFired)
	}
	s.Run(w, 60, common.FixedDelta)
	if sh.ShotsFired != 3 {
		t.Fatalf("expected a shot on tick 120, got %d", sh.ShotsFired)
	}
}

func TestWeaponProjectileSpawn(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{X: 6, Z: 8})
	robot := addRobot(t, w, common.Vec3{Y: 0}, common.YawOf(common.Vec3{X: 6, Z: 8}))
	mustGet(t, w, robot, component.RobotStateComponent.Kind()).Mode = component.ModeChasing
	mustAdd(t, ecs.Add(w, robot, component.ColliderComponent.Kind(), &component.Collider{Radius: 0.6, Group: 9}))
	sh := addShooter(t, w, robot)
	sh.MuzzleOffset = common.Vec3{Y: 1}

	ecs.NewScheduler(NewWeaponSystem(newMission(t, true), EffectConfig{Radius: 0.2, TTL: 0.1})).Step(w, testDT)

	var shot ecs.ShotEvent
	found := false
	for _, evt := range w.Events().Last() {
		if evt.Type == ecs.EventShotFired {
			shot, found = evt.Data.(ecs.ShotEvent)
		}
	}
	if !found || shot.Shooter != robot {
		t.Fatalf("expected a shot event from the robot, got %+v", w.Events().Last())
	}

	dir := common.Vec3{X: 0.6, Z: 0.8}
	wantPos := common.Vec3{Y: 1}.Add(dir.Scale(1.5))
	tr := mustGet(t, w, shot.Projectile, component.TransformComponent.Kind())
	if common.Distance(tr.Position, wantPos) > 1e-9 {
		t.Fatalf("expected spawn at %v, got %v", wantPos, tr.Position)
	}
	if math.Abs(common.WrapAngle(tr.Yaw-common.YawOf(dir))) > 1e-9 {
		t.Fatalf("expected horizontal heading toward player, got yaw %v", tr.Yaw)
	}
	col := mustGet(t, w, shot.Projectile, component.ColliderComponent.Kind())
	if col.Group != 9 {
		t.Fatalf("expected projectile to share the shooter's collision group, got %d", col.Group)
	}
	if countWith(w, component.EffectComponent.Kind()) != 1 {
		t.Fatalf("expected a muzzle flash")
	}
}
