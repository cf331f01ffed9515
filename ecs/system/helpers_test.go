package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/mission"
)

const testDT = 1.0 / 60.0

type sampleCall struct {
	p      common.Vec3
	radius float64
}

// fakeSampler answers with fn, or echoes the candidate when fn is nil.
type fakeSampler struct {
	fn    func(p common.Vec3, radius float64) (common.Vec3, bool)
	calls []sampleCall
}

func (f *fakeSampler) SampleReachable(p common.Vec3, radius float64) (common.Vec3, bool) {
	f.calls = append(f.calls, sampleCall{p: p, radius: radius})
	if f.fn == nil {
		return p, true
	}
	return f.fn(p, radius)
}

// straightPlanner returns a direct path, or fails when fail is set.
type straightPlanner struct {
	fail bool
}

func (p straightPlanner) FindPath(from, to common.Vec3) ([]common.Vec3, bool) {
	if p.fail {
		return nil, false
	}
	return []common.Vec3{to}, true
}

func testRobotConfig() *component.Robot {
	return &component.Robot{
		DetectionRadius:  10,
		StoppingDistance: 5,
		RotationSpeed:    5,
		WanderRadius:     20,
		MinWaitTime:      0.5,
		MaxWaitTime:      2,
	}
}

func newMission(t *testing.T, gateDestroyed bool) *mission.State {
	t.Helper()
	m := mission.NewState(mission.Config{TimeLimit: 1000, PanelDelay: 2}, 5)
	if gateDestroyed {
		m.DestroyGate()
	}
	return m
}

func addPlayer(t *testing.T, w *ecs.World, pos common.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: 1}))
	mustAdd(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(100)))
	mustAdd(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: 0.5}))
	return e
}

func addRobot(t *testing.T, w *ecs.World, pos common.Vec3, yaw float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.RobotTagComponent.Kind(), &component.RobotTag{}))
	mustAdd(t, ecs.Add(w, e, component.RobotComponent.Kind(), testRobotConfig()))
	mustAdd(t, ecs.Add(w, e, component.RobotStateComponent.Kind(), &component.RobotState{}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Yaw: yaw, Scale: 1}))
	mustAdd(t, ecs.Add(w, e, component.NavAgentComponent.Kind(), &component.NavAgent{Stopped: true, UpdateRotation: true, StoppingDistance: 1}))
	mustAdd(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(3)))
	return e
}

func addShooter(t *testing.T, w *ecs.World, e ecs.Entity) *component.Shooter {
	t.Helper()
	sh := &component.Shooter{
		Range:         20,
		ShootInterval: 1,
		AimHeight:     1.5,
		ShootingAngle: 45,
		SpawnOffset:   1.5,
		Projectile:    &component.ProjectileTemplate{Speed: 30, Damage: 10, Lifetime: 5, Radius: 0.2},
	}
	mustAdd(t, ecs.Add(w, e, component.ShooterComponent.Kind(), sh))
	return sh
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %s missing component", e)
	}
	return v
}

func countWith[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
