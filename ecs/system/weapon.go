package system

import (
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
)

// WeaponSystem fires robot projectiles at the player. A robot fires only when
// the gate is down, it is chasing, the player is within range and inside the
// firing cone, and its cooldown has elapsed.
type WeaponSystem struct {
	mission *mission.State
	muzzle  EffectConfig
}

func NewWeaponSystem(m *mission.State, muzzle EffectConfig) *WeaponSystem {
	return &WeaponSystem{mission: m, muzzle: muzzle}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, playerPos, ok := playerPosition(w)
	if !ok {
		return
	}
	now := w.Now()

	ecs.ForEach2(w, component.ShooterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sh *component.Shooter, t *component.Transform) {
		if sh.Projectile == nil || !s.mission.GateDestroyed() {
			return
		}
		if state, ok := ecs.Get(w, e, component.RobotStateComponent.Kind()); ok && !state.IsChasing() {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}

		if common.Distance(t.Position, playerPos) > sh.Range {
			return
		}
		toPlayer := playerPos.Sub(t.Position).Normalized()
		if common.AngleBetween(t.Forward(), toPlayer) > sh.ShootingAngle {
			return
		}
		if !common.Reached(now, sh.NextFireAt) {
			return
		}

		s.fire(w, e, sh, t, playerPos)
		sh.NextFireAt = now + sh.ShootInterval
	})
}

func (s *WeaponSystem) fire(w *ecs.World, shooter ecs.Entity, sh *component.Shooter, t *component.Transform, target common.Vec3) {
	muzzle := t.Position.Add(common.RotateYaw(sh.MuzzleOffset, t.Yaw))

	aim := common.Vec3{X: target.X, Y: muzzle.Y + sh.AimHeight, Z: target.Z}
	dir := aim.Sub(muzzle).Normalized()
	dir.Y = 0
	dir = dir.Normalized()
	if dir.SqrLength() == 0 {
		dir = t.Forward()
	}

	spawn := muzzle.Add(dir.Scale(sh.SpawnOffset))
	var group uint
	if col, ok := ecs.Get(w, shooter, component.ColliderComponent.Kind()); ok {
		group = col.Group
	}

	bullet, err := entity.NewProjectile(w, sh.Projectile, spawn, common.YawOf(dir), shooter, group)
	if err != nil {
		log.Printf("weapon: entity=%s spawn projectile: %v", shooter, err)
		return
	}
	sh.ShotsFired++

	if s.muzzle.TTL > 0 {
		_, _ = entity.NewEffect(w, component.EffectMuzzle, spawn, s.muzzle.Radius, s.muzzle.TTL)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventShotFired, Data: ecs.ShotEvent{
		Shooter:    shooter,
		Projectile: bullet,
		Position:   spawn,
	}})
}
