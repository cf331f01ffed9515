package entity

import (
	"fmt"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/prefabs"
)

// NewRobot spawns a hostile agent at the given spawn point. bullet may be
// nil, in which case the robot's shooter never fires. group is the collision
// group shared with the robot's projectiles.
func NewRobot(w *ecs.World, spec *prefabs.RobotSpec, bullet *prefabs.BulletSpec, at prefabs.TransformSpec, group uint) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("robot: nil spec")
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.RobotTagComponent.Kind(), &component.RobotTag{}); err != nil {
		return 0, fmt.Errorf("robot: add robot tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(at)); err != nil {
		return 0, fmt.Errorf("robot: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.RobotStateComponent.Kind(), &component.RobotState{}); err != nil {
		return 0, fmt.Errorf("robot: add robot state: %w", err)
	}

	if err := ecs.Add(w, entity, component.NavAgentComponent.Kind(), &component.NavAgent{Stopped: true, UpdateRotation: true}); err != nil {
		return 0, fmt.Errorf("robot: add nav agent: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(maxInt(spec.Health, 1))); err != nil {
		return 0, fmt.Errorf("robot: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Collider.Radius,
		Group:  group,
	}); err != nil {
		return 0, fmt.Errorf("robot: add collider: %w", err)
	}

	if err := ApplyRobotSpec(w, entity, spec, bullet); err != nil {
		return 0, err
	}

	return entity, nil
}

// ApplyRobotSpec (re)writes the tuning components of a live robot. Runtime
// state such as the current mode and fire cooldown is preserved.
func ApplyRobotSpec(w *ecs.World, e ecs.Entity, spec *prefabs.RobotSpec, bullet *prefabs.BulletSpec) error {
	if spec == nil {
		return fmt.Errorf("robot: nil spec")
	}

	if err := ecs.Add(w, e, component.RobotComponent.Kind(), &component.Robot{
		DetectionRadius:  spec.DetectionRadius,
		StoppingDistance: spec.StoppingDistance,
		RotationSpeed:    spec.RotationSpeed,
		WanderRadius:     spec.WanderRadius,
		MinWaitTime:      spec.MinWaitTime,
		MaxWaitTime:      spec.MaxWaitTime,
		DeathDelay:       spec.DeathDelay,
	}); err != nil {
		return fmt.Errorf("robot: add robot: %w", err)
	}

	if agent, ok := ecs.Get(w, e, component.NavAgentComponent.Kind()); ok {
		agent.Speed = spec.Nav.Speed
		if agent.StoppingDistance == 0 {
			agent.StoppingDistance = spec.Nav.StoppingDistance
		}
	}

	if spec.ContactDamage.Damage > 0 {
		if err := ecs.Add(w, e, component.ContactDamageComponent.Kind(), &component.ContactDamage{
			Damage:               spec.ContactDamage.Damage,
			SelfDestruct:         spec.ContactDamage.SelfDestruct,
			RequireGateDestroyed: spec.ContactDamage.RequireGateDestroyed,
		}); err != nil {
			return fmt.Errorf("robot: add contact damage: %w", err)
		}
	} else {
		ecs.Remove(w, e, component.ContactDamageComponent.Kind())
	}

	if spec.Shooter == nil {
		ecs.Remove(w, e, component.ShooterComponent.Kind())
		return nil
	}

	shooter := &component.Shooter{}
	if prev, ok := ecs.Get(w, e, component.ShooterComponent.Kind()); ok {
		shooter.NextFireAt = prev.NextFireAt
		shooter.ShotsFired = prev.ShotsFired
	}
	shooter.Range = spec.Shooter.Range
	shooter.ShootInterval = spec.Shooter.ShootInterval
	shooter.AimHeight = spec.Shooter.AimHeight
	shooter.ShootingAngle = spec.Shooter.ShootingAngle
	shooter.SpawnOffset = spec.Shooter.SpawnOffset
	shooter.MuzzleOffset = common.Vec3{X: spec.Shooter.Muzzle.X, Y: spec.Shooter.Muzzle.Y, Z: spec.Shooter.Muzzle.Z}
	shooter.Projectile = ProjectileTemplate(bullet)

	if err := ecs.Add(w, e, component.ShooterComponent.Kind(), shooter); err != nil {
		return fmt.Errorf("robot: add shooter: %w", err)
	}
	return nil
}

// ProjectileTemplate converts a bullet spec; nil stays nil.
func ProjectileTemplate(spec *prefabs.BulletSpec) *component.ProjectileTemplate {
	if spec == nil {
		return nil
	}
	return &component.ProjectileTemplate{
		Speed:             spec.Speed,
		Damage:            spec.Damage,
		Lifetime:          spec.Lifetime,
		Radius:            spec.Radius,
		Scale:             spec.Scale,
		HitEffectLifetime: spec.HitTTL,
		HitEffectRadius:   spec.HitSize,
	}
}

func transformFromSpec(t prefabs.TransformSpec) *component.Transform {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return &component.Transform{
		Position: common.Vec3{X: t.X, Y: t.Y, Z: t.Z},
		Yaw:      t.Yaw,
		Scale:    scale,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
