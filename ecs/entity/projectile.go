package entity

import (
	"fmt"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
)

// NewProjectile spawns a bullet at pos travelling along yaw. It joins the
// shooter's collision group so it never reports contacts with its owner.
func NewProjectile(w *ecs.World, tmpl *component.ProjectileTemplate, pos common.Vec3, yaw float64, shooter ecs.Entity, group uint) (ecs.Entity, error) {
	if tmpl == nil {
		return 0, fmt.Errorf("projectile: nil template")
	}

	entity := ecs.CreateEntity(w)

	scale := tmpl.Scale
	if scale == 0 {
		scale = 1
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Yaw:      yaw,
		Scale:    scale,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ProjectileComponent.Kind(), &component.Projectile{
		Speed:             tmpl.Speed,
		Damage:            tmpl.Damage,
		Remaining:         tmpl.Lifetime,
		Shooter:           uint64(shooter),
		HitEffectLifetime: tmpl.HitEffectLifetime,
		HitEffectRadius:   tmpl.HitEffectRadius,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}

	radius := tmpl.Radius
	if radius <= 0 {
		radius = 0.2
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Radius: radius, Group: group}); err != nil {
		return 0, fmt.Errorf("projectile: add collider: %w", err)
	}

	return entity, nil
}

// NewEffect spawns a visual-only entity that expires after ttl seconds.
func NewEffect(w *ecs.World, kind component.EffectKind, pos common.Vec3, radius, ttl float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: 1}); err != nil {
		return 0, fmt.Errorf("effect: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.EffectComponent.Kind(), &component.Effect{Kind: kind, Radius: radius}); err != nil {
		return 0, fmt.Errorf("effect: add effect: %w", err)
	}
	if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Seconds: ttl}); err != nil {
		return 0, fmt.Errorf("effect: add ttl: %w", err)
	}

	return entity, nil
}
