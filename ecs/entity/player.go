package entity

import (
	"fmt"

	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/prefabs"
)

const defaultHoldDistance = 1.2

// NewPlayer spawns the player at the prefab's transform.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		Interact:     spec.Interact,
		WeaponRange:  spec.WeaponRange,
		WeaponDamage: spec.WeaponDamage,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), component.NewHealth(maxInt(spec.Health, 1))); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if spec.Regen.Amount > 0 && spec.Regen.Interval > 0 {
		if err := ecs.Add(w, entity, component.RegenComponent.Kind(), &component.Regen{
			Delay:      spec.Regen.Delay,
			Amount:     spec.Regen.Amount,
			Interval:   spec.Regen.Interval,
			LastHealth: maxInt(spec.Health, 1),
		}); err != nil {
			return 0, fmt.Errorf("player: add regen: %w", err)
		}
	}

	if spec.Ammo != nil {
		ammo := &component.Ammo{Max: spec.Ammo.Max}
		ammo.Add(spec.Ammo.Start)
		if err := ecs.Add(w, entity, component.AmmoComponent.Kind(), ammo); err != nil {
			return 0, fmt.Errorf("player: add ammo: %w", err)
		}
	}

	hold := spec.HoldDistance
	if hold <= 0 {
		hold = defaultHoldDistance
	}
	if err := ecs.Add(w, entity, component.CarrierComponent.Kind(), &component.Carrier{HoldDistance: hold}); err != nil {
		return 0, fmt.Errorf("player: add carrier: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Radius: spec.Collider.Radius}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}

	return entity, nil
}
