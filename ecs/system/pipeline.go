package system

import (
	"math/rand"

	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/entity"
)

// NewSimulation wires the systems of a built arena in tick order. Contacts
// from the physics step are consumed by the hit systems before anything
// moves; robots decide, navigate and shoot after damage has been applied.
// Input sampling is only added for interactive runs.
func NewSimulation(a *entity.Arena, specs *entity.Specs, rng *rand.Rand, interactive bool) *ecs.Scheduler {
	var blast, muzzle EffectConfig
	if specs != nil && specs.Effects != nil {
		blast = EffectConfig(specs.Effects.Explosion)
		muzzle = EffectConfig(specs.Effects.Muzzle)
	}

	s := ecs.NewScheduler()
	if interactive {
		s.Add(NewInputSystem())
	}
	s.Add(NewKeypadSystem(a.Mesh))
	s.Add(NewPlayerControlSystem(a.Mesh))
	s.Add(NewPhysicsSystem())
	s.Add(NewProjectileSystem(a.Mission))
	s.Add(NewContactDamageSystem(a.Mission))
	s.Add(NewAmmoPickupSystem())
	s.Add(NewExplosiveSystem(a.Mission, a.Mesh, blast))
	s.Add(NewHealthSystem(a.Mission, blast))
	s.Add(NewRobotSystem(a.Mission, a.Mesh, rng))
	s.Add(NewNavigationSystem(a.Mesh))
	s.Add(NewWeaponSystem(a.Mission, muzzle))
	s.Add(NewMissionSystem(a.Mission))
	s.Add(NewTTLSystem())
	return s
}
