package component

// Projectile is a short-lived bullet moving along its transform's yaw.
type Projectile struct {
	Speed     float64
	Damage    int
	Remaining float64
	Shooter   uint64 // ecs.Entity of the firing robot

	HitEffectLifetime float64
	HitEffectRadius   float64
	// Resolved is set once the projectile hit something this tick.
	Resolved bool
}

var ProjectileComponent = NewComponent[Projectile]()
