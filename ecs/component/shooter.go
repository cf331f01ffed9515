package component

import "github.com/milk9111/gatebreach/common"

// ProjectileTemplate describes what a shooter spawns.
type ProjectileTemplate struct {
	Speed    float64
	Damage   int
	Lifetime float64
	Radius   float64
	Scale    float64
	// HitEffectLifetime is how long the impact effect lingers.
	HitEffectLifetime float64
	HitEffectRadius   float64
}

// Shooter is the weapon of a robot.
type Shooter struct {
	Range         float64
	ShootInterval float64
	AimHeight     float64
	// ShootingAngle is the half-angle in degrees of the firing cone.
	ShootingAngle float64
	SpawnOffset   float64
	// MuzzleOffset is relative to the transform, rotated by yaw.
	MuzzleOffset common.Vec3

	Projectile *ProjectileTemplate

	NextFireAt float64
	ShotsFired int
}

var ShooterComponent = NewComponent[Shooter]()
