package component

type Player struct {
	MoveSpeed float64
	// Interact is how close the player must be to arm fuel.
	Interact float64
	// WeaponRange and WeaponDamage drive the viewer's hitscan shot.
	WeaponRange  float64
	WeaponDamage int
}

var PlayerComponent = NewComponent[Player]()
