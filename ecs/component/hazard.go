package component

// ContactDamage hurts the player on touch. When SelfDestruct is set the
// owner dies on contact. RequireGateDestroyed keeps it inert until the
// gate has fallen.
type ContactDamage struct {
	Damage               int
	SelfDestruct         bool
	RequireGateDestroyed bool
}

var ContactDamageComponent = NewComponent[ContactDamage]()
