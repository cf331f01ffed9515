package component

// Ammo is the player's magazine. A shot is refused once it is empty.
type Ammo struct {
	Current int
	Max     int
}

// Add refills by n, capped at Max when Max is set.
func (a *Ammo) Add(n int) {
	if a == nil || n <= 0 {
		return
	}
	a.Current += n
	if a.Max > 0 && a.Current > a.Max {
		a.Current = a.Max
	}
}

// Spend uses one round and reports whether one was available.
func (a *Ammo) Spend() bool {
	if a == nil || a.Current <= 0 {
		return false
	}
	a.Current--
	return true
}

// AmmoPickup refills the player's ammo on touch and comes back after
// RespawnDelay. Its collider is removed while it is taken.
type AmmoPickup struct {
	Amount       int
	RespawnDelay float64
	Radius       float64

	Taken   bool
	Respawn float64
}

var AmmoComponent = NewComponent[Ammo]()
var AmmoPickupComponent = NewComponent[AmmoPickup]()
