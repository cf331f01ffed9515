package component

// Carriable marks an item the player can pick up. The item loses its
// collider while carried and gets Radius back when dropped.
type Carriable struct {
	Name    string
	Radius  float64
	Carried bool
}

// Carrier holds at most one item HoldDistance in front of its owner.
type Carrier struct {
	Item         uint64 // ecs.Entity of the held item
	Holding      bool
	HoldDistance float64
}

// DropZone accepts a carried item while its carrier stands within Radius.
// The zone is used up by the first drop.
type DropZone struct {
	Radius float64
}

var CarriableComponent = NewComponent[Carriable]()
var CarrierComponent = NewComponent[Carrier]()
var DropZoneComponent = NewComponent[DropZone]()
