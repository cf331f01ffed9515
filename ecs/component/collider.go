package component

// Collider is a circular trigger volume in the ground plane. Colliders that
// share a non-zero Group never report contacts with each other.
type Collider struct {
	Radius float64
	Group  uint
}

var ColliderComponent = NewComponent[Collider]()
