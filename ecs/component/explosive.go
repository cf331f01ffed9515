package component

// Explosive is the fuel canister. It must be armed before damage detonates
// it, and it detonates at most once.
type Explosive struct {
	Armed     bool
	Triggered bool
	Exploded  bool
	// Gate is the ecs.Entity destroyed by the blast.
	Gate uint64
	// DestroyDelay is how long the canister lingers after exploding.
	DestroyDelay float64
	EffectTTL    float64
}

var ExplosiveComponent = NewComponent[Explosive]()
