package system

// EffectConfig sizes a transient visual spawned by a system. A zero TTL
// disables the effect.
type EffectConfig struct {
	Radius float64
	TTL    float64
}
