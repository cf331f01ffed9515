package component

// EffectKind names a transient visual.
type EffectKind int

const (
	EffectHit EffectKind = iota
	EffectExplosion
	EffectMuzzle
)

// Effect is a visual-only entity, normally paired with a TTL.
type Effect struct {
	Kind   EffectKind
	Radius float64
}

var EffectComponent = NewComponent[Effect]()
