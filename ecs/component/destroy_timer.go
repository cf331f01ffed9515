package component

// DestroyTimer is a countdown that queues its entity for destruction when it
// expires. It replaces delayed self-destruction after a death or explosion.
type DestroyTimer struct {
	Remaining float64
}

var DestroyTimerComponent = NewComponent[DestroyTimer]()
