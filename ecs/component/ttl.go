package component

// TTL destroys its entity once Seconds have elapsed on the world clock.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
