package component

// Gate is the mission objective. Destroyed is written once by the fuel
// explosion and never cleared.
type Gate struct {
	Destroyed bool
	// HalfWidth and HalfDepth size the drawn barrier.
	HalfWidth float64
	HalfDepth float64
}

var GateComponent = NewComponent[Gate]()
