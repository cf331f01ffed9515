package common

// timeEpsilon absorbs the drift of summing FixedDelta once per tick.
const timeEpsilon = 1e-9

// Expired reports whether a countdown has run out.
func Expired(remaining float64) bool {
	return remaining <= timeEpsilon
}

// Reached reports whether an accumulated duration has reached limit.
func Reached(elapsed, limit float64) bool {
	return elapsed+timeEpsilon >= limit
}
