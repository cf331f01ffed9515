package component

import "github.com/milk9111/gatebreach/common"

// NavAgent is the navigation-service state of a moving entity. Setting a
// destination marks the path pending; the navigation system plans it on its
// next update.
type NavAgent struct {
	Speed            float64
	StoppingDistance float64
	Stopped          bool
	// UpdateRotation lets the agent face its direction of travel.
	UpdateRotation bool

	Destination common.Vec3
	Pending     bool
	Path        []common.Vec3
	// Next indexes the path waypoint being approached.
	Next int
}

// SetDestination requests a path to p.
func (a *NavAgent) SetDestination(p common.Vec3) {
	a.Destination = p
	a.Pending = true
}

// HasPath reports whether unreached waypoints remain.
func (a *NavAgent) HasPath() bool {
	return a != nil && a.Next < len(a.Path)
}

// PathPending reports whether a requested path has not been planned yet.
func (a *NavAgent) PathPending() bool {
	return a != nil && a.Pending
}

// RemainingDistance is the path length from pos through the unreached
// waypoints.
func (a *NavAgent) RemainingDistance(pos common.Vec3) float64 {
	if !a.HasPath() {
		return 0
	}
	total := 0.0
	prev := pos.Flat()
	for _, wp := range a.Path[a.Next:] {
		total += common.Distance(prev, wp.Flat())
		prev = wp.Flat()
	}
	return total
}

// ClearPath drops the current path.
func (a *NavAgent) ClearPath() {
	a.Path = nil
	a.Next = 0
}

var NavAgentComponent = NewComponent[NavAgent]()
