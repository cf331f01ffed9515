package component

import "github.com/milk9111/gatebreach/common"

// Input stores per-tick input state for the player. Edge-triggered actions
// are cleared once consumed.
type Input struct {
	Move     common.Vec3
	Interact bool
	Fire     bool

	// Keys holds the digits typed this tick for a nearby keypad.
	Keys      string
	Submit    bool
	ClearCode bool
}

var InputComponent = NewComponent[Input]()
