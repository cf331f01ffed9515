package component

// Door blocks navigation across its footprint until a keypad unlocks it.
type Door struct {
	Locked    bool
	Open      bool
	HalfWidth float64
	HalfDepth float64
}

type KeypadFeedback int

const (
	KeypadIdle KeypadFeedback = iota
	KeypadAccepted
	KeypadRejected
)

// Keypad collects digits typed by a nearby player and unlocks Door when the
// entry matches Code. After a submit the entry is shown with its feedback
// for ClearTimer seconds, then wiped.
type Keypad struct {
	Door  uint64 // ecs.Entity of the door
	Code  string
	Limit int

	Entry      string
	Feedback   KeypadFeedback
	ClearTimer float64
}

var DoorComponent = NewComponent[Door]()
var KeypadComponent = NewComponent[Keypad]()
