package component

import "github.com/milk9111/gatebreach/common"

// Mode is the locomotion mode of a robot. Exactly one holds per tick.
type Mode int

const (
	ModeIdle Mode = iota
	ModeWandering
	ModeChasing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeWandering:
		return "wandering"
	case ModeChasing:
		return "chasing"
	default:
		return "unknown"
	}
}

// WanderPhase is the nested state while wandering.
type WanderPhase int

const (
	WanderTraveling WanderPhase = iota
	WanderWaiting
)

// Robot is the authored tuning of a hostile agent.
type Robot struct {
	DetectionRadius  float64
	StoppingDistance float64
	RotationSpeed    float64

	WanderRadius float64
	MinWaitTime  float64
	MaxWaitTime  float64

	// DeathDelay keeps a dead robot in the world this long before removal.
	DeathDelay float64
}

// RobotState is the per-agent runtime state owned by the robot system.
type RobotState struct {
	Mode  Mode
	Phase WanderPhase

	WaitTimer    float64
	WanderTarget common.Vec3
	HasTarget    bool

	LastPosition common.Vec3
	StuckTimer   float64

	// Spawned is set once the spawn-time wander target has been sampled.
	Spawned bool
}

// IsChasing is read by the weapon gate.
func (s *RobotState) IsChasing() bool {
	return s != nil && s.Mode == ModeChasing
}

var RobotComponent = NewComponent[Robot]()
var RobotStateComponent = NewComponent[RobotState]()
