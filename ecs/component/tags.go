package component

// PlayerTag marks the entity that robots hunt and projectiles damage.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// RobotTag marks hostile agents counted by the mission.
type RobotTag struct{}

var RobotTagComponent = NewComponent[RobotTag]()
