package system

import (
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/mission"
)

// MissionSystem advances the mission countdown and its delayed end panels.
type MissionSystem struct {
	mission *mission.State
}

func NewMissionSystem(m *mission.State) *MissionSystem {
	return &MissionSystem{mission: m}
}

func (s *MissionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.mission.Update(w.Delta())
}
