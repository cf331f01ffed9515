// Package spectate streams read-only mission snapshots to websocket viewers.
package spectate

import (
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
)

// ProtocolVersion is bumped whenever Snapshot changes shape.
const ProtocolVersion = 1

type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type Robot struct {
	ID     uint64  `json:"id"`
	Pos    Point   `json:"pos"`
	Yaw    float64 `json:"yaw"`
	Mode   string  `json:"mode"`
	Health int     `json:"health"`
}

type Player struct {
	Pos    Point `json:"pos"`
	Health int   `json:"health"`
	Max    int   `json:"max"`
	Ammo   int   `json:"ammo"`
}

type Mission struct {
	GateDestroyed bool    `json:"gateDestroyed"`
	EnemiesAlive  int     `json:"enemiesAlive"`
	Kills         int     `json:"kills"`
	TimeRemaining float64 `json:"timeRemaining"`
	Outcome       string  `json:"outcome"`
	Reason        string  `json:"reason,omitempty"`
}

// Snapshot is one tick of the mission as seen by a spectator.
type Snapshot struct {
	Ver         int     `json:"ver"`
	Type        string  `json:"type"`
	Tick        uint64  `json:"tick"`
	Time        float64 `json:"t"`
	Mission     Mission `json:"mission"`
	Player      *Player `json:"player,omitempty"`
	Robots      []Robot `json:"robots"`
	Projectiles []Point `json:"projectiles"`
}

// Capture reads the current state of an arena's world.
func Capture(w *ecs.World, a *entity.Arena) Snapshot {
	clock := w.Clock()
	m := a.Mission
	snap := Snapshot{
		Ver:  ProtocolVersion,
		Type: "state",
		Tick: clock.Tick,
		Time: clock.Now,
		Mission: Mission{
			GateDestroyed: m.GateDestroyed(),
			EnemiesAlive:  m.EnemiesAlive(),
			Kills:         m.Kills(),
			TimeRemaining: m.TimeRemaining(),
			Outcome:       m.Outcome().String(),
			Reason:        m.Reason(),
		},
		Robots:      []Robot{},
		Projectiles: []Point{},
	}

	if t, ok := ecs.Get(w, a.Player, component.TransformComponent.Kind()); ok {
		p := &Player{Pos: point(t)}
		if h, ok := ecs.Get(w, a.Player, component.HealthComponent.Kind()); ok {
			p.Health, p.Max = h.Current, h.Max
		}
		if am, ok := ecs.Get(w, a.Player, component.AmmoComponent.Kind()); ok {
			p.Ammo = am.Current
		}
		snap.Player = p
	}

	ecs.ForEach2(w, component.RobotStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, st *component.RobotState, t *component.Transform) {
		r := Robot{ID: uint64(e), Pos: point(t), Yaw: t.Yaw, Mode: st.Mode.String()}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			r.Health = h.Current
		}
		snap.Robots = append(snap.Robots, r)
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		snap.Projectiles = append(snap.Projectiles, point(t))
	})
	return snap
}

func point(t *component.Transform) Point {
	return Point{X: t.Position.X, Z: t.Position.Z}
}
