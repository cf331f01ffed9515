package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/nav"
	"github.com/milk9111/gatebreach/prefabs"
)

// Specs bundles every prefab an arena is built from.
type Specs struct {
	Robot   *prefabs.RobotSpec
	Bullet  *prefabs.BulletSpec
	Player  *prefabs.PlayerSpec
	Mission *prefabs.MissionSpec
	Arena   *prefabs.ArenaSpec
	Effects *prefabs.EffectsSpec
}

// LoadSpecs reads the prefabs of the named arena ("" for arena.yaml).
func LoadSpecs(arena string) (*Specs, error) {
	robot, err := prefabs.LoadRobotSpec()
	if err != nil {
		return nil, err
	}
	var bullet *prefabs.BulletSpec
	if robot.Shooter != nil {
		bullet, err = prefabs.LoadBulletSpec(robot.Shooter.Projectile)
		if err != nil {
			return nil, err
		}
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	missionSpec, err := prefabs.LoadMissionSpec()
	if err != nil {
		return nil, err
	}
	arenaSpec, err := prefabs.LoadArenaSpec(arena)
	if err != nil {
		return nil, err
	}
	effects, err := prefabs.LoadEffectsSpec()
	if err != nil {
		return nil, err
	}
	return &Specs{
		Robot:   robot,
		Bullet:  bullet,
		Player:  player,
		Mission: missionSpec,
		Arena:   arenaSpec,
		Effects: effects,
	}, nil
}

// Arena is a built mission: the navigation mesh, the mission coordinator and
// the handles of the authored entities.
type Arena struct {
	Mesh    *nav.Mesh
	Mission *mission.State
	Walls   []nav.Rect

	Player   ecs.Entity
	Gate     ecs.Entity
	Fuel     ecs.Entity
	DropZone ecs.Entity
	Doors    []ecs.Entity
	Keypads  []ecs.Entity
	Pickups  []ecs.Entity
	Robots   []ecs.Entity
}

// BuildArena populates w from specs. The gate blocks navigation until it is
// destroyed.
func BuildArena(w *ecs.World, specs *Specs) (*Arena, error) {
	if specs == nil || specs.Arena == nil {
		return nil, fmt.Errorf("arena: nil spec")
	}
	as := specs.Arena

	walls := make([]nav.Rect, 0, len(as.Walls))
	for _, r := range as.Walls {
		walls = append(walls, rectFromSpec(r))
	}
	blocker := rectFromSpec(as.Gate.Blocker)

	obstacles := append(append([]nav.Rect(nil), walls...), blocker)
	for _, d := range as.Doors {
		obstacles = append(obstacles, rectFromSpec(d.Blocker))
	}
	origin := common.Vec3{X: -as.Width / 2, Z: -as.Depth / 2}
	mesh, err := nav.NewMesh(origin, as.Width, as.Depth, as.CellSize, obstacles)
	if err != nil {
		return nil, fmt.Errorf("arena: build mesh: %w", err)
	}

	cfg := mission.DefaultConfig()
	if specs.Mission != nil {
		cfg.TimeLimit = specs.Mission.TimeLimit
		cfg.PanelDelay = specs.Mission.PanelDelay
	}
	state := mission.NewState(cfg, len(as.Robots))
	state.SetRules(loadRules(specs.Mission))

	arena := &Arena{Mesh: mesh, Mission: state, Walls: walls}

	if specs.Player != nil {
		player := *specs.Player
		if as.PlayerPos != (prefabs.TransformSpec{}) {
			player.Transform = as.PlayerPos
		}
		arena.Player, err = NewPlayer(w, &player)
		if err != nil {
			return nil, err
		}
	}

	arena.Gate, err = NewGate(w, blocker)
	if err != nil {
		return nil, err
	}

	explosion := prefabs.EffectSpec{Radius: 3, TTL: 1.5}
	if specs.Effects != nil {
		explosion = specs.Effects.Explosion
	}
	arena.Fuel, err = NewFuel(w, as.Fuel, arena.Gate, explosion.TTL)
	if err != nil {
		return nil, err
	}

	if as.DropZone != nil {
		arena.DropZone, err = NewDropZone(w, *as.DropZone)
		if err != nil {
			return nil, err
		}
	}

	for _, d := range as.Doors {
		door, err := NewDoor(w, rectFromSpec(d.Blocker))
		if err != nil {
			return nil, err
		}
		keypad, err := NewKeypad(w, d.Keypad, door)
		if err != nil {
			return nil, err
		}
		arena.Doors = append(arena.Doors, door)
		arena.Keypads = append(arena.Keypads, keypad)
	}

	for _, p := range as.Ammo {
		pickup, err := NewAmmoPickup(w, p)
		if err != nil {
			return nil, err
		}
		arena.Pickups = append(arena.Pickups, pickup)
	}

	for i, at := range as.Robots {
		robot, err := NewRobot(w, specs.Robot, specs.Bullet, at, uint(i+1))
		if err != nil {
			return nil, err
		}
		arena.Robots = append(arena.Robots, robot)
	}

	log.Printf("arena: built %q with %d robots", as.Name, len(arena.Robots))
	return arena, nil
}

// NewGate spawns the objective barrier covering blocker.
func NewGate(w *ecs.World, blocker nav.Rect) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: rectCenter(blocker), Scale: 1}); err != nil {
		return 0, fmt.Errorf("gate: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.GateComponent.Kind(), &component.Gate{
		HalfWidth: (blocker.MaxX - blocker.MinX) / 2,
		HalfDepth: (blocker.MaxZ - blocker.MinZ) / 2,
	}); err != nil {
		return 0, fmt.Errorf("gate: add gate: %w", err)
	}
	return entity, nil
}

// NewFuel spawns the explosive canister wired to gate.
func NewFuel(w *ecs.World, spec prefabs.FuelSpec, gate ecs.Entity, effectTTL float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("fuel: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.ExplosiveComponent.Kind(), &component.Explosive{
		Gate:         uint64(gate),
		DestroyDelay: spec.DestroyDelay,
		EffectTTL:    effectTTL,
	}); err != nil {
		return 0, fmt.Errorf("fuel: add explosive: %w", err)
	}
	if spec.Collider.Radius > 0 {
		if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Radius: spec.Collider.Radius}); err != nil {
			return 0, fmt.Errorf("fuel: add collider: %w", err)
		}
	}
	if spec.Carriable {
		if err := ecs.Add(w, entity, component.CarriableComponent.Kind(), &component.Carriable{Name: "fuel", Radius: spec.Collider.Radius}); err != nil {
			return 0, fmt.Errorf("fuel: add carriable: %w", err)
		}
		return entity, nil
	}
	// Fuel that cannot be carried starts armed.
	ex, _ := ecs.Get(w, entity, component.ExplosiveComponent.Kind())
	ex.Armed = true
	return entity, nil
}

// NewDropZone spawns the spot that arms carried fuel.
func NewDropZone(w *ecs.World, spec prefabs.DropZoneSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("drop zone: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.DropZoneComponent.Kind(), &component.DropZone{Radius: spec.Radius}); err != nil {
		return 0, fmt.Errorf("drop zone: add drop zone: %w", err)
	}
	return entity, nil
}

// NewDoor spawns a locked door covering blocker.
func NewDoor(w *ecs.World, blocker nav.Rect) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: rectCenter(blocker), Scale: 1}); err != nil {
		return 0, fmt.Errorf("door: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.DoorComponent.Kind(), &component.Door{
		Locked:    true,
		HalfWidth: (blocker.MaxX - blocker.MinX) / 2,
		HalfDepth: (blocker.MaxZ - blocker.MinZ) / 2,
	}); err != nil {
		return 0, fmt.Errorf("door: add door: %w", err)
	}
	return entity, nil
}

// NewKeypad spawns the code panel that opens door.
func NewKeypad(w *ecs.World, spec prefabs.KeypadSpec, door ecs.Entity) (ecs.Entity, error) {
	if spec.Code == "" {
		return 0, fmt.Errorf("keypad: empty code")
	}
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("keypad: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.KeypadComponent.Kind(), &component.Keypad{
		Door:  uint64(door),
		Code:  spec.Code,
		Limit: len(spec.Code),
	}); err != nil {
		return 0, fmt.Errorf("keypad: add keypad: %w", err)
	}
	return entity, nil
}

// NewAmmoPickup spawns a respawning ammo refill.
func NewAmmoPickup(w *ecs.World, spec prefabs.AmmoPickupSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("ammo pickup: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.AmmoPickupComponent.Kind(), &component.AmmoPickup{
		Amount:       spec.Amount,
		RespawnDelay: spec.RespawnDelay,
		Radius:       spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("ammo pickup: add pickup: %w", err)
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Radius: spec.Radius}); err != nil {
		return 0, fmt.Errorf("ammo pickup: add collider: %w", err)
	}
	return entity, nil
}

// GateRect returns the navigation footprint of a gate entity.
func GateRect(w *ecs.World, gate ecs.Entity) (nav.Rect, bool) {
	g, ok := ecs.Get(w, gate, component.GateComponent.Kind())
	if !ok {
		return nav.Rect{}, false
	}
	t, ok := ecs.Get(w, gate, component.TransformComponent.Kind())
	if !ok {
		return nav.Rect{}, false
	}
	return footprint(t.Position, g.HalfWidth, g.HalfDepth), true
}

// DoorRect returns the navigation footprint of a door entity.
func DoorRect(w *ecs.World, door ecs.Entity) (nav.Rect, bool) {
	d, ok := ecs.Get(w, door, component.DoorComponent.Kind())
	if !ok {
		return nav.Rect{}, false
	}
	t, ok := ecs.Get(w, door, component.TransformComponent.Kind())
	if !ok {
		return nav.Rect{}, false
	}
	return footprint(t.Position, d.HalfWidth, d.HalfDepth), true
}

func footprint(center common.Vec3, halfWidth, halfDepth float64) nav.Rect {
	return nav.Rect{
		MinX: center.X - halfWidth,
		MinZ: center.Z - halfDepth,
		MaxX: center.X + halfWidth,
		MaxZ: center.Z + halfDepth,
	}
}

func rectCenter(r nav.Rect) common.Vec3 {
	return common.Vec3{X: (r.MinX + r.MaxX) / 2, Z: (r.MinZ + r.MaxZ) / 2}
}

func loadRules(spec *prefabs.MissionSpec) mission.Rules {
	if spec == nil || spec.Script == "" {
		return mission.BuiltinRules{}
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		log.Printf("arena: load mission script %s: %v (using built-in rules)", spec.Script, err)
		return mission.BuiltinRules{}
	}
	rules, err := mission.NewScriptRules(spec.Script, src)
	if err != nil {
		log.Printf("arena: %v (using built-in rules)", err)
		return mission.BuiltinRules{}
	}
	return rules
}

func rectFromSpec(r prefabs.RectSpec) nav.Rect {
	return nav.Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ}
}
