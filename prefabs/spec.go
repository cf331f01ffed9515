package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TransformSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Scale float64 `yaml:"scale"`
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
}

type NavAgentSpec struct {
	Speed            float64 `yaml:"speed"`
	StoppingDistance float64 `yaml:"stopping_distance"`
}

type ShooterSpec struct {
	Range         float64  `yaml:"range"`
	ShootInterval float64  `yaml:"shoot_interval"`
	AimHeight     float64  `yaml:"aim_height"`
	ShootingAngle float64  `yaml:"shooting_angle"`
	SpawnOffset   float64  `yaml:"spawn_offset"`
	Muzzle        Vec3Spec `yaml:"muzzle"`
	Projectile    string   `yaml:"projectile"`
}

type ContactDamageSpec struct {
	Damage               int  `yaml:"damage"`
	SelfDestruct         bool `yaml:"self_destruct"`
	RequireGateDestroyed bool `yaml:"require_gate_destroyed"`
}

type RobotSpec struct {
	Name             string            `yaml:"name"`
	DetectionRadius  float64           `yaml:"detection_radius"`
	StoppingDistance float64           `yaml:"stopping_distance"`
	RotationSpeed    float64           `yaml:"rotation_speed"`
	WanderRadius     float64           `yaml:"wander_radius"`
	MinWaitTime      float64           `yaml:"min_wait_time"`
	MaxWaitTime      float64           `yaml:"max_wait_time"`
	Health           int               `yaml:"health"`
	DeathDelay       float64           `yaml:"death_delay"`
	Nav              NavAgentSpec      `yaml:"nav"`
	Collider         ColliderSpec      `yaml:"collider"`
	Shooter          *ShooterSpec      `yaml:"shooter"`
	ContactDamage    ContactDamageSpec `yaml:"contact_damage"`
}

func LoadRobotSpec() (*RobotSpec, error) {
	spec, err := LoadSpec[RobotSpec]("robot.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BulletSpec struct {
	Name     string  `yaml:"name"`
	Speed    float64 `yaml:"speed"`
	Damage   int     `yaml:"damage"`
	Lifetime float64 `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
	Scale    float64 `yaml:"scale"`
	HitTTL   float64 `yaml:"hit_effect_ttl"`
	HitSize  float64 `yaml:"hit_effect_radius"`
}

func LoadBulletSpec(name string) (*BulletSpec, error) {
	if name == "" {
		name = "bullet.yaml"
	}
	spec, err := LoadSpec[BulletSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RegenSpec struct {
	Delay    float64 `yaml:"delay"`
	Amount   int     `yaml:"amount"`
	Interval float64 `yaml:"interval"`
}

type AmmoSpec struct {
	Start int `yaml:"start"`
	Max   int `yaml:"max"`
}

type PlayerSpec struct {
	Name         string        `yaml:"name"`
	MoveSpeed    float64       `yaml:"move_speed"`
	Interact     float64       `yaml:"interact_range"`
	HoldDistance float64       `yaml:"hold_distance"`
	WeaponRange  float64       `yaml:"weapon_range"`
	WeaponDamage int           `yaml:"weapon_damage"`
	Ammo         *AmmoSpec     `yaml:"ammo"`
	Health       int           `yaml:"health"`
	Regen        RegenSpec     `yaml:"regen"`
	Collider     ColliderSpec  `yaml:"collider"`
	Transform    TransformSpec `yaml:"transform"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type MissionSpec struct {
	TimeLimit  float64 `yaml:"time_limit"`
	PanelDelay float64 `yaml:"panel_delay"`
	Script     string  `yaml:"script"`
}

func LoadMissionSpec() (*MissionSpec, error) {
	spec, err := LoadSpec[MissionSpec]("mission.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RectSpec struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

type GateSpec struct {
	Blocker RectSpec `yaml:"blocker"`
}

type FuelSpec struct {
	Transform    TransformSpec `yaml:"transform"`
	Collider     ColliderSpec  `yaml:"collider"`
	DestroyDelay float64       `yaml:"destroy_delay"`
	// Carriable fuel must be carried to the drop zone to be armed.
	Carriable bool `yaml:"carriable"`
}

type DropZoneSpec struct {
	Transform TransformSpec `yaml:"transform"`
	Radius    float64       `yaml:"radius"`
}

type AmmoPickupSpec struct {
	Transform    TransformSpec `yaml:"transform"`
	Amount       int           `yaml:"amount"`
	RespawnDelay float64       `yaml:"respawn_delay"`
	Radius       float64       `yaml:"radius"`
}

type KeypadSpec struct {
	Transform TransformSpec `yaml:"transform"`
	Code      string        `yaml:"code"`
}

type DoorSpec struct {
	Blocker RectSpec   `yaml:"blocker"`
	Keypad  KeypadSpec `yaml:"keypad"`
}

type ArenaColorsSpec struct {
	Floor    *YAMLColor `yaml:"floor"`
	Wall     *YAMLColor `yaml:"wall"`
	Gate     *YAMLColor `yaml:"gate"`
	Player   *YAMLColor `yaml:"player"`
	Robot    *YAMLColor `yaml:"robot"`
	Bullet   *YAMLColor `yaml:"bullet"`
	Fuel     *YAMLColor `yaml:"fuel"`
	DropZone *YAMLColor `yaml:"drop_zone"`
	Ammo     *YAMLColor `yaml:"ammo"`
	Door     *YAMLColor `yaml:"door"`
	Keypad   *YAMLColor `yaml:"keypad"`
	Effect   *YAMLColor `yaml:"effect"`
	Waypoint *YAMLColor `yaml:"waypoint"`
}

type ArenaSpec struct {
	Name      string           `yaml:"name"`
	Width     float64          `yaml:"width"`
	Depth     float64          `yaml:"depth"`
	CellSize  float64          `yaml:"cell_size"`
	Walls     []RectSpec       `yaml:"walls"`
	Gate      GateSpec         `yaml:"gate"`
	Fuel      FuelSpec         `yaml:"fuel"`
	DropZone  *DropZoneSpec    `yaml:"drop_zone"`
	Ammo      []AmmoPickupSpec `yaml:"ammo_pickups"`
	Doors     []DoorSpec       `yaml:"doors"`
	Robots    []TransformSpec  `yaml:"robots"`
	Colors    ArenaColorsSpec  `yaml:"colors"`
	PlayerPos TransformSpec    `yaml:"player_spawn"`
}

func LoadArenaSpec(name string) (*ArenaSpec, error) {
	if name == "" {
		name = "arena.yaml"
	}
	spec, err := LoadSpec[ArenaSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EffectSpec struct {
	Radius float64 `yaml:"radius"`
	TTL    float64 `yaml:"ttl"`
}

type EffectsSpec struct {
	Explosion EffectSpec `yaml:"explosion"`
	Muzzle    EffectSpec `yaml:"muzzle"`
}

func LoadEffectsSpec() (*EffectsSpec, error) {
	spec, err := LoadSpec[EffectsSpec]("effects.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
