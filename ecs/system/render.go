package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/nav"
	"github.com/milk9111/gatebreach/prefabs"
)

// Palette holds the resolved arena colours.
type Palette struct {
	Floor, Wall, Gate, Player, Robot, Bullet, Fuel, Effect, Waypoint color.Color
	DropZone, Ammo, Door, Keypad                                     color.Color
}

// NewPalette fills unset colours with defaults.
func NewPalette(spec prefabs.ArenaColorsSpec) Palette {
	return Palette{
		Floor:    spec.Floor.Or(color.NRGBA{R: 0x1c, G: 0x1f, B: 0x26, A: 0xff}),
		Wall:     spec.Wall.Or(color.NRGBA{R: 0x4a, G: 0x50, B: 0x60, A: 0xff}),
		Gate:     spec.Gate.Or(color.NRGBA{R: 0xc0, G: 0x8a, B: 0x2d, A: 0xff}),
		Player:   spec.Player.Or(color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}),
		Robot:    spec.Robot.Or(color.NRGBA{R: 0xe0, G: 0x53, B: 0x3d, A: 0xff}),
		Bullet:   spec.Bullet.Or(color.NRGBA{R: 0xff, G: 0xe0, B: 0x82, A: 0xff}),
		Fuel:     spec.Fuel.Or(color.NRGBA{R: 0x8b, G: 0xc3, B: 0x4a, A: 0xff}),
		Effect:   spec.Effect.Or(color.NRGBA{R: 0xff, G: 0xb7, B: 0x4d, A: 0xff}),
		Waypoint: spec.Waypoint.Or(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}),
		DropZone: spec.DropZone.Or(color.NRGBA{R: 0x8b, G: 0xc3, B: 0x4a, A: 0x60}),
		Ammo:     spec.Ammo.Or(color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}),
		Door:     spec.Door.Or(color.NRGBA{R: 0x79, G: 0x55, B: 0x48, A: 0xff}),
		Keypad:   spec.Keypad.Or(color.NRGBA{R: 0xba, G: 0x68, B: 0xc8, A: 0xff}),
	}
}

// RenderSystem draws the arena top-down, centred on the player. World X maps
// to screen right and world Z to screen up.
type RenderSystem struct {
	palette Palette
	walls   []nav.Rect
	bounds  nav.Rect
	// Debug adds detection rings and planned paths.
	Debug bool

	camX, camZ float64
}

func NewRenderSystem(palette Palette, walls []nav.Rect, bounds nav.Rect) *RenderSystem {
	return &RenderSystem{palette: palette, walls: walls, bounds: bounds}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if _, pos, ok := playerPosition(w); ok {
		r.camX, r.camZ = pos.X, pos.Z
	}

	screen.Fill(color.Black)
	r.fillRect(screen, r.bounds, r.palette.Floor)
	for _, wall := range r.walls {
		r.fillRect(screen, wall, r.palette.Wall)
	}

	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, g *component.Gate) {
		if g.Destroyed {
			return
		}
		if rect, ok := entity.GateRect(w, e); ok {
			r.fillRect(screen, rect, r.palette.Gate)
		}
	})

	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, d *component.Door) {
		if d.Open {
			return
		}
		if rect, ok := entity.DoorRect(w, e); ok {
			r.fillRect(screen, rect, r.palette.Door)
		}
	})
	ecs.ForEach2(w, component.KeypadComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, kp *component.Keypad, t *component.Transform) {
		clr := r.palette.Keypad
		switch kp.Feedback {
		case component.KeypadAccepted:
			clr = r.palette.Fuel
		case component.KeypadRejected:
			clr = r.palette.Robot
		}
		r.circle(screen, t.Position, 0.35, clr)
	})
	ecs.ForEach2(w, component.DropZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, z *component.DropZone, t *component.Transform) {
		r.circle(screen, t.Position, z.Radius, r.palette.DropZone)
	})
	ecs.ForEach2(w, component.AmmoPickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.AmmoPickup, t *component.Transform) {
		if p.Taken {
			return
		}
		r.circle(screen, t.Position, p.Radius, r.palette.Ammo)
	})

	ecs.ForEach2(w, component.ExplosiveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ex *component.Explosive, t *component.Transform) {
		if ex.Exploded {
			return
		}
		r.circle(screen, t.Position, 0.8, r.palette.Fuel)
		if ex.Armed {
			r.ring(screen, t.Position, 1.1, r.palette.Effect)
		}
	})

	ecs.ForEach2(w, component.RobotTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.RobotTag, t *component.Transform) {
		if r.Debug {
			r.debugRobot(screen, w, e, t)
		}
		r.circle(screen, t.Position, 0.6, r.palette.Robot)
		r.facing(screen, t, 1.2, r.palette.Robot)
	})

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		r.circle(screen, t.Position, 0.5, r.palette.Player)
		r.facing(screen, t, 1, r.palette.Player)
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		r.circle(screen, t.Position, 0.2*t.Scale, r.palette.Bullet)
	})

	ecs.ForEach2(w, component.EffectComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fx *component.Effect, t *component.Transform) {
		r.ring(screen, t.Position, fx.Radius, r.palette.Effect)
	})
}

func (r *RenderSystem) debugRobot(screen *ebiten.Image, w *ecs.World, e ecs.Entity, t *component.Transform) {
	if cfg, ok := ecs.Get(w, e, component.RobotComponent.Kind()); ok {
		r.ring(screen, t.Position, cfg.DetectionRadius, r.palette.Waypoint)
	}
	agent, ok := ecs.Get(w, e, component.NavAgentComponent.Kind())
	if !ok || !agent.HasPath() {
		return
	}
	prev := t.Position
	for _, wp := range agent.Path[agent.Next:] {
		x0, y0 := r.toScreen(prev)
		x1, y1 := r.toScreen(wp)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, r.palette.Waypoint, true)
		prev = wp
	}
}

func (r *RenderSystem) toScreen(p common.Vec3) (float32, float32) {
	x := (p.X-r.camX)*common.PixelsPerUnit + common.BaseWidth/2
	y := common.BaseHeight/2 - (p.Z-r.camZ)*common.PixelsPerUnit
	return float32(x), float32(y)
}

func (r *RenderSystem) fillRect(screen *ebiten.Image, rect nav.Rect, clr color.Color) {
	x, y := r.toScreen(common.Vec3{X: rect.MinX, Z: rect.MaxZ})
	wdt := float32((rect.MaxX - rect.MinX) * common.PixelsPerUnit)
	hgt := float32((rect.MaxZ - rect.MinZ) * common.PixelsPerUnit)
	vector.FillRect(screen, x, y, wdt, hgt, clr, false)
}

func (r *RenderSystem) circle(screen *ebiten.Image, p common.Vec3, radius float64, clr color.Color) {
	x, y := r.toScreen(p)
	vector.FillCircle(screen, x, y, float32(math.Max(radius*common.PixelsPerUnit, 1)), clr, true)
}

func (r *RenderSystem) ring(screen *ebiten.Image, p common.Vec3, radius float64, clr color.Color) {
	x, y := r.toScreen(p)
	vector.StrokeCircle(screen, x, y, float32(radius*common.PixelsPerUnit), 1, clr, true)
}

func (r *RenderSystem) facing(screen *ebiten.Image, t *component.Transform, length float64, clr color.Color) {
	x0, y0 := r.toScreen(t.Position)
	x1, y1 := r.toScreen(t.Position.Add(t.Forward().Scale(length)))
	vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
}
