package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs"
	"github.com/milk9111/gatebreach/ecs/component"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/nav"
	"github.com/milk9111/gatebreach/spectate"
)

// Terminal cells are roughly twice as tall as wide, so one world unit spans
// two columns and one row.
const (
	termColsPerUnit = 2
	// termMoveTicks is how long a key press keeps the player moving; terminals
	// report no key releases.
	termMoveTicks = 8
)

var (
	termWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	termGate   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	termPlayer = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	termRobot  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	termBullet = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	termFuel   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	termZone   = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	termDoor   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	termPad    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	termAmmo   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	termText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// terminalView draws a session as text, centred on the player.
type terminalView struct {
	screen tcell.Screen
	bounds nav.Rect
}

func newTerminalView(screen tcell.Screen, specs *entity.Specs) *terminalView {
	as := specs.Arena
	return &terminalView{
		screen: screen,
		bounds: nav.Rect{MinX: -as.Width / 2, MinZ: -as.Depth / 2, MaxX: as.Width / 2, MaxZ: as.Depth / 2},
	}
}

func (v *terminalView) draw(s *session) {
	v.screen.Clear()
	width, height := v.screen.Size()
	var cam common.Vec3
	if t, ok := ecs.Get(s.world, s.arena.Player, component.TransformComponent.Kind()); ok {
		cam = t.Position
	}

	toWorld := func(col, row int) common.Vec3 {
		return common.Vec3{
			X: cam.X + float64(col-width/2)/termColsPerUnit,
			Z: cam.Z - float64(row-height/2),
		}
	}
	toScreen := func(p common.Vec3) (int, int) {
		col := width/2 + int(math.Round((p.X-cam.X)*termColsPerUnit))
		row := height/2 - int(math.Round(p.Z-cam.Z))
		return col, row
	}

	gate, gateUp := v.gateRect(s)
	doors := v.closedDoors(s)
	for row := 1; row < height; row++ {
		for col := 0; col < width; col++ {
			p := toWorld(col, row)
			switch {
			case !contains(v.bounds, p):
				v.screen.SetContent(col, row, '░', nil, termWall)
			case gateUp && contains(gate, p):
				v.screen.SetContent(col, row, '▒', nil, termGate)
			case insideAny(doors, p):
				v.screen.SetContent(col, row, '▒', nil, termDoor)
			case insideAny(s.arena.Walls, p):
				v.screen.SetContent(col, row, '█', nil, termWall)
			}
		}
	}

	ecs.ForEach2(s.world, component.DropZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.DropZone, t *component.Transform) {
		col, row := toScreen(t.Position)
		v.put(col, row, "○", termZone)
	})
	ecs.ForEach2(s.world, component.KeypadComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Keypad, t *component.Transform) {
		col, row := toScreen(t.Position)
		v.put(col, row, "#", termPad)
	})
	ecs.ForEach2(s.world, component.AmmoPickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.AmmoPickup, t *component.Transform) {
		if p.Taken {
			return
		}
		col, row := toScreen(t.Position)
		v.put(col, row, "a", termAmmo)
	})
	ecs.ForEach2(s.world, component.ExplosiveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ex *component.Explosive, t *component.Transform) {
		if ex.Exploded {
			return
		}
		glyph := "f"
		if ex.Armed {
			glyph = "F"
		}
		col, row := toScreen(t.Position)
		v.put(col, row, glyph, termFuel)
	})
	ecs.ForEach2(s.world, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		col, row := toScreen(t.Position)
		v.put(col, row, "•", termBullet)
	})
	ecs.ForEach2(s.world, component.RobotStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, st *component.RobotState, t *component.Transform) {
		glyph := "r"
		if st.IsChasing() {
			glyph = "R"
		}
		col, row := toScreen(t.Position)
		v.put(col, row, glyph, termRobot)
	})
	if t, ok := ecs.Get(s.world, s.arena.Player, component.TransformComponent.Kind()); ok {
		col, row := toScreen(t.Position)
		v.put(col, row, "@", termPlayer)
	}

	v.status(s, width)
	v.screen.Show()
}

// put draws one glyph at (col, row), padding wide glyphs.
func (v *terminalView) put(col, row int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	v.screen.SetContent(col, row, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		v.screen.SetContent(col+1, row, ' ', nil, style)
	}
}

func (v *terminalView) status(s *session, width int) {
	m := s.arena.Mission
	st := s.playerStatus()

	line := fmt.Sprintf(" HP %d/%d", st.HP, st.MaxHP)
	if st.HasAmmo {
		line += fmt.Sprintf("  ammo %d", st.Ammo)
	}
	line += fmt.Sprintf("  hostiles %d  kills %d", m.EnemiesAlive(), m.Kills())
	switch {
	case m.Outcome() == mission.OutcomeVictory:
		line += "  MISSION COMPLETE (r restart, q quit)"
	case m.Outcome() == mission.OutcomeDefeat:
		line += "  MISSION FAILED: " + m.Reason() + " (r restart, q quit)"
	case m.TimerRunning():
		line += "  time " + mission.FormatTimer(m.TimeRemaining()) + "  objective: carry the fuel (e) to the gate and shoot it (space)"
	default:
		line += "  gate down"
	}
	if st.Prompt != "" {
		line += "  | " + st.Prompt
	}
	line = runewidth.Truncate(line, width, "…")

	col := 0
	for _, r := range line {
		v.screen.SetContent(col, 0, r, nil, termText)
		col += runewidth.RuneWidth(r)
	}
}

func (v *terminalView) gateRect(s *session) (nav.Rect, bool) {
	g, ok := ecs.Get(s.world, s.arena.Gate, component.GateComponent.Kind())
	if !ok || g.Destroyed {
		return nav.Rect{}, false
	}
	return entity.GateRect(s.world, s.arena.Gate)
}

func (v *terminalView) closedDoors(s *session) []nav.Rect {
	var rects []nav.Rect
	for _, door := range s.arena.Doors {
		d, ok := ecs.Get(s.world, door, component.DoorComponent.Kind())
		if !ok || d.Open {
			continue
		}
		if r, ok := entity.DoorRect(s.world, door); ok {
			rects = append(rects, r)
		}
	}
	return rects
}

func contains(r nav.Rect, p common.Vec3) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Z >= r.MinZ && p.Z < r.MaxZ
}

func insideAny(rects []nav.Rect, p common.Vec3) bool {
	for _, r := range rects {
		if contains(r, p) {
			return true
		}
	}
	return false
}

// termAction is a decoded key press.
type termAction int

const (
	termNone termAction = iota
	termMove
	termInteract
	termFire
	termDigit
	termSubmit
	termClear
	termRestart
	termQuit
)

// keyToAction maps a key to an action and, for movement, a direction.
func keyToAction(ev *tcell.EventKey) (termAction, common.Vec3) {
	switch ev.Key() {
	case tcell.KeyUp:
		return termMove, common.Vec3{Z: 1}
	case tcell.KeyDown:
		return termMove, common.Vec3{Z: -1}
	case tcell.KeyLeft:
		return termMove, common.Vec3{X: -1}
	case tcell.KeyRight:
		return termMove, common.Vec3{X: 1}
	case tcell.KeyEnter:
		return termSubmit, common.Vec3{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return termClear, common.Vec3{}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return termQuit, common.Vec3{}
	}
	if r := ev.Rune(); r >= '0' && r <= '9' {
		return termDigit, common.Vec3{}
	}
	switch ev.Rune() {
	case 'w', 'W':
		return termMove, common.Vec3{Z: 1}
	case 's', 'S':
		return termMove, common.Vec3{Z: -1}
	case 'a', 'A':
		return termMove, common.Vec3{X: -1}
	case 'd', 'D':
		return termMove, common.Vec3{X: 1}
	case 'e', 'E':
		return termInteract, common.Vec3{}
	case ' ':
		return termFire, common.Vec3{}
	case 'r', 'R':
		return termRestart, common.Vec3{}
	case 'q', 'Q':
		return termQuit, common.Vec3{}
	}
	return termNone, common.Vec3{}
}

// terminalPlayer feeds decoded key presses into the player's Input.
type terminalPlayer struct {
	move      common.Vec3
	moveTicks int
}

// apply records action on the player's Input. key is the typed rune for
// termDigit.
func (tp *terminalPlayer) apply(s *session, action termAction, dir common.Vec3, key rune) {
	in, ok := ecs.Get(s.world, s.arena.Player, component.InputComponent.Kind())
	if !ok {
		return
	}
	switch action {
	case termMove:
		tp.move, tp.moveTicks = dir, termMoveTicks
	case termInteract:
		in.Interact = true
	case termFire:
		in.Fire = true
	case termDigit:
		in.Keys += string(key)
	case termSubmit:
		in.Submit = true
	case termClear:
		in.ClearCode = true
	}
}

// tick advances the held movement by one simulation step.
func (tp *terminalPlayer) tick(s *session) {
	in, ok := ecs.Get(s.world, s.arena.Player, component.InputComponent.Kind())
	if !ok {
		return
	}
	if tp.moveTicks > 0 {
		tp.moveTicks--
		in.Move = tp.move
		return
	}
	in.Move = common.Vec3{}
}

// runTerminal plays the mission in the terminal until the user quits.
func runTerminal(arenaName string, seed int64, records *mission.Records, hub *spectate.Hub) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	// Log lines would tear the screen.
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	start := func(seed int64) (*session, *terminalView, error) {
		specs, err := entity.LoadSpecs(arenaName)
		if err != nil {
			return nil, nil, err
		}
		s, err := newSession(specs, seed, false, records, hub)
		if err != nil {
			return nil, nil, err
		}
		return s, newTerminalView(screen, specs), nil
	}

	s, view, err := start(seed)
	if err != nil {
		return err
	}
	player := &terminalPlayer{}

	ticker := time.NewTicker(time.Second / common.TPS)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				action, dir := keyToAction(ev)
				switch action {
				case termQuit:
					return nil
				case termRestart:
					seed++
					next, nextView, err := start(seed)
					if err != nil {
						log.Printf("terminal: restart: %v", err)
						continue
					}
					s, view, player = next, nextView, &terminalPlayer{}
				default:
					player.apply(s, action, dir, ev.Rune())
				}
			}
		case <-ticker.C:
			player.tick(s)
			s.step()
			view.draw(s)
		}
	}
}
