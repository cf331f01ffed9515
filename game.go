package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/ecs/system"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/nav"
	"github.com/milk9111/gatebreach/prefabs"
	"github.com/milk9111/gatebreach/spectate"
	"golang.design/x/clipboard"
)

type Game struct {
	frames int
	debug  bool
	paused bool

	arenaName string
	seed      int64
	restarts  int64

	records *mission.Records
	watcher *prefabs.Watcher
	hub     *spectate.Hub

	session *session
	render  *system.RenderSystem
	hud     *MissionUI

	restartRequested bool
	clipboardOK      bool
}

func NewGame(arenaName string, seed int64, debug bool, records *mission.Records, hub *spectate.Hub) (*Game, error) {
	g := &Game{arenaName: arenaName, seed: seed, debug: debug, records: records, hub: hub}

	watcher, err := prefabs.NewWatcher()
	if err != nil {
		log.Printf("game: hot reload disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart rebuilds the mission from freshly loaded prefabs. Each restart
// derives a new seed so consecutive runs differ but stay reproducible.
func (g *Game) restart() error {
	specs, err := entity.LoadSpecs(g.arenaName)
	if err != nil {
		return err
	}
	seed := g.seed + g.restarts
	g.restarts++

	s, err := newSession(specs, seed, true, g.records, g.hub)
	if err != nil {
		return err
	}
	g.session = s

	g.hud = NewMissionUI(func() { g.restartRequested = true })
	s.arena.Mission.SetSink(g.hud)

	as := specs.Arena
	bounds := nav.Rect{MinX: -as.Width / 2, MinZ: -as.Depth / 2, MaxX: as.Width / 2, MaxZ: as.Depth / 2}
	g.render = system.NewRenderSystem(system.NewPalette(as.Colors), s.arena.Walls, bounds)
	g.render.Debug = g.debug

	log.Printf("game: mission started (seed %d)", seed)
	return nil
}

func (g *Game) Update() error {
	g.frames++

	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) || g.restartRequested {
		g.restartRequested = false
		if err := g.restart(); err != nil {
			log.Printf("game: restart: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.render.Debug = g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}

	if !g.paused {
		g.session.step()
	}

	g.hud.Refresh(g.session.arena.Mission, g.session.playerStatus())
	g.hud.Update()
	return nil
}

// applyReloads picks up prefab edits. Robot and bullet tuning is applied to
// live robots; anything else rebuilds the mission.
func (g *Game) applyReloads() {
	changes := g.watcher.Drain()
	if len(changes) == 0 {
		return
	}
	rebuild := false
	for _, c := range changes {
		log.Printf("game: prefab changed: %s", c.Name)
		if c.Script || (c.Name != "robot.yaml" && !g.isBulletPrefab(c.Name)) {
			rebuild = true
		}
	}
	if rebuild {
		g.restartRequested = true
		return
	}

	specs, err := entity.LoadSpecs(g.arenaName)
	if err != nil {
		log.Printf("game: reload robot prefab: %v", err)
		return
	}
	g.session.reloadRobots(specs)
}

func (g *Game) isBulletPrefab(name string) bool {
	rs := g.session.specs.Robot
	return rs != nil && rs.Shooter != nil && rs.Shooter.Projectile == name
}

// copySeed puts the current run's seed on the clipboard so it can be replayed
// with -seed.
func (g *Game) copySeed() {
	if !g.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strconv.FormatInt(g.session.seed, 10)))
	log.Printf("game: copied seed %d", g.session.seed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.session.world, screen)
	g.hud.Draw(screen)

	if g.debug {
		m := g.session.arena.Mission
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  tick: %d  outcome: %s  gate: %v",
			ebiten.ActualFPS(), g.frames, m.Outcome(), m.GateDestroyed()), 10, common.BaseHeight-20)
	}
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", common.BaseWidth/2-20, 10)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
