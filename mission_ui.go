package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/mission"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	textWhite  color.Color = colornames.White
	textYellow color.Color = colornames.Gold
	textRed    color.Color = colornames.Tomato
)

// MissionUI is the heads-up display: objective, countdown, health and the
// end-of-mission panel. It receives mission notifications as a mission.Sink.
type MissionUI struct {
	ui *ebitenui.UI

	objective *widget.Text
	// One countdown label per urgency level; only the current one is shown.
	timers [3]*widget.Text
	health *widget.Text
	ammo   *widget.Text
	kills  *widget.Text
	prompt *widget.Text

	panel       *widget.Container
	panelTitle  *widget.Text
	panelReason *widget.Text
}

// NewMissionUI builds the HUD. restart is invoked by the panel button.
func NewMissionUI(restart func()) *MissionUI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	m := &MissionUI{}

	label := func(s string, clr color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, &face, clr))
	}

	m.objective = label("Objective: destroy the gate", textWhite)
	for i, clr := range []color.Color{textWhite, textYellow, textRed} {
		m.timers[i] = label("", clr)
	}
	m.health = label("", textWhite)
	m.ammo = label("", textWhite)
	m.kills = label("", textWhite)
	m.prompt = label("", textYellow)

	hud := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	hud.AddChild(m.objective)
	for _, t := range m.timers {
		hud.AddChild(t)
	}
	hud.AddChild(m.health)
	hud.AddChild(m.ammo)
	hud.AddChild(m.kills)
	hud.AddChild(m.prompt)

	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	m.panelTitle = widget.NewText(widget.TextOpts.Text("", &face, textWhite), widget.TextOpts.WidgetOpts(centered))
	m.panelReason = widget.NewText(widget.TextOpts.Text("", &face, textWhite), widget.TextOpts.WidgetOpts(centered))
	restartBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Restart (R)", &face, &widget.ButtonTextColor{Idle: textWhite}),
		widget.ButtonOpts.WidgetOpts(centered),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if restart != nil {
				restart()
			}
		}),
	)

	m.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	m.panel.AddChild(m.panelTitle)
	m.panel.AddChild(m.panelReason)
	m.panel.AddChild(restartBtn)
	m.panel.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(hud)
	root.AddChild(m.panel)

	m.ui = &ebitenui.UI{Container: root}
	return m
}

// Refresh copies the mission and player state into the HUD labels.
func (m *MissionUI) Refresh(state *mission.State, player playerStatus) {
	remaining := state.TimeRemaining()
	level := mission.LevelFor(remaining)
	for i, t := range m.timers {
		t.Label = "Time " + mission.FormatTimer(remaining)
		if mission.TimerLevel(i) == level && state.TimerRunning() {
			t.GetWidget().Visibility = widget.Visibility_Show
		} else {
			t.GetWidget().Visibility = widget.Visibility_Hide
		}
	}
	m.health.Label = fmt.Sprintf("Health %d/%d", player.HP, player.MaxHP)
	m.ammo.Label = ""
	if player.HasAmmo {
		m.ammo.Label = fmt.Sprintf("Ammo %d/%d", player.Ammo, player.MaxAmmo)
	}
	m.prompt.Label = player.Prompt
	m.kills.Label = fmt.Sprintf("Hostiles %d  Kills %d", state.EnemiesAlive(), state.Kills())
}

func (m *MissionUI) HideObjective() {
	m.objective.GetWidget().Visibility = widget.Visibility_Hide
}

func (m *MissionUI) ShowVictory() {
	m.showPanel("MISSION COMPLETE", "All hostiles neutralised")
}

func (m *MissionUI) ShowGameOver(reason string) {
	m.showPanel("MISSION FAILED", reason)
}

func (m *MissionUI) showPanel(title, reason string) {
	m.panelTitle.Label = title
	m.panelReason.Label = reason
	m.panel.GetWidget().Visibility = widget.Visibility_Show
}

func (m *MissionUI) Update() {
	m.ui.Update()
}

func (m *MissionUI) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}
