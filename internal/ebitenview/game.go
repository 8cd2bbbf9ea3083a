// seehuhn.de/go/shapefall - falling shapes and surface area estimation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package ebitenview shows a falling shapes scene in a window or browser
// tab, using ebiten.
package ebitenview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/geometry"
)

// rateCheckInterval is the number of seconds between frame rate checks.
const rateCheckInterval = 2

var (
	background  = color.RGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff}
	panelColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xd0}
	buttonColor = color.RGBA{R: 0x58, G: 0x58, B: 0x68, A: 0xff}
)

// Sounder plays a sound when a shape is removed by a click.
type Sounder interface {
	Pop(k geometry.Kind)
}

// Options control the window contents.
type Options struct {
	// Scale is the number of screen pixels per canvas pixel.
	// Zero means 1.
	Scale float64

	// Sound, if not nil, is used to play a pop for every clicked shape.
	Sound Sounder
}

// Game implements ebiten.Game for a falling shapes scene.
type Game struct {
	scene    *shapefall.Scene
	renderer *Renderer
	sound    Sounder
	scale    float64

	counters *counters
	buttons  []button

	started bool
	ticks   int
}

var _ ebiten.Game = (*Game)(nil)

// New creates the scene described by cfg, shown through a new Game.
func New(cfg shapefall.Config, opt *Options, sceneOpts ...shapefall.Option) (*Game, error) {
	if opt == nil {
		opt = &Options{}
	}
	scale := opt.Scale
	if !(scale > 0) {
		scale = 1
	}

	g := &Game{
		renderer: &Renderer{Scale: scale},
		sound:    opt.Sound,
		scale:    scale,
		counters: &counters{},
	}
	sceneOpts = append([]shapefall.Option{
		shapefall.WithRenderer(g.renderer),
		shapefall.WithDisplay(g.counters),
	}, sceneOpts...)
	sc, err := shapefall.NewScene(cfg, sceneOpts...)
	if err != nil {
		return nil, err
	}
	g.scene = sc
	g.counters.stats = sc.Stats()
	g.buttons = newButtons(sc)
	return g, nil
}

// Scene returns the scene shown by the game.
func (g *Game) Scene() *shapefall.Scene {
	return g.scene
}

// counters keeps the latest values reported by the scene.
type counters struct {
	stats shapefall.Stats
}

func (c *counters) Update(s shapefall.Stats) {
	c.stats = s
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.scene.Size()
	return int(math.Ceil(w * g.scale)), int(math.Ceil(h * g.scale))
}

// Update implements ebiten.Game.  It is called once per tick.
func (g *Game) Update() error {
	fps := ebiten.ActualTPS()
	if !g.started {
		g.scene.Start(float64(ebiten.TPS()))
		g.started = true
	}

	for _, p := range justPressed() {
		g.press(p)
	}
	if err := g.handleKeys(); err != nil {
		return err
	}

	g.ticks++
	if g.ticks%(rateCheckInterval*ebiten.TPS()) == 0 {
		g.scene.CheckFrameRate(fps)
	}
	g.scene.Tick(fps)
	return nil
}

// press handles a click or touch at screen position p.
func (g *Game) press(p image.Point) {
	for _, b := range g.buttons {
		if p.In(b.rect) {
			b.action()
			return
		}
	}

	x, y := float64(p.X)/g.scale, float64(p.Y)/g.scale
	if s := g.scene.ShapeAt(x, y); s != nil {
		kind := s.Kind()
		if g.scene.Click(s.ID) && g.sound != nil {
			g.sound.Pop(kind)
		}
		return
	}
	g.scene.SpawnAt(x, y)
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.scene.IncreaseGravity()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.scene.DecreaseGravity()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.scene.IncreaseSpawn()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft), inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.scene.DecreaseSpawn()
	}
	return nil
}

// justPressed returns the screen positions of all mouse clicks and touches
// which started in this tick.
func justPressed() []image.Point {
	var res []image.Point
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		res = append(res, image.Pt(x, y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		res = append(res, image.Pt(x, y))
	}
	return res
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.renderer.Draw(screen)
	g.drawPanel(screen)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, panelLeft, panelTop, panelWidth, panelHeight, panelColor, false)

	lines := statusLines(g.counters.stats)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, panelLeft+pad, panelTop+pad+i*lineHeight)
	}
	for _, b := range g.buttons {
		r := b.rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y),
			float32(r.Dx()), float32(r.Dy()), buttonColor, false)
		ebitenutil.DebugPrintAt(screen, b.label, r.Min.X+6, r.Min.Y+2)
	}
}

// statusLines formats the counters for display.
func statusLines(s shapefall.Stats) []string {
	return []string{
		fmt.Sprintf("shapes:  %d", s.Amount),
		fmt.Sprintf("area:    %d px²", int64(math.Trunc(s.Area))),
		fmt.Sprintf("spawn:   %d/s", s.Spawn),
		fmt.Sprintf("gravity: %d px/frame", s.Gravity),
	}
}
