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

// Package termview shows a falling shapes scene in a terminal, using
// tcell.  Every character cell shows the blended colors of the shapes
// covering it.
package termview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/geometry"
)

// FrameInterval is the time between two frames.
const FrameInterval = 16 * time.Millisecond

// rateCheckInterval is the time between two frame rate checks.
const rateCheckInterval = 2 * time.Second

var background = colorful.Color{R: 0.08, G: 0.08, B: 0.1}

// Sounder plays a sound when a shape is removed by a click.
type Sounder interface {
	Pop(k geometry.Kind)
}

// View connects a scene to a terminal screen.
type View struct {
	screen   tcell.Screen
	scene    *shapefall.Scene
	renderer *Renderer
	sound    Sounder
	counters *counters

	cells      []Cell
	buttonDown bool

	frames    int
	lastCheck time.Time
}

// New creates the scene described by cfg, shown on screen.  The screen
// must already be initialized.  snd may be nil.
func New(screen tcell.Screen, cfg shapefall.Config, snd Sounder, opts ...shapefall.Option) (*View, error) {
	v := &View{
		screen:   screen,
		renderer: &Renderer{},
		sound:    snd,
		counters: &counters{},
	}
	opts = append([]shapefall.Option{
		shapefall.WithRenderer(v.renderer),
		shapefall.WithDisplay(v.counters),
	}, opts...)
	sc, err := shapefall.NewScene(cfg, opts...)
	if err != nil {
		return nil, err
	}
	v.scene = sc
	v.counters.stats = sc.Stats()
	return v, nil
}

// Scene returns the scene shown in the terminal.
func (v *View) Scene() *shapefall.Scene {
	return v.scene
}

// Run processes events and draws frames until the user quits or ctx is
// cancelled.
func (v *View) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// screen finalized
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	fps := float64(time.Second) / float64(FrameInterval)
	v.scene.Start(fps)
	v.lastCheck = time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			v.frames++
			if elapsed := now.Sub(v.lastCheck); elapsed >= rateCheckInterval {
				fps = float64(v.frames) / elapsed.Seconds()
				v.scene.CheckFrameRate(fps)
				v.frames = 0
				v.lastCheck = now
			}
			v.scene.Tick(fps)
			v.draw()
		}
	}
}

// handleEvent reacts to one terminal event.  It returns false if the user
// asked to quit.
func (v *View) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.scene.IncreaseGravity()
		case tcell.KeyDown:
			v.scene.DecreaseGravity()
		case tcell.KeyRight:
			v.scene.IncreaseSpawn()
		case tcell.KeyLeft:
			v.scene.DecreaseSpawn()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				v.scene.IncreaseSpawn()
			case '-':
				v.scene.DecreaseSpawn()
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.buttonDown {
			col, row := ev.Position()
			v.press(col, row)
		}
		v.buttonDown = down

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// press handles a click on the given cell.
func (v *View) press(col, row int) {
	g := v.grid()
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return
	}
	x, y := g.CellCenter(col, row)
	if s := v.scene.ShapeAt(x, y); s != nil {
		kind := s.Kind()
		if v.scene.Click(s.ID) && v.sound != nil {
			v.sound.Pop(kind)
		}
		return
	}
	v.scene.SpawnAt(x, y)
}

// grid returns the part of the screen used for the canvas.  The bottom
// line is reserved for the status line.
func (v *View) grid() Grid {
	cols, rows := v.screen.Size()
	w, h := v.scene.Size()
	return Grid{
		Cols:   cols,
		Rows:   max(rows-1, 0),
		Width:  w,
		Height: h,
	}
}

func (v *View) draw() {
	g := v.grid()
	v.cells = v.renderer.Paint(g, background, v.cells)

	bgStyle := tcell.StyleDefault.Background(toTcell(background))
	for row := range g.Rows {
		for col := range g.Cols {
			style := bgStyle
			if c := v.cells[row*g.Cols+col]; c.Filled {
				style = tcell.StyleDefault.Background(toTcell(c.Color))
			}
			v.screen.SetContent(col, row, ' ', nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	line := []rune(statusLine(v.counters.stats))
	for col := range g.Cols {
		r := ' '
		if col < len(line) {
			r = line[col]
		}
		v.screen.SetContent(col, g.Rows, r, nil, statusStyle)
	}
	v.screen.Show()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// statusLine formats the counters for display.
func statusLine(s shapefall.Stats) string {
	return fmt.Sprintf(" shapes %d  area %d px²  spawn %d/s [←/→]  gravity %d [↑/↓]  quit [q]",
		s.Amount, int64(math.Trunc(s.Area)), s.Spawn, s.Gravity)
}

// counters keeps the latest values reported by the scene.
type counters struct {
	stats shapefall.Stats
}

func (c *counters) Update(s shapefall.Stats) {
	c.stats = s
}
