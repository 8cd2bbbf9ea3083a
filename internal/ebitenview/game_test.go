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

package ebitenview

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/geometry"
)

type recordingSound struct {
	kinds []geometry.Kind
}

func (r *recordingSound) Pop(k geometry.Kind) {
	r.kinds = append(r.kinds, k)
}

func newTestGame(t *testing.T, opt *Options) *Game {
	t.Helper()
	cfg := shapefall.DefaultConfig()
	cfg.Width = 400
	cfg.Height = 300
	cfg.Size = 2
	g, err := New(cfg, opt, shapefall.WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestPressSpawnsAndRemoves(t *testing.T) {
	snd := &recordingSound{}
	g := newTestGame(t, &Options{Sound: snd})
	p := image.Pt(200, 200)

	g.press(p)
	if n := g.Scene().Len(); n != 1 {
		t.Fatalf("%d shapes after first press, want 1", n)
	}
	if n := g.renderer.Len(); n != 1 {
		t.Fatalf("%d sprites after first press, want 1", n)
	}
	var kind geometry.Kind
	for s := range g.Scene().Shapes() {
		kind = s.Kind()
	}

	g.press(p)
	if n := g.Scene().Len(); n != 0 {
		t.Errorf("%d shapes after second press, want 0", n)
	}
	if n := g.renderer.Len(); n != 0 {
		t.Errorf("%d sprites after second press, want 0", n)
	}
	if len(snd.kinds) != 1 || snd.kinds[0] != kind {
		t.Errorf("sounds %v, want [%v]", snd.kinds, kind)
	}
}

func TestPressScaled(t *testing.T) {
	g := newTestGame(t, &Options{Scale: 2})
	g.press(image.Pt(400, 300))

	var s *shapefall.Shape
	for x := range g.Scene().Shapes() {
		s = x
	}
	if s == nil {
		t.Fatal("no shape spawned")
	}
	if cx, cy := s.X+s.Width()/2, s.Y+s.Height()/2; cx != 200 || cy != 150 {
		t.Errorf("shape centered at (%g, %g), want (200, 150)", cx, cy)
	}

	w, h := g.Layout(0, 0)
	if w != 800 || h != 600 {
		t.Errorf("layout %dx%d, want 800x600", w, h)
	}
}

func TestButtons(t *testing.T) {
	g := newTestGame(t, nil)
	before := g.counters.stats

	click := func(label string) {
		for _, b := range g.buttons {
			if b.label == label {
				g.press(b.rect.Min.Add(image.Pt(1, 1)))
				return
			}
		}
		t.Fatalf("no button %q", label)
	}

	click("spawn +")
	click("gravity -")
	after := g.counters.stats
	if after.Spawn != before.Spawn+1 {
		t.Errorf("spawn %d, want %d", after.Spawn, before.Spawn+1)
	}
	if after.Gravity != before.Gravity-1 {
		t.Errorf("gravity %d, want %d", after.Gravity, before.Gravity-1)
	}
	if n := g.Scene().Len(); n != 0 {
		t.Errorf("button press spawned %d shapes", n)
	}
}

func TestButtonsInsidePanel(t *testing.T) {
	g := newTestGame(t, nil)
	panel := image.Rect(panelLeft, panelTop, panelLeft+panelWidth, panelTop+panelHeight)
	for i, b := range g.buttons {
		if !b.rect.In(panel) {
			t.Errorf("button %q at %v outside panel %v", b.label, b.rect, panel)
		}
		for _, other := range g.buttons[i+1:] {
			if b.rect.Overlaps(other.rect) {
				t.Errorf("buttons %q and %q overlap", b.label, other.label)
			}
		}
	}
}

func TestRendererHandles(t *testing.T) {
	r := &Renderer{}
	geom := geometry.Generate(geometry.Triangle, 20, 20)
	h1 := r.CreateShape(&geom, color.RGBA{R: 255, A: 255}, 0, 0, nil)
	h2 := r.CreateShape(&geom, color.RGBA{G: 255, A: 255}, 10, 10, nil)
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	s2 := h2.(*spriteHandle)
	s2.dirty = false
	h2.SetColor(color.RGBA{G: 255, A: 255})
	if s2.dirty {
		t.Error("unchanged color marked the sprite dirty")
	}
	h2.SetColor(color.RGBA{B: 255, A: 255})
	if !s2.dirty {
		t.Error("new color did not mark the sprite dirty")
	}

	h1.Destroy()
	h1.Destroy()
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestStatusLines(t *testing.T) {
	lines := statusLines(shapefall.Stats{Amount: 3, Area: 1234.9, Spawn: 5, Gravity: 7})
	want := []string{
		"shapes:  3",
		"area:    1234 px²",
		"spawn:   5/s",
		"gravity: 7 px/frame",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
