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

// Package shapefall animates colored shapes which fall through a canvas
// and keeps track of the total surface area of the visible shapes.
//
// A [Scene] owns all shapes and counters.  It is advanced by calling
// [Scene.Tick] once per frame, and reacts to user input through
// [Scene.Press], [Scene.Click] and the parameter adjustment methods.
// Drawing is delegated to a [Renderer], counters are reported to a
// [Display].
//
// A Scene is not safe for concurrent use.  All calls must come from the
// goroutine which drives the frame loop.
package shapefall

import (
	"image/color"
	"iter"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"seehuhn.de/go/shapefall/area"
	"seehuhn.de/go/shapefall/geometry"
)

// Scene holds the falling shapes and the aggregate counters.
type Scene struct {
	width, height float64
	size          float64

	shapes [geometry.NumKinds][]*Shape
	byID   map[uuid.UUID]*Shape

	amount  int
	area    float64
	spawn   int
	gravity int

	// counter accumulates frames towards the next spawn
	counter float64
	seq     uint64

	gen      geometry.Generator
	rng      *rand.Rand
	newID    func() uuid.UUID
	renderer Renderer
	display  Display
}

// NewScene creates an empty scene.
func NewScene(cfg Config, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc := &Scene{
		width:    cfg.Width,
		height:   cfg.Height,
		size:     cfg.Size,
		byID:     make(map[uuid.UUID]*Shape),
		spawn:    cfg.Spawn,
		gravity:  cfg.Gravity,
		gen:      geometry.Generator{Size: cfg.Size},
		newID:    uuid.New,
		renderer: nopRenderer{},
		display:  nopDisplay{},
	}
	for _, opt := range opts {
		opt(sc)
	}

	if sc.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		sc.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if sc.gen.Estimator == nil {
		e, err := area.New(cfg.AreaBackend, sc.rng)
		if err != nil {
			return nil, err
		}
		sc.gen.Estimator = e
	}
	return sc, nil
}

// Start primes the spawn counter, so that the first tick at the given
// frame rate spawns a shape.
func (sc *Scene) Start(fps float64) {
	sc.counter = math.Round(normalFPS(fps))
	sc.notify()
}

// CheckFrameRate resets the spawn counter when the frame rate has dropped
// below 31 frames per second.  Front ends call this every two seconds.
func (sc *Scene) CheckFrameRate(fps float64) {
	if fps > 0 && fps < 31 {
		sc.counter = fps
	}
}

// Tick advances the scene by one frame.  All shapes fall by the current
// gravity, kinds in canonical order and shapes in spawn order.  Shapes
// which have left the canvas are removed.  Finally a new shape is spawned
// if the spawn counter has reached its threshold.
func (sc *Scene) Tick(fps float64) {
	gravity := float64(sc.gravity)
	for k := range sc.shapes {
		list := sc.shapes[k]
		kept := list[:0]
		for _, s := range list {
			if s.fall(gravity, sc.height, sc.becameVisible) {
				sc.discard(s)
				continue
			}
			kept = append(kept, s)
		}
		clear(list[len(kept):])
		sc.shapes[k] = kept
	}

	threshold := math.Round(normalFPS(fps)) / float64(sc.spawn)
	if sc.counter < threshold {
		sc.counter++
	} else {
		sc.Spawn()
		sc.counter -= threshold
	}
}

func normalFPS(fps float64) float64 {
	if !(fps > 0) || math.IsInf(fps, 0) {
		return DefaultFPS
	}
	return fps
}

// Spawn adds a shape of a random kind above the top edge of the canvas,
// at a random horizontal position.
func (sc *Scene) Spawn() *Shape {
	k := geometry.Kind(sc.rng.IntN(geometry.NumKinds))
	w, h := k.Box(sc.size)
	x := float64(sc.randInt(0, int(sc.width-w)))
	y := -float64(sc.randInt(int(h), int(2*sc.height)))
	return sc.add(k, x, y)
}

// SpawnAt adds a shape of a random kind, centered on the canvas point
// (x, y).
func (sc *Scene) SpawnAt(x, y float64) *Shape {
	k := geometry.Kind(sc.rng.IntN(geometry.NumKinds))
	w, h := k.Box(sc.size)
	return sc.add(k, x-w/2, y-h/2)
}

// randInt returns a uniform random integer in [lo, hi].
func (sc *Scene) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + sc.rng.IntN(hi-lo+1)
}

func (sc *Scene) add(k geometry.Kind, x, y float64) *Shape {
	w, h := k.Box(sc.size)
	g := sc.gen.Generate(k, w, h)
	s := newShape(sc.newID(), g, x, y, sc.randomColor())
	sc.seq++
	s.seq = sc.seq

	id := s.ID
	s.show(sc.renderer, func() { sc.Click(id) })
	sc.shapes[k] = append(sc.shapes[k], s)
	sc.byID[id] = s

	Logger().Debug("spawn",
		slog.String("id", id.String()),
		slog.String("kind", k.String()),
		slog.Float64("x", x), slog.Float64("y", y),
		slog.Float64("area", g.Area))
	sc.notify()
	return s
}

// randomColor returns a saturated, reasonably bright color.
func (sc *Scene) randomColor() color.RGBA {
	c := colorful.Hsv(360*sc.rng.Float64(), 0.5+0.5*sc.rng.Float64(), 0.6+0.4*sc.rng.Float64())
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (sc *Scene) becameVisible(s *Shape) {
	sc.amount++
	sc.area += s.Area()
	sc.notify()
}

// discard destroys s, which has already been taken off its kind's list,
// and subtracts its area if it was visible.
func (sc *Scene) discard(s *Shape) {
	delete(sc.byID, s.ID)
	if s.remove() {
		sc.amount--
		sc.area -= s.Area()
		if sc.amount == 0 {
			// avoid accumulated rounding errors once the scene is empty
			sc.area = 0
		}
	}
	Logger().Debug("remove", slog.String("id", s.ID.String()), slog.String("kind", s.Kind().String()))
	sc.notify()
}

// Click handles a click on the shape with the given ID.  All other shapes
// of the same kind take the color of the clicked shape, then the clicked
// shape is removed.  The return value reports whether the shape was found.
func (sc *Scene) Click(id uuid.UUID) bool {
	s, ok := sc.byID[id]
	if !ok {
		return false
	}

	k := s.Kind()
	for _, other := range sc.shapes[k] {
		if other != s {
			other.setColor(s.Color)
		}
	}

	sc.shapes[k] = slices.DeleteFunc(sc.shapes[k], func(x *Shape) bool { return x == s })
	sc.discard(s)
	return true
}

// Press handles a pointer press at the canvas point (x, y).  A press on a
// shape clicks the topmost shape at this point, a press on the empty
// canvas spawns a new shape there.
func (sc *Scene) Press(x, y float64) {
	if s := sc.ShapeAt(x, y); s != nil {
		sc.Click(s.ID)
		return
	}
	sc.SpawnAt(x, y)
}

// ShapeAt returns the most recently created shape covering the canvas
// point (x, y), or nil if there is none.  Renderers stack shapes in
// creation order, so this is the shape shown on top.
func (sc *Scene) ShapeAt(x, y float64) *Shape {
	var top *Shape
	for s := range sc.Shapes() {
		if (top == nil || s.seq > top.seq) && s.Contains(x, y) {
			top = s
		}
	}
	return top
}

// Shape returns the live shape with the given ID, or nil.
func (sc *Scene) Shape(id uuid.UUID) *Shape {
	return sc.byID[id]
}

// Shapes iterates over the live shapes, kinds in canonical order and
// shapes of one kind in creation order.  The scene must not be modified
// during the iteration.
func (sc *Scene) Shapes() iter.Seq[*Shape] {
	return func(yield func(*Shape) bool) {
		for _, list := range sc.shapes {
			for _, s := range list {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Len returns the number of live shapes, visible or not.
func (sc *Scene) Len() int {
	return len(sc.byID)
}

// Size returns the canvas size.
func (sc *Scene) Size() (width, height float64) {
	return sc.width, sc.height
}

// Stats returns the current counters.
func (sc *Scene) Stats() Stats {
	return Stats{
		Amount:  sc.amount,
		Area:    sc.area,
		Spawn:   sc.spawn,
		Gravity: sc.gravity,
	}
}

func (sc *Scene) notify() {
	sc.display.Update(sc.Stats())
}

// IncreaseSpawn raises the spawn rate by one.  Requests beyond MaxRate
// are ignored and return false.
func (sc *Scene) IncreaseSpawn() bool {
	return sc.adjust("spawn", &sc.spawn, +1)
}

// DecreaseSpawn lowers the spawn rate by one.  Requests below MinRate
// are ignored and return false.
func (sc *Scene) DecreaseSpawn() bool {
	return sc.adjust("spawn", &sc.spawn, -1)
}

// IncreaseGravity raises the gravity by one.  Requests beyond MaxRate
// are ignored and return false.
func (sc *Scene) IncreaseGravity() bool {
	return sc.adjust("gravity", &sc.gravity, +1)
}

// DecreaseGravity lowers the gravity by one.  Requests below MinRate
// are ignored and return false.
func (sc *Scene) DecreaseGravity() bool {
	return sc.adjust("gravity", &sc.gravity, -1)
}

func (sc *Scene) adjust(name string, param *int, delta int) bool {
	v := *param + delta
	if v < MinRate || v > MaxRate {
		return false
	}
	*param = v
	Logger().Info("parameter changed", slog.String("name", name), slog.Int("value", v))
	sc.notify()
	return true
}
