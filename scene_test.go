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

package shapefall

import (
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"

	"seehuhn.de/go/shapefall/area"
	"seehuhn.de/go/shapefall/geometry"
)

type fakeHandle struct {
	color     color.RGBA
	x, y      float64
	moves     int
	destroyed int
	onClick   func()
}

func (h *fakeHandle) SetColor(c color.RGBA) { h.color = c }

func (h *fakeHandle) SetPosition(x, y float64) {
	h.x, h.y = x, y
	h.moves++
}

func (h *fakeHandle) Destroy() { h.destroyed++ }

type fakeRenderer struct {
	handles []*fakeHandle
}

func (r *fakeRenderer) CreateShape(g *geometry.Geometry, c color.RGBA, x, y float64, onClick func()) Handle {
	h := &fakeHandle{color: c, x: x, y: y, onClick: onClick}
	r.handles = append(r.handles, h)
	return h
}

type recordingDisplay struct {
	updates []Stats
}

func (d *recordingDisplay) Update(s Stats) {
	d.updates = append(d.updates, s)
}

func (d *recordingDisplay) last() Stats {
	if len(d.updates) == 0 {
		return Stats{}
	}
	return d.updates[len(d.updates)-1]
}

type fixedEstimator float64

func (f fixedEstimator) EstimateArea(float64, float64, []geometry.Segment) float64 {
	return float64(f)
}

// sequentialIDs returns an ID generator which counts up from 1.
func sequentialIDs() func() uuid.UUID {
	var n uint16
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[14], id[15] = byte(n>>8), byte(n)
		return id
	}
}

type testScene struct {
	*Scene
	r *fakeRenderer
	d *recordingDisplay
}

func newTestScene(t *testing.T, cfg Config) *testScene {
	t.Helper()
	r := &fakeRenderer{}
	d := &recordingDisplay{}
	sc, err := NewScene(cfg,
		WithRenderer(r),
		WithDisplay(d),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithIDs(sequentialIDs()),
		WithEstimator(fixedEstimator(1000)))
	if err != nil {
		t.Fatal(err)
	}
	return &testScene{Scene: sc, r: r, d: d}
}

// noSpawnFPS is a frame rate high enough that no shapes are spawned
// during a test.
const noSpawnFPS = 1e6

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 400
	cfg.Height = 100
	cfg.Size = 1
	cfg.Gravity = 5
	return cfg
}

func TestVisibleOnThirdTick(t *testing.T) {
	g := geometry.Generate(geometry.Rectangle, 60, 40)
	s := newShape(uuid.New(), g, 0, -50, color.RGBA{A: 255})
	s.show(nopRenderer{}, nil)

	calls := 0
	onVisible := func(*Shape) { calls++ }
	for tick := 1; tick <= 5; tick++ {
		s.fall(5, 1080, onVisible)
		want := tick >= 3
		if s.Visible() != want {
			t.Errorf("tick %d (y=%g): visible=%t, want %t", tick, s.Y, s.Visible(), want)
		}
	}
	if calls != 1 {
		t.Errorf("onVisible called %d times, want 1", calls)
	}
}

func TestStateTransitions(t *testing.T) {
	g := geometry.Generate(geometry.Triangle, 10, 10)
	s := newShape(uuid.New(), g, 0, -20, color.RGBA{})
	if s.State() != Created {
		t.Fatalf("new shape in state %s", s.State())
	}
	if s.fall(5, 100, func(*Shape) {}) {
		t.Error("created shape reported exit")
	}
	if s.Y != -20 {
		t.Error("created shape moved")
	}

	s.show(nopRenderer{}, nil)
	if s.State() != FallingInvisible {
		t.Fatalf("shown shape in state %s", s.State())
	}
	s.fall(15, 100, func(*Shape) {})
	if s.State() != FallingVisible {
		t.Fatalf("state %s after entering the canvas", s.State())
	}
	if !s.remove() {
		t.Error("remove of visible shape returned false")
	}
	if s.remove() {
		t.Error("second remove returned true")
	}
	if s.State() != Removed {
		t.Errorf("state %s after remove", s.State())
	}
	y := s.Y
	s.fall(5, 100, func(*Shape) { t.Error("removed shape became visible") })
	if s.Y != y {
		t.Error("removed shape moved")
	}
}

func TestFallThrough(t *testing.T) {
	ts := newTestScene(t, smallConfig())
	s := ts.add(geometry.Rectangle, 10, -25)
	h := ts.r.handles[0]

	maxAmount := 0
	for range 100 {
		ts.Tick(noSpawnFPS)
		maxAmount = max(maxAmount, ts.Stats().Amount)
		if s.State() == Removed {
			break
		}
	}
	if s.State() != Removed {
		t.Fatalf("shape still in state %s at y=%g", s.State(), s.Y)
	}
	if maxAmount != 1 {
		t.Errorf("amount peaked at %d, want 1", maxAmount)
	}
	if h.destroyed != 1 {
		t.Errorf("handle destroyed %d times", h.destroyed)
	}
	if ts.Shape(s.ID) != nil {
		t.Error("removed shape still registered")
	}

	// the area went up by the shape area exactly once, and back down
	adds := 0
	for i := 1; i < len(ts.d.updates); i++ {
		if ts.d.updates[i].Area > ts.d.updates[i-1].Area {
			adds++
		}
	}
	if adds != 1 {
		t.Errorf("area increased %d times, want 1", adds)
	}

	if st := ts.Stats(); st.Amount != 0 || st.Area != 0 {
		t.Errorf("stats %+v after the shape left", st)
	}
}

func TestExitUsesPreviousPosition(t *testing.T) {
	ts := newTestScene(t, smallConfig())
	s := ts.add(geometry.Triangle, 0, 96)

	ts.Tick(noSpawnFPS) // 96 -> 101; was still on the canvas
	if s.State() == Removed {
		t.Fatal("shape removed while still on the canvas")
	}
	ts.Tick(noSpawnFPS) // 101 -> 106; was below the canvas
	if s.State() != Removed {
		t.Fatalf("shape in state %s at y=%g", s.State(), s.Y)
	}
}

func TestClickVisibleCircle(t *testing.T) {
	ts := newTestScene(t, smallConfig())
	a := ts.add(geometry.Circle, 10, 10)
	b := ts.add(geometry.Circle, 50, 10)
	c := ts.add(geometry.Circle, 90, -500)
	other := ts.add(geometry.Rectangle, 130, 10)
	ts.Tick(noSpawnFPS)

	if !a.Visible() || !b.Visible() || c.Visible() {
		t.Fatalf("visibility a=%t b=%t c=%t", a.Visible(), b.Visible(), c.Visible())
	}
	before := ts.Stats()

	aColor := a.Color
	otherColor := other.Color
	if !ts.Click(a.ID) {
		t.Fatal("click not handled")
	}

	after := ts.Stats()
	if after.Amount != before.Amount-1 {
		t.Errorf("amount %d -> %d", before.Amount, after.Amount)
	}
	if math.Abs(before.Area-after.Area-a.Area()) > 1e-9 {
		t.Errorf("area %g -> %g, shape area %g", before.Area, after.Area, a.Area())
	}
	if a.State() != Removed || ts.r.handles[0].destroyed != 1 {
		t.Error("clicked shape not removed")
	}
	for _, s := range []*Shape{b, c} {
		if s.Color != aColor {
			t.Errorf("circle %v has color %v, want %v", s.ID, s.Color, aColor)
		}
	}
	if ts.r.handles[1].color != aColor || ts.r.handles[2].color != aColor {
		t.Error("renderer colors not updated")
	}
	if other.Color != otherColor {
		t.Error("shape of another kind was recolored")
	}
	if ts.Click(a.ID) {
		t.Error("second click on removed shape was handled")
	}
}

func TestClickInvisible(t *testing.T) {
	ts := newTestScene(t, smallConfig())
	s := ts.add(geometry.Heart, 10, -500)
	if s.Area() != 1000 {
		t.Errorf("heart area %g, want estimator value 1000", s.Area())
	}
	ts.Tick(noSpawnFPS)
	before := ts.Stats()

	// clicks arrive through the renderer
	ts.r.handles[0].onClick()

	if s.State() != Removed {
		t.Fatal("shape not removed")
	}
	after := ts.Stats()
	if after.Amount != before.Amount || after.Area != before.Area {
		t.Errorf("stats changed from %+v to %+v", before, after)
	}
}

func TestPress(t *testing.T) {
	ts := newTestScene(t, smallConfig())
	s := ts.add(geometry.Rectangle, 100, 20) // 30x20 box

	ts.Press(300, 50)
	if ts.Len() != 2 {
		t.Fatalf("press on empty canvas: %d shapes, want 2", ts.Len())
	}
	var spawned *Shape
	for x := range ts.Shapes() {
		if x != s {
			spawned = x
		}
	}
	cx := spawned.X + spawned.Width()/2
	cy := spawned.Y + spawned.Height()/2
	if cx != 300 || cy != 50 {
		t.Errorf("spawned shape centered at (%g, %g)", cx, cy)
	}

	if got := ts.ShapeAt(115, 30); got != s {
		t.Fatalf("ShapeAt returned %v", got)
	}
	ts.Press(115, 30)
	if s.State() != Removed {
		t.Error("press on shape did not remove it")
	}
	if ts.Len() != 1 {
		t.Errorf("%d shapes after click, want 1", ts.Len())
	}
}

func TestSpawnThrottle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spawn = 3
	ts := newTestScene(t, cfg)

	// threshold 60/3 = 20: the counter climbs for 20 frames, the 21st
	// frame spawns
	for range 210 {
		ts.Tick(60)
	}
	if n := len(ts.r.handles); n != 10 {
		t.Errorf("%d shapes spawned, want 10", n)
	}
}

func TestStartSpawnsImmediately(t *testing.T) {
	ts := newTestScene(t, DefaultConfig())
	ts.Start(60)
	ts.Tick(60)
	if len(ts.r.handles) != 1 {
		t.Fatalf("%d shapes after the first tick, want 1", len(ts.r.handles))
	}
	ts.Tick(60)
	ts.Tick(60)
	ts.Tick(60)
	if len(ts.r.handles) != 3 {
		t.Errorf("%d shapes after four ticks, want 3", len(ts.r.handles))
	}
}

func TestCheckFrameRate(t *testing.T) {
	ts := newTestScene(t, DefaultConfig())
	ts.CheckFrameRate(60)
	if ts.counter != 0 {
		t.Errorf("counter %g after fast frame rate", ts.counter)
	}
	ts.CheckFrameRate(25)
	if ts.counter != 25 {
		t.Errorf("counter %g, want 25", ts.counter)
	}
}

func TestSpawnPosition(t *testing.T) {
	ts := newTestScene(t, DefaultConfig())
	for range 200 {
		s := ts.Spawn()
		if s.X < 0 || s.X+s.Width() > 1920 {
			t.Errorf("x=%g outside canvas for width %g", s.X, s.Width())
		}
		if s.Y > -s.Height() || s.Y < -2*1080 {
			t.Errorf("y=%g outside [-2160, %g]", s.Y, -s.Height())
		}
		w, h := s.Kind().Box(geometry.DefaultSize)
		if s.Width() != w || s.Height() != h {
			t.Errorf("%s box %gx%g, want %gx%g", s.Kind(), s.Width(), s.Height(), w, h)
		}
	}
	if ts.Stats().Amount != 0 {
		t.Error("spawned shapes are visible before the first tick")
	}
}

func TestParameterRange(t *testing.T) {
	ts := newTestScene(t, DefaultConfig())
	rng := rand.New(rand.NewPCG(9, 9))
	ops := []func() bool{ts.IncreaseSpawn, ts.DecreaseSpawn, ts.IncreaseGravity, ts.DecreaseGravity}
	for range 5000 {
		ops[rng.IntN(len(ops))]()
		st := ts.Stats()
		if st.Spawn < MinRate || st.Spawn > MaxRate || st.Gravity < MinRate || st.Gravity > MaxRate {
			t.Fatalf("parameters out of range: %+v", st)
		}
	}

	for ts.IncreaseSpawn() {
	}
	if ts.Stats().Spawn != MaxRate {
		t.Errorf("spawn %d, want %d", ts.Stats().Spawn, MaxRate)
	}
	n := len(ts.d.updates)
	if ts.IncreaseSpawn() || len(ts.d.updates) != n {
		t.Error("ignored request changed the display")
	}
	for ts.DecreaseGravity() {
	}
	if ts.Stats().Gravity != MinRate {
		t.Errorf("gravity %d, want %d", ts.Stats().Gravity, MinRate)
	}
}

func TestAmountNeverNegative(t *testing.T) {
	cfg := smallConfig()
	cfg.Spawn = 60
	cfg.Gravity = 60
	ts := newTestScene(t, cfg)
	rng := rand.New(rand.NewPCG(3, 3))
	for range 2000 {
		ts.Tick(DefaultFPS)
		if rng.IntN(4) == 0 {
			ts.Press(float64(rng.IntN(400)), float64(rng.IntN(100)))
		}
		st := ts.Stats()
		visible := 0
		for s := range ts.Shapes() {
			if s.Visible() {
				visible++
			}
		}
		if st.Amount < 0 || st.Amount != visible {
			t.Fatalf("amount %d, %d visible shapes", st.Amount, visible)
		}
		if st.Area < -1e-6 {
			t.Fatalf("negative area %g", st.Area)
		}
	}
}

func TestNewSceneInvalid(t *testing.T) {
	broken := []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Height = math.NaN() },
		func(c *Config) { c.Size = -1 },
		func(c *Config) { c.Spawn = 0 },
		func(c *Config) { c.Gravity = 61 },
		func(c *Config) { c.AreaBackend = "cairo" },
	}
	for i, f := range broken {
		cfg := DefaultConfig()
		f(&cfg)
		if _, err := NewScene(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: got %v, want ErrInvalidConfig", i, err)
		}
	}

	cfg := DefaultConfig()
	cfg.AreaBackend = "cairo"
	_, err := NewScene(cfg)
	if !errors.Is(err, area.ErrUnknownBackend) {
		t.Errorf("got %v, want ErrUnknownBackend in the chain", err)
	}
}

func TestDefaultEstimator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	sc, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := sc.add(geometry.Heart, 0, -200)
	box := s.Width() * s.Height()
	if s.Area() < 0 || s.Area() > box {
		t.Errorf("heart area %g outside [0, %g]", s.Area(), box)
	}
}
