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

package area

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/shapefall/geometry"
)

func TestHitsToArea(t *testing.T) {
	cases := []struct {
		hits, samples int
		w, h          float64
		want          float64
	}{
		{0, 100, 100, 50, 0},
		{100, 100, 100, 50, 5000},
		{50, 100, 100, 50, 2500},
		{1, 3, 30, 10, 102},   // 66.67% empty, rounded down to 66%
		{2, 3, 30, 10, 201},   // 33.33% empty, rounded down to 33%
		{7, 0, 30, 10, 0},     // no samples
		{-1, 10, 30, 10, 0},   // nonsense input
		{12, 10, 30, 10, 300}, // more hits than samples
	}
	for _, c := range cases {
		got := HitsToArea(c.hits, c.samples, c.w, c.h)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("HitsToArea(%d, %d, %g, %g) = %g, want %g",
				c.hits, c.samples, c.w, c.h, got, c.want)
		}
	}
}

func TestHitsToAreaBounds(t *testing.T) {
	const w, h = 37.5, 21
	for samples := 1; samples <= 50; samples++ {
		for hits := 0; hits <= samples; hits++ {
			a := HitsToArea(hits, samples, w, h)
			if a < 0 || a > w*h {
				t.Fatalf("HitsToArea(%d, %d) = %g outside [0, %g]", hits, samples, a, w*h)
			}
		}
	}
}

func TestEstimateBounds(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			e, err := New(name, rand.New(rand.NewPCG(1, 2)))
			if err != nil {
				t.Fatal(err)
			}
			for _, k := range []geometry.Kind{geometry.Heart, geometry.Ellipse} {
				w, h := k.Box(geometry.DefaultSize)
				g := geometry.Generate(k, w, h)
				for range 20 {
					a := e.EstimateArea(w, h, g.Curve)
					if a < 0 || a > w*h {
						t.Fatalf("%s: estimate %g outside [0, %g]", k, a, w*h)
					}
				}
			}
		})
	}
}

// TestEstimateHeart checks that the mean of many estimates is close to the
// exact area enclosed by the heart outline.  Pixels on the outline are only
// partially covered and count as misses, so estimates are slightly low.
func TestEstimateHeart(t *testing.T) {
	for _, name := range []string{BackendRaster, BackendVector} {
		t.Run(name, func(t *testing.T) {
			e, err := New(name, rand.New(rand.NewPCG(3, 4)))
			if err != nil {
				t.Fatal(err)
			}
			w, h := geometry.Heart.Box(geometry.DefaultSize)
			g := geometry.Generate(geometry.Heart, w, h)
			exact := g.Area

			const runs = 200
			var sum float64
			for range runs {
				sum += e.EstimateArea(w, h, g.Curve)
			}
			mean := sum / runs
			if mean < 0.85*exact || mean > 1.03*exact {
				t.Errorf("mean estimate %.1f, exact area %.1f", mean, exact)
			}
		})
	}
}

func TestEstimateFullBox(t *testing.T) {
	const w, h = 40, 30
	curve := []geometry.Segment{
		{{X: 0, Y: 0}},
		{{X: w / 3, Y: 0}, {X: 2 * w / 3, Y: 0}, {X: w, Y: 0}},
		{{X: w, Y: h / 3}, {X: w, Y: 2 * h / 3}, {X: w, Y: h}},
		{{X: 2 * w / 3, Y: h}, {X: w / 3, Y: h}, {X: 0, Y: h}},
	}
	e := &Estimator{Rand: rand.New(rand.NewPCG(5, 6))}
	for range 10 {
		if a := e.EstimateArea(w, h, curve); a != w*h {
			t.Fatalf("estimate %g, want %g", a, float64(w*h))
		}
	}
}

func TestEstimateDegenerate(t *testing.T) {
	e := &Estimator{Rand: rand.New(rand.NewPCG(7, 8))}

	// a zero width sliver covers no pixel completely
	sliver := []geometry.Segment{
		{{X: 10, Y: 0}},
		{{X: 10, Y: 10}, {X: 10, Y: 20}, {X: 10, Y: 30}},
	}
	if a := e.EstimateArea(30, 30, sliver); a != 0 {
		t.Errorf("sliver: got %g, want 0", a)
	}
	if a := e.EstimateArea(30, 30, nil); a != 0 {
		t.Errorf("empty curve: got %g, want 0", a)
	}
	for _, box := range [][2]float64{{0, 10}, {10, 0}, {-5, 10}, {math.NaN(), 10}, {math.Inf(1), 10}} {
		if a := e.EstimateArea(box[0], box[1], sliver); a != 0 {
			t.Errorf("box %v: got %g, want 0", box, a)
		}
	}
}

// recordingSurface counts how the estimator uses a surface.
type recordingSurface struct {
	fillErr error
	fills   int
	reads   int
	closed  int
}

func (s *recordingSurface) Fill(*path.Data, color.RGBA) error {
	s.fills++
	return s.fillErr
}

func (s *recordingSurface) RGBAAt(x, y int) color.RGBA {
	s.reads++
	return Sentinel
}

func (s *recordingSurface) Close() error {
	s.closed++
	return nil
}

func TestSurfaceDisposed(t *testing.T) {
	curve := []geometry.Segment{
		{{X: 0, Y: 0}},
		{{X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
	}

	ok := &recordingSurface{}
	e := &Estimator{NewSurface: func(w, h int) (Surface, error) { return ok, nil }}
	if a := e.EstimateArea(25, 10, curve); a != 250 {
		t.Errorf("got %g, want 250", a)
	}
	if ok.closed != 1 || ok.fills != 1 || ok.reads != 25 {
		t.Errorf("closed=%d fills=%d reads=%d", ok.closed, ok.fills, ok.reads)
	}

	bad := &recordingSurface{fillErr: errors.New("broken")}
	e.NewSurface = func(w, h int) (Surface, error) { return bad, nil }
	if a := e.EstimateArea(25, 10, curve); a != 0 {
		t.Errorf("failed fill: got %g, want 0", a)
	}
	if bad.closed != 1 || bad.reads != 0 {
		t.Errorf("failed fill: closed=%d reads=%d", bad.closed, bad.reads)
	}

	e.NewSurface = func(w, h int) (Surface, error) { return nil, errors.New("no memory") }
	if a := e.EstimateArea(25, 10, curve); a != 0 {
		t.Errorf("failed allocation: got %g, want 0", a)
	}
}

func TestSurfaceSize(t *testing.T) {
	var gotW, gotH int
	e := &Estimator{NewSurface: func(w, h int) (Surface, error) {
		gotW, gotH = w, h
		return &recordingSurface{}, nil
	}}
	e.EstimateArea(10.2, 0.5, []geometry.Segment{{vec.Vec2{}}})
	if gotW != 11 || gotH != 1 {
		t.Errorf("surface %dx%d, want 11x1", gotW, gotH)
	}
}

func TestBackend(t *testing.T) {
	for _, name := range []string{"", "raster", "Vector", " gg "} {
		if _, err := Backend(name); err != nil {
			t.Errorf("Backend(%q): %v", name, err)
		}
	}
	if _, err := Backend("cairo"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Backend(cairo): got %v, want ErrUnknownBackend", err)
	}
	if _, err := New("cairo", nil); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New(cairo): got %v, want ErrUnknownBackend", err)
	}
}

func TestBackendsPaintSentinel(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 2}).
		LineTo(vec.Vec2{X: 14, Y: 2}).
		LineTo(vec.Vec2{X: 14, Y: 14}).
		LineTo(vec.Vec2{X: 2, Y: 14}).
		Close()
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			f, err := Backend(name)
			if err != nil {
				t.Fatal(err)
			}
			s, err := f(16, 16)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()

			if err := s.Fill(p, Sentinel); err != nil {
				t.Fatal(err)
			}
			if c := s.RGBAAt(8, 8); c != Sentinel {
				t.Errorf("inside: got %v, want %v", c, Sentinel)
			}
			if c := s.RGBAAt(0, 0); c == Sentinel {
				t.Errorf("outside pixel has the sentinel color")
			}
		})
	}
}

func TestGGNearSentinel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0x33, G: 0xFF, B: 0x00, A: 0xFF})
	img.SetRGBA(1, 0, color.RGBA{R: 0x32, G: 0xFE, B: 0x00, A: 0xFE})
	img.SetRGBA(2, 0, color.RGBA{R: 0x33, G: 0x00, B: 0x00, A: 0xFF})
	img.SetRGBA(3, 0, color.RGBA{R: 0x31, G: 0xFF, B: 0x00, A: 0xFF})
	s := &ggSurface{img: img, last: Sentinel}

	for x, want := range []bool{true, true, false, false} {
		if got := s.RGBAAt(x, 0) == Sentinel; got != want {
			t.Errorf("pixel %d %v: sentinel match %t, want %t", x, img.RGBAAt(x, 0), got, want)
		}
	}
}
