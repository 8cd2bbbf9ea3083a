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

package raster

import (
	"errors"
	"image/color"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func square(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

func TestSurfaceFill(t *testing.T) {
	s, err := NewSurface(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	red := color.RGBA{R: 200, G: 10, B: 20, A: 255}
	if err := s.Fill(square(2, 2, 8, 8), red); err != nil {
		t.Fatal(err)
	}
	if c := s.RGBAAt(5, 5); c != red {
		t.Errorf("inside: got %v, want %v", c, red)
	}
	if c := s.RGBAAt(0, 0); c != (color.RGBA{}) {
		t.Errorf("outside: got %v, want transparent", c)
	}
	if c := s.RGBAAt(-1, 20); c != (color.RGBA{}) {
		t.Errorf("off surface: got %v, want transparent", c)
	}
}

func TestSurfacePartialPixel(t *testing.T) {
	s, err := NewSurface(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	green := color.RGBA{R: 0x33, G: 0xFF, A: 0xFF}
	if err := s.Fill(square(0.5, 0, 4, 1), green); err != nil {
		t.Fatal(err)
	}
	if c := s.RGBAAt(0, 0); c == green || c.A < 120 || c.A > 135 {
		t.Errorf("half covered pixel: got %v", c)
	}
	if c := s.RGBAAt(1, 0); c != green {
		t.Errorf("fully covered pixel: got %v, want %v", c, green)
	}
}

func TestSurfaceOver(t *testing.T) {
	s, err := NewSurface(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	blue := color.RGBA{B: 255, A: 255}
	halfRed := color.RGBA{R: 128, A: 128} // premultiplied
	if err := s.Fill(square(0, 0, 4, 4), blue); err != nil {
		t.Fatal(err)
	}
	if err := s.Fill(square(0, 0, 4, 4), halfRed); err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 128, B: 127, A: 255}
	if c := s.RGBAAt(2, 2); c != want {
		t.Errorf("got %v, want %v", c, want)
	}
}

func TestSurfaceClose(t *testing.T) {
	s, err := NewSurface(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Fill(square(0, 0, 3, 3), color.RGBA{A: 255}); !errors.Is(err, ErrClosed) {
		t.Errorf("Fill after Close: got %v, want ErrClosed", err)
	}
	if c := s.RGBAAt(1, 1); c != (color.RGBA{}) {
		t.Errorf("RGBAAt after Close: got %v", c)
	}
	if s.Image() != nil {
		t.Error("Image after Close is not nil")
	}
}

func TestSurfaceSize(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {MaxSurfaceSize + 1, 1}} {
		if _, err := NewSurface(size[0], size[1]); !errors.Is(err, ErrSize) {
			t.Errorf("NewSurface(%d, %d): got %v, want ErrSize", size[0], size[1], err)
		}
	}
}

// TestSurfaceReuse checks that a pooled rasterizer does not carry state
// from one surface to the next.
func TestSurfaceReuse(t *testing.T) {
	for i := range 5 {
		s, err := NewSurface(20+i, 20)
		if err != nil {
			t.Fatal(err)
		}
		c := color.RGBA{R: uint8(50 * i), G: 100, A: 255}
		if err := s.Fill(square(5, 5, 10, 10), c); err != nil {
			t.Fatal(err)
		}
		if got := s.RGBAAt(15, 15); got != (color.RGBA{}) {
			t.Errorf("round %d: stray pixel %v", i, got)
		}
		if got := s.RGBAAt(7, 7); got != c {
			t.Errorf("round %d: got %v, want %v", i, got, c)
		}
		s.Close()
	}
}

func TestSurfaceTransform(t *testing.T) {
	s, err := NewSurface(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	s.SetTransform(matrix.Scale(2, 2).Translate(1, 0))
	if err := s.Fill(square(1, 1, 3, 3), c); err != nil {
		t.Fatal(err)
	}
	// the square maps to [3, 7]×[2, 6]
	if got := s.RGBAAt(6, 5); got != c {
		t.Errorf("inside: got %v, want %v", got, c)
	}
	for _, p := range [][2]int{{2, 2}, {7, 3}, {4, 6}} {
		if got := s.RGBAAt(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("pixel %v: got %v, want transparent", p, got)
		}
	}
}
