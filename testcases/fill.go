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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var fillCases = []TestCase{
	{
		Name:   "triangle_nonzero",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   880,
	},
	{
		Name:   "triangle_evenodd",
		Path:   triangle(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
		Area:   880,
	},
	{
		Name:   "star_nonzero",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
	},
	{
		Name:   "star_evenodd",
		Path:   fivePointStar(32, 32, 25),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 44, 44),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   34 * 34,
	},
	{
		Name:   "ring_nonzero",
		Path:   ring(32, 32, 24, 12),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   48*48 - 24*24,
	},
	{
		Name:   "ring_evenodd",
		Path:   ring(32, 32, 24, 12),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
		Area:   48*48 - 24*24,
	},
	{
		Name:   "nested_same_direction_evenodd",
		Path:   nested(32, 32, 24, 12),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
		Area:   48*48 - 24*24,
	},
	{
		Name:   "nested_same_direction_nonzero",
		Path:   nested(32, 32, 24, 12),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   48 * 48,
	},
}

// triangle builds a triangular path.
func triangle(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x3, y3)).
		Close()
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	pts := make([]vec.Vec2, 5)
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}

	// draw star: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	p := (&path.Data{}).MoveTo(pts[0])
	for _, i := range []int{2, 4, 1, 3} {
		p = p.LineTo(pts[i])
	}
	return p.Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// ring builds two concentric squares with opposite orientation.
func ring(cx, cy, outer, inner float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(cx-outer, cy-outer)).
		LineTo(pt(cx+outer, cy-outer)).
		LineTo(pt(cx+outer, cy+outer)).
		LineTo(pt(cx-outer, cy+outer)).
		Close().
		MoveTo(pt(cx-inner, cy-inner)).
		LineTo(pt(cx-inner, cy+inner)).
		LineTo(pt(cx+inner, cy+inner)).
		LineTo(pt(cx+inner, cy-inner)).
		Close()
}

// nested builds two concentric squares with the same orientation.
func nested(cx, cy, outer, inner float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(cx-outer, cy-outer)).
		LineTo(pt(cx+outer, cy-outer)).
		LineTo(pt(cx+outer, cy+outer)).
		LineTo(pt(cx-outer, cy+outer)).
		Close().
		MoveTo(pt(cx-inner, cy-inner)).
		LineTo(pt(cx+inner, cy-inner)).
		LineTo(pt(cx+inner, cy+inner)).
		LineTo(pt(cx-inner, cy+inner)).
		Close()
}
