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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/shapefall/geometry"
)

var ctmCases = []TestCase{
	transformed("heart_scale_2x", geometry.Heart, 2, 128, 112, matrix.Scale(2, 2)),
	transformed("circle_scale_half", geometry.Circle, 5, 64, 64, matrix.Scale(0.5, 0.5)),
	transformed("rectangle_scale_10x", geometry.Rectangle, 0.2, 80, 56, matrix.Scale(10, 10)),
	transformed("hexagon_stretch_y", geometry.Hexagon, 2, 64, 96, matrix.Scale(1, 2)),
	transformed("ellipse_rotate_30", geometry.Ellipse, 3, 128, 128, matrix.RotateDeg(30)),
	transformed("pentagon_rotate_90", geometry.Pentagon, 3, 80, 80, matrix.RotateDeg(90)),
	transformed("triangle_rotate_5", geometry.Triangle, 3, 80, 80, matrix.RotateDeg(5)),
	transformed("heart_rotate_45", geometry.Heart, 3, 128, 128, matrix.RotateDeg(45)),
}

// transformed builds a fixture where the kind k outline, centered on the
// origin, is mapped by m and then moved to the center of the canvas.
func transformed(name string, k geometry.Kind, size float64, width, height int, m matrix.Matrix) TestCase {
	gen := geometry.Generator{Size: size}
	w, h := k.Box(size)
	g := gen.Generate(k, w, h)
	b := g.Bounds()
	det := m[0]*m[3] - m[1]*m[2]
	return TestCase{
		Name:   name,
		Path:   translate(g.Path(), -(b.LLx+b.URx)/2, -(b.LLy+b.URy)/2),
		Width:  width,
		Height: height,
		Rule:   NonZero,
		CTM:    m.Translate(float64(width)/2, float64(height)/2),
		Area:   OutlineArea(&g) * math.Abs(det),
	}
}
