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
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/shapefall/geometry"
)

// margin is the empty border around shape fixtures, in pixels.
const margin = 4

var shapeCases = slices.Concat(
	shapeFixtures("", geometry.DefaultSize),
	shapeFixtures("_tiny", 1),
	shapeFixtures("_odd", 2.3),
)

// shapeFixtures returns one fixture per shape kind, with the bounding box
// derived from size.  The outline is placed margin pixels from the
// top-left corner of the canvas.
func shapeFixtures(suffix string, size float64) []TestCase {
	gen := geometry.Generator{Size: size}
	var res []TestCase
	for _, k := range geometry.Kinds() {
		w, h := k.Box(size)
		g := gen.Generate(k, w, h)
		b := g.Bounds()
		res = append(res, TestCase{
			Name:   k.String() + suffix,
			Path:   translate(g.Path(), margin-b.LLx, margin-b.LLy),
			Width:  int(math.Ceil(b.URx-b.LLx)) + 2*margin,
			Height: int(math.Ceil(b.URy-b.LLy)) + 2*margin,
			Rule:   NonZero,
			Area:   OutlineArea(&g),
		})
	}
	return res
}

// OutlineArea returns the area enclosed by the drawn outline of g.  This
// differs from g.Area for circles, whose nominal area uses the ellipse
// formula, and for hearts, whose nominal area may be an estimate.
func OutlineArea(g *geometry.Geometry) float64 {
	switch {
	case g.Kind == geometry.Circle:
		r := g.Radius()
		return math.Pi * r * r
	case g.Kind.IsCurve():
		return math.Abs(geometry.CurveArea(g.Curve))
	default:
		return math.Abs(geometry.PolygonArea(g.Polygon))
	}
}

// translate returns a copy of p, shifted by (dx, dy).
func translate(p *path.Data, dx, dy float64) *path.Data {
	res := &path.Data{
		Cmds:   slices.Clone(p.Cmds),
		Coords: slices.Clone(p.Coords),
	}
	for i := range res.Coords {
		res.Coords[i].X += dx
		res.Coords[i].Y += dy
	}
	return res
}
