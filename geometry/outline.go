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

package geometry

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// PolygonArea returns the signed area of a polygon using the shoelace
// formula.  The polygon is closed implicitly.  With y pointing down,
// clockwise outlines have positive area.
func PolygonArea(pts []vec.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return sum / 2
}

// Gauss-Legendre nodes and weights on [0, 1].  Three nodes integrate
// polynomials up to degree 5 exactly, which covers x·y' for cubics.
var (
	glNodes   = [3]float64{0.5 - math.Sqrt(15)/10, 0.5, 0.5 + math.Sqrt(15)/10}
	glWeights = [3]float64{5.0 / 18, 8.0 / 18, 5.0 / 18}
)

// CurveArea returns the signed area enclosed by a curved outline, closing
// the outline with a straight line back to the anchor.  The sign follows
// the same convention as PolygonArea.
func CurveArea(curve []Segment) float64 {
	if len(curve) == 0 || len(curve[0]) == 0 {
		return 0
	}
	start := curve[0][0]
	cur := start
	var sum float64
	for _, seg := range curve[1:] {
		if len(seg) != 3 {
			continue
		}
		sum += cubicArea(cur, seg[0], seg[1], seg[2])
		cur = seg[2]
	}
	sum += (cur.X*start.Y - start.X*cur.Y) / 2
	return sum
}

// cubicArea integrates (x·y' - y·x')/2 along one cubic Bézier.
func cubicArea(p0, p1, p2, p3 vec.Vec2) float64 {
	var sum float64
	for i, t := range glNodes {
		s := 1 - t
		b := p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
		d := p1.Sub(p0).Mul(3 * s * s).Add(p2.Sub(p1).Mul(6 * s * t)).Add(p3.Sub(p2).Mul(3 * t * t))
		sum += glWeights[i] * (b.X*d.Y - b.Y*d.X)
	}
	return sum / 2
}

// Contains reports whether p, relative to the top-left corner of the
// bounding box, lies inside the outline.  Curves are approximated by
// flatSteps line segments each.
func (g *Geometry) Contains(p vec.Vec2) bool {
	switch {
	case g.Kind == Circle && len(g.Polygon) == 1:
		r := g.Radius()
		return p.Sub(g.Polygon[0]).Length() <= r
	case len(g.Curve) > 0:
		return winding(flatten(g.Curve), p) != 0
	case len(g.Polygon) > 0:
		return winding(g.Polygon, p) != 0
	}
	return false
}

const flatSteps = 16

// flatten approximates a curved outline by a polygon.
func flatten(curve []Segment) []vec.Vec2 {
	if len(curve[0]) == 0 {
		return nil
	}
	cur := curve[0][0]
	pts := []vec.Vec2{cur}
	for _, seg := range curve[1:] {
		if len(seg) != 3 {
			continue
		}
		for i := 1; i <= flatSteps; i++ {
			t := float64(i) / flatSteps
			s := 1 - t
			q := cur.Mul(s * s * s).Add(seg[0].Mul(3 * s * s * t)).Add(seg[1].Mul(3 * s * t * t)).Add(seg[2].Mul(t * t * t))
			pts = append(pts, q)
		}
		cur = seg[2]
	}
	return pts
}

// winding returns the winding number of the closed polygon pts around p.
func winding(pts []vec.Vec2, p vec.Vec2) int {
	if len(pts) < 3 {
		return 0
	}
	w := 0
	prev := pts[len(pts)-1]
	for _, q := range pts {
		if prev.Y <= p.Y {
			if q.Y > p.Y && cross(prev, q, p) > 0 {
				w++
			}
		} else if q.Y <= p.Y && cross(prev, q, p) < 0 {
			w--
		}
		prev = q
	}
	return w
}

// cross is positive if c lies left of the line a→b.
func cross(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}
