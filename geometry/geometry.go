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

// Package geometry computes the outlines and surface areas of the shapes
// which fall through the scene.
//
// All coordinates are relative to the top-left corner of the shape's
// bounding box, with y pointing down.
package geometry

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a cubic Bézier approximation of
// a quarter circle of radius 1.
const kappa = 0.5522847498307936

// Segment is one piece of a curved outline.  The first segment of an
// outline holds a single anchor point; every following segment holds the
// two control points and the end point of a cubic Bézier curve.
type Segment []vec.Vec2

// Geometry is the outline and area of a shape inside its bounding box.
type Geometry struct {
	Kind          Kind
	Width, Height float64

	// Polygon lists the vertices of polygonal kinds, with the first point
	// repeated at the end.  For circles it holds the single anchor point
	// the circle is centered on.
	Polygon []vec.Vec2

	// Curve holds the segments of Bézier outlined kinds.
	Curve []Segment

	// Area is the surface area of the shape.
	Area float64
}

// Empty reports whether the geometry has no outline.
func (g *Geometry) Empty() bool {
	return len(g.Polygon) == 0 && len(g.Curve) == 0
}

// NumPoints returns the number of points stored in the outline.
func (g *Geometry) NumPoints() int {
	n := len(g.Polygon)
	for _, seg := range g.Curve {
		n += len(seg)
	}
	return n
}

// Radius returns the radius of a circle geometry.
func (g *Geometry) Radius() float64 {
	return g.Width / 2
}

// Path returns the closed outline of the shape.
func (g *Geometry) Path() *path.Data {
	switch {
	case g.Kind == Circle && len(g.Polygon) == 1:
		c := g.Polygon[0]
		return circlePath(c.X, c.Y, g.Radius())
	case len(g.Curve) > 0:
		return CurvePath(g.Curve)
	case len(g.Polygon) > 0:
		p := (&path.Data{}).MoveTo(g.Polygon[0])
		for _, pt := range g.Polygon[1:] {
			p = p.LineTo(pt)
		}
		return p.Close()
	}
	return &path.Data{}
}

// Bounds returns a rectangle containing the whole outline.
// For curves this is the bounding box of the control points.
func (g *Geometry) Bounds() rect.Rect {
	if g.Kind == Circle && len(g.Polygon) == 1 {
		c, r := g.Polygon[0], g.Radius()
		return rect.Rect{LLx: c.X - r, LLy: c.Y - r, URx: c.X + r, URy: c.Y + r}
	}

	var b rect.Rect
	first := true
	add := func(v vec.Vec2) {
		if first {
			b = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
			first = false
			return
		}
		b.LLx = min(b.LLx, v.X)
		b.LLy = min(b.LLy, v.Y)
		b.URx = max(b.URx, v.X)
		b.URy = max(b.URy, v.Y)
	}
	for _, v := range g.Polygon {
		add(v)
	}
	for _, seg := range g.Curve {
		for _, v := range seg {
			add(v)
		}
	}
	return b
}

// CurvePath converts curve segments into a closed path.
// Segments which are neither anchors nor Bézier triples are skipped.
func CurvePath(curve []Segment) *path.Data {
	p := &path.Data{}
	if len(curve) == 0 || len(curve[0]) == 0 {
		return p
	}
	p = p.MoveTo(curve[0][0])
	for _, seg := range curve[1:] {
		if len(seg) != 3 {
			continue
		}
		p = p.CubeTo(seg[0], seg[1], seg[2])
	}
	return p.Close()
}

// circlePath approximates a circle by four cubic Bézier quadrants.
func circlePath(cx, cy, r float64) *path.Data {
	k := r * kappa
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy + k}, vec.Vec2{X: cx + k, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx - k, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + k}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy - k}, vec.Vec2{X: cx - k, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx + k, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - k}, vec.Vec2{X: cx + r, Y: cy}).
		Close()
}
