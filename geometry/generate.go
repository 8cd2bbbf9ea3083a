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

// DefaultSize is the size unit used by the package level Generate.
const DefaultSize = 5

// AreaEstimator estimates the area enclosed by a curved outline which lies
// inside a width×height box.
type AreaEstimator interface {
	EstimateArea(width, height float64, curve []Segment) float64
}

// Generator builds shape geometries.
type Generator struct {
	// Size is the unit from which the heart outline is built.
	// Zero means DefaultSize.
	Size float64

	// Estimator provides the area of shapes without a closed form area.
	// If nil, the area is computed exactly from the Bézier outline.
	Estimator AreaEstimator
}

// Generate returns the geometry of a kind k shape inside a width×height
// box, using DefaultSize and the exact outline area for hearts.
func Generate(k Kind, width, height float64) Geometry {
	var g Generator
	return g.Generate(k, width, height)
}

// Generate returns the geometry of a kind k shape inside a width×height
// box.  Unknown kinds and empty boxes give an empty geometry with area 0.
func (gen *Generator) Generate(k Kind, width, height float64) Geometry {
	g := Geometry{Kind: k, Width: width, Height: height}
	if !k.Valid() || !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return g
	}

	size := gen.Size
	if size <= 0 {
		size = DefaultSize
	}
	builders[k](&g, size)

	if k == Heart {
		if gen.Estimator != nil {
			g.Area = gen.Estimator.EstimateArea(width, height, g.Curve)
		} else {
			g.Area = math.Abs(CurveArea(g.Curve))
		}
	}
	return g
}

// builders holds one outline constructor per kind.
var builders = [numKinds]func(g *Geometry, size float64){
	Triangle:  buildTriangle,
	Rectangle: buildRectangle,
	Pentagon:  buildPentagon,
	Hexagon:   buildHexagon,
	Circle:    buildCircle,
	Ellipse:   buildEllipse,
	Heart:     buildHeart,
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func buildTriangle(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	g.Polygon = []vec.Vec2{pt(w/2, 0), pt(w, h), pt(0, h), pt(w/2, 0)}
	g.Area = w / 2 * h
}

func buildRectangle(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	g.Polygon = []vec.Vec2{pt(0, 0), pt(w, 0), pt(w, h), pt(0, h), pt(0, 0)}
	g.Area = w * h
}

// PentagonSide returns the side length of the regular pentagon whose
// diagonal spans width.
func PentagonSide(width float64) float64 {
	return width / (2*math.Cos(2*math.Pi/5) + 1)
}

// HexagonSide returns the side length of the regular hexagon which spans
// width from corner to corner.
func HexagonSide(width float64) float64 {
	return width / 2
}

// RegularPolygonArea returns the area of a regular n-gon with the given
// side length.
func RegularPolygonArea(n int, side float64) float64 {
	return float64(n) * side * side / (4 * math.Tan(math.Pi/float64(n)))
}

func buildPentagon(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	side := PentagonSide(w)
	top := w - side/(2*math.Tan(math.Pi/5)) - side/(2*math.Sin(math.Pi/5))
	dx := (w - side) / 2
	dy := math.Sqrt(side*side - w*w/4)
	g.Polygon = []vec.Vec2{
		pt(w/2, top),
		pt(w, top+dy),
		pt(w-dx, h),
		pt(dx, h),
		pt(0, top+dy),
		pt(w/2, top),
	}
	g.Area = RegularPolygonArea(5, side)
}

func buildHexagon(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	side := HexagonSide(w)
	top := h - 2*(side/(2*math.Tan(math.Pi/6)))
	dx := w / 4
	mid := top + (h-top)/2
	g.Polygon = []vec.Vec2{
		pt(dx, top),
		pt(w-dx, top),
		pt(w, mid),
		pt(w-dx, h),
		pt(dx, h),
		pt(0, mid),
		pt(dx, top),
	}
	g.Area = RegularPolygonArea(6, side)
}

// buildCircle stores the circle center.  The circle is drawn a quarter of
// the box height below the box center.
func buildCircle(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	g.Polygon = []vec.Vec2{pt(w/2, h/2+h/4)}
	g.Area = w / 2 * h / 2
}

func buildEllipse(g *Geometry, _ float64) {
	w, h := g.Width, g.Height
	cx, cy := w/2, h/2
	qx, qy := w/4, h/4
	g.Curve = []Segment{
		{pt(w, cy)},
		{pt(w, h-qy), pt(w-qx, h), pt(cx, h)},
		{pt(qx, h), pt(0, h-qy), pt(0, cy)},
		{pt(0, qy), pt(qx, 0), pt(cx, 0)},
		{pt(w-qx, 0), pt(w, qy), pt(w, cy)},
	}
	g.Area = w / 2 * h / 2
}

// buildHeart lays out the heart from seven segments.  The control points
// are offsets, in multiples of size, from the corners, edges and center
// of the box.
func buildHeart(g *Geometry, s float64) {
	w, h := g.Width, g.Height
	cx, cy := w/2, h/2
	small := s / 2
	tiny := s / 10
	dip := 3 * s
	shoulder := cy - 2*s
	g.Curve = []Segment{
		{pt(cx, dip)},
		{pt(cx, dip-small-tiny), pt(cx-s, 0), pt(cx-5*s, 0)},
		{pt(0, 0), pt(0, shoulder), pt(0, shoulder)},
		{pt(0, cy+small+s), pt(4*s, h-4*s+small-tiny), pt(cx, h)},
		{pt(w-4*s, h-4*s+small-tiny), pt(w, cy+small+s), pt(w, shoulder)},
		{pt(w, shoulder), pt(w, 0), pt(w-6*s, 0)},
		{pt(cx+2*s, 0), pt(cx, dip-small-tiny), pt(cx, dip)},
	}
}
