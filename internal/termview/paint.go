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

package termview

import (
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/geometry"
	"seehuhn.de/go/shapefall/raster"
)

// minCoverage is the fraction of a cell a shape must cover for the cell
// to take the shape's color.
const minCoverage = 0.5

// opacity is the weight of a shape's color when blended into a cell.
const opacity = 0.5

// Grid maps the canvas onto a rectangle of terminal cells.
type Grid struct {
	Cols, Rows    int
	Width, Height float64 // canvas size
}

// CellCenter returns the canvas point in the middle of the given cell.
func (g Grid) CellCenter(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * g.Width / float64(g.Cols)
	y = (float64(row) + 0.5) * g.Height / float64(g.Rows)
	return x, y
}

// shapeToCells returns the map from shape coordinates to cell coordinates,
// for a shape whose bounding box is at the canvas point (x, y).
func (g Grid) shapeToCells(x, y float64) matrix.Matrix {
	sx := float64(g.Cols) / g.Width
	sy := float64(g.Rows) / g.Height
	return matrix.Matrix{sx, 0, 0, sy, x * sx, y * sy}
}

// A Cell is one character position of the terminal.
type Cell struct {
	Color  colorful.Color
	Filled bool
}

// Renderer keeps the shapes shown in the terminal.  Shapes are painted in
// creation order.
type Renderer struct {
	shapes []*cellShape
	r      *raster.Rasterizer
}

var _ shapefall.Renderer = (*Renderer)(nil)

// CreateShape implements [shapefall.Renderer].  Clicks are resolved by the
// event loop, so onClick is not used.
func (r *Renderer) CreateShape(g *geometry.Geometry, c color.RGBA, x, y float64, _ func()) shapefall.Handle {
	s := &cellShape{geom: g, x: x, y: y}
	s.SetColor(c)
	r.shapes = append(r.shapes, s)
	return s
}

// Paint computes the cell colors for all live shapes.  The buffer buf is
// reused if it is large enough.  Cells no shape covers are left unfilled,
// all others are blended on top of bg.
func (r *Renderer) Paint(g Grid, bg colorful.Color, buf []Cell) []Cell {
	r.shapes = slices.DeleteFunc(r.shapes, func(s *cellShape) bool {
		return s.destroyed
	})

	n := g.Cols * g.Rows
	if cap(buf) < n {
		buf = make([]Cell, n)
	}
	buf = buf[:n]
	clear(buf)
	if n == 0 || !(g.Width > 0) || !(g.Height > 0) {
		return buf
	}

	clip := rect.Rect{URx: float64(g.Cols), URy: float64(g.Rows)}
	if r.r == nil {
		r.r = raster.NewRasterizer(clip)
	}
	for _, s := range r.shapes {
		r.r.Reset(clip)
		r.r.CTM = g.shapeToCells(s.x, s.y)
		r.r.FillNonZero(s.geom.Path(), func(y, xMin int, coverage []float32) {
			row := buf[y*g.Cols:]
			for i, c := range coverage {
				if c < minCoverage {
					continue
				}
				cell := &row[xMin+i]
				if !cell.Filled {
					cell.Color = bg
					cell.Filled = true
				}
				cell.Color = cell.Color.BlendRgb(s.color, opacity).Clamped()
			}
		})
	}
	return buf
}

// Len returns the number of live shapes.
func (r *Renderer) Len() int {
	n := 0
	for _, s := range r.shapes {
		if !s.destroyed {
			n++
		}
	}
	return n
}

type cellShape struct {
	geom      *geometry.Geometry
	color     colorful.Color
	x, y      float64
	destroyed bool
}

func (s *cellShape) SetColor(c color.RGBA) {
	s.color, _ = colorful.MakeColor(c)
}

func (s *cellShape) SetPosition(x, y float64) {
	s.x, s.y = x, y
}

func (s *cellShape) Destroy() {
	s.destroyed = true
}
