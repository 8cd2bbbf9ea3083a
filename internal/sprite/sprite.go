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

// Package sprite pre-renders shape outlines into images.
package sprite

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/shapefall/geometry"
	"seehuhn.de/go/shapefall/raster"
)

// Render fills the outline of g with c, at the given scale.  The returned
// point is the position of the image's top-left corner relative to the
// top-left corner of the (scaled) bounding box; it is negative or zero
// for shapes which reach outside their box.
func Render(g *geometry.Geometry, c color.RGBA, scale float64) (*image.RGBA, image.Point, error) {
	b := g.Bounds()
	x0 := int(math.Floor(b.LLx * scale))
	y0 := int(math.Floor(b.LLy * scale))
	x1 := int(math.Ceil(b.URx * scale))
	y1 := int(math.Ceil(b.URy * scale))

	s, err := raster.NewSurface(max(x1-x0, 1), max(y1-y0, 1))
	if err != nil {
		return nil, image.Point{}, err
	}
	defer s.Close()

	s.SetTransform(matrix.Scale(scale, scale).Translate(float64(-x0), float64(-y0)))
	if err := s.Fill(g.Path(), c); err != nil {
		return nil, image.Point{}, err
	}
	return s.Image(), image.Point{X: x0, Y: y0}, nil
}
