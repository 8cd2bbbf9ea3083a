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
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/shapefall/raster"
)

// vectorSurface draws with golang.org/x/image/vector.
type vectorSurface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

func newVectorSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 || width > raster.MaxSurfaceSize || height > raster.MaxSurfaceSize {
		return nil, raster.ErrSize
	}
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Over
	return &vectorSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   z,
	}, nil
}

func (s *vectorSurface) Fill(p *path.Data, c color.RGBA) error {
	if s.z == nil {
		return raster.ErrClosed
	}
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			q := p.Coords[k]
			s.z.MoveTo(float32(q.X), float32(q.Y))
			k++
		case path.CmdLineTo:
			q := p.Coords[k]
			s.z.LineTo(float32(q.X), float32(q.Y))
			k++
		case path.CmdQuadTo:
			q1, q2 := p.Coords[k], p.Coords[k+1]
			s.z.QuadTo(float32(q1.X), float32(q1.Y), float32(q2.X), float32(q2.Y))
			k += 2
		case path.CmdCubeTo:
			q1, q2, q3 := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			s.z.CubeTo(float32(q1.X), float32(q1.Y), float32(q2.X), float32(q2.Y), float32(q3.X), float32(q3.Y))
			k += 3
		case path.CmdClose:
			s.z.ClosePath()
		}
	}
	s.z.ClosePath()

	s.z.Draw(s.img, b, image.NewUniform(c), image.Point{})
	return nil
}

func (s *vectorSurface) RGBAAt(x, y int) color.RGBA {
	if s.img == nil {
		return color.RGBA{}
	}
	return s.img.RGBAAt(x, y)
}

func (s *vectorSurface) Close() error {
	s.img = nil
	s.z = nil
	return nil
}
