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
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/shapefall/raster"
)

// ggSurface draws with the software renderer of github.com/gogpu/gg.
//
// gg stores colors as float64 and truncates when writing pixels, so a
// channel may come back one below the value it was painted with.  Pixels
// within one unit of the last fill color on every channel are reported as
// that color.
type ggSurface struct {
	ctx  *gg.Context
	img  *image.RGBA
	last color.RGBA
}

func newGGSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 || width > raster.MaxSurfaceSize || height > raster.MaxSurfaceSize {
		return nil, raster.ErrSize
	}
	return &ggSurface{ctx: gg.NewContext(width, height)}, nil
}

func (s *ggSurface) Fill(p *path.Data, c color.RGBA) error {
	if s.ctx == nil {
		return raster.ErrClosed
	}

	s.ctx.ClearPath()
	s.ctx.SetFillRule(gg.FillRuleNonZero)
	s.ctx.SetColor(c)
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			q := p.Coords[k]
			s.ctx.MoveTo(q.X, q.Y)
			k++
		case path.CmdLineTo:
			q := p.Coords[k]
			s.ctx.LineTo(q.X, q.Y)
			k++
		case path.CmdQuadTo:
			q1, q2 := p.Coords[k], p.Coords[k+1]
			s.ctx.QuadraticTo(q1.X, q1.Y, q2.X, q2.Y)
			k += 2
		case path.CmdCubeTo:
			q1, q2, q3 := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			s.ctx.CubicTo(q1.X, q1.Y, q2.X, q2.Y, q3.X, q3.Y)
			k += 3
		case path.CmdClose:
			s.ctx.ClosePath()
		}
	}
	if err := s.ctx.Fill(); err != nil {
		return fmt.Errorf("area: gg fill: %w", err)
	}

	img, ok := s.ctx.Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("area: gg returned %T", s.ctx.Image())
	}
	s.img = img
	s.last = c
	return nil
}

func (s *ggSurface) RGBAAt(x, y int) color.RGBA {
	if s.img == nil {
		return color.RGBA{}
	}
	px := s.img.RGBAAt(x, y)
	if near(px.R, s.last.R) && near(px.G, s.last.G) && near(px.B, s.last.B) && near(px.A, s.last.A) {
		return s.last
	}
	return px
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func (s *ggSurface) Close() error {
	if s.ctx == nil {
		return nil
	}
	err := s.ctx.Close()
	s.ctx = nil
	s.img = nil
	return err
}
