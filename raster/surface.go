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

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

var (
	// ErrClosed is returned by operations on a closed Surface.
	ErrClosed = errors.New("raster: surface is closed")

	// ErrSize is returned by NewSurface for unusable dimensions.
	ErrSize = errors.New("raster: invalid surface size")
)

// MaxSurfaceSize is the largest accepted width or height of a Surface.
const MaxSurfaceSize = 1 << 14

var rasterizers = sync.Pool{
	New: func() any { return NewRasterizer(rect.Rect{}) },
}

// Surface is an off-screen RGBA image which paths can be filled into.
// The image starts fully transparent.  A Surface must be closed after use,
// which returns its rasterizer to a shared pool.
type Surface struct {
	img *image.RGBA
	r   *Rasterizer
}

// NewSurface allocates a transparent width×height surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 || width > MaxSurfaceSize || height > MaxSurfaceSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}

	r := rasterizers.Get().(*Rasterizer)
	r.Reset(rect.Rect{URx: float64(width), URy: float64(height)})
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		r:   r,
	}, nil
}

// SetTransform sets the matrix which maps path coordinates to pixel
// coordinates for subsequent fills.  New surfaces use the identity.
func (s *Surface) SetTransform(m matrix.Matrix) {
	if s.r != nil {
		s.r.CTM = m
	}
}

// Fill paints the interior of p, using the nonzero winding rule, with the
// color c.  Partially covered pixels are blended source-over, so that only
// fully covered pixels take exactly the value c.
func (s *Surface) Fill(p *path.Data, c color.RGBA) error {
	if s.r == nil {
		return ErrClosed
	}

	img := s.img
	sr, sg, sb, sa := float32(c.R), float32(c.G), float32(c.B), float32(c.A)/255
	s.r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+xMin*4:]
		for i, cov := range coverage {
			px := row[i*4 : i*4+4 : i*4+4]
			keep := 1 - sa*cov
			px[0] = blend(sr*cov, px[0], keep)
			px[1] = blend(sg*cov, px[1], keep)
			px[2] = blend(sb*cov, px[2], keep)
			px[3] = blend(255*sa*cov, px[3], keep)
		}
	})
	return nil
}

// blend computes src + dst*keep, rounded to the nearest byte.
func blend(src float32, dst uint8, keep float32) uint8 {
	v := src + float32(dst)*keep + 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// RGBAAt returns the pixel at (x, y).  Points outside the surface, and all
// points of a closed surface, are transparent.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	if s.img == nil {
		return color.RGBA{}
	}
	return s.img.RGBAAt(x, y)
}

// Image returns the pixel buffer.  It is nil once the surface is closed.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Close releases the surface.  Calling Close more than once is allowed.
func (s *Surface) Close() error {
	if s.r == nil {
		return nil
	}
	rasterizers.Put(s.r)
	s.r = nil
	s.img = nil
	return nil
}
