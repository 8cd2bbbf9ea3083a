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
	"cmp"
	"math"
	"slices"
)

// Every pixel carries two accumulators.  An edge piece crossing the pixel
// with signed vertical extent dy adds
//
//	cover += dy
//	area  += dy * (1 - xFrac)
//
// where xFrac is the mean horizontal position of the piece inside the
// pixel.  Scanning a row from left to right, the coverage of pixel i is
// the running sum of cover over pixels 0..i-1 plus area[i].  Pieces left
// of the bounding box are folded into pixel 0.

// accumulate adds the part of e inside scanline y to cover and area.
// Both slices are indexed by x-xMin and cover the pixels xMin..xMax-1.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}

	var sign float32 = 1
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bot-e.y0)
	left, right := min(xa, xb), max(xa, xb)
	pl := int(math.Floor(left))
	pr := int(math.Floor(right))

	switch {
	case pr < xMin:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case pl >= xMax:
		return
	case pl == pr:
		addPiece(e, top, bot, sign, pl, cover, area, xMin, xMax)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for px := pl; px <= pr; px++ {
		ya := e.y0 + dydx*(float64(px)-e.x0)
		yb := e.y0 + dydx*(float64(px+1)-e.x0)
		lo := max(min(ya, yb), top)
		hi := min(max(ya, yb), bot)
		if hi <= lo {
			continue
		}
		addPiece(e, lo, hi, sign, px, cover, area, xMin, xMax)
	}
}

// addPiece records the piece of e between lo and hi, which lies inside
// pixel column px.
func addPiece(e *edge, lo, hi float64, sign float32, px int, cover, area []float32, xMin, xMax int) {
	c := sign * float32(hi-lo)
	if px < xMin {
		cover[0] += c
		area[0] += c
		return
	}
	if px >= xMax {
		return
	}

	xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
	frac := xMid - float64(px)
	i := px - xMin
	cover[i] += c
	area[i] += c * float32(1-frac)
}

// resolve turns the accumulated cover and area of one row into coverage
// values, which are written to cover.
func resolve(cover, area []float32, rule fillRule) {
	var run float32
	for i := range cover {
		w := run + area[i]
		run += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == nonZero {
			cover[i] = min(w, 1)
		} else {
			m := w - 2*float32(int(w/2))
			d := 1 - m
			if d < 0 {
				d = -d
			}
			cover[i] = 1 - d
		}
	}
}

// trimZeros strips leading and trailing zeros from coverage.
// The returned offset is the index of the first kept element; an all
// zero row gives a nil slice.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// scanDense rasterizes into full width×height buffers.  This needs no
// sorting and is fast for small shapes.
func (r *Rasterizer) scanDense(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w := xMax - xMin
	h := yMax - yMin

	r.cover = slices.Grow(r.cover[:0], w*h)[:w*h]
	r.area = slices.Grow(r.area[:0], w*h)[:w*h]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		y1 := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * w
			accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range h {
		if !r.rowUsed[row] {
			continue
		}
		off := row * w
		line := r.cover[off : off+w]
		resolve(line, r.area[off:off+w], rule)
		if trimmed, k := trimZeros(line); trimmed != nil {
			emit(yMin+row, xMin+k, trimmed)
		}
	}
}

// scanActive rasterizes one scanline at a time, keeping a list of the
// edges which intersect the current row.
func (r *Rasterizer) scanActive(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop, yBot := float64(y), float64(y+1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yBot {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= yTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			accumulate(e, y, r.cover, r.area, xMin, xMax)
			if min(yBot, max(e.y0, e.y1)) > max(yTop, min(e.y0, e.y1)) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		resolve(r.cover, r.area, rule)
		if trimmed, k := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+k, trimmed)
		}
	}
}
