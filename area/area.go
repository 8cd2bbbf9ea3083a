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

// Package area estimates the surface area of curved outlines.
//
// The outline is filled with a sentinel color into an off-screen surface,
// and the area is derived from the fraction of randomly sampled pixels
// which carry exactly that color.  Partially covered edge pixels count as
// empty, so estimates are slightly low on average.
package area

import (
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/shapefall/geometry"
)

// Sentinel is the fill color used for off-screen rendering.  It is never
// used for visible shapes.
var Sentinel = color.RGBA{R: 0x33, G: 0xFF, B: 0x00, A: 0xFF}

// Surface is an off-screen drawing target which starts out transparent.
type Surface interface {
	// Fill paints the interior of p, using the nonzero winding rule.
	Fill(p *path.Data, c color.RGBA) error

	// RGBAAt returns the color of the pixel at (x, y).
	RGBAAt(x, y int) color.RGBA

	// Close releases the resources held by the surface.
	Close() error
}

// NewSurfaceFunc allocates a width×height surface.
type NewSurfaceFunc func(width, height int) (Surface, error)

// Estimator is a Monte-Carlo area estimator.
//
// An Estimator is not safe for concurrent use if Rand is set.
type Estimator struct {
	// NewSurface allocates the off-screen surfaces.
	// If nil, the raster backend is used.
	NewSurface NewSurfaceFunc

	// Rand is the source of sample positions.
	// If nil, the global generator of math/rand/v2 is used.
	Rand *rand.Rand
}

// New returns an estimator using the named backend and random source.
func New(backend string, rng *rand.Rand) (*Estimator, error) {
	f, err := Backend(backend)
	if err != nil {
		return nil, err
	}
	return &Estimator{NewSurface: f, Rand: rng}, nil
}

// EstimateArea estimates the area enclosed by curve inside a
// width×height box.  The result is always in the range [0, width·height].
// Failures to allocate or draw the surface give 0.
func (e *Estimator) EstimateArea(width, height float64, curve []geometry.Segment) float64 {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return 0
	}
	pw := max(int(math.Ceil(width)), 1)
	ph := max(int(math.Ceil(height)), 1)

	newSurface := e.NewSurface
	if newSurface == nil {
		newSurface = newRasterSurface
	}
	s, err := newSurface(pw, ph)
	if err != nil {
		Logger().Warn("area: cannot allocate surface",
			slog.Int("width", pw), slog.Int("height", ph), slog.Any("error", err))
		return 0
	}
	defer s.Close()

	if err := s.Fill(geometry.CurvePath(curve), Sentinel); err != nil {
		Logger().Warn("area: cannot draw outline", slog.Any("error", err))
		return 0
	}

	samples := pw
	hits := 0
	for range samples {
		if s.RGBAAt(e.intN(pw), e.intN(ph)) == Sentinel {
			hits++
		}
	}

	res := HitsToArea(hits, samples, width, height)
	Logger().Debug("area: estimate",
		slog.Int("hits", hits), slog.Int("samples", samples), slog.Float64("area", res))
	return res
}

func (e *Estimator) intN(n int) int {
	if e.Rand == nil {
		return rand.IntN(n)
	}
	return e.Rand.IntN(n)
}

// HitsToArea converts a sample count into an area estimate for a
// width×height box.  The empty fraction is rounded down to whole percent.
// No hits give area 0 and hits on every sample give the full box.
func HitsToArea(hits, samples int, width, height float64) float64 {
	box := width * height
	if samples <= 0 || hits <= 0 || !(box > 0) {
		return 0
	}
	if hits >= samples {
		return box
	}
	percent := math.Floor(100 - 100*float64(hits)/float64(samples))
	return min(max(box*(1-percent/100), 0), box)
}
