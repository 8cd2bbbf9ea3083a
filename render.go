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

package shapefall

import (
	"image/color"

	"seehuhn.de/go/shapefall/geometry"
)

// Renderer shows shapes on screen.
type Renderer interface {
	// CreateShape displays a new shape with its bounding box at (x, y).
	// The renderer calls onClick when the user clicks the shape.
	CreateShape(g *geometry.Geometry, c color.RGBA, x, y float64, onClick func()) Handle
}

// Handle refers to one shape shown by a Renderer.
type Handle interface {
	SetColor(c color.RGBA)
	SetPosition(x, y float64)
	Destroy()
}

// Stats holds the counters shown to the user.
type Stats struct {
	Amount  int     // number of visible shapes
	Area    float64 // total area of the visible shapes
	Spawn   int     // shapes spawned per second
	Gravity int     // pixels per frame
}

// Display receives the counters whenever they change.
type Display interface {
	Update(s Stats)
}

type nopRenderer struct{}

func (nopRenderer) CreateShape(*geometry.Geometry, color.RGBA, float64, float64, func()) Handle {
	return nopHandle{}
}

type nopHandle struct{}

func (nopHandle) SetColor(color.RGBA)          {}
func (nopHandle) SetPosition(float64, float64) {}
func (nopHandle) Destroy()                     {}

type nopDisplay struct{}

func (nopDisplay) Update(Stats) {}
