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
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/shapefall/geometry"
)

// State is the lifecycle stage of a shape.
type State int

// The shape lifecycle.  States only ever advance.
const (
	Created State = iota
	FallingInvisible
	FallingVisible
	Removed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case FallingInvisible:
		return "falling-invisible"
	case FallingVisible:
		return "falling-visible"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Shape is one falling shape.
type Shape struct {
	ID       uuid.UUID
	Geometry geometry.Geometry

	// X and Y give the top-left corner of the bounding box in canvas
	// coordinates.
	X, Y float64

	Color color.RGBA

	seq    uint64 // creation order, for hit testing
	state  State
	handle Handle
}

// newShape creates a shape and shows it.  The shape starts out invisible.
func newShape(id uuid.UUID, g geometry.Geometry, x, y float64, c color.RGBA) *Shape {
	return &Shape{
		ID:       id,
		Geometry: g,
		X:        x,
		Y:        y,
		Color:    c,
		state:    Created,
		handle:   nopHandle{},
	}
}

// show attaches the shape to a renderer and moves it to FallingInvisible.
func (s *Shape) show(r Renderer, onClick func()) {
	if s.state != Created {
		return
	}
	s.handle = r.CreateShape(&s.Geometry, s.Color, s.X, s.Y, onClick)
	s.state = FallingInvisible
}

// Kind returns the shape kind.
func (s *Shape) Kind() geometry.Kind {
	return s.Geometry.Kind
}

// Width returns the width of the bounding box.
func (s *Shape) Width() float64 {
	return s.Geometry.Width
}

// Height returns the height of the bounding box.
func (s *Shape) Height() float64 {
	return s.Geometry.Height
}

// Area returns the area the shape contributes once visible.
func (s *Shape) Area() float64 {
	return s.Geometry.Area
}

// State returns the lifecycle stage.
func (s *Shape) State() State {
	return s.state
}

// Visible reports whether the shape has entered the canvas and its area
// is part of the total.
func (s *Shape) Visible() bool {
	return s.state == FallingVisible
}

// Contains reports whether the canvas point (x, y) lies on the shape.
func (s *Shape) Contains(x, y float64) bool {
	return s.Geometry.Contains(vec.Vec2{X: x - s.X, Y: y - s.Y})
}

// fall moves the shape down by gravity.  The shape becomes visible once
// its bottom edge has passed the top of the canvas; onVisible is called
// exactly at this transition.  The returned value reports whether the
// shape had already left the canvas at the bottom before the move.
func (s *Shape) fall(gravity, canvasHeight float64, onVisible func(*Shape)) (exited bool) {
	if s.state != FallingInvisible && s.state != FallingVisible {
		return false
	}

	y := s.Y
	s.Y = y + gravity
	s.handle.SetPosition(s.X, s.Y)

	if s.state == FallingInvisible && y+gravity+s.Height() > 0 {
		s.state = FallingVisible
		onVisible(s)
	}
	return y > canvasHeight
}

// setColor changes the display color of a live shape.
func (s *Shape) setColor(c color.RGBA) {
	if s.state == Removed {
		return
	}
	s.Color = c
	s.handle.SetColor(c)
}

// remove destroys the shape.  The returned value reports whether the
// shape was visible, and thus whether its area must be subtracted.
func (s *Shape) remove() (wasVisible bool) {
	if s.state == Removed {
		return false
	}
	wasVisible = s.state == FallingVisible
	s.state = Removed
	s.handle.Destroy()
	s.handle = nopHandle{}
	return wasVisible
}
