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

package ebitenview

import (
	"image"

	"seehuhn.de/go/shapefall"
)

// Geometry of the control panel, in screen pixels.
const (
	panelLeft  = 8
	panelTop   = 8
	pad        = 8
	lineHeight = 16

	buttonWidth  = 84
	buttonHeight = 20
	buttonGap    = 4

	numLines    = 4
	panelWidth  = 2*pad + 2*buttonWidth + buttonGap
	panelHeight = 2*pad + numLines*lineHeight + buttonGap + 2*buttonHeight + buttonGap
)

type button struct {
	label  string
	rect   image.Rectangle
	action func() bool
}

// newButtons lays out the buttons which change spawn rate and gravity.
func newButtons(sc *shapefall.Scene) []button {
	top := panelTop + pad + numLines*lineHeight + buttonGap
	cell := func(col, row int) image.Rectangle {
		x := panelLeft + pad + col*(buttonWidth+buttonGap)
		y := top + row*(buttonHeight+buttonGap)
		return image.Rect(x, y, x+buttonWidth, y+buttonHeight)
	}
	return []button{
		{label: "spawn -", rect: cell(0, 0), action: sc.DecreaseSpawn},
		{label: "spawn +", rect: cell(1, 0), action: sc.IncreaseSpawn},
		{label: "gravity -", rect: cell(0, 1), action: sc.DecreaseGravity},
		{label: "gravity +", rect: cell(1, 1), action: sc.IncreaseGravity},
	}
}
