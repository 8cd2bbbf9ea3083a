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

package geometry

import (
	"fmt"
	"strings"
)

// Kind identifies one of the supported shape categories.
type Kind int

// The supported shape kinds, in canonical order.
const (
	Triangle Kind = iota
	Rectangle
	Pentagon
	Hexagon
	Circle
	Ellipse
	Heart

	numKinds
)

var kindNames = [numKinds]string{
	Triangle:  "triangle",
	Rectangle: "rectangle",
	Pentagon:  "pentagon",
	Hexagon:   "hexagon",
	Circle:    "circle",
	Ellipse:   "ellipse",
	Heart:     "heart",
}

// Kinds returns all supported kinds in canonical order.
func Kinds() []Kind {
	res := make([]Kind, numKinds)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

// NumKinds is the number of supported kinds.
const NumKinds = int(numKinds)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
// The spelling "hearth" is accepted as an alias for "heart".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "hearth" {
		return Heart, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("geometry: unknown shape kind %q", name)
}

// IsCurve reports whether shapes of this kind are outlined by Bézier
// segments rather than by a polygon.
func (k Kind) IsCurve() bool {
	return k == Ellipse || k == Heart
}

// Box returns the bounding box used for shapes of this kind, given the
// global size unit.
func (k Kind) Box(size float64) (width, height float64) {
	switch k {
	case Rectangle, Ellipse:
		return 30 * size, 20 * size
	case Heart:
		return 22 * size, 19 * size
	default:
		return 20 * size, 20 * size
	}
}
