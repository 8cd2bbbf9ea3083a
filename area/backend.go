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
	"errors"
	"fmt"
	"slices"
	"strings"

	"seehuhn.de/go/shapefall/raster"
)

// ErrUnknownBackend is returned for unregistered backend names.
var ErrUnknownBackend = errors.New("area: unknown backend")

// Names of the built-in surface backends.
const (
	BackendRaster = "raster"
	BackendVector = "vector"
	BackendGG     = "gg"
)

// DefaultBackend is used when no backend name is given.
const DefaultBackend = BackendRaster

var backends = map[string]NewSurfaceFunc{
	BackendRaster: newRasterSurface,
	BackendVector: newVectorSurface,
	BackendGG:     newGGSurface,
}

// Backend returns the surface constructor registered under name.
// The empty name selects DefaultBackend.
func Backend(name string) (NewSurfaceFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultBackend
	}
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, name,
			strings.Join(Backends(), ", "))
	}
	return f, nil
}

// Backends returns the names of all backends, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func newRasterSurface(width, height int) (Surface, error) {
	s, err := raster.NewSurface(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}
