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
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"seehuhn.de/go/shapefall/area"
	"seehuhn.de/go/shapefall/geometry"
)

// ErrInvalidConfig is returned by Config.Validate and NewScene.
var ErrInvalidConfig = errors.New("shapefall: invalid configuration")

// The spawn rate and gravity are limited to this range.
const (
	MinRate = 1
	MaxRate = 60
)

// DefaultFPS is used for spawn throttling when the frame rate is unknown.
const DefaultFPS = 60

// Config holds the parameters of a scene.
type Config struct {
	// Width and Height give the canvas size in pixels.
	Width, Height float64

	// Size is the unit from which shape boxes are derived.
	// Rectangles and ellipses are 30×20 units, hearts 22×19 units and all
	// other shapes 20×20 units.
	Size float64

	// Spawn is the number of shapes spawned per second.
	Spawn int

	// Gravity is the distance, in pixels, shapes fall per frame.
	Gravity int

	// Seed initializes the random number generator.  Zero selects a
	// random seed.
	Seed uint64

	// AreaBackend names the off-screen surface implementation used to
	// estimate the area of hearts.  See area.Backends.
	AreaBackend string
}

// DefaultConfig returns the configuration of a full HD canvas.
func DefaultConfig() Config {
	return Config{
		Width:       1920,
		Height:      1080,
		Size:        geometry.DefaultSize,
		Spawn:       3,
		Gravity:     3,
		AreaBackend: area.DefaultBackend,
	}
}

// Validate checks that all fields are in range.
func (c *Config) Validate() error {
	switch {
	case !(c.Width > 0) || !(c.Height > 0):
		return fmt.Errorf("%w: canvas size %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case !(c.Size > 0):
		return fmt.Errorf("%w: size %g", ErrInvalidConfig, c.Size)
	case c.Spawn < MinRate || c.Spawn > MaxRate:
		return fmt.Errorf("%w: spawn rate %d not in [%d, %d]", ErrInvalidConfig, c.Spawn, MinRate, MaxRate)
	case c.Gravity < MinRate || c.Gravity > MaxRate:
		return fmt.Errorf("%w: gravity %d not in [%d, %d]", ErrInvalidConfig, c.Gravity, MinRate, MaxRate)
	}
	if _, err := area.Backend(c.AreaBackend); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// An Option customizes a Scene.
type Option func(*Scene)

// WithRenderer sets the renderer which displays the shapes.
func WithRenderer(r Renderer) Option {
	return func(sc *Scene) {
		sc.renderer = r
	}
}

// WithDisplay sets the receiver of counter updates.
func WithDisplay(d Display) Option {
	return func(sc *Scene) {
		sc.display = d
	}
}

// WithRand sets the random number generator, overriding Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(sc *Scene) {
		sc.rng = rng
	}
}

// WithIDs sets the function which generates shape IDs.
// The default is uuid.New.
func WithIDs(newID func() uuid.UUID) Option {
	return func(sc *Scene) {
		sc.newID = newID
	}
}

// WithEstimator sets the area estimator for hearts, overriding
// Config.AreaBackend.
func WithEstimator(e geometry.AreaEstimator) Option {
	return func(sc *Scene) {
		sc.gen.Estimator = e
	}
}
