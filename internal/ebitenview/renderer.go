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
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/geometry"
	"seehuhn.de/go/shapefall/internal/sprite"
)

// shapeAlpha is the opacity of the shapes on screen.
const shapeAlpha = 0.5

// Renderer keeps one pre-rendered image per shape and draws them in
// creation order.
type Renderer struct {
	// Scale is the ratio of screen pixels to canvas pixels.
	Scale float64

	sprites []*spriteHandle
}

var _ shapefall.Renderer = (*Renderer)(nil)

// CreateShape implements [shapefall.Renderer].  Clicks are resolved by the
// game loop, so onClick is not used.
func (r *Renderer) CreateShape(g *geometry.Geometry, c color.RGBA, x, y float64, _ func()) shapefall.Handle {
	h := &spriteHandle{
		geom:  g,
		color: c,
		x:     x,
		y:     y,
		dirty: true,
	}
	r.sprites = append(r.sprites, h)
	return h
}

// Draw paints all live shapes onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.sprites = slices.DeleteFunc(r.sprites, func(h *spriteHandle) bool {
		return h.destroyed
	})

	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	for _, h := range r.sprites {
		if h.dirty {
			h.render(scale)
		}
		if h.img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(h.x*scale+float64(h.offset.X), h.y*scale+float64(h.offset.Y))
		op.ColorScale.ScaleAlpha(shapeAlpha)
		screen.DrawImage(h.img, op)
	}
}

// Len returns the number of shapes which will be drawn in the next frame.
func (r *Renderer) Len() int {
	n := 0
	for _, h := range r.sprites {
		if !h.destroyed {
			n++
		}
	}
	return n
}

type spriteHandle struct {
	geom  *geometry.Geometry
	color color.RGBA
	x, y  float64

	img    *ebiten.Image
	offset image.Point

	dirty     bool
	destroyed bool
}

func (h *spriteHandle) SetColor(c color.RGBA) {
	if c == h.color {
		return
	}
	h.color = c
	h.dirty = true
}

func (h *spriteHandle) SetPosition(x, y float64) {
	h.x, h.y = x, y
}

func (h *spriteHandle) Destroy() {
	if h.destroyed {
		return
	}
	h.destroyed = true
	h.release()
}

func (h *spriteHandle) render(scale float64) {
	h.release()
	h.dirty = false

	img, off, err := sprite.Render(h.geom, h.color, scale)
	if err != nil {
		shapefall.Logger().Warn("cannot render shape",
			"kind", h.geom.Kind, "error", err)
		return
	}
	h.img = ebiten.NewImageFromImage(img)
	h.offset = off
}

func (h *spriteHandle) release() {
	if h.img != nil {
		h.img.Deallocate()
		h.img = nil
	}
}
