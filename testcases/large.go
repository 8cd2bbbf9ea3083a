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

package testcases

import (
	"seehuhn.de/go/geom/path"
)

// largeCases contains test cases with bounding boxes > 65536 pixels
// to exercise the active edge list in the rasterizer.
var largeCases = append(shapeFixtures("_large", 30), []TestCase{
	{
		Name:   "large_rectangle",
		Path:   rectangle(50, 50, 462, 462),
		Width:  512,
		Height: 512,
		Rule:   NonZero,
		Area:   412 * 412,
	},
	{
		Name:   "large_ring_evenodd",
		Path:   ring(256, 256, 200, 100),
		Width:  512,
		Height: 512,
		Rule:   EvenOdd,
		Area:   400*400 - 200*200,
	},
	{
		Name:   "large_grid",
		Path:   rectangleGrid(8, 8, 512, 512, 8),
		Width:  512,
		Height: 512,
		Rule:   NonZero,
		Area:   64 * 55 * 55,
	},
}...)

// rectangleGrid creates a grid of rows×cols equal rectangles with gap
// pixels between them and around the edges.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := (float64(width) - gap*float64(cols+1)) / float64(cols)
	cellH := (float64(height) - gap*float64(rows+1)) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x := gap + float64(col)*(cellW+gap)
			y := gap + float64(row)*(cellH+gap)
			p = p.MoveTo(pt(x, y)).
				LineTo(pt(x+cellW, y)).
				LineTo(pt(x+cellW, y+cellH)).
				LineTo(pt(x, y+cellH)).
				Close()
		}
	}
	return p
}
