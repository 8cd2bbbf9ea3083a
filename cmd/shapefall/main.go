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

// Command shapefall opens a window in which shapes fall from the top of
// the canvas.  Clicking a shape removes it and recolors all shapes of the
// same kind; clicking empty space spawns a new shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"seehuhn.de/go/shapefall/internal/cli"
	"seehuhn.de/go/shapefall/internal/ebitenview"
)

func main() {
	flags := cli.Register(flag.CommandLine)
	scale := flag.Float64("scale", 0.5, "screen pixels per canvas pixel")
	flag.Parse()

	if err := run(flags, *scale); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(flags *cli.Flags, scale float64) error {
	cfg, err := flags.Config()
	if err != nil {
		return err
	}
	closeLog, err := flags.SetupLogging(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opt := &ebitenview.Options{Scale: scale}
	if p, ok := flags.OpenSound(); ok {
		defer p.Close()
		opt.Sound = p
	}

	game, err := ebitenview.New(cfg, opt)
	if err != nil {
		return err
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("shapefall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game)
}
