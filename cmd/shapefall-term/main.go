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

// Command shapefall-term shows falling shapes in a terminal.  Every
// character cell takes the blended colors of the shapes covering it.
// Clicks work as in the graphical version, where the terminal supports
// mouse input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"seehuhn.de/go/shapefall/internal/cli"
	"seehuhn.de/go/shapefall/internal/termview"
)

func main() {
	flags := cli.Register(flag.CommandLine)
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(flags *cli.Flags) error {
	cfg, err := flags.Config()
	if err != nil {
		return err
	}
	// the terminal is taken by the screen, so only log with -log
	closeLog, err := flags.SetupLogging(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	var snd termview.Sounder
	if p, ok := flags.OpenSound(); ok {
		defer p.Close()
		snd = p
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view, err := termview.New(screen, cfg, snd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = view.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}
