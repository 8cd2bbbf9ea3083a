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

// Package cli holds the command line handling shared by the shapefall
// commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/shapefall"
	"seehuhn.de/go/shapefall/area"
	"seehuhn.de/go/shapefall/internal/sound"
)

// Flags are the settings common to all front ends.
type Flags struct {
	cfg     shapefall.Config
	verbose bool
	mute    bool
	logFile string
}

// Register adds the common flags to fs.  Defaults are taken from
// shapefall.DefaultConfig.
func Register(fs *flag.FlagSet) *Flags {
	f := &Flags{cfg: shapefall.DefaultConfig()}
	fs.Float64Var(&f.cfg.Width, "width", f.cfg.Width, "canvas `width` in pixels")
	fs.Float64Var(&f.cfg.Height, "height", f.cfg.Height, "canvas `height` in pixels")
	fs.Float64Var(&f.cfg.Size, "size", f.cfg.Size, "shape size `factor`")
	fs.IntVar(&f.cfg.Spawn, "spawn", f.cfg.Spawn, "shapes spawned per second")
	fs.IntVar(&f.cfg.Gravity, "gravity", f.cfg.Gravity, "fall speed in pixels per frame")
	fs.Uint64Var(&f.cfg.Seed, "seed", 0, "random `seed`, 0 for a random scene")
	fs.StringVar(&f.cfg.AreaBackend, "area", f.cfg.AreaBackend,
		"area estimation `backend` ("+strings.Join(area.Backends(), ", ")+")")
	fs.BoolVar(&f.verbose, "v", false, "log every spawned and removed shape")
	fs.BoolVar(&f.mute, "mute", false, "do not play sounds")
	fs.StringVar(&f.logFile, "log", "", "write log messages to `file`")
	return f
}

// Config returns the scene configuration given on the command line.
func (f *Flags) Config() (shapefall.Config, error) {
	cfg := f.cfg
	if err := cfg.Validate(); err != nil {
		return shapefall.Config{}, err
	}
	return cfg, nil
}

// SetupLogging installs the shapefall logger.  Messages go to the file
// given by -log, or else to defaultOut.  If neither is set, nothing is
// logged.  The returned function closes the log file.
func (f *Flags) SetupLogging(defaultOut io.Writer) (func() error, error) {
	out := defaultOut
	closeLog := func() error { return nil }
	if f.logFile != "" {
		fd, err := os.OpenFile(f.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		out = fd
		closeLog = fd.Close
	}
	if out == nil {
		return closeLog, nil
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	shapefall.SetLogger(slog.New(h))
	return closeLog, nil
}

// OpenSound opens the audio device, unless -mute was given.  Failure to
// open the device is logged and reported as ok == false.
func (f *Flags) OpenSound() (p *sound.Player, ok bool) {
	if f.mute {
		return nil, false
	}
	p = sound.New()
	if err := p.Init(); err != nil {
		shapefall.Logger().Warn("sound disabled", "error", err)
		return nil, false
	}
	return p, true
}
