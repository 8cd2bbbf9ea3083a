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

// Package sound plays short pops when shapes are clicked.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"seehuhn.de/go/shapefall/geometry"
)

const sampleRate = beep.SampleRate(44100)

// popLength is the duration of one pop.
const popLength = 120 * time.Millisecond

// Player mixes pops into the default audio device.
// The zero value is not usable; use New.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// New returns a player.  No audio device is opened until Init is called.
func New() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device.  Calling Init more than once is allowed.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Pop plays the sound for removing a shape of kind k.  Without an open
// audio device, Pop does nothing.
func (p *Player) Pop(k geometry.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := beep.Take(sampleRate.N(popLength), NewPopGenerator(sampleRate, Pitch(k)))
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Pitch returns the base frequency of the pop for kind k, in Hz.
// Kinds are a whole tone apart, starting at A4.
func Pitch(k geometry.Kind) float64 {
	return 440 * math.Pow(2, float64(2*int(k))/12)
}

// PopGenerator produces a sine tone with a fast attack and an exponential
// decay, dropping an octave over its duration.
type PopGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewPopGenerator creates a pop at the given base frequency.
func NewPopGenerator(sr beep.SampleRate, freq float64) *PopGenerator {
	return &PopGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// the phase integrates the falling frequency freq·2^(-t/len)
		tau := popLength.Seconds() / math.Ln2
		phase := 2 * math.Pi * g.freq * tau * (1 - math.Exp(-t/tau))

		attack := math.Min(t/0.005, 1)
		decay := math.Exp(-t / 0.03)
		v := 0.3 * attack * decay * math.Sin(phase)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
