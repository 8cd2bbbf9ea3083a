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

package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"seehuhn.de/go/shapefall/geometry"
)

func TestPopGenerator(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := beep.Take(rate.N(popLength), NewPopGenerator(rate, 440))

	buf := make([][2]float64, 512)
	var total int
	var early, late float64
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			v := buf[i][0]
			if math.Abs(v) > 0.3 {
				t.Fatalf("sample %d: %g exceeds the amplitude", total+i, v)
			}
			if buf[i][1] != v {
				t.Fatalf("sample %d: channels differ", total+i)
			}
			if total+i < rate.N(20*time.Millisecond) {
				early = math.Max(early, math.Abs(v))
			} else if total+i > rate.N(100*time.Millisecond) {
				late = math.Max(late, math.Abs(v))
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}

	if total != rate.N(popLength) {
		t.Errorf("got %d samples, want %d", total, rate.N(popLength))
	}
	if !(early > 0.1) {
		t.Errorf("peak in the first 20ms is %g", early)
	}
	if !(late < early/10) {
		t.Errorf("pop does not decay: early %g, late %g", early, late)
	}
	if err := s.Err(); err != nil {
		t.Error(err)
	}
}

func TestPitch(t *testing.T) {
	if p := Pitch(geometry.Triangle); p != 440 {
		t.Errorf("triangle pitch %g, want 440", p)
	}
	for k := geometry.Kind(1); k < geometry.Kind(geometry.NumKinds); k++ {
		if !(Pitch(k) > Pitch(k-1)) {
			t.Errorf("pitch of %s not above %s", k, k-1)
		}
	}
}

func TestPopWithoutDevice(t *testing.T) {
	p := New()
	p.Pop(geometry.Heart) // must not block or panic
	p.Close()
}
