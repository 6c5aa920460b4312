// This file is part of DRAMTester.
//
// DRAMTester is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DRAMTester is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DRAMTester.  If not, see <https://www.gnu.org/licenses/>.

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/tester/result"
)

// Colour of the bicolour LED. Orange is both colours at once.
type Colour int

// List of valid Colour values.
const (
	Off Colour = iota
	Green
	Orange
	Red
)

func (c Colour) String() string {
	switch c {
	case Green:
		return "green"
	case Orange:
		return "orange"
	case Red:
		return "red"
	}
	return "off"
}

// LED timings.
const (
	BlinkOn      = 500 * time.Millisecond
	BlinkOff     = 500 * time.Millisecond
	FastBlink    = 200 * time.Millisecond
	SlowBlink    = 1000 * time.Millisecond
	InterBlink   = 300 * time.Millisecond
	ErrorPause   = 1500 * time.Millisecond
	PatternPause = 2000 * time.Millisecond
)

// the highest count shown by an orange group of a failure code
const maxDetailBlinks = 20

// Step of a blink sequence.
type Step struct {
	Colour   Colour
	Duration time.Duration
}

// Sequence is one repetition of an LED pattern. The LED repeats the
// sequence until the next session.
type Sequence []Step

// a group of blinks of the colour
func blinks(c Colour, n int) Sequence {
	var s Sequence
	for range n {
		s = append(s, Step{Colour: c, Duration: BlinkOn}, Step{Colour: Off, Duration: BlinkOff})
	}
	return s
}

// a continuous blink of the colour
func steady(c Colour, d time.Duration) Sequence {
	return Sequence{{Colour: c, Duration: d}, {Colour: Off, Duration: d}}
}

// a red group followed by an orange group, as used by every failure code
func failure(red int, orange int) Sequence {
	s := blinks(Red, red)
	s = append(s, Step{Colour: Off, Duration: InterBlink})
	s = append(s, blinks(Orange, orange)...)
	return append(s, Step{Colour: Off, Duration: ErrorPause})
}

// green and orange counts of a passing part
type passCode struct {
	green  int
	orange int
}

var passCodes = map[string]passCode{
	descriptor.Part4164:   {1, 1},
	descriptor.Part41256:  {1, 2},
	descriptor.Part41257:  {1, 3},
	descriptor.Part4816:   {1, 4},
	descriptor.Part4416:   {2, 1},
	descriptor.Part4464:   {2, 2},
	descriptor.Part411000: {2, 3},
	descriptor.Part4027:   {2, 4},
	descriptor.Part514256: {3, 1},
	descriptor.Part514400: {3, 2},
	descriptor.Part514258: {3, 3},
	descriptor.Part514402: {3, 4},
	descriptor.Part4116:   {4, 1},
}

// the code shared by the 32K parts
var halfCode = passCode{1, 5}

// ForOutcome returns the LED sequence of the outcome.
func ForOutcome(o result.Outcome) Sequence {
	if o.Pass {
		pc, ok := passCodes[o.Part.Name]
		if !ok {
			if !o.Part.Reduced && o.Part.Name != descriptor.Part4532 {
				return steady(Green, SlowBlink)
			}
			pc = halfCode
		}
		s := blinks(Green, pc.green)
		s = append(s, Step{Colour: Off, Duration: InterBlink})
		s = append(s, blinks(Orange, pc.orange)...)
		return append(s, Step{Colour: Off, Duration: PatternPause})
	}

	f := o.Fault
	detail := func(code int) int {
		if code > 0 && code <= maxDetailBlinks {
			return code
		}
		return 0
	}

	switch f.Category {
	case result.NoDeviceDetected:
		return steady(Red, SlowBlink)
	case result.AddressLineFault:
		return failure(1, detail(f.Code))
	case result.PatternFault:
		if f.Code <= 4 {
			return failure(2, f.Code+1)
		}
		return failure(2, 6)
	case result.RetentionFault:
		return failure(2, 7)
	case result.RefreshFault:
		return failure(2, 8)
	case result.GroundShortFault:
		return failure(3, detail(f.Code))
	}
	return ConfigError()
}

// ConfigError is the sequence for an invalid switch setting.
func ConfigError() Sequence {
	return steady(Red, FastBlink)
}

// Duration of one repetition of the sequence.
func (s Sequence) Duration() time.Duration {
	var d time.Duration
	for _, st := range s {
		d += st.Duration
	}
	return d
}

// String summarises the sequence as groups of blinks.
func (s Sequence) String() string {
	var groups []string
	var last Colour
	var count int

	end := func() {
		if count > 0 {
			groups = append(groups, fmt.Sprintf("%s x%d", last, count))
		}
		count = 0
	}

	// a steady blink has a single on and off step
	if len(s) == 2 {
		return fmt.Sprintf("%s continuous (%s)", s[0].Colour, s[0].Duration)
	}

	for _, st := range s {
		if st.Colour == Off {
			if st.Duration > BlinkOff {
				end()
			}
			continue
		}
		if st.Colour != last {
			end()
			last = st.Colour
		}
		count++
	}
	end()

	return strings.Join(groups, ", ")
}

// Play one repetition of the sequence. The set function is called at the
// start of each step.
func (s Sequence) Play(clk timing.Clock, set func(Colour)) {
	for _, st := range s {
		set(st.Colour)
		clk.Delay(st.Duration)
	}
	set(Off)
}
