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

// Package pattern runs the six pattern passes over every cell of the part.
//
// The first four patterns are fixed: all zeros, all ones and two rotating
// checkerboards. Each row is written and then verified in a single burst. The
// last two patterns are pseudo-random and the second is the bitwise inverse
// of the first. Rows written with the pseudo-random patterns are verified
// through the retention pipeline.
package pattern

import (
	"fmt"
	"math/bits"

	"github.com/jetsetilly/dramtester/random"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/retention"
	"github.com/jetsetilly/dramtester/tester/session"
)

// Pattern is one of the six test patterns.
type Pattern int

// List of valid Pattern values.
const (
	AllZero Pattern = iota
	AllOne
	CheckerA
	CheckerB
	RandomA
	RandomB
	NumPatterns
)

func (p Pattern) String() string {
	switch p {
	case AllZero:
		return "all zero"
	case AllOne:
		return "all one"
	case CheckerA:
		return "checkerboard A"
	case CheckerB:
		return "checkerboard B"
	case RandomA:
		return "random A"
	case RandomB:
		return "random B"
	}
	return "unknown pattern"
}

// Random returns true for the pseudo-random patterns.
func (p Pattern) Random() bool {
	return p == RandomA || p == RandomB
}

// Expected returns the value of the cell for the pattern. The random
// patterns use the current contents of the table.
func Expected(p Pattern, tbl *random.Table, row uint16, col uint16, width int) uint8 {
	mask := uint8(1<<width) - 1
	switch p {
	case AllZero:
		return 0
	case AllOne:
		return mask
	case CheckerA:
		return bits.RotateLeft8(0xaa, int(col&7)) & mask
	case CheckerB:
		return bits.RotateLeft8(0x55, int(col&7)) & mask
	}
	return tbl.Cell(col, row, width)
}

// Engine runs the patterns for a session.
type Engine struct {
	s *session.Session

	// verify every cell immediately after writing it
	InlineVerify bool

	// trace the retention windows of the random patterns
	Trace   bool
	Windows []retention.Window

	values []uint8
	out    []uint8
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(s *session.Session) *Engine {
	part := s.Part()
	return &Engine{
		s:            s,
		InlineVerify: s.Env.Prefs.InlineVerify.Get().(bool),
		values:       make([]uint8, part.Columns),
		out:          make([]uint8, part.Columns),
	}
}

// Run every pattern in order. Returns the first fatal fault.
func (e *Engine) Run() error {
	for p := range NumPatterns {
		if err := e.RunPattern(p); err != nil {
			return err
		}
		if err := e.s.Err(); err != nil {
			return err
		}
	}
	return nil
}

// fill the values slice with the expected values of the row
func (e *Engine) fill(p Pattern, row uint16) {
	width := e.s.Part().DataWidth
	for c := range e.values {
		e.values[c] = Expected(p, e.s.Table, row, uint16(c), width)
	}
}

// verify the row against the values slice. mismatches are passed to the
// session and the first fatal fault is returned
func (e *Engine) verify(p Pattern, row int, fault func(int, string) *result.Fault) error {
	e.s.Device.ReadRow(uint16(row), e.out)
	for c, v := range e.out {
		if v != e.values[c] {
			detail := fmt.Sprintf("expected %#x got %#x", e.values[c], v)
			if err := e.s.Mismatch(fault(int(p), detail).At(row, c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunPattern runs a single pattern over every row.
func (e *Engine) RunPattern(p Pattern) error {
	part := e.s.Part()
	dev := e.s.Device

	if p.Random() {
		return e.runRandom(p)
	}

	for row := range part.Rows {
		e.fill(p, uint16(row))

		if e.InlineVerify {
			for c, v := range e.values {
				dev.Write(uint16(row), uint16(c), v)
				if r := dev.Read(uint16(row), uint16(c)); r != v {
					detail := fmt.Sprintf("inline: expected %#x got %#x", v, r)
					if err := e.s.Mismatch(result.Pattern(int(p), detail).At(row, c)); err != nil {
						return err
					}
				}
			}
		} else {
			dev.WriteRow(uint16(row), e.values)
		}

		if err := e.verify(p, row, result.Pattern); err != nil {
			return err
		}
	}

	e.s.Logf("pattern", "%s: pattern %d (%s) complete", part.Name, p, p)
	return nil
}

func (e *Engine) runRandom(p Pattern) error {
	part := e.s.Part()
	dev := e.s.Device

	if p == RandomB {
		e.s.Table.Invert()
	}

	pl := retention.NewPipeline(part, e.s.Clock, func(row int) error {
		e.fill(p, uint16(row))
		return e.verify(p, row, result.Retention)
	})
	pl.Trace = e.Trace

	for row := range part.Rows {
		e.fill(p, uint16(row))
		dev.WriteRow(uint16(row), e.values)
		if err := pl.Written(row); err != nil {
			return err
		}
	}

	e.Windows = append(e.Windows, pl.Windows...)

	e.s.Logf("pattern", "%s: pattern %d (%s) complete", part.Name, p, p)
	return nil
}
