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

// Package decoder verifies the row and column address decoders of the part
// under test.
//
// Each address line is checked by writing zero to address zero and ones to
// the address with only that line high. A line that is stuck or shorted makes
// the two addresses alias. A Gray-code stress pass then visits every row and
// every column so that each access differs from the previous one in a single
// address bit. A decoder that is slow to settle on a transition stores the
// value in the wrong place and the value read back differs.
//
// Failures are reported with a code identifying the failing line:
//
//	row line b             b
//	column line b          16 + b
//	row transition b       32 + b
//	column transition b    48 + b
//
// A failure of the decoder is fatal. Parts with half-functional variants may
// also fail a check because the cell used by the check is in the defective
// half. Those failures are told apart from decoder failures by accessing the
// cell on its own and are recorded by the session like any other cell
// failure.
package decoder

import (
	"fmt"
	"math/bits"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/session"
)

// Offsets of the address line codes.
const (
	RowCode              = 0
	ColumnCode           = 16
	RowTransitionCode    = 32
	ColumnTransitionCode = 48
)

// Probe is the result of checking one address line.
type Probe struct {
	Dimension descriptor.Dimension
	Bit       int
	Pass      bool
}

func (p Probe) String() string {
	s := "ok"
	if !p.Pass {
		s = "failed"
	}
	return fmt.Sprintf("%s A%d %s", p.Dimension, p.Bit, s)
}

// Code returns the address line code of the probe.
func (p Probe) Code() int {
	if p.Dimension == descriptor.RowDimension {
		return RowCode + p.Bit
	}
	return ColumnCode + p.Bit
}

// the value stored for a code during the stress pass. bit zero is the parity
// of the code so that adjacent Gray codes never store the same value
func stressValue(code int, mask uint8) uint8 {
	return ((uint8(code) & 0x0e) | uint8(bits.OnesCount(uint(code))&1)) & mask
}

func gray(i int) int {
	return i ^ (i >> 1)
}

// mismatch handles a value read back wrongly from the cell during the address
// checks. Parts without half-functional variants fail immediately.
//
// For other parts the cell is written again and read back with no other
// address in between. A cell that now holds the value was disturbed by an
// access to another address and the decoder has failed. A cell that still
// does not hold the value is a failure of the cell and is passed to the
// session, which records the half it falls in.
func mismatch(s *session.Session, f *result.Fault, row uint16, col uint16, expected uint8) error {
	f = f.At(int(row), int(col))
	if len(descriptor.HalfVariants(s.Part())) == 0 {
		return f
	}
	s.Device.Write(row, col, expected)
	if s.Device.Read(row, col) == expected {
		return f
	}
	return s.Mismatch(f)
}

// walking handles a failed address line check. The line is checked by
// writing zero to the low address and ones to the high address. Either cell
// may have read back wrongly
func walking(s *session.Session, f *result.Fault, loRow, loCol uint16, lo uint8, hiRow, hiCol uint16, hi uint8) error {
	mask := s.Part().DataMask()
	if len(descriptor.HalfVariants(s.Part())) == 0 {
		return f.At(int(hiRow), int(hiCol))
	}
	if lo != 0 {
		if err := mismatch(s, f, loRow, loCol, 0); err != nil {
			return err
		}
	}
	if hi != mask {
		if err := mismatch(s, f, hiRow, hiCol, mask); err != nil {
			return err
		}
	}
	return nil
}

// Verify the address decoders of the selected part. The probes of every line
// checked are returned along with the fault of the first failing line.
func Verify(s *session.Session) ([]Probe, error) {
	var probes []Probe

	part := s.Part()
	dev := s.Device
	mask := part.DataMask()

	// walking ones across the row address
	for b := range part.RowBits() {
		hi := uint16(1) << b
		dev.Write(0, 0, 0)
		dev.Write(hi, 0, mask)
		lo := dev.Read(0, 0)
		v := dev.Read(hi, 0)
		p := Probe{Dimension: descriptor.RowDimension, Bit: b, Pass: lo == 0 && v == mask}
		probes = append(probes, p)
		if !p.Pass {
			f := result.AddressLine(p.Code(), fmt.Sprintf("row A%d", b))
			if err := walking(s, f, 0, 0, lo, hi, 0, v); err != nil {
				return probes, err
			}
		}
	}

	// walking ones across the column address, in the middle row
	mid := uint16(part.Rows / 2)
	for b := range part.ColumnBits() {
		hi := uint16(1) << b
		dev.Write(mid, 0, 0)
		dev.Write(mid, hi, mask)
		lo := dev.Read(mid, 0)
		v := dev.Read(mid, hi)
		p := Probe{Dimension: descriptor.ColumnDimension, Bit: b, Pass: lo == 0 && v == mask}
		probes = append(probes, p)
		if !p.Pass {
			f := result.AddressLine(p.Code(), fmt.Sprintf("column A%d", b))
			if err := walking(s, f, mid, 0, lo, mid, hi, v); err != nil {
				return probes, err
			}
		}
	}

	s.Logf("decoder", "%s: %d address lines checked", part.Name, len(probes))

	if err := stress(s, descriptor.RowDimension); err != nil {
		return probes, err
	}
	if err := stress(s, descriptor.ColumnDimension); err != nil {
		return probes, err
	}

	s.Logf("decoder", "%s: transitions ok", part.Name)

	return probes, nil
}

// stress visits every address of the dimension in Gray code order. Each new
// address is written and then the previous and new addresses are read back.
func stress(s *session.Session, dim descriptor.Dimension) error {
	part := s.Part()
	dev := s.Device
	mask := part.DataMask()

	n := part.Rows
	base := RowTransitionCode
	mid := uint16(part.Rows / 2)
	if dim == descriptor.ColumnDimension {
		n = part.Columns
		base = ColumnTransitionCode
	}

	cell := func(code int) (uint16, uint16) {
		if dim == descriptor.RowDimension {
			return uint16(code), 0
		}
		return mid, uint16(code)
	}

	check := func(code int, changed int) error {
		row, col := cell(code)
		v := dev.Read(row, col)
		expected := stressValue(code, mask)
		if v != expected {
			detail := fmt.Sprintf("%s transition A%d: expected %#x got %#x", dim, changed, expected, v)
			return mismatch(s, result.AddressLine(base+changed, detail), row, col, expected)
		}
		return nil
	}

	row, col := cell(0)
	dev.Write(row, col, stressValue(0, mask))

	for i := 1; i < n; i++ {
		prev := gray(i - 1)
		code := gray(i)
		changed := bits.TrailingZeros(uint(prev ^ code))

		row, col := cell(code)
		dev.Write(row, col, stressValue(code, mask))

		if err := check(prev, changed); err != nil {
			return err
		}
		if err := check(code, changed); err != nil {
			return err
		}
	}

	return nil
}
