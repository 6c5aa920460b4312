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

package retention

import (
	"fmt"
	"time"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/session"
)

// Observer is called for every refresh strobe issued while the reference data
// is held by the refresh counter alone.
type Observer func(strobe int, at time.Duration)

// reference columns written to every row. each column of a part with a
// single data bit holds one bit of the reference value and each column of a
// part with four data bits holds one nibble
func referenceColumns(d *descriptor.Descriptor) int {
	if d.DataWidth == 1 {
		return 8
	}
	return 2
}

func referenceValue(d *descriptor.Descriptor, ref uint8, col int) uint8 {
	if d.DataWidth == 1 {
		return (ref >> col) & 0x01
	}
	return (ref >> (col * 4)) & 0x0f
}

// strobes keeps refresh strobes flowing at twice the rate needed while rows
// are being written or verified. at least one strobe is issued on every call
type strobes struct {
	s        *session.Session
	spacing  time.Duration
	deadline time.Duration
}

func (st *strobes) catchUp() {
	st.s.Device.CBRRefresh()
	st.deadline += st.spacing
	for st.deadline <= st.s.Clock.Now() {
		st.s.Device.CBRRefresh()
		st.deadline += st.spacing
	}
}

// RefreshTest checks the internal refresh counter of the part. The refresh
// counter is cycled through its full range the number of times given by
// repeats. The observer can be nil.
func RefreshTest(s *session.Session, repeats int, observer Observer) error {
	part := s.Part()
	if !part.CBR() {
		return nil
	}

	dev := s.Device
	cols := referenceColumns(part)
	spacing := part.RefreshSpacing()

	st := strobes{
		s:        s,
		spacing:  spacing / 2,
		deadline: s.Clock.Now(),
	}

	for row := range part.Rows {
		ref := s.Table.Reference(uint16(row))
		for col := range cols {
			dev.Write(uint16(row), uint16(col), referenceValue(part, ref, col))
		}
		st.catchUp()
	}

	// the refresh counter is now the only thing keeping the reference data
	n := part.RefreshCycles * repeats
	deadline := s.Clock.Now()
	for i := range n {
		timing.Until(s.Clock, deadline)
		if observer != nil {
			observer(i, s.Clock.Now())
		}
		dev.CBRRefresh()
		deadline += spacing
	}

	s.Logf("retention", "%s: %d refresh strobes issued", part.Name, n)

	st.deadline = s.Clock.Now()
	for row := range part.Rows {
		ref := s.Table.Reference(uint16(row))
		for col := range cols {
			expected := referenceValue(part, ref, col)
			v := dev.Read(uint16(row), uint16(col))
			if v != expected {
				detail := fmt.Sprintf("expected %#x got %#x", expected, v)
				if err := s.Mismatch(result.Refresh(detail).At(row, col)); err != nil {
					return err
				}
			}
		}
		st.catchUp()
	}

	s.Logf("retention", "%s: refresh counter ok", part.Name)

	return nil
}
