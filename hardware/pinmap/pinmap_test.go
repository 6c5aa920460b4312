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

package pinmap_test

import (
	"testing"

	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/pinmap"
	"github.com/jetsetilly/dramtester/test"
)

func TestAddress(t *testing.T) {
	for _, l := range pinmap.Layouts() {
		for addr := range uint16(1 << len(l.Address)) {
			var p pinmap.Ports
			l.ScatterAddress(&p, addr)
			if !test.ExpectEquality(t, l.GatherAddress(p), addr, l) {
				break
			}
		}
	}
}

// the scatter of the 16 pin layout as written by hand in the firmware
func TestPin16Firmware(t *testing.T) {
	for addr := range uint16(512) {
		portb := (addr & 0x0010) | ((addr & 0x0008) >> 1) | ((addr & 0x0040) >> 6)
		portc := ((addr & 0x0001) << 4) | ((addr & 0x0100) >> 8)
		portd := ((addr & 0x0080) >> 1) | ((addr & 0x0020) << 2) | ((addr & 0x0004) >> 2) | (addr & 0x0002)

		var p pinmap.Ports
		pinmap.Pin16.ScatterAddress(&p, addr)
		test.ExpectEquality(t, p[pinmap.PortB], uint8(portb), addr)
		test.ExpectEquality(t, p[pinmap.PortC], uint8(portc), addr)
		test.ExpectEquality(t, p[pinmap.PortD], uint8(portd), addr)
	}
}

func TestScatterPreserves(t *testing.T) {
	l := pinmap.Pin20
	p := l.Idle()
	l.ScatterAddress(&p, 0x3ff)
	l.ScatterAddress(&p, 0)
	test.ExpectEquality(t, p, l.Idle())

	l.ScatterData(&p, 0x0a)
	test.ExpectEquality(t, l.GatherData(p), 0x0a)
	l.ScatterAddress(&p, 0x155)
	test.ExpectEquality(t, l.GatherData(p), 0x0a)
	test.ExpectSuccess(t, p.High(l.RAS))
	test.ExpectSuccess(t, p.High(l.CAS))
}

// no port bit is used for more than one signal
func TestCollisions(t *testing.T) {
	for _, l := range pinmap.Layouts() {
		used := make(map[pinmap.Line]string)
		claim := func(line pinmap.Line, signal string) {
			if prev, ok := used[line]; ok {
				t.Errorf("%s: %s used by %s and %s", l, line, prev, signal)
			}
			used[line] = signal
		}
		for _, a := range l.Address {
			claim(a, "address")
		}
		claim(l.RAS, "RAS")
		claim(l.CAS, "CAS")
		claim(l.WE, "WE")
		if l.OE != nil {
			claim(*l.OE, "OE")
		}
		for _, d := range l.DataIn {
			claim(d, "data in")
		}
		if !l.Bidirectional() {
			for _, d := range l.DataOut {
				claim(d, "data out")
			}
		}
	}
}

func TestDirection(t *testing.T) {
	l := pinmap.Pin18
	out := l.Direction(bus.Output)
	in := l.Direction(bus.Input)
	for _, d := range l.DataIn {
		test.ExpectSuccess(t, out.High(d), d)
		test.ExpectFailure(t, in.High(d), d)
	}
	test.ExpectSuccess(t, in.High(l.RAS))

	l = pinmap.Pin16
	out = l.Direction(bus.Output)
	test.ExpectSuccess(t, out.High(l.DataIn[0]))
	test.ExpectFailure(t, out.High(l.DataOut[0]))
}

func TestShorted(t *testing.T) {
	pullups := pinmap.Ports{0xff, 0xff, 0xff}
	for _, l := range pinmap.Layouts() {
		test.ExpectEquality(t, l.Shorted(pullups), 0, l)
	}

	p := pullups
	p.Set(pinmap.Line{Port: pinmap.PortD, Bit: 6}, false)
	test.ExpectEquality(t, pinmap.Pin16.Shorted(p), 9)

	// bit 3 of port D is not connected in the 16 pin socket
	p = pullups
	p.Set(pinmap.Line{Port: pinmap.PortD, Bit: 3}, false)
	test.ExpectEquality(t, pinmap.Pin16.Shorted(p), 0)
	test.ExpectEquality(t, pinmap.Pin20.Shorted(p), 9)
}

func TestFor(t *testing.T) {
	for _, d := range descriptor.All() {
		l, err := pinmap.For(bus.ConfigFor(d))
		test.DemandSuccess(t, err, d)
		test.ExpectEquality(t, len(l.DataIn), d.DataWidth, d)
		test.ExpectSuccess(t, len(l.Address) >= max(d.RowBits(), d.ColumnBits()), d)
	}

	l, _ := pinmap.For(bus.Config{Family: descriptor.Medium, Protocol: descriptor.Alternate, DataWidth: 1})
	test.ExpectEquality(t, l, pinmap.Pin18Alternate)
	l, _ = pinmap.For(bus.Config{Family: descriptor.Wide, Protocol: descriptor.Adapter, DataWidth: 1})
	test.ExpectEquality(t, l, pinmap.Pin20Adapter)
}
