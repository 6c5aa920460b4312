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

package pinmap

func pb(bit uint8) Line { return Line{Port: PortB, Bit: bit} }
func pc(bit uint8) Line { return Line{Port: PortC, Bit: bit} }
func pd(bit uint8) Line { return Line{Port: PortD, Bit: bit} }

func oe(l Line) *Line { return &l }

// socket pins of the 16 pin layout
var pins16 = [NumPorts][8]int{
	PortB: {13, 4, 12, 3},
	PortC: {1, 2, 14, 15, 5},
	PortD: {6, 7, 8, 0, 0, 0, 9, 10},
}

// socket pins of both 18 pin layouts
var pins18 = [NumPorts][8]int{
	PortB: {15, 4, 14, 3},
	PortC: {1, 2, 16, 17, 5},
	PortD: {6, 7, 8, 9, 0, 10, 11, 12},
}

// socket pins of both 20 pin layouts
var pins20 = [NumPorts][8]int{
	PortB: {17, 4, 16, 3},
	PortC: {1, 2, 18, 19, 5, 10},
	PortD: {6, 7, 8, 9, 11, 12, 13, 14},
}

// Pin16 is the layout of the 16 pin socket. A8 is not connected on 64K
// parts.
var Pin16 = &Layout{
	Name: "16-pin",
	Address: []Line{
		pc(4), pd(1), pd(0), pb(2), pb(4), pd(7), pb(0), pd(6), pc(0),
	},
	RAS:     pb(1),
	CAS:     pc(3),
	WE:      pb(3),
	DataIn:  []Line{pc(1)},
	DataOut: []Line{pc(2)},
	Pins:    pins16,
}

// Pin18 is the layout of the 18 pin socket for 4 bit parts.
var Pin18 = &Layout{
	Name: "18-pin",
	Address: []Line{
		pb(2), pb(4), pd(7), pd(6), pd(5), pd(4), pd(3), pd(2),
	},
	RAS:     pc(4),
	CAS:     pc(2),
	WE:      pb(1),
	OE:      oe(pc(0)),
	DataIn:  []Line{pc(1), pb(0), pb(3), pc(3)},
	DataOut: []Line{pc(1), pb(0), pb(3), pc(3)},
	Pins:    pins18,
}

// Pin18Alternate is the layout of the 18 pin socket for 1M by 1 parts.
var Pin18Alternate = &Layout{
	Name: "18-pin alternate",
	Address: []Line{
		pd(0), pd(1), pd(2), pd(3), pd(4), pd(5), pd(6), pb(0), pb(2), pb(4),
	},
	RAS:     pb(3),
	CAS:     pc(2),
	WE:      pc(1),
	DataIn:  []Line{pc(0)},
	DataOut: []Line{pc(3)},
	Pins:    pins18,
}

// Pin20 is the layout of the 20 pin socket. A9 is not connected on 256K
// parts.
var Pin20 = &Layout{
	Name: "20-pin",
	Address: []Line{
		pd(0), pd(1), pd(2), pd(3), pd(4), pd(5), pd(6), pd(7), pb(4), pc(4),
	},
	RAS:     pb(1),
	CAS:     pb(0),
	WE:      pb(3),
	OE:      oe(pb(2)),
	DataIn:  []Line{pc(0), pc(1), pc(2), pc(3)},
	DataOut: []Line{pc(0), pc(1), pc(2), pc(3)},
	Pins:    pins20,
}

// Pin20Adapter is the layout of the 20 pin socket with the adapter for 16
// pin parts that need three supply voltages.
var Pin20Adapter = &Layout{
	Name: "20-pin adapter",
	Address: []Line{
		pd(0), pd(1), pd(2), pd(3), pd(4), pd(5), pd(6),
	},
	RAS:     pb(1),
	CAS:     pb(0),
	WE:      pb(3),
	DataIn:  []Line{pc(1)},
	DataOut: []Line{pc(0)},
	Pins:    pins20,
}
