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

// Package pinmap describes how the signals of each socket layout are wired
// to the three 8 bit ports of the pin driver. Address and data values are
// scattered across port bits when they are written and gathered from port
// bits when they are read.
//
// Scatter tables are built for every address value of a layout when the
// package is initialised, so that setting an address is a lookup and three
// masked writes.
package pinmap

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
)

// Port of the pin driver.
type Port int

// List of valid Port values.
const (
	PortB Port = iota
	PortC
	PortD
	NumPorts
)

func (p Port) String() string {
	switch p {
	case PortB:
		return "B"
	case PortC:
		return "C"
	case PortD:
		return "D"
	}
	return "?"
}

// Line is a single bit of a port.
type Line struct {
	Port Port
	Bit  uint8
}

func (l Line) String() string {
	return fmt.Sprintf("P%s%d", l.Port, l.Bit)
}

func (l Line) mask() uint8 {
	return 1 << l.Bit
}

// Ports holds a value for each port.
type Ports [NumPorts]uint8

// Set or clear the line.
func (p *Ports) Set(l Line, high bool) {
	if high {
		p[l.Port] |= l.mask()
	} else {
		p[l.Port] &^= l.mask()
	}
}

// High returns true if the line is set.
func (p Ports) High(l Line) bool {
	return p[l.Port]&l.mask() != 0
}

// Layout is the wiring of one socket layout.
type Layout struct {
	Name string

	// address lines in order A0 upwards
	Address []Line

	// strobes and enables. all are active low. OE is nil for parts without
	// an output enable pin
	RAS Line
	CAS Line
	WE  Line
	OE  *Line

	// data lines in order of bit. for parts with a single data bit DataIn
	// and DataOut are different pins. for four bit parts they are the same
	// bidirectional pins
	DataIn  []Line
	DataOut []Line

	// socket pin connected to each port bit. zero for bits that are not
	// connected to the socket
	Pins [NumPorts][8]int

	// scatter table indexed by address value
	scatter []Ports

	// bits of each port used by the address lines
	addressMask Ports
}

func (l *Layout) String() string {
	return l.Name
}

// prepare the scatter table
func (l *Layout) prepare() {
	for _, a := range l.Address {
		l.addressMask.Set(a, true)
	}
	l.scatter = make([]Ports, 1<<len(l.Address))
	for v := range l.scatter {
		for i, a := range l.Address {
			l.scatter[v].Set(a, v&(1<<i) != 0)
		}
	}
}

// ScatterAddress sets the address lines of the ports to the value. Other
// lines are left unchanged. Bits of the value above the number of address
// lines are ignored.
func (l *Layout) ScatterAddress(p *Ports, addr uint16) {
	s := l.scatter[int(addr)&(len(l.scatter)-1)]
	for i := range p {
		p[i] = p[i]&^l.addressMask[i] | s[i]
	}
}

// GatherAddress returns the address value on the address lines.
func (l *Layout) GatherAddress(p Ports) uint16 {
	var v uint16
	for i, a := range l.Address {
		if p.High(a) {
			v |= 1 << i
		}
	}
	return v
}

// ScatterData sets the data input lines of the ports to the value.
func (l *Layout) ScatterData(p *Ports, v uint8) {
	for i, d := range l.DataIn {
		p.Set(d, v&(1<<i) != 0)
	}
}

// GatherData returns the value on the data output lines.
func (l *Layout) GatherData(p Ports) uint8 {
	var v uint8
	for i, d := range l.DataOut {
		if p.High(d) {
			v |= 1 << i
		}
	}
	return v
}

// Idle returns the port values with every strobe and enable deasserted and
// every other line low.
func (l *Layout) Idle() Ports {
	var p Ports
	p.Set(l.RAS, true)
	p.Set(l.CAS, true)
	p.Set(l.WE, true)
	if l.OE != nil {
		p.Set(*l.OE, true)
	}
	return p
}

// Direction returns the data direction registers for the layout. Address,
// strobe and data input lines are outputs. Bidirectional data lines are
// outputs only if dir is bus.Output.
func (l *Layout) Direction(dir bus.Direction) Ports {
	var p Ports
	for _, a := range l.Address {
		p.Set(a, true)
	}
	p.Set(l.RAS, true)
	p.Set(l.CAS, true)
	p.Set(l.WE, true)
	if l.OE != nil {
		p.Set(*l.OE, true)
	}
	for _, d := range l.DataIn {
		p.Set(d, true)
	}
	for _, d := range l.DataOut {
		p.Set(d, dir == bus.Output && l.Bidirectional())
	}
	return p
}

// Bidirectional returns true if the data input and output share pins.
func (l *Layout) Bidirectional() bool {
	return l.DataIn[0] == l.DataOut[0]
}

// Pin returns the socket pin of the line. Returns zero if the line is not
// connected to the socket.
func (l *Layout) Pin(line Line) int {
	return l.Pins[line.Port][line.Bit]
}

// Shorted returns the first socket pin that reads low when every line is an
// input with the pullup enabled. Returns zero if no pin is shorted.
func (l *Layout) Shorted(p Ports) int {
	for bit := range uint8(8) {
		for port := range NumPorts {
			line := Line{Port: port, Bit: bit}
			if pin := l.Pin(line); pin != 0 && !p.High(line) {
				return pin
			}
		}
	}
	return 0
}

// Describe returns a multi-line description of the wiring.
func (l *Layout) Describe() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "%s\n", l.Name)
	for i, a := range l.Address {
		fmt.Fprintf(&s, "  A%d = %s (pin %d)\n", i, a, l.Pin(a))
	}
	fmt.Fprintf(&s, "  RAS = %s  CAS = %s  WE = %s", l.RAS, l.CAS, l.WE)
	if l.OE != nil {
		fmt.Fprintf(&s, "  OE = %s", *l.OE)
	}
	s.WriteString("\n")
	for i := range l.DataIn {
		if l.DataIn[i] == l.DataOut[i] {
			fmt.Fprintf(&s, "  IO%d = %s\n", i, l.DataIn[i])
		} else {
			fmt.Fprintf(&s, "  DIN = %s  DOUT = %s\n", l.DataIn[i], l.DataOut[i])
		}
	}
	return s.String()
}

// For returns the layout for the bus configuration.
func For(cfg bus.Config) (*Layout, error) {
	switch cfg.Family {
	case descriptor.Narrow:
		return Pin16, nil
	case descriptor.Medium:
		if cfg.Protocol == descriptor.Alternate {
			return Pin18Alternate, nil
		}
		return Pin18, nil
	case descriptor.Wide:
		if cfg.Protocol == descriptor.Adapter {
			return Pin20Adapter, nil
		}
		return Pin20, nil
	}
	return nil, fmt.Errorf("pinmap: no layout for %s", cfg.Family)
}

// Layouts returns every layout.
func Layouts() []*Layout {
	return []*Layout{Pin16, Pin18, Pin18Alternate, Pin20, Pin20Adapter}
}

func init() {
	for _, l := range Layouts() {
		l.prepare()
	}
}
