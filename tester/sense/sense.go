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

// Package sense identifies the part in the socket. The family is chosen by
// the operator and the part within the family is found by probing the
// address lines: an address line that the part does not decode makes two
// addresses alias, which reveals the size of the cell array.
package sense

import (
	"fmt"

	"github.com/jetsetilly/dramtester/hardware/access"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/session"
)

// the column used for the presence check when column zero does not respond.
// a part with a defective lower column half will respond here
const fallbackColumn = 192

// columns written during the static column probe
var staticColumns = []uint16{0, 5, 10, 15}

// prober runs the probes for one family with the widest addressing of the
// family selected
type prober struct {
	dev  *access.Device
	mask uint8

	// the cell that responded to the presence check
	row, col uint16
}

func newProber(s *session.Session, probe string) *prober {
	s.Select(descriptor.MustLookup(probe))
	s.Device.Init()
	return &prober{
		dev:  s.Device,
		mask: s.Part().DataMask(),
	}
}

// present checks that the cell and its neighbour in the next row store
// different values
func (p *prober) present(row, col uint16) bool {
	p.dev.Write(row, col, 0)
	p.dev.Write(row+1, col, p.mask)
	a := p.dev.Read(row, col)
	b := p.dev.Read(row+1, col)
	c := p.dev.Read(row, col)
	if a == 0 && b == p.mask && c == 0 {
		p.row = row
		p.col = col
		return true
	}
	return false
}

// aliases returns true if the address line of the dimension is not decoded
func (p *prober) aliases(dim descriptor.Dimension, bit int) bool {
	row, col := p.row, p.col
	if dim == descriptor.RowDimension {
		row ^= 1 << bit
	} else {
		col ^= 1 << bit
	}
	p.dev.Write(p.row, p.col, 0)
	p.dev.Write(row, col, p.mask)
	return p.dev.Read(p.row, p.col) != 0
}

// nibble returns true if four CAS strobes at one external address reach the
// four cells selected by the most significant address bits
func (p *prober) nibble() bool {
	d := p.dev.Descriptor()
	rowTop := uint16(d.Rows / 2)
	colTop := uint16(d.Columns / 2)
	row := p.row &^ rowTop
	col := p.col &^ colTop

	for _, r := range []uint16{row, row | rowTop} {
		for _, c := range []uint16{col, col | colTop} {
			p.dev.Write(r, c, 0)
		}
	}

	values := []uint8{1, 0, 1, 0}
	p.dev.NibbleWrite(row, col, values)
	out := make([]uint8, len(values))
	p.dev.NibbleRead(row, col, out)
	for i := range values {
		if out[i] != values[i]&p.mask {
			return false
		}
	}
	return true
}

// static returns true if the part follows the column address while CAS is
// held asserted
func (p *prober) static() bool {
	values := make([]uint8, len(staticColumns))
	for i, c := range staticColumns {
		values[i] = uint8(i+1) & p.mask
		p.dev.Write(p.row, c, values[i])
	}
	out := make([]uint8, len(staticColumns))
	p.dev.StaticColumnRead(p.row, staticColumns, out)
	for i := range values {
		if out[i] != values[i] {
			return false
		}
	}
	return true
}

// Sense the part in the socket for the family selected in the environment of
// the session. The identified part is selected in the session.
func Sense(s *session.Session) (*descriptor.Descriptor, error) {
	var name string
	var err error

	switch s.Env.Selector.Family {
	case descriptor.Narrow:
		name, err = narrow(s)
	case descriptor.Medium:
		name, err = medium(s)
	case descriptor.Wide:
		if s.Env.Adapter {
			name, err = adapter(s)
		} else {
			name, err = wide(s)
		}
	default:
		return nil, fmt.Errorf("sense: unsupported family: %s", s.Env.Selector)
	}
	if err != nil {
		return nil, err
	}

	d := descriptor.MustLookup(name)
	s.Select(d)
	if d.Unverified {
		s.Logf("sense", "warning: identification of %s has not been confirmed on a real part", d)
	}
	s.Logf("sense", "%s detected", d)

	return d, nil
}

func narrow(s *session.Session) (string, error) {
	p := newProber(s, descriptor.Part41256)

	if !p.present(0, 0) && !p.present(0, fallbackColumn) {
		return "", result.NoDevice("16-pin socket")
	}

	if !p.aliases(descriptor.RowDimension, 8) {
		if p.nibble() {
			return descriptor.Part41257, nil
		}
		return descriptor.Part41256, nil
	}

	if p.aliases(descriptor.RowDimension, 7) {
		if p.aliases(descriptor.ColumnDimension, 7) {
			return descriptor.Part4816, nil
		}
		return descriptor.Part4532, nil
	}

	return descriptor.Part4164, nil
}

func medium(s *session.Session) (string, error) {
	p := newProber(s, descriptor.Part4464)
	if p.present(0, 0) {
		if p.aliases(descriptor.ColumnDimension, 6) {
			return descriptor.Part4416, nil
		}
		return descriptor.Part4464, nil
	}

	s.Logf("sense", "no response with 4-bit protocol. trying 1-bit protocol")

	p = newProber(s, descriptor.Part411000)
	if p.present(0, 0) {
		return descriptor.Part411000, nil
	}

	return "", result.NoDevice("18-pin socket")
}

func adapter(s *session.Session) (string, error) {
	p := newProber(s, descriptor.Part4116)
	if !p.present(0, 0) {
		return "", result.NoDevice("20-pin socket with adapter")
	}
	if p.aliases(descriptor.RowDimension, 6) {
		return descriptor.Part4027, nil
	}
	return descriptor.Part4116, nil
}

func wide(s *session.Session) (string, error) {
	p := newProber(s, descriptor.Part514400)
	if !p.present(0, 0) {
		return "", result.NoDevice("20-pin socket")
	}

	if p.aliases(descriptor.RowDimension, 9) {
		if p.static() {
			return descriptor.Part514258, nil
		}
		return descriptor.Part514256, nil
	}

	if p.static() {
		return descriptor.Part514402, nil
	}
	return descriptor.Part514400, nil
}
