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

package sim

import (
	"fmt"
	"time"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
)

// Fault is implemented by the fault types that can be added to a Chip.
type Fault interface {
	fmt.Stringer
	add(c *Chip) error
}

// Region is an inclusive rectangle of cells.
type Region struct {
	RowFrom, RowTo int
	ColFrom, ColTo int
}

// Cell returns a Region of a single cell.
func Cell(row, col int) Region {
	return Region{RowFrom: row, RowTo: row, ColFrom: col, ColTo: col}
}

// Columns returns a Region covering every row for the range of columns.
func Columns(from, to int) Region {
	return Region{RowFrom: 0, RowTo: 1<<16 - 1, ColFrom: from, ColTo: to}
}

// Rows returns a Region covering every column for the range of rows.
func Rows(from, to int) Region {
	return Region{RowFrom: from, RowTo: to, ColFrom: 0, ColTo: 1<<16 - 1}
}

func (r Region) String() string {
	return fmt.Sprintf("rows %d-%d cols %d-%d", r.RowFrom, r.RowTo, r.ColFrom, r.ColTo)
}

func (r Region) contains(row, col int) bool {
	return row >= r.RowFrom && row <= r.RowTo && col >= r.ColFrom && col <= r.ColTo
}

// Stuck cells always read the Value. Writes to stuck cells are lost.
type Stuck struct {
	Region
	Value uint8
}

func (f Stuck) String() string {
	return fmt.Sprintf("stuck at %#x: %s", f.Value, f.Region)
}

func (f Stuck) add(c *Chip) error {
	c.stuck = append(c.stuck, f)
	return nil
}

// Leaky cells lose their contents (reading as zero) once the Retention time
// has passed since they were written. Refreshing does not help a leaky cell.
type Leaky struct {
	Region
	Retention time.Duration
}

func (f Leaky) String() string {
	return fmt.Sprintf("leaky after %v: %s", f.Retention, f.Region)
}

func (f Leaky) add(c *Chip) error {
	if c.writtenAt == nil {
		c.writtenAt = make([]time.Duration, len(c.cells))
	}
	c.leaky = append(c.leaky, f)
	return nil
}

// AddressLine forces one address bit of a dimension to the Level. Addresses
// that differ only in that bit alias.
type AddressLine struct {
	Dimension descriptor.Dimension
	Bit       int
	Level     uint8
}

func (f AddressLine) String() string {
	return fmt.Sprintf("%s A%d stuck at %d", f.Dimension, f.Bit, f.Level)
}

func (f AddressLine) add(c *Chip) error {
	if f.Bit < 0 || f.Bit >= c.desc.AddressBits(f.Dimension) {
		return fmt.Errorf("sim: %s address line A%d does not exist", f.Dimension, f.Bit)
	}
	m := uint16(1 << f.Bit)
	if f.Dimension == descriptor.RowDimension {
		c.rowClear |= m
		if f.Level != 0 {
			c.rowSet |= m
		}
	} else {
		c.colClear |= m
		if f.Level != 0 {
			c.colSet |= m
		}
	}
	return nil
}

// DecoderGlitch is a slow address decoder. An access to address To that
// immediately follows an access to address From lands on From.
type DecoderGlitch struct {
	Dimension descriptor.Dimension
	From, To  int
}

func (f DecoderGlitch) String() string {
	return fmt.Sprintf("%s decoder glitch %d -> %d", f.Dimension, f.From, f.To)
}

func (f DecoderGlitch) add(c *Chip) error {
	c.glitches = append(c.glitches, f)
	return nil
}

// RefreshCounter narrows the internal refresh counter to the number of bits.
// Rows beyond the reach of the counter are never refreshed by CAS-before-RAS.
type RefreshCounter struct {
	Bits int
}

func (f RefreshCounter) String() string {
	return fmt.Sprintf("refresh counter of %d bits", f.Bits)
}

func (f RefreshCounter) add(c *Chip) error {
	if !c.desc.CBR() {
		return fmt.Errorf("sim: %s has no refresh counter", c.desc.Name)
	}
	c.counterStates = min(1<<f.Bits, c.desc.RefreshCycles)
	return nil
}

// GroundShort is a socket pin shorted to ground.
type GroundShort struct {
	Pin int
}

func (f GroundShort) String() string {
	return fmt.Sprintf("pin %d shorted to ground", f.Pin)
}

func (f GroundShort) add(c *Chip) error {
	c.groundShort = f.Pin
	return nil
}
