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

package random

// TableSize is the number of entries in the table.
const TableSize = 256

// the LFSR parameters
const (
	seed      = 0xace1
	seedStep  = 0x3d
	taps      = 0xb400
	shiftsPer = 8
)

// Table of pseudo-random 4 bit values.
type Table [TableSize]uint8

// NewTable creates and fills a new Table.
func NewTable() *Table {
	t := &Table{}
	t.Reset()
	return t
}

// Reset fills the table with the initial values.
func (t *Table) Reset() {
	for i := range t {
		lfsr := uint16(seed) ^ uint16(i*seedStep)
		for range shiftsPer {
			lfsr = (lfsr >> 1) ^ (-(lfsr & 1) & taps)
		}
		t[i] = uint8(lfsr^(lfsr>>8)) & 0x0f
	}
}

// Invert flips every bit of every entry.
func (t *Table) Invert() {
	for i := range t {
		t[i] = (t[i] & 0x0f) ^ 0x0f
	}
}

// Mix combines the column and row of a cell into a table index.
func Mix(col uint16, row uint16) uint8 {
	v := col ^ (row + (row >> 4))
	return uint8(v ^ (v >> 8))
}

// At returns the table entry for the cell.
func (t *Table) At(col uint16, row uint16) uint8 {
	return t[Mix(col, row)]
}

// Cell returns the value of a cell for a part of the data width. Parts with a
// single data bit use bit 2 of the table entry.
func (t *Table) Cell(col uint16, row uint16, width int) uint8 {
	v := t.At(col, row)
	if width == 1 {
		return (v >> 2) & 0x01
	}
	return v
}

// Reference returns eight bits of reference data for the row. Used by the
// refresh counter test.
func (t *Table) Reference(row uint16) uint8 {
	return t[uint8(row)] | t[uint8(row+1)]<<4
}
