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

package descriptor

import (
	"fmt"
	"math/bits"
	"time"
)

// Family is the pin count of the socket a part is inserted into.
type Family int

// List of valid Family values.
const (
	Narrow Family = iota
	Medium
	Wide
)

func (f Family) String() string {
	switch f {
	case Narrow:
		return "16-pin"
	case Medium:
		return "18-pin"
	case Wide:
		return "20-pin"
	}
	return "unknown family"
}

// SubProtocol selects between different pinouts within a family.
type SubProtocol int

// List of valid SubProtocol values.
const (
	// the normal pinout for the family
	Standard SubProtocol = iota

	// the 1Mx1 pinout in the 18-pin socket
	Alternate

	// the low pin count parts in the 20-pin socket, through the voltage adapter
	Adapter
)

func (p SubProtocol) String() string {
	switch p {
	case Standard:
		return "standard"
	case Alternate:
		return "alternate"
	case Adapter:
		return "adapter"
	}
	return "unknown protocol"
}

// Dimension of the cell array.
type Dimension int

// List of valid Dimension values.
const (
	RowDimension Dimension = iota
	ColumnDimension
)

func (d Dimension) String() string {
	if d == RowDimension {
		return "row"
	}
	return "column"
}

// Half of a dimension, as selected by the most significant address bit.
type Half int

// List of valid Half values.
const (
	NoHalf Half = iota
	LowerHalf
	UpperHalf
)

func (h Half) String() string {
	switch h {
	case LowerHalf:
		return "lower"
	case UpperHalf:
		return "upper"
	}
	return "none"
}

// DelaySlots is the number of entries in the retention delay schedule.
const DelaySlots = 6

// DelayUnit is the unit of the RetentionDelays and WriteTime fields.
const DelayUnit = 20 * time.Microsecond

// Descriptor is the protocol description of one part.
type Descriptor struct {
	// part number and organisation. eg. "4164" and "64Kx1"
	Name         string
	Organisation string

	Family   Family
	Protocol SubProtocol

	Rows      int
	Columns   int
	DataWidth int

	// maximum time a row may go without being refreshed
	RefreshInterval time.Duration

	// number of states of the internal refresh counter. zero if the part
	// does not support CAS-before-RAS refresh
	RefreshCycles int

	// the number of rows between writing a row and verifying it during the
	// pseudo-random patterns
	DelayRows int

	// the delay after writing each of the first rows of a pseudo-random
	// pattern. the entry at DelayRows is the steady state delay used for all
	// subsequent rows
	RetentionDelays [DelaySlots]uint8

	// the time taken to write one row, replayed during the retention catch-up
	// for the final rows
	WriteTime uint8

	StaticColumn bool
	NibbleMode   bool

	// half-functional variants. HalfOf is the name of the full part
	Reduced       bool
	HalfOf        string
	HalfDimension Dimension
	HalfGood      Half

	// the identification heuristic for this part has never been confirmed
	// against a physical device
	Unverified bool
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s %s", d.Name, d.Organisation)
}

// RowBits returns the number of row address bits.
func (d *Descriptor) RowBits() int {
	return bits.Len(uint(d.Rows - 1))
}

// ColumnBits returns the number of column address bits.
func (d *Descriptor) ColumnBits() int {
	return bits.Len(uint(d.Columns - 1))
}

// AddressBits returns the number of bits in the named dimension.
func (d *Descriptor) AddressBits(dim Dimension) int {
	if dim == RowDimension {
		return d.RowBits()
	}
	return d.ColumnBits()
}

// DataMask returns the mask of valid data bits.
func (d *Descriptor) DataMask() uint8 {
	return uint8(1<<d.DataWidth) - 1
}

// Cells returns the number of addressable locations.
func (d *Descriptor) Cells() int {
	return d.Rows * d.Columns
}

// Delay returns the retention delay for the slot. Slots past the end of the
// schedule use the final entry.
func (d *Descriptor) Delay(slot int) time.Duration {
	slot = min(max(slot, 0), DelaySlots-1)
	return time.Duration(d.RetentionDelays[slot]) * DelayUnit
}

// SteadyDelay returns the delay used after every row once the retention
// pipeline is full.
func (d *Descriptor) SteadyDelay() time.Duration {
	return d.Delay(d.DelayRows)
}

// WriteDuration returns the WriteTime as a time.Duration.
func (d *Descriptor) WriteDuration() time.Duration {
	return time.Duration(d.WriteTime) * DelayUnit
}

// MinRetention is the shortest time between writing a row with a
// pseudo-random pattern and verifying it.
func (d *Descriptor) MinRetention() time.Duration {
	return time.Duration(d.DelayRows) * d.SteadyDelay()
}

// MaxRowOpen returns the longest time a row may be held open by RAS during a
// burst.
func (d *Descriptor) MaxRowOpen() time.Duration {
	return d.RefreshInterval
}

// CBR returns true if the part supports CAS-before-RAS refresh.
func (d *Descriptor) CBR() bool {
	return d.RefreshCycles > 0
}

// RefreshSpacing is the time between refresh strobes that keeps every row
// inside the refresh interval.
func (d *Descriptor) RefreshSpacing() time.Duration {
	if d.RefreshCycles == 0 {
		return 0
	}
	return d.RefreshInterval / time.Duration(d.RefreshCycles)
}

// Half returns which half of the dimension the address belongs to. The half
// is decided by the most significant address bit of the dimension.
func (d *Descriptor) Half(dim Dimension, addr int) Half {
	n := d.AddressBits(dim)
	if n == 0 {
		return LowerHalf
	}
	if addr&(1<<(n-1)) != 0 {
		return UpperHalf
	}
	return LowerHalf
}
