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

	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
)

// DefaultOpCost is the time taken by every bus operation unless changed with
// SetOpCost().
const DefaultOpCost = 200 * time.Nanosecond

// Stats are collected by the chip during a session.
type Stats struct {
	Reads  int
	Writes int

	// number of CAS-before-RAS refresh strobes
	CBRStrobes int

	// number of RAS cycles with more than one CAS strobe that were not inside
	// a critical section
	BurstsOutsideCritical int

	// number of times a row was held open for longer than the part allows
	RowOpenViolations int
	LongestRowOpen    time.Duration
}

// Chip is a simulated memory part.
type Chip struct {
	desc   *descriptor.Descriptor
	clk    *timing.Virtual
	opCost time.Duration

	// the bus configuration matches the part
	connected bool
	cfg       bus.Config

	cells []uint8

	// when each row was last refreshed. only used when retention is non-zero
	retention  time.Duration
	rowRefresh []time.Duration

	// pin state
	addr       uint16
	ras, cas   bool
	we, oe     bool
	dir        bus.Direction
	data       uint8
	cbrCycle   bool
	rasAt      time.Duration
	casCount   int
	burstNoted bool

	// latched cell
	row, col int

	// the nibble position of the first CAS strobe in a nibble mode cycle
	nibbleBase int

	// the previous row and column addresses requested, for decoder glitches
	lastRow, lastCol int

	counter       int
	counterStates int

	critical int

	// faults
	stuck       []Stuck
	leaky       []Leaky
	writtenAt   []time.Duration
	glitches    []DecoderGlitch
	rowClear    uint16
	rowSet      uint16
	colClear    uint16
	colSet      uint16
	groundShort int
	faults      []Fault

	Stats Stats
}

// NewChip is the preferred method of initialisation for the Chip type. The
// clock will be shared with the tester.
func NewChip(desc *descriptor.Descriptor, clk *timing.Virtual) *Chip {
	c := &Chip{
		desc:          desc,
		clk:           clk,
		opCost:        DefaultOpCost,
		cells:         make([]uint8, desc.Cells()),
		counterStates: desc.RefreshCycles,
		row:           -1,
		col:           -1,
		lastRow:       -1,
		lastCol:       -1,
	}
	return c
}

// NewEmpty creates a Chip that simulates an empty socket.
func NewEmpty(clk *timing.Virtual) *Chip {
	return &Chip{
		clk:    clk,
		opCost: DefaultOpCost,
	}
}

func (c *Chip) String() string {
	if c.desc == nil {
		return "empty socket"
	}
	return fmt.Sprintf("simulated %s", c.desc)
}

// Descriptor returns the descriptor of the simulated part. Returns nil for an
// empty socket.
func (c *Chip) Descriptor() *descriptor.Descriptor {
	return c.desc
}

// Clock returns the clock used by the chip.
func (c *Chip) Clock() *timing.Virtual {
	return c.clk
}

// SetOpCost changes the time taken by every bus operation.
func (c *Chip) SetOpCost(d time.Duration) {
	c.opCost = d
}

// DecayMargin is how much longer than the refresh interval of the part a
// cell holds its contents when decay is enabled with EnableDecay().
const DecayMargin = 4

// EnableDecay makes unrefreshed rows lose their contents a little after the
// refresh interval of the part. The extra time is the refresh interval
// divided by DecayMargin.
func (c *Chip) EnableDecay() {
	if c.desc == nil {
		return
	}
	c.SetRetention(c.desc.RefreshInterval + c.desc.RefreshInterval/DecayMargin)
}

// SetRetention sets the time after which an unrefreshed row loses its
// contents. A value of zero means cells never decay.
func (c *Chip) SetRetention(d time.Duration) {
	c.retention = d
	if d > 0 && c.desc != nil && c.rowRefresh == nil {
		c.rowRefresh = make([]time.Duration, c.desc.Rows)
		for i := range c.rowRefresh {
			c.rowRefresh[i] = c.clk.Now()
		}
	}
}

// AddFault to the chip. An empty socket can only have a ground short.
func (c *Chip) AddFault(f Fault) error {
	if c.desc == nil {
		if _, ok := f.(GroundShort); !ok {
			return fmt.Errorf("sim: cannot add %s to an empty socket", f)
		}
	}
	if err := f.add(c); err != nil {
		return err
	}
	c.faults = append(c.faults, f)
	return nil
}

// Faults returns the faults that have been added to the chip.
func (c *Chip) Faults() []Fault {
	return c.faults
}

// Peek returns the stored value of a cell without any bus activity and
// without applying faults.
func (c *Chip) Peek(row, col int) uint8 {
	return c.cells[row*c.desc.Columns+col]
}

// Poke sets the stored value of a cell without any bus activity.
func (c *Chip) Poke(row, col int, v uint8) {
	c.cells[row*c.desc.Columns+col] = v & c.desc.DataMask()
}

func (c *Chip) tick() {
	c.clk.Advance(c.opCost)
}

func (c *Chip) mask() uint8 {
	if c.desc == nil {
		return 0x0f
	}
	return c.desc.DataMask()
}

// the value read from pins that are not driven by the part
func (c *Chip) floating() uint8 {
	if c.cfg.DataWidth == 1 {
		return 0x01
	}
	return 0x0f
}

func (c *Chip) decodeRow(addr uint16) int {
	a := (addr &^ c.rowClear) | c.rowSet
	r := int(a) & (c.desc.Rows - 1)
	for _, g := range c.glitches {
		if g.Dimension == descriptor.RowDimension && c.lastRow == g.From && r == g.To {
			c.lastRow = r
			return g.From
		}
	}
	c.lastRow = r
	return r
}

func (c *Chip) decodeColumn(addr uint16) int {
	a := (addr &^ c.colClear) | c.colSet
	col := int(a) & (c.desc.Columns - 1)
	for _, g := range c.glitches {
		if g.Dimension == descriptor.ColumnDimension && c.lastCol == g.From && col == g.To {
			c.lastCol = col
			return g.From
		}
	}
	c.lastCol = col
	return col
}

// the cell addressed by the current CAS strobe. nibble mode parts sequence
// through the four cells selected by the most significant row and column
// address bits
func (c *Chip) cell() (int, int) {
	if !c.desc.NibbleMode || c.casCount <= 1 {
		return c.row, c.col
	}
	n := (c.nibbleBase + c.casCount - 1) & 0x03
	rowTop := c.desc.Rows >> 1
	colTop := c.desc.Columns >> 1
	row := c.row &^ rowTop
	col := c.col &^ colTop
	if n&0x02 != 0 {
		row |= rowTop
	}
	if n&0x01 != 0 {
		col |= colTop
	}
	return row, col
}

func (c *Chip) write() {
	if !c.connected || c.dir != bus.Output {
		return
	}
	row, col := c.cell()
	for _, s := range c.stuck {
		if s.contains(row, col) {
			return
		}
	}
	idx := row*c.desc.Columns + col
	c.cells[idx] = c.data & c.mask()
	if c.writtenAt != nil {
		c.writtenAt[idx] = c.clk.Now()
	}
	c.Stats.Writes++
}

func (c *Chip) read() uint8 {
	row, col := c.cell()
	c.Stats.Reads++
	for _, s := range c.stuck {
		if s.contains(row, col) {
			return s.Value & c.mask()
		}
	}
	idx := row*c.desc.Columns + col
	for _, l := range c.leaky {
		if l.contains(row, col) && c.clk.Now()-c.writtenAt[idx] > l.Retention {
			return 0
		}
	}
	return c.cells[idx]
}

// refresh a row, losing its contents first if it has decayed
func (c *Chip) refresh(row int) {
	if c.rowRefresh == nil {
		return
	}
	if c.clk.Now()-c.rowRefresh[row] > c.retention {
		clear(c.cells[row*c.desc.Columns : (row+1)*c.desc.Columns])
	}
	c.rowRefresh[row] = c.clk.Now()
}

func (c *Chip) refreshCounter() {
	c.Stats.CBRStrobes++
	if c.counterStates == 0 {
		return
	}
	for r := c.counter; r < c.desc.Rows; r += c.desc.RefreshCycles {
		c.refresh(r)
	}
	c.counter = (c.counter + 1) % c.counterStates
}

// Configure implements the bus.Bus interface.
func (c *Chip) Configure(cfg bus.Config) {
	c.tick()
	c.cfg = cfg
	c.connected = c.desc != nil && cfg == bus.ConfigFor(c.desc)
	c.ras = false
	c.cas = false
	c.we = false
	c.oe = false
}

// SetRowAddress implements the bus.Bus interface.
func (c *Chip) SetRowAddress(row uint16) {
	c.tick()
	c.addr = row
}

// SetColumnAddress implements the bus.Bus interface. Static column parts
// follow the column address while CAS is asserted.
func (c *Chip) SetColumnAddress(col uint16) {
	c.tick()
	c.addr = col
	if c.connected && c.ras && c.cas && !c.cbrCycle && c.desc.StaticColumn {
		c.col = c.decodeColumn(col)
	}
}

// AssertRAS implements the bus.Bus interface.
func (c *Chip) AssertRAS() {
	c.tick()
	if c.ras {
		return
	}
	c.ras = true
	c.rasAt = c.clk.Now()
	c.casCount = 0
	c.burstNoted = false

	if !c.connected {
		return
	}

	if c.cas {
		c.cbrCycle = true
		c.refreshCounter()
		return
	}

	c.cbrCycle = false
	c.row = c.decodeRow(c.addr)
	c.refresh(c.row)
}

// DeassertRAS implements the bus.Bus interface.
func (c *Chip) DeassertRAS() {
	c.tick()
	if !c.ras {
		return
	}
	c.ras = false

	if !c.connected || c.cbrCycle {
		return
	}

	open := c.clk.Now() - c.rasAt
	c.Stats.LongestRowOpen = max(c.Stats.LongestRowOpen, open)
	if open > c.desc.MaxRowOpen() {
		c.Stats.RowOpenViolations++
	}
	c.refresh(c.row)
}

// AssertCAS implements the bus.Bus interface.
func (c *Chip) AssertCAS() {
	c.tick()
	if c.cas {
		return
	}
	c.cas = true

	if !c.connected || !c.ras || c.cbrCycle {
		return
	}

	c.casCount++
	if c.casCount == 2 && !c.burstNoted {
		c.burstNoted = true
		if c.critical == 0 {
			c.Stats.BurstsOutsideCritical++
		}
	}

	// nibble mode parts latch the column on the first strobe only
	if !c.desc.NibbleMode || c.casCount == 1 {
		c.col = c.decodeColumn(c.addr)
		rowTop := c.desc.Rows >> 1
		colTop := c.desc.Columns >> 1
		c.nibbleBase = 0
		if c.row&rowTop != 0 {
			c.nibbleBase |= 0x02
		}
		if c.col&colTop != 0 {
			c.nibbleBase |= 0x01
		}
	}

	if c.we {
		c.write()
	}
}

// DeassertCAS implements the bus.Bus interface.
func (c *Chip) DeassertCAS() {
	c.tick()
	c.cas = false
}

// SetWriteEnable implements the bus.Bus interface. Asserting write enable
// while CAS is asserted is a late write.
func (c *Chip) SetWriteEnable(active bool) {
	c.tick()
	late := active && !c.we
	c.we = active
	if late && c.connected && c.ras && c.cas && !c.cbrCycle {
		c.write()
	}
}

// SetOutputEnable implements the bus.Bus interface.
func (c *Chip) SetOutputEnable(active bool) {
	c.tick()
	c.oe = active
}

// SetDataDirection implements the bus.Bus interface.
func (c *Chip) SetDataDirection(dir bus.Direction) {
	c.tick()
	c.dir = dir
}

// DriveData implements the bus.Bus interface.
func (c *Chip) DriveData(v uint8) {
	c.tick()
	c.data = v
}

// ReadData implements the bus.Bus interface.
func (c *Chip) ReadData() uint8 {
	c.tick()
	if !c.connected || !c.ras || !c.cas || c.cbrCycle || c.we {
		return c.floating()
	}
	if c.desc.DataWidth > 1 && !c.oe {
		return c.floating()
	}
	return c.read()
}

// DisableInterrupts implements the timing.Critical interface.
func (c *Chip) DisableInterrupts() {
	c.critical++
}

// RestoreInterrupts implements the timing.Critical interface.
func (c *Chip) RestoreInterrupts() {
	if c.critical > 0 {
		c.critical--
	}
}

// CheckGroundShort implements the bus.GroundShort interface.
func (c *Chip) CheckGroundShort(_ descriptor.Family) (int, error) {
	return c.groundShort, nil
}
