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

package access

import (
	"time"

	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/logger"
)

// the number of RAS-only cycles needed to wake a part after power up
const initCycles = 8

// Device drives a part through a bus.Bus.
type Device struct {
	bus  bus.Bus
	clk  timing.Clock
	crit timing.Critical
	desc *descriptor.Descriptor

	// when the current row was struck
	strobedAt time.Duration
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(b bus.Bus, clk timing.Clock, crit timing.Critical) *Device {
	if crit == nil {
		crit = timing.NoCritical{}
	}
	return &Device{
		bus:  b,
		clk:  clk,
		crit: crit,
	}
}

func (dev *Device) String() string {
	if dev.desc == nil {
		return "no part selected"
	}
	return dev.desc.String()
}

// Select the part to be accessed and configure the bus for its pinout.
func (dev *Device) Select(desc *descriptor.Descriptor) {
	dev.desc = desc
	dev.bus.Configure(bus.ConfigFor(desc))
}

// Descriptor returns the currently selected part.
func (dev *Device) Descriptor() *descriptor.Descriptor {
	return dev.desc
}

// Clock returns the clock used by the device.
func (dev *Device) Clock() timing.Clock {
	return dev.clk
}

// Init wakes the part after power up.
func (dev *Device) Init() {
	dev.clk.Delay(timing.PowerSettle)
	for i := range initCycles {
		dev.RefreshRow(uint16(i))
	}
	logger.Logf(logger.Allow, "access", "%s initialised", dev.desc)
}

func (dev *Device) strike(row uint16) {
	dev.bus.SetRowAddress(row)
	dev.bus.AssertRAS()
	dev.strobedAt = dev.clk.Now()
	dev.clk.Delay(timing.RASToCAS)
}

func (dev *Device) release() {
	dev.bus.DeassertRAS()
	dev.clk.Delay(timing.RASPrecharge)
}

// close and re-strike the row if it has been open for half the maximum time
func (dev *Device) restrike(row uint16) {
	if dev.clk.Now()-dev.strobedAt < dev.desc.MaxRowOpen()/2 {
		return
	}
	dev.release()
	dev.strike(row)
}

// Write a single cell.
func (dev *Device) Write(row uint16, col uint16, v uint8) {
	dev.bus.SetOutputEnable(false)
	dev.bus.SetDataDirection(bus.Output)
	dev.strike(row)
	dev.bus.SetColumnAddress(col)
	dev.bus.DriveData(v)
	dev.bus.SetWriteEnable(true)
	dev.bus.AssertCAS()
	dev.clk.Delay(timing.CASAccess)
	dev.bus.DeassertCAS()
	dev.bus.SetWriteEnable(false)
	dev.release()
}

// Read a single cell.
func (dev *Device) Read(row uint16, col uint16) uint8 {
	dev.bus.SetDataDirection(bus.Input)
	dev.bus.SetOutputEnable(true)
	dev.strike(row)
	dev.bus.SetColumnAddress(col)
	dev.bus.AssertCAS()
	dev.clk.Delay(timing.CASAccess)
	v := dev.bus.ReadData() & dev.desc.DataMask()
	dev.bus.DeassertCAS()
	dev.bus.SetOutputEnable(false)
	dev.release()
	return v
}

// WriteRow writes one value for every column of the row. The length of the
// values slice must be the number of columns of the part.
func (dev *Device) WriteRow(row uint16, values []uint8) {
	dev.crit.DisableInterrupts()
	defer dev.crit.RestoreInterrupts()

	dev.bus.SetOutputEnable(false)
	dev.bus.SetDataDirection(bus.Output)

	if dev.desc.NibbleMode {
		half := len(values) / 2
		for c := range half {
			dev.strike(row)
			dev.bus.SetColumnAddress(uint16(c))
			dev.bus.DriveData(values[c])
			dev.bus.SetWriteEnable(true)
			dev.bus.AssertCAS()
			dev.bus.DeassertCAS()
			dev.bus.DriveData(values[c+half])
			dev.bus.AssertCAS()
			dev.bus.DeassertCAS()
			dev.bus.SetWriteEnable(false)
			dev.release()
		}
		return
	}

	dev.strike(row)
	dev.bus.SetWriteEnable(true)
	for c, v := range values {
		dev.restrike(row)
		dev.bus.SetColumnAddress(uint16(c))
		dev.bus.DriveData(v)
		dev.bus.AssertCAS()
		dev.bus.DeassertCAS()
	}
	dev.bus.SetWriteEnable(false)
	dev.release()
}

// ReadRow reads every column of the row into the out slice. The length of the
// slice must be the number of columns of the part.
func (dev *Device) ReadRow(row uint16, out []uint8) {
	r := dev.reader(out)
	defer r.collect()

	dev.crit.DisableInterrupts()
	defer dev.crit.RestoreInterrupts()

	dev.bus.SetDataDirection(bus.Input)
	dev.bus.SetOutputEnable(true)
	defer dev.bus.SetOutputEnable(false)

	if dev.desc.NibbleMode {
		half := len(out) / 2
		for c := range half {
			dev.strike(row)
			dev.bus.SetColumnAddress(uint16(c))
			dev.bus.AssertCAS()
			dev.clk.Delay(timing.CASAccess)
			r.read(c)
			dev.bus.DeassertCAS()
			dev.bus.AssertCAS()
			dev.clk.Delay(timing.CASAccess)
			r.read(c + half)
			dev.bus.DeassertCAS()
			dev.release()
		}
		return
	}

	dev.strike(row)
	for c := range out {
		dev.restrike(row)
		dev.bus.SetColumnAddress(uint16(c))
		dev.bus.AssertCAS()
		dev.clk.Delay(timing.CASAccess)
		r.read(c)
		dev.bus.DeassertCAS()
	}
	dev.release()
}

// RefreshRow refreshes a row with a RAS-only cycle.
func (dev *Device) RefreshRow(row uint16) {
	dev.strike(row)
	dev.release()
}

// CBRRefresh refreshes the row selected by the internal refresh counter of
// the part, which then advances. Only valid for parts that support
// CAS-before-RAS refresh.
func (dev *Device) CBRRefresh() {
	dev.bus.AssertCAS()
	dev.bus.AssertRAS()
	dev.clk.Delay(timing.RASToCAS)
	dev.bus.DeassertRAS()
	dev.bus.DeassertCAS()
	dev.clk.Delay(timing.RASPrecharge)
}

// StaticColumnRead reads the columns of the row while holding both RAS and
// CAS asserted. Only the column address changes between reads. A part
// without static column support returns the first column for every read.
func (dev *Device) StaticColumnRead(row uint16, cols []uint16, out []uint8) {
	if len(cols) == 0 {
		return
	}

	r := dev.reader(out)
	defer r.collect()

	dev.crit.DisableInterrupts()
	defer dev.crit.RestoreInterrupts()

	dev.bus.SetDataDirection(bus.Input)
	dev.bus.SetOutputEnable(true)
	dev.strike(row)
	dev.bus.SetColumnAddress(cols[0])
	dev.bus.AssertCAS()
	for i, c := range cols {
		if i > 0 {
			dev.bus.SetColumnAddress(c)
		}
		dev.clk.Delay(timing.CASAccess)
		r.read(i)
	}
	dev.bus.DeassertCAS()
	dev.bus.SetOutputEnable(false)
	dev.release()
}

// NibbleWrite writes the values with one CAS strobe each at the same
// external address. A nibble mode part writes up to four different cells.
func (dev *Device) NibbleWrite(row uint16, col uint16, values []uint8) {
	dev.crit.DisableInterrupts()
	defer dev.crit.RestoreInterrupts()

	dev.bus.SetOutputEnable(false)
	dev.bus.SetDataDirection(bus.Output)
	dev.strike(row)
	dev.bus.SetColumnAddress(col)
	dev.bus.SetWriteEnable(true)
	for _, v := range values {
		dev.bus.DriveData(v)
		dev.bus.AssertCAS()
		dev.bus.DeassertCAS()
	}
	dev.bus.SetWriteEnable(false)
	dev.release()
}

// NibbleRead is the read equivalent of NibbleWrite.
func (dev *Device) NibbleRead(row uint16, col uint16, out []uint8) {
	r := dev.reader(out)
	defer r.collect()

	dev.crit.DisableInterrupts()
	defer dev.crit.RestoreInterrupts()

	dev.bus.SetDataDirection(bus.Input)
	dev.bus.SetOutputEnable(true)
	dev.strike(row)
	dev.bus.SetColumnAddress(col)
	for i := range out {
		dev.bus.AssertCAS()
		dev.clk.Delay(timing.CASAccess)
		r.read(i)
		dev.bus.DeassertCAS()
	}
	dev.bus.SetOutputEnable(false)
	dev.release()
}

// reader takes the reads of a burst. when the bus is a bus.Sampler the
// values are filled in by collect() after the critical section has ended
type reader struct {
	dev     *Device
	sampler bus.Sampler
	out     []uint8

	// index into out of each sample in the order they were taken
	order []int
}

func (dev *Device) reader(out []uint8) *reader {
	r := &reader{dev: dev, out: out}
	r.sampler, _ = dev.bus.(bus.Sampler)
	return r
}

func (r *reader) read(i int) {
	if r.sampler == nil {
		r.out[i] = r.dev.bus.ReadData() & r.dev.desc.DataMask()
		return
	}
	r.sampler.SampleData()
	r.order = append(r.order, i)
}

func (r *reader) collect() {
	if r.sampler == nil {
		return
	}
	mask := r.dev.desc.DataMask()
	for n, v := range r.sampler.Samples() {
		if n < len(r.order) {
			r.out[r.order[n]] = v & mask
		}
	}
}
