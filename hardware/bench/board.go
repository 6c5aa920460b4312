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

package bench

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/pinmap"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/logger"
)

// MinFirmware is the oldest firmware version that understands the operation
// stream.
const MinFirmware = "v1.2.0"

// Sentinal error patterns.
const (
	BadFirmware = "bench: unsupported firmware %q (requires %s or later)"
	NoResponse  = "bench: no response from board: %v"
)

// commands of the operation stream
const (
	cmdVersion   = 'V'
	cmdDirection = 'M'
	cmdPort      = 'P'
	cmdDelay     = 'D'
	cmdRead      = 'R'
	cmdCritical  = 'C'
	cmdRestore   = 'c'
	cmdGround    = 'G'
)

// OpCost is the estimated time taken by the board to execute a port write.
const OpCost = 250 * time.Nanosecond

// the longest delay that can be sent in a single operation
const maxDelay = time.Duration(^uint32(0)) * time.Nanosecond

// Board is a pin driver board on a serial line.
type Board struct {
	r *bufio.Reader
	w *bufio.Writer
	c io.Closer

	// the firmware version reported by the board
	Firmware string

	layout *pinmap.Layout

	// the state of the board registers as known by the host and as last
	// sent to the board
	port     pinmap.Ports
	ddr      pinmap.Ports
	sentPort pinmap.Ports
	sentDDR  pinmap.Ports

	clk      timing.Virtual
	critical int

	// number of reads sent in the critical section with replies still on
	// the line
	queued int

	// values of the reads that have been collected
	samples []uint8

	err error
}

// NewBoard checks the firmware of the board on the other end of the
// connection. If the connection implements io.Closer it is closed by
// Close().
func NewBoard(conn io.ReadWriter) (*Board, error) {
	b := &Board{
		r: bufio.NewReader(conn),
		w: bufio.NewWriter(conn),
	}
	if c, ok := conn.(io.Closer); ok {
		b.c = c
	}

	b.w.WriteByte(cmdVersion)
	if err := b.w.Flush(); err != nil {
		return nil, curated.Errorf(NoResponse, err)
	}
	v, err := b.r.ReadString('\n')
	if err != nil {
		return nil, curated.Errorf(NoResponse, err)
	}
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Compare(v, MinFirmware) < 0 {
		return nil, curated.Errorf(BadFirmware, v, MinFirmware)
	}
	b.Firmware = v

	logger.Logf(logger.Allow, "bench", "board firmware %s", v)

	return b, nil
}

func (b *Board) String() string {
	if b.layout == nil {
		return fmt.Sprintf("bench board %s", b.Firmware)
	}
	return fmt.Sprintf("bench board %s (%s)", b.Firmware, b.layout)
}

// Close the connection to the board.
func (b *Board) Close() error {
	b.flush()
	if b.c != nil {
		if err := b.c.Close(); err != nil && b.err == nil {
			b.err = fmt.Errorf("bench: %w", err)
		}
	}
	return b.err
}

// Err implements the bus.Faulty interface.
func (b *Board) Err() error {
	return b.err
}

func (b *Board) fail(err error) {
	if b.err == nil {
		b.err = err
		logger.Log(logger.Allow, "bench", err)
	}
}

func (b *Board) emit(p ...byte) {
	if b.err != nil {
		return
	}
	if _, err := b.w.Write(p); err != nil {
		b.fail(fmt.Errorf("bench: %w", err))
	}
}

func (b *Board) flush() {
	if b.err != nil {
		return
	}
	if err := b.w.Flush(); err != nil {
		b.fail(fmt.Errorf("bench: %w", err))
	}
}

// reply sends the command and waits for the three port bytes of the reply
func (b *Board) reply(cmd byte) pinmap.Ports {
	var p pinmap.Ports
	b.emit(cmd)
	b.flush()
	if b.err != nil {
		return p
	}
	if _, err := io.ReadFull(b.r, p[:]); err != nil {
		b.fail(curated.Errorf(NoResponse, err))
	}
	return p
}

// send any register that differs from the value last sent to the board
func (b *Board) sync() {
	for i := range pinmap.NumPorts {
		if b.ddr[i] != b.sentDDR[i] {
			b.emit(cmdDirection, byte(i), b.ddr[i])
			b.sentDDR[i] = b.ddr[i]
			b.clk.Advance(OpCost)
		}
		if b.port[i] != b.sentPort[i] {
			b.emit(cmdPort, byte(i), b.port[i])
			b.sentPort[i] = b.port[i]
			b.clk.Advance(OpCost)
		}
	}
}

// Configure implements the bus.Bus interface.
func (b *Board) Configure(cfg bus.Config) {
	l, err := pinmap.For(cfg)
	if err != nil {
		b.fail(err)
		return
	}
	b.layout = l
	b.port = l.Idle()
	b.ddr = l.Direction(bus.Output)

	// force every register to be sent
	for i := range pinmap.NumPorts {
		b.sentPort[i] = ^b.port[i]
		b.sentDDR[i] = ^b.ddr[i]
	}
	b.sync()
}

// SetRowAddress implements the bus.Bus interface.
func (b *Board) SetRowAddress(row uint16) {
	b.layout.ScatterAddress(&b.port, row)
	b.sync()
}

// SetColumnAddress implements the bus.Bus interface.
func (b *Board) SetColumnAddress(col uint16) {
	b.layout.ScatterAddress(&b.port, col)
	b.sync()
}

func (b *Board) strobe(l pinmap.Line, asserted bool) {
	b.port.Set(l, !asserted)
	b.sync()
}

// AssertRAS implements the bus.Bus interface.
func (b *Board) AssertRAS() {
	b.strobe(b.layout.RAS, true)
}

// DeassertRAS implements the bus.Bus interface.
func (b *Board) DeassertRAS() {
	b.strobe(b.layout.RAS, false)
}

// AssertCAS implements the bus.Bus interface.
func (b *Board) AssertCAS() {
	b.strobe(b.layout.CAS, true)
}

// DeassertCAS implements the bus.Bus interface.
func (b *Board) DeassertCAS() {
	b.strobe(b.layout.CAS, false)
}

// SetWriteEnable implements the bus.Bus interface.
func (b *Board) SetWriteEnable(active bool) {
	b.strobe(b.layout.WE, active)
}

// SetOutputEnable implements the bus.Bus interface. Has no effect for
// layouts without an output enable pin.
func (b *Board) SetOutputEnable(active bool) {
	if b.layout.OE != nil {
		b.strobe(*b.layout.OE, active)
	}
}

// SetDataDirection implements the bus.Bus interface.
func (b *Board) SetDataDirection(dir bus.Direction) {
	b.ddr = b.layout.Direction(dir)
	b.sync()
}

// DriveData implements the bus.Bus interface.
func (b *Board) DriveData(v uint8) {
	b.layout.ScatterData(&b.port, v)
	b.sync()
}

// ReadData implements the bus.Bus interface.
func (b *Board) ReadData() uint8 {
	p := b.reply(cmdRead)
	b.clk.Advance(OpCost)
	return b.layout.GatherData(p)
}

// Now implements the timing.Clock interface.
func (b *Board) Now() time.Duration {
	return b.clk.Now()
}

// Delay implements the timing.Clock interface.
func (b *Board) Delay(d time.Duration) {
	for d > 0 {
		n := min(d, maxDelay)
		var arg [4]byte
		binary.LittleEndian.PutUint32(arg[:], uint32(n.Nanoseconds()))
		b.emit(cmdDelay, arg[0], arg[1], arg[2], arg[3])
		b.clk.Advance(n)
		d -= n
	}
}

// DisableInterrupts implements the timing.Critical interface.
func (b *Board) DisableInterrupts() {
	b.critical++
	if b.critical == 1 {
		b.emit(cmdCritical)
	}
}

// RestoreInterrupts implements the timing.Critical interface. The buffered
// operations are sent to the board at the end of the outermost critical
// section.
func (b *Board) RestoreInterrupts() {
	if b.critical == 0 {
		return
	}
	b.critical--
	if b.critical == 0 {
		b.emit(cmdRestore)
		b.flush()
		b.collect()
	}
}

// SampleData implements the bus.Sampler interface. Inside a critical section
// the read is sent without waiting for the reply.
func (b *Board) SampleData() {
	if b.critical == 0 {
		b.samples = append(b.samples, b.ReadData())
		return
	}
	b.emit(cmdRead)
	b.clk.Advance(OpCost)
	b.queued++
}

// Samples implements the bus.Sampler interface.
func (b *Board) Samples() []uint8 {
	s := b.samples
	b.samples = nil
	return s
}

// read the replies to the reads sent in the critical section. the replies
// are in the order the reads were sent
func (b *Board) collect() {
	for range b.queued {
		var p pinmap.Ports
		if b.err == nil {
			if _, err := io.ReadFull(b.r, p[:]); err != nil {
				b.fail(curated.Errorf(NoResponse, err))
			}
		}
		b.samples = append(b.samples, b.layout.GatherData(p))
	}
	b.queued = 0
}

// CheckGroundShort implements the bus.GroundShort interface. Returns the
// socket pin of the first line of the family layout that reads low with the
// pullups enabled.
func (b *Board) CheckGroundShort(family descriptor.Family) (int, error) {
	l, err := pinmap.For(bus.Config{Family: family})
	if err != nil {
		return 0, err
	}
	p := b.reply(cmdGround)
	if b.err != nil {
		return 0, b.err
	}
	pin := l.Shorted(p)
	if pin != 0 {
		logger.Logf(logger.Allow, "bench", "pin %d of the %s socket is shorted to ground", pin, l)
	}
	return pin, nil
}
