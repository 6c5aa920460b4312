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

package timing

import (
	"time"
)

// Electrical timing constants common to every part in the table.
const (
	// RAS precharge time
	RASPrecharge = 100 * time.Nanosecond

	// RAS to CAS delay
	RASToCAS = 150 * time.Nanosecond

	// access time from CAS
	CASAccess = 100 * time.Nanosecond

	// time for the supply to settle after power up, before the initialisation
	// cycles
	PowerSettle = 100 * time.Microsecond
)

// Clock is the source of time for a test session.
type Clock interface {
	// the time since the clock was created
	Now() time.Duration

	// wait for the duration. negative and zero durations return immediately
	Delay(d time.Duration)
}

// Until waits until the clock reaches the deadline. Returns immediately if
// the deadline has already passed.
func Until(clk Clock, deadline time.Duration) {
	if d := deadline - clk.Now(); d > 0 {
		clk.Delay(d)
	}
}

// Critical is implemented by devices that can suspend asynchronous
// interruption during a timing critical burst.
type Critical interface {
	DisableInterrupts()
	RestoreInterrupts()
}

// NoCritical is an implementation of Critical that does nothing. Suitable for
// devices that never interrupt.
type NoCritical struct{}

// DisableInterrupts implements the Critical interface.
func (NoCritical) DisableInterrupts() {}

// RestoreInterrupts implements the Critical interface.
func (NoCritical) RestoreInterrupts() {}

// Virtual is a Clock that only moves when told to.
type Virtual struct {
	now time.Duration
}

// Now implements the Clock interface.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Delay implements the Clock interface.
func (v *Virtual) Delay(d time.Duration) {
	if d > 0 {
		v.now += d
	}
}

// Advance is the same as Delay. It is used for the cost of an operation
// rather than a requested wait.
func (v *Virtual) Advance(d time.Duration) {
	v.Delay(d)
}

// Busy is a Clock that spins on the host's monotonic clock.
type Busy struct {
	epoch time.Time
}

// NewBusy is the preferred method of initialisation for the Busy type.
func NewBusy() *Busy {
	return &Busy{epoch: time.Now()}
}

// Now implements the Clock interface.
func (b *Busy) Now() time.Duration {
	return time.Since(b.epoch)
}

// Delay implements the Clock interface.
func (b *Busy) Delay(d time.Duration) {
	end := b.Now() + d
	for b.Now() < end {
	}
}
