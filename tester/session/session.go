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

// Package session holds the state of a single test session, which is passed
// by pointer through every stage of the tester. There is no global state in
// the tester: the current part, the pseudo-random table and the half-good
// accumulator all live in the Session.
package session

import (
	"github.com/jetsetilly/dramtester/environment"
	"github.com/jetsetilly/dramtester/hardware/access"
	"github.com/jetsetilly/dramtester/hardware/bus"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/logger"
	"github.com/jetsetilly/dramtester/random"
	"github.com/jetsetilly/dramtester/tester/result"
)

// Session is the state of one test session.
type Session struct {
	Env *environment.Environment

	Bus    bus.Bus
	Clock  timing.Clock
	Device *access.Device

	Table *random.Table

	HalfGood HalfGood

	// the most recent failure that was not fatal because the part has
	// half-functional variants
	Tolerated *result.Fault
}

// NewSession is the preferred method of initialisation for the Session type.
// The critical argument can be nil if the bus never interrupts.
func NewSession(env *environment.Environment, b bus.Bus, clk timing.Clock, crit timing.Critical) *Session {
	return &Session{
		Env:    env,
		Bus:    b,
		Clock:  clk,
		Device: access.NewDevice(b, clk, crit),
		Table:  random.NewTable(),
	}
}

// Reset the session to the start state.
func (s *Session) Reset() {
	s.Table.Reset()
	s.HalfGood.Reset()
	s.Tolerated = nil
}

// Select the part under test.
func (s *Session) Select(desc *descriptor.Descriptor) {
	s.Device.Select(desc)
}

// Part returns the part under test. Returns nil if no part has been selected.
func (s *Session) Part() *descriptor.Descriptor {
	return s.Device.Descriptor()
}

// Mismatch handles a failed cell. The fault is returned unchanged for parts
// without half-functional variants. For other parts the failure is recorded
// in the HalfGood accumulator and is only returned when failures have been
// seen in both halves of both dimensions.
func (s *Session) Mismatch(f *result.Fault) error {
	part := s.Part()
	if len(descriptor.HalfVariants(part)) == 0 {
		return f
	}

	s.HalfGood.Record(part, f.Row, f.Col)
	s.Tolerated = f
	if s.HalfGood.Fatal() {
		return f
	}
	return nil
}

// Err returns the sticky error of a bus that can fail independently of the
// part.
func (s *Session) Err() error {
	if f, ok := s.Bus.(bus.Faulty); ok {
		return f.Err()
	}
	return nil
}

// Log adds an entry to the central logger if the environment allows.
func (s *Session) Log(tag string, detail any) {
	logger.Log(s.Env, tag, detail)
}

// Logf is the formatted variant of Log.
func (s *Session) Logf(tag string, detail string, args ...any) {
	logger.Logf(s.Env, tag, detail, args...)
}

// Snapshot of the session state. Used for diagnostics.
type Snapshot struct {
	Environment string
	Part        *descriptor.Descriptor
	HalfGood    HalfGood
	Tolerated   *result.Fault
	Table       random.Table
	Clock       string
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Environment: s.Env.String(),
		Part:        s.Part(),
		HalfGood:    s.HalfGood,
		Tolerated:   s.Tolerated,
		Table:       *s.Table,
		Clock:       s.Clock.Now().String(),
	}
}
