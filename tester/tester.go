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

// Package tester runs a complete test session. The stages run in a fixed
// order and the first fatal fault ends the session:
//
//	ground short check
//	identification of the part
//	address decoder verification
//	fixed and pseudo-random patterns
//	refresh counter test
//	resolution of half-functional variants
//
// Test failures are returned as a failing result.Outcome. An error is only
// returned for failures of the instrument itself, such as a broken serial
// connection.
package tester

import (
	"errors"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/tester/decoder"
	"github.com/jetsetilly/dramtester/tester/halfgood"
	"github.com/jetsetilly/dramtester/tester/pattern"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/retention"
	"github.com/jetsetilly/dramtester/tester/sense"
	"github.com/jetsetilly/dramtester/tester/session"
)

// ShortChecker checks the socket for pins shorted to ground. Returns the
// number of the first shorted pin or zero if there is no short.
type ShortChecker interface {
	CheckGroundShort(family descriptor.Family) (int, error)
}

// Tester runs test sessions.
type Tester struct {
	s      *session.Session
	shorts ShortChecker

	// record the decoder probes and retention windows of the most recent run
	Trace   bool
	Probes  []decoder.Probe
	Windows []retention.Window

	// called for every strobe of the refresh test. can be nil
	Observer retention.Observer
}

// NewTester is the preferred method of initialisation for the Tester type.
// The ShortChecker can be nil, in which case the ground short check is
// skipped.
func NewTester(s *session.Session, shorts ShortChecker) *Tester {
	return &Tester{
		s:      s,
		shorts: shorts,
	}
}

// Run is a convenience function that runs a single session with a new
// Tester.
func Run(s *session.Session, shorts ShortChecker) (result.Outcome, error) {
	return NewTester(s, shorts).Run()
}

// conclude converts the error of a stage into an Outcome. Errors that are
// not faults of the part are returned as they are. A failure of the bus
// takes precedence over any fault it may have caused.
func (t *Tester) conclude(part *descriptor.Descriptor, err error) (result.Outcome, error) {
	if ierr := t.s.Err(); ierr != nil {
		err = ierr
	}

	var f *result.Fault
	if !errors.As(err, &f) {
		if curated.IsAny(err) {
			t.s.Logf("tester", "instrument error: %v", err)
		} else {
			// the error did not come from the instrument packages. probably
			// the operating system or the serial driver
			t.s.Logf("tester", "unexpected instrument error: %v", err)
		}
		return result.Outcome{}, err
	}
	o := result.Failed(part, f)
	t.s.Log("tester", o)
	return o, nil
}

// Run a test session for the part in the socket.
func (t *Tester) Run() (result.Outcome, error) {
	s := t.s
	s.Reset()
	t.Probes = t.Probes[:0]
	t.Windows = t.Windows[:0]

	s.Logf("tester", "session start: %s", s.Env)

	if t.shorts != nil {
		pin, err := t.shorts.CheckGroundShort(s.Env.Selector.Family)
		if err != nil {
			return t.conclude(nil, err)
		}
		if pin > 0 {
			return t.conclude(nil, result.GroundShort(pin))
		}
	}

	part, err := sense.Sense(s)
	if err == nil {
		err = s.Err()
	}
	if err != nil {
		return t.conclude(nil, err)
	}

	probes, err := decoder.Verify(s)
	if t.Trace {
		t.Probes = append(t.Probes, probes...)
	}
	if err == nil {
		err = s.Err()
	}
	if err != nil {
		return t.conclude(part, err)
	}

	eng := pattern.NewEngine(s)
	eng.Trace = t.Trace
	err = eng.Run()
	t.Windows = append(t.Windows, eng.Windows...)
	if err != nil {
		return t.conclude(part, err)
	}

	err = retention.RefreshTest(s, s.Env.Prefs.Repeats(), t.Observer)
	if err == nil {
		err = s.Err()
	}
	if err != nil {
		return t.conclude(part, err)
	}

	resolved, err := halfgood.Resolve(s)
	if err != nil {
		return t.conclude(part, err)
	}

	o := result.Passed(resolved)
	s.Log("tester", o)
	return o, nil
}
