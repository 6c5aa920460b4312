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

package retention_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jetsetilly/dramtester/environment"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/sim"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/test"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/retention"
	"github.com/jetsetilly/dramtester/tester/session"
)

// the time taken to write and verify a row on a simulated chip with the
// default operation cost
func rowTimes(d *descriptor.Descriptor) (time.Duration, time.Duration) {
	n := time.Duration(d.Columns)
	return n * 800 * time.Nanosecond, n * 900 * time.Nanosecond
}

func TestPipelineWindows(t *testing.T) {
	for _, d := range descriptor.All() {
		clk := &timing.Virtual{}
		write, verify := rowTimes(d)

		var order []int
		pl := retention.NewPipeline(d, clk, func(row int) error {
			order = append(order, row)
			clk.Delay(verify)
			return nil
		})
		pl.Trace = true

		for row := range d.Rows {
			clk.Delay(write)
			test.DemandSuccess(t, pl.Written(row), d)
		}

		test.DemandEquality(t, len(order), d.Rows, d)
		for i, row := range order {
			if !test.ExpectEquality(t, row, i, d) {
				break
			}
		}

		for _, w := range pl.Windows {
			ok := w.Duration() >= d.MinRetention() && w.Duration() <= d.RefreshInterval
			if !test.ExpectSuccess(t, ok, d, fmt.Sprintf("row %d window %v", w.Row, w.Duration())) {
				break
			}
		}
	}
}

func TestPipelineError(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part4164)
	clk := &timing.Virtual{}
	bad := errors.New("bad row")
	pl := retention.NewPipeline(d, clk, func(row int) error {
		if row == 3 {
			return bad
		}
		return nil
	})

	var err error
	var row int
	for row = range d.Rows {
		err = pl.Written(row)
		if err != nil {
			break
		}
	}
	test.ExpectEquality(t, err, bad)
	test.ExpectEquality(t, row, 3+d.DelayRows)
}

func newSession(t *testing.T, name string, faults ...sim.Fault) (*session.Session, *sim.Chip) {
	t.Helper()
	d := descriptor.MustLookup(name)
	c := sim.NewChip(d, &timing.Virtual{})
	c.EnableDecay()
	for _, f := range faults {
		test.DemandSuccess(t, c.AddFault(f))
	}
	env := environment.NewEnvironment(environment.Selector{Family: d.Family}, false, nil)
	env.Quiet = true
	s := session.NewSession(env, c, c.Clock(), c)
	s.Select(d)
	return s, c
}

func TestRefresh(t *testing.T) {
	for _, name := range []string{descriptor.Part41256, descriptor.Part514256} {
		s, c := newSession(t, name)
		d := s.Part()

		var n int
		var last time.Duration
		spacing := true
		err := retention.RefreshTest(s, 10, func(strobe int, at time.Duration) {
			if strobe > 0 && at-last != d.RefreshSpacing() {
				spacing = false
			}
			last = at
			n++
		})
		test.ExpectSuccess(t, err, name)
		test.ExpectEquality(t, n, d.RefreshCycles*10, name)
		test.ExpectSuccess(t, spacing, name)
		test.ExpectEquality(t, c.Stats.CBRStrobes > n, true, name)
		test.ExpectEquality(t, c.Stats.RowOpenViolations, 0, name)
	}
}

func TestRefreshSpacing(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part41256)
	test.ExpectEquality(t, d.RefreshSpacing(), 15625*time.Nanosecond)
}

func TestRefreshCounterFault(t *testing.T) {
	s, _ := newSession(t, descriptor.Part41256, sim.RefreshCounter{Bits: 7})
	err := retention.RefreshTest(s, 10, nil)
	test.ExpectSuccess(t, errors.Is(err, result.Refresh("")), err)

	var f *result.Fault
	test.DemandSuccess(t, errors.As(err, &f))
	test.ExpectSuccess(t, f.Row%256 >= 128, f.Row)
}

func TestNoRefreshCounter(t *testing.T) {
	s, c := newSession(t, descriptor.Part4164)
	called := false
	err := retention.RefreshTest(s, 10, func(int, time.Duration) { called = true })
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, called)
	test.ExpectEquality(t, c.Stats.CBRStrobes, 0)
}
