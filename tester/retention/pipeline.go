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

// Package retention checks that the part holds its contents for the time it
// is specified to.
//
// The Pipeline delays the verification of each row written with a
// pseudo-random pattern until a number of further rows have been written.
// The delays come from the descriptor of the part so that every row is left
// unrefreshed for at least the minimum retention time and no longer than the
// refresh interval.
//
// The refresh test checks the internal refresh counter of parts that support
// CAS-before-RAS refresh. Reference data is written to every row and is then
// kept alive for several refresh intervals by nothing other than
// CAS-before-RAS strobes.
package retention

import (
	"time"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
)

// Window is the time a row was left between being written and being
// verified.
type Window struct {
	Row      int
	Written  time.Duration
	Verified time.Duration
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.Verified - w.Written
}

// Pipeline schedules the verification of rows written with a pseudo-random
// pattern.
type Pipeline struct {
	desc   *descriptor.Descriptor
	clk    timing.Clock
	verify func(row int) error

	written  []time.Duration
	returned time.Duration
	started  bool

	// the retention window of every verified row. only recorded if Trace is
	// true
	Trace   bool
	Windows []Window
}

// NewPipeline is the preferred method of initialisation for the Pipeline
// type. The verify function is called for each row once it has been left for
// the retention time.
func NewPipeline(desc *descriptor.Descriptor, clk timing.Clock, verify func(row int) error) *Pipeline {
	return &Pipeline{
		desc:    desc,
		clk:     clk,
		verify:  verify,
		written: make([]time.Duration, desc.Rows),
	}
}

func (pl *Pipeline) check(row int) error {
	if pl.Trace {
		pl.Windows = append(pl.Windows, Window{
			Row:      row,
			Written:  pl.written[row],
			Verified: pl.clk.Now(),
		})
	}
	return pl.verify(row)
}

// Written must be called after each row has been written, in row order. Rows
// that have been left for long enough are verified and the pipeline waits
// for the scheduled delay before returning.
func (pl *Pipeline) Written(row int) error {
	now := pl.clk.Now()
	pl.written[row] = now

	// the time taken to write the row. replayed during the catch-up
	var writing time.Duration
	if pl.started {
		writing = min(now-pl.returned, pl.desc.WriteDuration())
	}
	pl.started = true

	defer func() {
		pl.returned = pl.clk.Now()
	}()

	d := pl.desc.DelayRows
	steady := pl.desc.SteadyDelay()

	// the final row. verify every row still in the pipeline, leaving each
	// one as long as it would have been left in the steady state
	if row == pl.desc.Rows-1 {
		for x := d; x >= 0; x-- {
			if err := pl.check(row - x); err != nil {
				return err
			}
			if x > 0 {
				pl.clk.Delay(writing + steady)
			}
		}
		return nil
	}

	if row >= d {
		if err := pl.check(row - d); err != nil {
			return err
		}
		pl.clk.Delay(steady)
		return nil
	}

	pl.clk.Delay(pl.desc.Delay(row))
	return nil
}
