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

package decoder_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/dramtester/environment"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/sim"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/test"
	"github.com/jetsetilly/dramtester/tester/decoder"
	"github.com/jetsetilly/dramtester/tester/result"
	"github.com/jetsetilly/dramtester/tester/session"
)

func newSession(t *testing.T, name string, faults ...sim.Fault) *session.Session {
	t.Helper()
	d := descriptor.MustLookup(name)
	c := sim.NewChip(d, &timing.Virtual{})
	for _, f := range faults {
		test.DemandSuccess(t, c.AddFault(f))
	}
	env := environment.NewEnvironment(environment.Selector{Family: d.Family}, false, nil)
	env.Quiet = true
	s := session.NewSession(env, c, c.Clock(), c)
	s.Select(d)
	return s
}

func TestGood(t *testing.T) {
	for _, d := range descriptor.All() {
		s := newSession(t, d.Name)
		probes, err := decoder.Verify(s)
		test.ExpectSuccess(t, err, d.Name)
		test.ExpectEquality(t, len(probes), d.RowBits()+d.ColumnBits(), d.Name)
		for _, p := range probes {
			test.ExpectSuccess(t, p.Pass, d.Name, p)
		}
		test.ExpectEquality(t, s.HalfGood.Count, 0, d.Name)
	}
}

func TestAddressLine(t *testing.T) {
	s := newSession(t, descriptor.Part4164, sim.AddressLine{Dimension: descriptor.RowDimension, Bit: 3})
	probes, err := decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(3, "")), err)
	test.ExpectEquality(t, len(probes), 4)
	test.ExpectFailure(t, probes[3].Pass)

	s = newSession(t, descriptor.Part4164, sim.AddressLine{Dimension: descriptor.ColumnDimension, Bit: 5, Level: 1})
	_, err = decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(decoder.ColumnCode+5, "")), err)

	s = newSession(t, descriptor.Part4464, sim.AddressLine{Dimension: descriptor.RowDimension, Bit: 0, Level: 1})
	_, err = decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(0, "")), err)
}

func TestTransition(t *testing.T) {
	s := newSession(t, descriptor.Part4164, sim.DecoderGlitch{Dimension: descriptor.RowDimension, From: 5, To: 4})
	_, err := decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(decoder.RowTransitionCode, "")), err)

	var f *result.Fault
	test.DemandSuccess(t, errors.As(err, &f))
	test.ExpectEquality(t, f.Row, 5)

	s = newSession(t, descriptor.Part4164, sim.DecoderGlitch{Dimension: descriptor.ColumnDimension, From: 6, To: 7})
	_, err = decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(decoder.ColumnTransitionCode, "")), err)
}

func TestDefectiveHalf(t *testing.T) {
	// a defective half still decodes addresses
	s := newSession(t, descriptor.Part4164, sim.Leaky{Region: sim.Rows(128, 255), Retention: 50 * time.Microsecond})
	_, err := decoder.Verify(s)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s.HalfGood.Count, 0)
}

func TestStuckHalf(t *testing.T) {
	// the column A7 check and the column transitions above column 127 use
	// cells of the defective half. the cells are recorded and the decoder
	// passes
	s := newSession(t, descriptor.Part4164, sim.Stuck{Region: sim.Columns(128, 255)})
	probes, err := decoder.Verify(s)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(probes), 16)
	test.ExpectFailure(t, probes[15].Pass)
	test.ExpectEquality(t, s.HalfGood.Confined(descriptor.ColumnDimension), descriptor.UpperHalf)
	test.ExpectEquality(t, s.HalfGood.Confined(descriptor.RowDimension), descriptor.UpperHalf)
	test.ExpectSuccess(t, s.Tolerated != nil)

	s = newSession(t, descriptor.Part4164, sim.Stuck{Region: sim.Rows(128, 255)})
	probes, err = decoder.Verify(s)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, probes[7].Pass)
	test.ExpectEquality(t, s.HalfGood.Confined(descriptor.RowDimension), descriptor.UpperHalf)
	test.ExpectEquality(t, s.HalfGood.Confined(descriptor.ColumnDimension), descriptor.NoHalf)
	test.ExpectFailure(t, s.HalfGood.Fatal())

	// a part without variants fails on the first cell
	s = newSession(t, descriptor.Part4464, sim.Stuck{Region: sim.Columns(128, 255)})
	_, err = decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(decoder.ColumnCode+7, "")), err)
	test.ExpectEquality(t, s.HalfGood.Count, 0)
}

func TestStuckCellAliasing(t *testing.T) {
	// an address line of a part with variants is still fatal. the cell
	// holds its value when accessed on its own
	s := newSession(t, descriptor.Part4164, sim.AddressLine{Dimension: descriptor.ColumnDimension, Bit: 7})
	_, err := decoder.Verify(s)
	test.ExpectSuccess(t, errors.Is(err, result.AddressLine(decoder.ColumnCode+7, "")), err)
	test.ExpectEquality(t, s.HalfGood.Count, 0)
}
