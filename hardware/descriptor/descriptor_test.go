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

package descriptor_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/test"
)

func TestGeometry(t *testing.T) {
	for _, d := range descriptor.All() {
		test.ExpectEquality(t, d.Rows&(d.Rows-1), 0, d.Name)
		test.ExpectEquality(t, d.Columns&(d.Columns-1), 0, d.Name)
		test.ExpectEquality(t, 1<<d.RowBits(), d.Rows, d.Name)
		test.ExpectEquality(t, 1<<d.ColumnBits(), d.Columns, d.Name)
		test.ExpectEquality(t, d.Cells(), d.Rows*d.Columns, d.Name)
	}

	d := descriptor.MustLookup(descriptor.Part4416)
	test.ExpectEquality(t, d.RowBits(), 8)
	test.ExpectEquality(t, d.ColumnBits(), 6)
	test.ExpectEquality(t, d.DataMask(), uint8(0x0f))

	d = descriptor.MustLookup(descriptor.Part411000)
	test.ExpectEquality(t, d.AddressBits(descriptor.RowDimension), 10)
	test.ExpectEquality(t, d.DataMask(), uint8(0x01))
	test.ExpectEquality(t, d.Protocol, descriptor.Alternate)
}

func TestLookup(t *testing.T) {
	d, err := descriptor.Lookup(descriptor.Part4164)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.String(), "4164 64Kx1")

	_, err = descriptor.Lookup("2114")
	test.ExpectSuccess(t, curated.Is(err, descriptor.UnknownPart))
}

func TestRefreshSpacing(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part41256)
	test.ExpectSuccess(t, d.CBR())
	test.ExpectEquality(t, d.RefreshSpacing(), 15625*time.Nanosecond)

	// the relation is constant across the refresh capable parts
	for _, d := range descriptor.All() {
		if d.CBR() {
			test.ExpectEquality(t, d.RefreshSpacing(), 15625*time.Nanosecond, d.Name)
		}
	}

	d = descriptor.MustLookup(descriptor.Part4164)
	test.ExpectFailure(t, d.CBR())
	test.ExpectEquality(t, d.RefreshSpacing(), time.Duration(0))
}

func TestDelays(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part4164)
	test.ExpectEquality(t, d.Delay(0), 62*descriptor.DelayUnit)
	test.ExpectEquality(t, d.SteadyDelay(), 20*descriptor.DelayUnit)
	test.ExpectEquality(t, d.Delay(10), 20*descriptor.DelayUnit)
	test.ExpectEquality(t, d.WriteDuration(), 39*descriptor.DelayUnit)
	test.ExpectEquality(t, d.MinRetention(), 800*time.Microsecond)

	// the steady state delay must leave room for the pipeline inside the
	// refresh interval
	for _, d := range descriptor.All() {
		test.ExpectSuccess(t, d.MinRetention() < d.RefreshInterval, d.Name)
	}
}

func TestHalves(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part4164)
	test.ExpectEquality(t, d.Half(descriptor.RowDimension, 127), descriptor.LowerHalf)
	test.ExpectEquality(t, d.Half(descriptor.RowDimension, 128), descriptor.UpperHalf)
	test.ExpectEquality(t, d.Half(descriptor.ColumnDimension, 200), descriptor.UpperHalf)

	test.ExpectEquality(t, len(descriptor.HalfVariants(d)), 4)

	v := descriptor.HalfVariant(d, descriptor.ColumnDimension, descriptor.LowerHalf)
	test.DemandInequality(t, v, nil)
	test.ExpectEquality(t, v.Name, descriptor.Part3732L)
	test.ExpectSuccess(t, v.Reduced)

	v = descriptor.HalfVariant(d, descriptor.RowDimension, descriptor.UpperHalf)
	test.DemandInequality(t, v, nil)
	test.ExpectEquality(t, v.Name, descriptor.Part4532H)

	// parts without half variants
	d = descriptor.MustLookup(descriptor.Part41256)
	test.ExpectEquality(t, len(descriptor.HalfVariants(d)), 0)
	test.ExpectEquality(t, descriptor.HalfVariant(d, descriptor.RowDimension, descriptor.LowerHalf), nil)
}

func TestFamilyMembers(t *testing.T) {
	n := descriptor.FamilyMembers(descriptor.Narrow)
	test.DemandEquality(t, len(n), 5)
	test.ExpectEquality(t, n[0].Name, descriptor.Part4816)

	for _, d := range n {
		test.ExpectFailure(t, d.Reduced, d.Name)
	}

	w := descriptor.FamilyMembers(descriptor.Wide)
	test.ExpectEquality(t, w[0].Name, descriptor.Part4027)
	test.ExpectEquality(t, w[len(w)-1].Cells(), 1024*1024)
}

func TestUnverified(t *testing.T) {
	var unverified []string
	for _, d := range descriptor.All() {
		if d.Unverified {
			unverified = append(unverified, d.Name)
		}
	}
	test.DemandEquality(t, len(unverified), 1)
	test.ExpectEquality(t, unverified[0], descriptor.Part4532)
}
