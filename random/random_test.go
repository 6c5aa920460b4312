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

package random_test

import (
	"testing"

	"github.com/jetsetilly/dramtester/random"
	"github.com/jetsetilly/dramtester/test"
)

func TestTable(t *testing.T) {
	tbl := random.NewTable()

	// known values of the LFSR
	expected := []uint8{6, 10, 14, 7, 6, 5, 12, 14, 15, 5, 1, 3, 2, 1, 14, 12}
	for i, v := range expected {
		test.ExpectEquality(t, tbl[i], v, i)
	}

	// every entry is a nibble and every nibble value is used
	var seen [16]bool
	for i := range tbl {
		test.ExpectEquality(t, tbl[i]&0xf0, uint8(0), i)
		seen[tbl[i]&0x0f] = true
	}
	for v, ok := range seen {
		test.ExpectSuccess(t, ok, v)
	}
}

func TestInvert(t *testing.T) {
	tbl := random.NewTable()
	inv := random.NewTable()
	inv.Invert()

	for i := range tbl {
		test.ExpectEquality(t, inv[i], tbl[i]^0x0f, i)
	}

	// inverting twice restores the table
	inv.Invert()
	test.ExpectEquality(t, *inv, *tbl)

	inv.Invert()
	inv.Reset()
	test.ExpectEquality(t, *inv, *tbl)
}

func TestMix(t *testing.T) {
	test.ExpectEquality(t, random.Mix(0, 0), uint8(0))
	test.ExpectEquality(t, random.Mix(200, 10), uint8(194))
	test.ExpectEquality(t, random.Mix(513, 1023), uint8(57))

	tbl := random.NewTable()
	test.ExpectEquality(t, tbl.At(200, 10), uint8(10))
	test.ExpectEquality(t, tbl.Cell(200, 10, 4), uint8(10))
	test.ExpectEquality(t, tbl.Cell(200, 10, 1), uint8(0))
}

func TestReference(t *testing.T) {
	tbl := random.NewTable()
	test.ExpectEquality(t, tbl.Reference(0), uint8(6|10<<4))
	test.ExpectEquality(t, tbl.Reference(255), tbl[255]|tbl[0]<<4)
}

func TestBalance(t *testing.T) {
	tbl := random.NewTable()

	var bits int
	for _, v := range tbl {
		for ; v != 0; v &= v - 1 {
			bits++
		}
	}
	test.ExpectApproximate(t, bits, random.TableSize*2, 0.01)

	// single bit parts see as many ones as zeros
	var ones int
	for row := range uint16(256) {
		for col := range uint16(256) {
			ones += int(tbl.Cell(col, row, 1))
		}
	}
	test.ExpectApproximate(t, ones, 256*256/2, 0.05)
}
