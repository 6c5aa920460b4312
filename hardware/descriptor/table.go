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

package descriptor

import (
	"fmt"
	"slices"
	"time"

	"github.com/jetsetilly/dramtester/curated"
)

// UnknownPart is the error pattern returned by Lookup().
const UnknownPart = "descriptor: unknown part: %s"

// Part numbers in the table.
const (
	Part4164   = "4164"
	Part41256  = "41256"
	Part41257  = "41257"
	Part4816   = "4816"
	Part4532   = "4532"
	Part4532L  = "4532-L"
	Part4532H  = "4532-H"
	Part3732L  = "3732-L"
	Part3732H  = "3732-H"
	Part4416   = "4416"
	Part4464   = "4464"
	Part411000 = "411000"
	Part514256 = "514256"
	Part514258 = "514258"
	Part514400 = "514400"
	Part514402 = "514402"
	Part4116   = "4116"
	Part4027   = "4027"
)

const ms = time.Millisecond

var delays4164 = [DelaySlots]uint8{62, 61, 20, 20, 20, 20}
var delays41256 = [DelaySlots]uint8{125, 41, 41, 41, 41, 41}
var delays514256 = [DelaySlots]uint8{69, 68, 27, 27, 27, 27}

// halfVariant creates a reduced descriptor from the full 4164. half-good
// parts are addressed over the complete array of the full part
func halfVariant(name string, dim Dimension, good Half) Descriptor {
	return Descriptor{
		Name: name, Organisation: "32Kx1",
		Family: Narrow, Rows: 256, Columns: 256, DataWidth: 1,
		RefreshInterval: 4 * ms, DelayRows: 2,
		RetentionDelays: delays4164, WriteTime: 39,
		Reduced: true, HalfOf: Part4164, HalfDimension: dim, HalfGood: good,
	}
}

var table = []Descriptor{
	// 16-pin
	{
		Name: Part4164, Organisation: "64Kx1",
		Family: Narrow, Rows: 256, Columns: 256, DataWidth: 1,
		RefreshInterval: 4 * ms, DelayRows: 2,
		RetentionDelays: delays4164, WriteTime: 39,
	},
	{
		Name: Part41256, Organisation: "256Kx1",
		Family: Narrow, Rows: 512, Columns: 512, DataWidth: 1,
		RefreshInterval: 4 * ms, RefreshCycles: 256, DelayRows: 1,
		RetentionDelays: delays41256, WriteTime: 75,
	},
	{
		Name: Part41257, Organisation: "256Kx1-NM",
		Family: Narrow, Rows: 512, Columns: 512, DataWidth: 1,
		RefreshInterval: 4 * ms, RefreshCycles: 256, DelayRows: 1,
		RetentionDelays: delays41256, WriteTime: 75,
		NibbleMode: true,
	},
	{
		Name: Part4816, Organisation: "16Kx1",
		Family: Narrow, Rows: 128, Columns: 128, DataWidth: 1,
		RefreshInterval: 2 * ms, DelayRows: 2,
		RetentionDelays: [DelaySlots]uint8{30, 30, 7, 7, 7, 7}, WriteTime: 24,
	},
	{
		// row A7 is not decoded
		Name: Part4532, Organisation: "32Kx1",
		Family: Narrow, Rows: 128, Columns: 256, DataWidth: 1,
		RefreshInterval: 2 * ms, DelayRows: 1,
		RetentionDelays: [DelaySlots]uint8{54, 5, 5, 5, 5, 5}, WriteTime: 50,
		Unverified: true,
	},
	halfVariant(Part4532L, RowDimension, LowerHalf),
	halfVariant(Part4532H, RowDimension, UpperHalf),
	halfVariant(Part3732L, ColumnDimension, LowerHalf),
	halfVariant(Part3732H, ColumnDimension, UpperHalf),

	// 18-pin
	{
		Name: Part4416, Organisation: "16Kx4",
		Family: Medium, Rows: 256, Columns: 64, DataWidth: 4,
		RefreshInterval: 4 * ms, DelayRows: 4,
		RetentionDelays: [DelaySlots]uint8{30, 30, 30, 30, 11, 11}, WriteTime: 21,
	},
	{
		Name: Part4464, Organisation: "64Kx4",
		Family: Medium, Rows: 256, Columns: 256, DataWidth: 4,
		RefreshInterval: 4 * ms, DelayRows: 1,
		RetentionDelays: [DelaySlots]uint8{122, 48, 48, 48, 48, 48}, WriteTime: 77,
	},
	{
		Name: Part411000, Organisation: "1Mx1",
		Family: Medium, Protocol: Alternate, Rows: 1024, Columns: 1024, DataWidth: 1,
		RefreshInterval: 8 * ms, DelayRows: 1,
		RetentionDelays: [DelaySlots]uint8{244, 135, 135, 135, 135, 135}, WriteTime: 255,
	},

	// 20-pin
	{
		Name: Part514256, Organisation: "256Kx4",
		Family: Wide, Rows: 512, Columns: 512, DataWidth: 4,
		RefreshInterval: 8 * ms, RefreshCycles: 512, DelayRows: 2,
		RetentionDelays: delays514256, WriteTime: 31,
	},
	{
		Name: Part514258, Organisation: "256Kx4-SC",
		Family: Wide, Rows: 512, Columns: 512, DataWidth: 4,
		RefreshInterval: 8 * ms, RefreshCycles: 512, DelayRows: 2,
		RetentionDelays: delays514256, WriteTime: 31,
		StaticColumn: true,
	},
	{
		Name: Part514400, Organisation: "1Mx4",
		Family: Wide, Rows: 1024, Columns: 1024, DataWidth: 4,
		RefreshInterval: 16 * ms, RefreshCycles: 1024, DelayRows: 5,
		RetentionDelays: [DelaySlots]uint8{98, 98, 98, 98, 98, 16}, WriteTime: 62,
	},
	{
		Name: Part514402, Organisation: "1Mx4-SC",
		Family: Wide, Rows: 1024, Columns: 1024, DataWidth: 4,
		RefreshInterval: 16 * ms, RefreshCycles: 1024, DelayRows: 5,
		RetentionDelays: [DelaySlots]uint8{99, 98, 98, 98, 98, 14}, WriteTime: 62,
		StaticColumn: true,
	},
	{
		Name: Part4116, Organisation: "16Kx1",
		Family: Wide, Protocol: Adapter, Rows: 128, Columns: 128, DataWidth: 1,
		RefreshInterval: 2 * ms, DelayRows: 2,
		RetentionDelays: [DelaySlots]uint8{30, 30, 6, 6, 6, 6}, WriteTime: 24,
	},
	{
		Name: Part4027, Organisation: "4Kx1",
		Family: Wide, Protocol: Adapter, Rows: 64, Columns: 64, DataWidth: 1,
		RefreshInterval: 2 * ms, DelayRows: 2,
		RetentionDelays: [DelaySlots]uint8{40, 40, 27, 27, 27, 27}, WriteTime: 12,
	},
}

// index of table entries by part number
var index map[string]*Descriptor

func init() {
	index = make(map[string]*Descriptor, len(table))
	for i := range table {
		d := &table[i]
		if err := validate(d); err != nil {
			panic(err)
		}
		if _, ok := index[d.Name]; ok {
			panic(fmt.Sprintf("descriptor: duplicate part %s", d.Name))
		}
		index[d.Name] = d
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func validate(d *Descriptor) error {
	if !isPowerOfTwo(d.Rows) || !isPowerOfTwo(d.Columns) {
		return fmt.Errorf("descriptor: %s: geometry %dx%d is not a power of two", d.Name, d.Rows, d.Columns)
	}
	if d.DataWidth != 1 && d.DataWidth != 4 {
		return fmt.Errorf("descriptor: %s: unsupported data width %d", d.Name, d.DataWidth)
	}
	if d.DelayRows < 0 || d.DelayRows >= DelaySlots {
		return fmt.Errorf("descriptor: %s: delay rows %d out of range", d.Name, d.DelayRows)
	}
	if d.RefreshCycles != 0 && !isPowerOfTwo(d.RefreshCycles) {
		return fmt.Errorf("descriptor: %s: refresh cycles %d is not a power of two", d.Name, d.RefreshCycles)
	}
	if d.Reduced && d.HalfGood == NoHalf {
		return fmt.Errorf("descriptor: %s: reduced part has no good half", d.Name)
	}
	return nil
}

// Lookup returns the descriptor for the part number.
func Lookup(name string) (*Descriptor, error) {
	if d, ok := index[name]; ok {
		return d, nil
	}
	return nil, curated.Errorf(UnknownPart, name)
}

// MustLookup is like Lookup but panics if the part is not in the table. For
// use with the Part constants.
func MustLookup(name string) *Descriptor {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// All returns every descriptor in table order.
func All() []*Descriptor {
	l := make([]*Descriptor, len(table))
	for i := range table {
		l[i] = &table[i]
	}
	return l
}

// FamilyMembers returns the descriptors that can be sensed in the family,
// ordered smallest first.
func FamilyMembers(f Family) []*Descriptor {
	var l []*Descriptor
	for i := range table {
		if table[i].Family == f && !table[i].Reduced {
			l = append(l, &table[i])
		}
	}
	slices.SortStableFunc(l, func(a, b *Descriptor) int {
		return a.Cells() - b.Cells()
	})
	return l
}

// HalfVariants returns the reduced variants of a full part. The result is
// empty if the part has no half-functional variants.
func HalfVariants(d *Descriptor) []*Descriptor {
	var l []*Descriptor
	for i := range table {
		if table[i].Reduced && table[i].HalfOf == d.Name {
			l = append(l, &table[i])
		}
	}
	return l
}

// HalfVariant returns the reduced variant of the full part that uses the
// good half of the dimension. Returns nil if no such variant exists.
func HalfVariant(d *Descriptor, dim Dimension, good Half) *Descriptor {
	for _, v := range HalfVariants(d) {
		if v.HalfDimension == dim && v.HalfGood == good {
			return v
		}
	}
	return nil
}
