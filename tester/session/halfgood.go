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

package session

import (
	"fmt"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
)

// halves records failures in the lower and upper half of one dimension.
type halves struct {
	Lower bool
	Upper bool
}

func (h *halves) record(half descriptor.Half) {
	switch half {
	case descriptor.LowerHalf:
		h.Lower = true
	case descriptor.UpperHalf:
		h.Upper = true
	}
}

// HalfGood accumulates the halves of the cell array in which failures have
// been seen. The row and column dimensions are recorded independently.
type HalfGood struct {
	Row    halves
	Column halves

	// number of failures recorded
	Count int
}

func (hg *HalfGood) String() string {
	return fmt.Sprintf("rows: %s, columns: %s", hg.Row, hg.Column)
}

func (h halves) String() string {
	switch {
	case h.Lower && h.Upper:
		return "both halves"
	case h.Lower:
		return "lower half"
	case h.Upper:
		return "upper half"
	}
	return "no failures"
}

// Reset the accumulator.
func (hg *HalfGood) Reset() {
	*hg = HalfGood{}
}

// Record a failure of the cell.
func (hg *HalfGood) Record(desc *descriptor.Descriptor, row int, col int) {
	hg.Row.record(desc.Half(descriptor.RowDimension, row))
	hg.Column.record(desc.Half(descriptor.ColumnDimension, col))
	hg.Count++
}

// Fatal returns true if failures have been seen in both halves of both
// dimensions. No half-functional variant can be the part in that case.
func (hg *HalfGood) Fatal() bool {
	return hg.Row.Lower && hg.Row.Upper && hg.Column.Lower && hg.Column.Upper
}

// Confined returns the failing half of the dimension if every failure has
// been in that half. Returns NoHalf if there have been no failures or if
// failures have been seen in both halves.
func (hg *HalfGood) Confined(dim descriptor.Dimension) descriptor.Half {
	h := hg.Row
	if dim == descriptor.ColumnDimension {
		h = hg.Column
	}
	switch {
	case h.Lower && !h.Upper:
		return descriptor.LowerHalf
	case h.Upper && !h.Lower:
		return descriptor.UpperHalf
	}
	return descriptor.NoHalf
}
