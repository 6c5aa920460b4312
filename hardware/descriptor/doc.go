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

// Package descriptor is the table of memory parts the tester can identify.
// Each Descriptor is the complete protocol description of one part: its
// family (socket pin count), geometry, data width, refresh requirements, the
// retention delay schedule used by the pattern tests and the optional access
// modes (static column, nibble mode) it supports.
//
// Descriptors are immutable. Address bit counts are derived from the row and
// column counts with the RowBits() and ColumnBits() functions and never
// stored. The table is validated when the package is initialised and the
// program will panic if an entry is malformed.
//
// Some full size parts can be sold as half-functional variants. A 4164 with
// failures confined to one column half is a 3732 and with failures confined
// to one row half is a 4532. These variants are descriptors in their own right
// with the Reduced field set. They are never chosen by sensing and are only
// reached through HalfVariant().
package descriptor
