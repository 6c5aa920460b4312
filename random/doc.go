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

// Package random is the deterministic pseudo-random fill generator used by
// the pseudo-random patterns and the refresh counter test.
//
// The generator is a small table of 4 bit values produced by a 16 bit Galois
// LFSR, and a mixing function that combines the column and row of a cell into
// an index into the table. The value of every cell of the array can be
// recomputed at any time without storing it, which is what allows the
// retention tests to verify rows long after they were written.
//
// The table is owned by the test session. Invert() flips every entry so that
// the second pseudo-random pattern drives every cell with the opposite
// polarity of the first.
package random
