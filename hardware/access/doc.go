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

// Package access is the single generic device engine for every part in the
// descriptor table. A Device drives a bus.Bus with the strobe sequences of
// single cell accesses, page mode row bursts, nibble mode and static column
// accesses, and the two refresh methods.
//
// Row bursts are timing critical and are run inside a critical section of the
// timing.Critical given to NewDevice(). A row is never held open for longer
// than half the maximum row open time of the part. Longer bursts close and
// re-strike the row part way through.
//
// The part being accessed is chosen with Select(), which also configures the
// bus for the pinout of the part. During sensing the largest member of a
// family is selected so that every address line of the family is driven.
package access
