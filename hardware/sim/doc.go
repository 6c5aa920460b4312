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

// Package sim is a simulated memory part for the test socket. A Chip
// implements bus.Bus, timing.Critical and bus.GroundShort and is built from
// the descriptor of the part it simulates.
//
// The simulation works at the level of strobes and latched addresses. Address
// bits beyond the geometry of the part are not decoded, so a small part
// aliases when addressed as a larger one, which is what the sensing stage
// relies on. Page mode, static column, nibble mode and CAS-before-RAS refresh
// with an internal row counter are modelled.
//
// Every bus operation advances the Virtual clock of the chip by the operation
// cost. Delays requested by the tester through the same clock advance it
// further. Cells can optionally decay if their row is not refreshed within a
// retention time.
//
// Faults are added with AddFault() and are one of the Stuck, Leaky,
// AddressLine, DecoderGlitch, RefreshCounter or GroundShort types. The
// script sub-package creates chips and faults from Lua scripts.
//
// A chip created with NewEmpty() simulates an empty socket.
package sim
