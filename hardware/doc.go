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

// Package hardware is the base package for the instrument side of the tester.
// It and its sub-packages contain everything required to drive a part in the
// socket, either on the bench board or as a simulated chip.
//
// The descriptor package is the table of supported parts. The bus package
// defines the signals of a socket and the access package builds the read,
// write and refresh cycles of a part from those signals. The timing package
// provides the clocks that the cycles are measured against.
//
// The bench package drives a real socket over the serial line, using the pin
// assignments of the pinmap package. The sim package provides a chip that
// implements the same bus, with the faults needed to exercise the tester.
//
// Preferences for the hardware are found in the preferences package.
package hardware
