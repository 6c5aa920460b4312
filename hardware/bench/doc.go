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

// Package bench drives a part through the pin driver board attached to a
// serial line. The board executes a stream of byte coded operations. Each
// operation is a command byte followed by a fixed number of argument bytes:
//
//	'V'              reply with the firmware version, a semantic version
//	                 string terminated by a newline
//	'M' port ddr     set the data direction register of the port
//	'P' port value   write the output register of the port
//	'D' n0 n1 n2 n3  busy wait for n nanoseconds, little endian, rounded up
//	                 to the resolution of the board timer
//	'R'              reply with the input registers of ports B, C and D
//	'C'              disable interrupts on the board
//	'c'              restore interrupts on the board
//	'G'              make every port bit an input with the pullup enabled and
//	                 reply with the input registers of ports B, C and D. the
//	                 previous port state is restored afterwards
//
// Operations are buffered on the host and sent to the board when a reply is
// needed and at the end of a critical section. Reads taken with SampleData()
// in a critical section do not wait for the reply. The replies are read in
// one go once the critical section has been sent. The board keeps the timing
// of the stream with its own timer so that the bursts in a critical section
// are not stretched by the serial line.
//
// The Board type implements bus.Bus, timing.Clock and timing.Critical. Time
// is the estimated time on the board, accumulated from the operations sent
// to it.
package bench
