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

// Package timing is the delay abstraction used by every stage of a test
// session. Delays are busy waits: they never yield to other work and they
// are measured against a Clock rather than calibrated loops.
//
// The Virtual clock is advanced explicitly and is used by the simulated chip
// and by the bench board, where the timeline is that of the board's firmware.
// The Busy clock spins on the host's monotonic clock.
//
// Timing critical bursts are bracketed by the Critical interface. On the
// bench board this suspends the board's interrupt sources for the duration
// of the burst.
package timing
