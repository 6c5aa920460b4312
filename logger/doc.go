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

// Package logger is the central log for the tester. Every stage of a test
// session (sensing, decoder verification, pattern passes, retention checks)
// records what it did with a tag naming the stage:
//
//	logger.Logf(env, "sense", "row A%d aliases", bit)
//
// Entries that repeat the previous entry exactly are collapsed into a single
// entry with a repeat count. The log is bounded and older entries are dropped.
//
// The first argument to Log() and Logf() is a Permission. The environment of
// a session implements this interface so that logging can be silenced for
// quiet runs. The Allow value can be used when an entry should always be made.
package logger
