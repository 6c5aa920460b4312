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

// Package statsview serves runtime statistics of the tester over HTTP. It is
// only available when built with the statsview build tag. A session on the
// largest parts runs for several minutes and the statistics show the
// allocation behaviour of the pattern and retention stages while it does.
//
// Graphical statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// Standard Go pprof statistics are at:
//
//	localhost:12600/debug/pprof/
package statsview
