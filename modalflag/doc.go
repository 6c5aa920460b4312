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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different
// flags for each mode.
//
// The command line of the tester has one mode per way of driving a device:
//
//	dramtester TEST -port /dev/ttyUSB0 -family narrow
//	dramtester SIM -chip 4164 -faults dead.lua
//	dramtester TYPES
//
// Arguments are given to NewArgs() and then parsed one layer at a time with
// Parse(). Sub-modes are added with AddSubModes() before the call to Parse();
// the first sub-mode is the default. After parsing, Mode() returns the mode
// that was selected and NewMode() prepares the remaining arguments for the
// flags of that mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("TEST", "SIM", "TYPES")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "SIM":
//		md.NewMode()
//		chip := md.AddString("chip", "4164", "simulated part")
//		...
//	}
package modalflag
