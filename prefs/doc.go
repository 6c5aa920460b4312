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

// Package prefs holds typed preference values and stores them on disk.
//
// Preference values are declared as fields of a struct using the Bool, Int,
// String and Duration types, and registered with a Disk under a key:
//
//	dsk, err := prefs.NewDisk(pth)
//	err = dsk.Add("bench.port", &p.Port)
//	err = dsk.Load(true)
//
// Values are stored one per line in the form "key :: value". Keys present in
// the file but not added to the Disk are preserved when the file is saved, so
// more than one Disk can share the same file.
//
// Values can also be given on the command line as a "key::value; key::value"
// string with PushCommandLineStack(). Command line values take precedence over
// values in the file the next time Load() is called and are never saved.
package prefs
