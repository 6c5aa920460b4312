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

// Package paths contains functions to prepare paths to tester resources: the
// preferences file, fault scripts and diagnostic output.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following will return the
// path to the preferences file.
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If the base resource path, ".dramtester", is present in the program's
// current directory then that is the base path that will used. Otherwise the
// user's config directory is used, as returned by os.UserConfigDir(). On a
// Linux system the path returned in the example above will be:
//
//	/home/user/.config/dramtester/preferences
package paths
