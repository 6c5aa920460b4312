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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are used for infrastructure problems: a serial board that
// will not answer, a preferences file that cannot be parsed, a fault script
// that does not compile, an invalid mode selection. Test failures found in
// the device under test are not curated errors; see the tester/result package.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function checks whether an error was created with a specific
// pattern. The pattern should be stored as a const string in the package that
// raises the error:
//
//	const NoResponse = "bench: no response: %v"
//
//	if curated.Is(err, bench.NoResponse) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. The IsAny() function answers whether the error was created
// by curated.Errorf() at all.
//
// The Error() function implementation normalises the error chain. The chain
// does not contain duplicate adjacent parts, so that:
//
//	curated.Errorf("bench: %v", curated.Errorf("bench: no response"))
//
// prints as "bench: no response" and not "bench: bench: no response". Chains
// are composed of parts separated by the sub-string ": ".
//
// Curated errors support errors.Unwrap(), errors.Is() and errors.As() through
// the Unwrap() function. The first error value given to Errorf() is the
// wrapped error.
package curated
