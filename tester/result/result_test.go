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

package result_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/test"
	"github.com/jetsetilly/dramtester/tester/result"
)

func TestFault(t *testing.T) {
	f := result.Pattern(3, "expected 0x1 got 0x0").At(10, 200)
	test.ExpectEquality(t, f.Error(), "pattern fault (pattern 3): expected 0x1 got 0x0 at row 10 col 200")

	var err error = fmt.Errorf("stage: %w", f)
	test.ExpectSuccess(t, errors.Is(err, result.Pattern(3, "")))
	test.ExpectFailure(t, errors.Is(err, result.Pattern(4, "")))
	test.ExpectSuccess(t, errors.Is(err, result.Pattern(result.AnyCode, "")))
	test.ExpectFailure(t, errors.Is(err, result.Retention(3, "")))

	var g *result.Fault
	test.DemandSuccess(t, errors.As(err, &g))
	test.ExpectEquality(t, g.Row, 10)
	test.ExpectEquality(t, g.Col, 200)

	test.ExpectEquality(t, result.GroundShort(7).Error(), "ground short (pin 7)")
	test.ExpectEquality(t, result.NoDevice("").Error(), "no device detected")
}

func TestOutcome(t *testing.T) {
	d := descriptor.MustLookup(descriptor.Part4164)
	test.ExpectEquality(t, result.Passed(d).String(), "PASS 4164 64Kx1")
	test.ExpectEquality(t, result.Failed(d, result.AddressLine(3, "")).String(),
		"FAIL 4164: address line fault (code 3)")
	test.ExpectEquality(t, result.Failed(nil, result.NoDevice("")).String(),
		"FAIL no device detected")
}
