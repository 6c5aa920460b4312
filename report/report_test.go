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

package report_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/report"
	"github.com/jetsetilly/dramtester/test"
	"github.com/jetsetilly/dramtester/tester/result"
)

func TestPassCodes(t *testing.T) {
	for _, tc := range []struct {
		part string
		code string
	}{
		{descriptor.Part4164, "green x1, orange x1"},
		{descriptor.Part41256, "green x1, orange x2"},
		{descriptor.Part41257, "green x1, orange x3"},
		{descriptor.Part4416, "green x2, orange x1"},
		{descriptor.Part514402, "green x3, orange x4"},
		{descriptor.Part4027, "green x2, orange x4"},
		{descriptor.Part3732L, "green x1, orange x5"},
		{descriptor.Part4532, "green x1, orange x5"},
	} {
		o := result.Passed(descriptor.MustLookup(tc.part))
		test.ExpectEquality(t, report.ForOutcome(o).String(), tc.code, tc.part)
	}
}

func TestFailureCodes(t *testing.T) {
	part := descriptor.MustLookup(descriptor.Part4164)
	for _, tc := range []struct {
		fault *result.Fault
		code  string
	}{
		{result.NoDevice(""), "red continuous (1s)"},
		{result.AddressLine(3, ""), "red x1, orange x3"},
		{result.AddressLine(32, ""), "red x1"},
		{result.Pattern(0, ""), "red x2, orange x1"},
		{result.Pattern(3, ""), "red x2, orange x4"},
		{result.Pattern(5, ""), "red x2, orange x6"},
		{result.Retention(4, ""), "red x2, orange x7"},
		{result.Refresh(""), "red x2, orange x8"},
		{result.GroundShort(9), "red x3, orange x9"},
		{result.GroundShort(40), "red x3"},
	} {
		o := result.Failed(part, tc.fault)
		test.ExpectEquality(t, report.ForOutcome(o).String(), tc.code, tc.fault)
	}
	test.ExpectEquality(t, report.ConfigError().String(), "red continuous (200ms)")
}

func TestPlay(t *testing.T) {
	var clk timing.Virtual
	var changes []report.Colour
	seq := report.ForOutcome(result.Passed(descriptor.MustLookup(descriptor.Part41256)))
	seq.Play(&clk, func(c report.Colour) {
		changes = append(changes, c)
	})

	test.ExpectEquality(t, clk.Now(), seq.Duration())
	test.ExpectEquality(t, clk.Now(), 3*(report.BlinkOn+report.BlinkOff)+report.InterBlink+report.PatternPause)
	test.DemandEquality(t, len(changes), len(seq)+1)
	test.ExpectEquality(t, changes[0], report.Green)
	test.ExpectEquality(t, changes[3], report.Orange)
	test.ExpectEquality(t, changes[len(changes)-1], report.Off)
}

func TestOutcome(t *testing.T) {
	w := &strings.Builder{}
	r := report.NewReport(w)
	test.ExpectFailure(t, r.Colour)

	r.Outcome(result.Passed(descriptor.MustLookup(descriptor.Part4164)))
	test.ExpectEquality(t, w.String(), "PASS 4164 64Kx1\n  led: green x1, orange x1\n")

	w.Reset()
	r.Outcome(result.Passed(descriptor.MustLookup(descriptor.Part3732L)))
	test.ExpectSuccess(t, strings.Contains(w.String(), "good lower half of columns"))

	w.Reset()
	f := result.Pattern(1, "expected 0x1 got 0x0").At(10, 200)
	r.Outcome(result.Failed(descriptor.MustLookup(descriptor.Part4464), f))
	test.ExpectEquality(t, w.String(), "FAIL pattern fault\n  part: 4464 64Kx4\n  "+f.Error()+"\n  led: red x2, orange x2\n")

	w.Reset()
	r.ConfigError(errors.New("two switches"))
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "CONFIG two switches\n"))

	w.Reset()
	r.Colour = true
	r.Outcome(result.Failed(nil, result.NoDevice("16-pin socket")))
	test.ExpectSuccess(t, strings.Contains(w.String(), "\033["))
}

func TestParts(t *testing.T) {
	w := &strings.Builder{}
	report.NewReport(w).Parts(descriptor.All())
	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	test.ExpectEquality(t, len(lines), len(descriptor.All())+1)
	test.ExpectSuccess(t, strings.Contains(w.String(), "static column"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "(unverified)"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "half of 4164"))
	test.ExpectSuccess(t, strings.Contains(w.String(), time.Duration(4*time.Millisecond).String()))
}
