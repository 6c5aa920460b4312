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

package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/sim"
	"github.com/jetsetilly/dramtester/hardware/sim/script"
	"github.com/jetsetilly/dramtester/hardware/timing"
	"github.com/jetsetilly/dramtester/test"
)

func TestChip(t *testing.T) {
	c, err := script.Load(`chip "41256"`, &timing.Virtual{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Descriptor().Name, descriptor.Part41256)
	test.ExpectEquality(t, len(c.Faults()), 0)

	c, err = script.Load(`chip()`, &timing.Virtual{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Descriptor(), nil)
}

func TestFaults(t *testing.T) {
	src := `
chip("4164")
op_cost(500)
decay(true)
stuck(10, 200, 1)
stuck_region(0, 3, 0, 3, 0)
leaky(20, 20, 300)
dead_columns(128, 255)
dead_rows(0, 1)
row_line(3, 0)
col_line(2, 1)
glitch("row", 5, 4)
ground_short(9)
`
	c, err := script.Load(src, &timing.Virtual{})
	test.DemandSuccess(t, err)

	f := c.Faults()
	test.DemandEquality(t, len(f), 9)
	test.ExpectEquality[sim.Fault](t, f[0], sim.Stuck{Region: sim.Cell(10, 200), Value: 1})
	test.ExpectEquality[sim.Fault](t, f[3], sim.Leaky{Region: sim.Columns(128, 255), Retention: script.DeadRetention})
	test.ExpectEquality[sim.Fault](t, f[6], sim.AddressLine{Dimension: descriptor.ColumnDimension, Bit: 2, Level: 1})
	test.ExpectEquality[sim.Fault](t, f[7], sim.DecoderGlitch{Dimension: descriptor.RowDimension, From: 5, To: 4})
	test.ExpectEquality[sim.Fault](t, f[8], sim.GroundShort{Pin: 9})

	pin, err := c.CheckGroundShort(descriptor.Narrow)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pin, 9)
}

func TestCounterWidth(t *testing.T) {
	c, err := script.Load(`chip "514256"; counter_width(7)`, &timing.Virtual{})
	test.DemandSuccess(t, err)
	test.ExpectEquality[sim.Fault](t, c.Faults()[0], sim.RefreshCounter{Bits: 7})
}

func TestErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`stuck(1, 1, 1)`,
		`chip "9999"`,
		`chip "4164"; chip "4164"`,
		`chip "4164"; row_line(8, 0)`,
		`chip "4164"; row_line(1, 2)`,
		`chip "4164"; glitch("diagonal", 1, 2)`,
		`chip "4164"; stuck(1, 1)`,
		`chip "empty"; stuck(1, 1, 1)`,
		`chip "4164" syntax error`,
		`chip "4164"; io.open("/etc/passwd")`,
	} {
		_, err := script.Load(src, &timing.Virtual{})
		test.ExpectSuccess(t, curated.Is(err, script.ScriptError), src)
	}
}

func TestLoadFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "halfgood.lua")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("chip \"4164\"\ndead_columns(0, 127)\n"), 0o600))

	c, err := script.LoadFile(pth, &timing.Virtual{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(c.Faults()), 1)

	_, err = script.LoadFile(filepath.Join(t.TempDir(), "missing.lua"), &timing.Virtual{})
	test.ExpectSuccess(t, curated.Is(err, script.ScriptError))
}
