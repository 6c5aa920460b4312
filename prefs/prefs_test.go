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

package prefs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/prefs"
	"github.com/jetsetilly/dramtester/test"
)

func readFile(t *testing.T, fn string) string {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	return string(data)
}

func TestTypes(t *testing.T) {
	var b prefs.Bool
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("foo"))
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectFailure(t, b.Set(10))

	var i prefs.Int
	test.ExpectSuccess(t, i.Set("10"))
	test.ExpectEquality(t, i.Get().(int), 10)
	test.ExpectFailure(t, i.Set("ten"))
	test.ExpectEquality(t, i.String(), "10")

	var s prefs.String
	test.ExpectSuccess(t, s.Set("/dev/ttyUSB0"))
	test.ExpectEquality(t, s.String(), "/dev/ttyUSB0")

	var d prefs.Duration
	test.ExpectSuccess(t, d.Set("125ns"))
	test.ExpectEquality(t, d.Get().(time.Duration), 125*time.Nanosecond)
	test.ExpectFailure(t, d.Set(true))
}

func TestHook(t *testing.T) {
	var i prefs.Int
	var seen int
	i.SetHookPost(func(v prefs.Value) error {
		seen = v.(int)
		return nil
	})
	test.ExpectSuccess(t, i.Set(12))
	test.ExpectEquality(t, seen, 12)
}

func TestDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var port prefs.String
	var repeats prefs.Int
	var verify prefs.Bool
	test.ExpectSuccess(t, dsk.Add("bench.port", &port))
	test.ExpectSuccess(t, dsk.Add("test.refreshrepeats", &repeats))
	test.ExpectSuccess(t, dsk.Add("test.inlineverify", &verify))
	test.ExpectFailure(t, dsk.Add("test.inlineverify", &verify))
	test.ExpectFailure(t, dsk.Add("bad key", &verify))

	// missing file is an error unless saveOnMissing is set
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	test.ExpectSuccess(t, port.Set("/dev/ttyUSB0"))
	test.ExpectSuccess(t, repeats.Set(10))
	test.ExpectSuccess(t, verify.Set(true))
	test.ExpectSuccess(t, dsk.Save())

	test.ExpectEquality(t, readFile(t, fn), prefs.WarningBoilerPlate+"\n"+
		"bench.port :: /dev/ttyUSB0\n"+
		"test.inlineverify :: true\n"+
		"test.refreshrepeats :: 10\n")

	// a second disk sharing the file preserves the entries of the first
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var baud prefs.Int
	test.ExpectSuccess(t, dsk2.Add("bench.baud", &baud))
	test.ExpectSuccess(t, baud.Set(115200))
	test.ExpectSuccess(t, dsk2.Save())

	test.ExpectEquality(t, readFile(t, fn), prefs.WarningBoilerPlate+"\n"+
		"bench.baud :: 115200\n"+
		"bench.port :: /dev/ttyUSB0\n"+
		"test.inlineverify :: true\n"+
		"test.refreshrepeats :: 10\n")

	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, repeats.Get().(int), 0)
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, repeats.Get().(int), 10)
	test.ExpectEquality(t, port.String(), "/dev/ttyUSB0")
}

func TestCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var repeats prefs.Int
	test.ExpectSuccess(t, dsk.Add("test.refreshrepeats", &repeats))
	test.ExpectSuccess(t, repeats.Set(10))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("test.refreshrepeats::20; unknown::true")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, repeats.Get().(int), 20)

	// the unknown key was never used
	test.ExpectEquality(t, prefs.PopCommandLineStack(), 1)

	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, repeats.Get().(int), 10)
}

func TestMalformedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("bench.port /dev/ttyUSB0\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var port prefs.String
	test.ExpectSuccess(t, dsk.Add("bench.port", &port))
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.BadPrefsFile))
}
