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

// Package preferences holds the instrument preferences. The values are
// stored in the preferences file of the application and can be overridden on
// the command line with the -prefs flag.
package preferences

import (
	"time"

	"github.com/jetsetilly/dramtester/paths"
	"github.com/jetsetilly/dramtester/prefs"
)

// MinRefreshRepeats is the least number of times the full refresh counter
// range is cycled during the refresh test.
const MinRefreshRepeats = 10

// Preferences defines and collates all the preference values used by the
// tester.
type Preferences struct {
	dsk *prefs.Disk

	// the serial device of the bench board and its speed
	SerialPort prefs.String
	Baud       prefs.Int

	// verify each cell immediately after writing it during the fixed patterns
	// as well as verifying the row once it has been written
	InlineVerify prefs.Bool

	// number of times the full refresh counter range is cycled during the
	// refresh test. values below MinRefreshRepeats are raised to the minimum
	RefreshRepeats prefs.Int

	// the time taken by each bus operation of a simulated chip
	SimOpCost prefs.Duration

	// simulated chips lose the contents of rows that are not refreshed
	// within the refresh interval
	SimDecay prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences but with a specific
// preferences file. A missing file is created.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p, err := newPreferences(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewDefaults creates a Preferences instance with the default values that is
// never loaded from disk. The Load() and Save() functions should not be used.
func NewDefaults() *Preferences {
	p, err := newPreferences("")
	if err != nil {
		panic(err)
	}
	return p
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("bench.serial.port", &p.SerialPort)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("bench.serial.baud", &p.Baud)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("tester.pattern.inlineVerify", &p.InlineVerify)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("tester.refresh.repeats", &p.RefreshRepeats)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.opCost", &p.SimOpCost)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sim.decay", &p.SimDecay)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.SerialPort.Set("/dev/ttyUSB0")
	p.Baud.Set(115200)
	p.InlineVerify.Set(false)
	p.RefreshRepeats.Set(MinRefreshRepeats)
	p.SimOpCost.Set(200 * time.Nanosecond)
	p.SimDecay.Set(true)
}

// Repeats returns the number of refresh counter cycles for the refresh test.
func (p *Preferences) Repeats() int {
	return max(p.RefreshRepeats.Get().(int), MinRefreshRepeats)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
