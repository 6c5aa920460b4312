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

package bench

import (
	"fmt"
	"time"

	"github.com/pkg/term"

	"github.com/jetsetilly/dramtester/hardware/preferences"
)

// ReadTimeout is the longest time to wait for a reply from the board.
const ReadTimeout = 2 * time.Second

// the board resets when the serial line is opened
const resetSettle = 2 * time.Second

// Open the serial device and check the firmware of the board.
func Open(device string, baud int) (*Board, error) {
	t, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}

	time.Sleep(resetSettle)

	if err := t.SetReadTimeout(ReadTimeout); err != nil {
		t.Close()
		return nil, fmt.Errorf("bench: %w", err)
	}

	// discard anything sent by the board while it was resetting
	if err := t.Flush(); err != nil {
		t.Close()
		return nil, fmt.Errorf("bench: %w", err)
	}

	b, err := NewBoard(t)
	if err != nil {
		t.Close()
		return nil, err
	}
	return b, nil
}

// OpenFromPreferences opens the serial device named in the preferences.
func OpenFromPreferences(prefs *preferences.Preferences) (*Board, error) {
	return Open(prefs.SerialPort.Get().(string), prefs.Baud.Get().(int))
}
