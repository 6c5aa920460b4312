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

// Package result defines the terminal outcome of a test session and the
// typed faults that end a session early.
//
// Every stage of the tester returns a *Fault when the part fails. A Fault
// implements the error interface so that it can be returned through the
// normal error path. The orchestrator converts the first Fault (or the
// absence of one) into an Outcome.
package result

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
)

// Category of a failed test.
type Category int

// List of valid Category values.
const (
	NoDeviceDetected Category = iota
	AddressLineFault
	PatternFault
	RetentionFault
	RefreshFault
	GroundShortFault
)

func (c Category) String() string {
	switch c {
	case NoDeviceDetected:
		return "no device detected"
	case AddressLineFault:
		return "address line fault"
	case PatternFault:
		return "pattern fault"
	case RetentionFault:
		return "retention fault"
	case RefreshFault:
		return "refresh fault"
	case GroundShortFault:
		return "ground short"
	}
	return "unknown fault"
}

// Fault is a test failure. The meaning of Code depends on the Category:
// the address line code for AddressLineFault, the pattern number for
// PatternFault and RetentionFault and the pin number for GroundShortFault.
type Fault struct {
	Category Category
	Code     int
	Detail   string

	// location of the failing cell. only valid if Located is true
	Located bool
	Row     int
	Col     int
}

func (f *Fault) Error() string {
	s := strings.Builder{}
	s.WriteString(f.Category.String())
	switch f.Category {
	case AddressLineFault:
		fmt.Fprintf(&s, " (code %d)", f.Code)
	case PatternFault, RetentionFault:
		fmt.Fprintf(&s, " (pattern %d)", f.Code)
	case GroundShortFault:
		fmt.Fprintf(&s, " (pin %d)", f.Code)
	}
	if f.Detail != "" {
		fmt.Fprintf(&s, ": %s", f.Detail)
	}
	if f.Located {
		fmt.Fprintf(&s, " at row %d col %d", f.Row, f.Col)
	}
	return s.String()
}

// Is allows errors.Is() to match any Fault of the same category.
func (f *Fault) Is(target error) bool {
	var t *Fault
	if !errors.As(target, &t) {
		return false
	}
	return t.Category == f.Category && (t.Code == f.Code || t.Code < 0)
}

// At returns a copy of the Fault with the location of the failing cell.
func (f *Fault) At(row, col int) *Fault {
	g := *f
	g.Located = true
	g.Row = row
	g.Col = col
	return &g
}

// NoDevice creates a NoDeviceDetected fault.
func NoDevice(detail string) *Fault {
	return &Fault{Category: NoDeviceDetected, Detail: detail}
}

// AddressLine creates an AddressLineFault with the code of the failing line.
func AddressLine(code int, detail string) *Fault {
	return &Fault{Category: AddressLineFault, Code: code, Detail: detail}
}

// Pattern creates a PatternFault for the pattern number.
func Pattern(p int, detail string) *Fault {
	return &Fault{Category: PatternFault, Code: p, Detail: detail}
}

// Retention creates a RetentionFault for the pattern number.
func Retention(p int, detail string) *Fault {
	return &Fault{Category: RetentionFault, Code: p, Detail: detail}
}

// Refresh creates a RefreshFault.
func Refresh(detail string) *Fault {
	return &Fault{Category: RefreshFault, Detail: detail}
}

// GroundShort creates a GroundShortFault for the pin.
func GroundShort(pin int) *Fault {
	return &Fault{Category: GroundShortFault, Code: pin}
}

// AnyCode can be used as the Code of a Fault passed to errors.Is() to match
// any fault of the category.
const AnyCode = -1

// Outcome of a test session.
type Outcome struct {
	Pass bool

	// the identified part. for a failed session this is the part that was
	// being tested, if sensing got that far
	Part *descriptor.Descriptor

	// the reason for a failed session
	Fault *Fault
}

// Passed creates a passing Outcome.
func Passed(part *descriptor.Descriptor) Outcome {
	return Outcome{Pass: true, Part: part}
}

// Failed creates a failing Outcome.
func Failed(part *descriptor.Descriptor, f *Fault) Outcome {
	return Outcome{Part: part, Fault: f}
}

func (o Outcome) String() string {
	if o.Pass {
		return fmt.Sprintf("PASS %s", o.Part)
	}
	if o.Part == nil {
		return fmt.Sprintf("FAIL %s", o.Fault)
	}
	return fmt.Sprintf("FAIL %s: %s", o.Part.Name, o.Fault)
}
