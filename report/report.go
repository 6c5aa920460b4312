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

// Package report renders the outcome of a test session for the operator.
// The outcome is written as text with the LED blink code that the
// instrument shows for it. Colour is used when the output is a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/report/ansi"
	"github.com/jetsetilly/dramtester/tester/result"
)

// pens for each LED colour
var pens = map[Colour]string{
	Green:  ansi.MustBuild("green", "", "bold", true),
	Orange: ansi.MustBuild("yellow", "", "bold", true),
	Red:    ansi.MustBuild("red", "", "bold", true),
}

// Report writes outcomes to an io.Writer.
type Report struct {
	w io.Writer

	// use ANSI colour codes
	Colour bool
}

// NewReport is the preferred method of initialisation for the Report type.
// Colour is enabled if the writer is a terminal.
func NewReport(w io.Writer) *Report {
	r := &Report{w: w}
	if f, ok := w.(*os.File); ok {
		r.Colour = term.IsTerminal(int(f.Fd()))
	}
	return r
}

func (r *Report) pen(c Colour, s string) string {
	if !r.Colour {
		return s
	}
	return pens[c] + s + ansi.NormalPen
}

// Outcome writes the outcome and its blink code.
func (r *Report) Outcome(o result.Outcome) {
	if o.Pass {
		fmt.Fprintf(r.w, "%s %s\n", r.pen(Green, "PASS"), o.Part)
		if o.Part.Reduced {
			fmt.Fprintf(r.w, "  half-functional %s, good %s half of %ss\n", o.Part.HalfOf, o.Part.HalfGood, o.Part.HalfDimension)
		}
	} else {
		fmt.Fprintf(r.w, "%s %s\n", r.pen(Red, "FAIL"), o.Fault.Category)
		if o.Part != nil {
			fmt.Fprintf(r.w, "  part: %s\n", o.Part)
		}
		fmt.Fprintf(r.w, "  %s\n", o.Fault)
	}
	fmt.Fprintf(r.w, "  led: %s\n", ForOutcome(o))
}

// ConfigError writes an error in the operator inputs and its blink code.
func (r *Report) ConfigError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", r.pen(Red, "CONFIG"), err)
	fmt.Fprintf(r.w, "  led: %s\n", ConfigError())
}

// Parts writes a table of the parts.
func (r *Report) Parts(parts []*descriptor.Descriptor) {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "part\torganisation\tsocket\tarray\trefresh\tcbr\tmodes")
	for _, d := range parts {
		socket := d.Family.String()
		if d.Protocol != descriptor.Standard {
			socket = fmt.Sprintf("%s (%s)", socket, d.Protocol)
		}

		cbr := "-"
		if d.CBR() {
			cbr = fmt.Sprintf("%d", d.RefreshCycles)
		}

		var modes string
		switch {
		case d.StaticColumn:
			modes = "static column"
		case d.NibbleMode:
			modes = "nibble"
		case d.Reduced:
			modes = fmt.Sprintf("half of %s", d.HalfOf)
		}
		if d.Unverified {
			modes += " (unverified)"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%dx%d\t%s\t%s\t%s\n",
			d.Name, d.Organisation, socket, d.Rows, d.Columns, d.DataWidth,
			d.RefreshInterval, cbr, modes)
	}
	tw.Flush()
}
