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

// Package environment provides the context for a test session: the operator
// inputs and the preferences of the instrument.
package environment

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/preferences"
)

// BadSelector is the error pattern returned by NewSelector().
const BadSelector = "environment: exactly one family must be selected (%s)"

// Label is used to name the environment.
type Label string

// Selector is the family chosen with the operator switches.
type Selector struct {
	Family descriptor.Family
}

func (s Selector) String() string {
	return s.Family.String()
}

// NewSelector creates a Selector from the state of the three family switches.
// Exactly one switch must be on.
func NewSelector(narrow, medium, wide bool) (Selector, error) {
	var on []string
	var sel Selector
	if narrow {
		on = append(on, "narrow")
		sel.Family = descriptor.Narrow
	}
	if medium {
		on = append(on, "medium")
		sel.Family = descriptor.Medium
	}
	if wide {
		on = append(on, "wide")
		sel.Family = descriptor.Wide
	}
	if len(on) != 1 {
		if len(on) == 0 {
			return Selector{}, curated.Errorf(BadSelector, "none selected")
		}
		return Selector{}, curated.Errorf(BadSelector, strings.Join(on, " and "))
	}
	return sel, nil
}

// ParseFamily returns the Selector for a family name as used on the command
// line. Accepts the pin count or the width name.
func ParseFamily(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "16", "16-pin", "narrow":
		return NewSelector(true, false, false)
	case "18", "18-pin", "medium":
		return NewSelector(false, true, false)
	case "20", "20-pin", "wide":
		return NewSelector(false, false, true)
	}
	return Selector{}, curated.Errorf(BadSelector, fmt.Sprintf("unknown family %q", s))
}

// Environment is used to provide context for a test session.
type Environment struct {
	Label Label

	Selector Selector

	// the voltage adapter is fitted to the 20-pin socket
	Adapter bool

	Prefs *preferences.Preferences

	// suppress logging from the session
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. If prefs is nil the default preferences are used.
func NewEnvironment(sel Selector, adapter bool, prefs *preferences.Preferences) *Environment {
	if prefs == nil {
		prefs = preferences.NewDefaults()
	}
	return &Environment{
		Selector: sel,
		Adapter:  adapter,
		Prefs:    prefs,
	}
}

func (env *Environment) String() string {
	s := env.Selector.String()
	if env.Adapter {
		s = fmt.Sprintf("%s with adapter", s)
	}
	if env.Label != "" {
		s = fmt.Sprintf("%s: %s", env.Label, s)
	}
	return s
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}
