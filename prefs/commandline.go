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

package prefs

import (
	"strings"
)

// each entry on the stack is the set of preferences given to a single mode of
// the command line
var commandLineStack []map[string]string

// PushCommandLineStack parses a "key::value; key::value" string and adds it as
// a new group to the top of the stack.
func PushCommandLineStack(prefs string) {
	cl := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if ok {
			cl[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	commandLineStack = append(commandLineStack, cl)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the number of preferences in the group that
// were never used.
func PopCommandLineStack() int {
	if len(commandLineStack) == 0 {
		return 0
	}
	n := len(commandLineStack[len(commandLineStack)-1])
	commandLineStack = commandLineStack[:len(commandLineStack)-1]
	return n
}

// GetCommandLinePref returns the value for the key from the group at the top
// of the stack. The value is deleted when it is returned.
func GetCommandLinePref(key string) (bool, string) {
	if len(commandLineStack) == 0 {
		return false, ""
	}
	cl := commandLineStack[len(commandLineStack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}
	return false, ""
}
