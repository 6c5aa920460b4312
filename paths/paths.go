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

package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// the base path for all resources. the getBasePath() function should be used
// rather than this value directly
const baseResourcePath = ".dramtester"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The directories
// leading to the resource are created if necessary.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	if err := os.MkdirAll(base, 0o700); err != nil {
		return "", fmt.Errorf("paths: %w", err)
	}

	return filepath.Join(base, file), nil
}

func getBasePath(subPth string) (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return filepath.Join(baseResourcePath, subPth), nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, strings.TrimPrefix(baseResourcePath, "."), subPth), nil
}

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Used for session diagnostics, such as
// the graph written by the memviz option. Format of returned string is:
//
//	prepend_partname_YYYYMMDD_HHMMSS
//
// If there is no part name the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, part string) string {
	n := time.Now()
	timestamp := n.Format("20060102_150405")

	part = strings.TrimSpace(part)
	if part == "" {
		return fmt.Sprintf("%s_%s", prepend, timestamp)
	}

	// part names can contain spaces and the slash of half-good variants
	part = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, part)

	return fmt.Sprintf("%s_%s_%s", prepend, part, timestamp)
}
