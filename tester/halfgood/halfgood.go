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

// Package halfgood decides which part has been tested once every stage has
// run. Parts with half-functional variants are tested as the full part and
// the failures seen during the session are used to choose between the full
// part and one of its reduced variants.
package halfgood

import (
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/tester/session"
)

// the good half is the half without failures
func good(failing descriptor.Half) descriptor.Half {
	if failing == descriptor.LowerHalf {
		return descriptor.UpperHalf
	}
	return descriptor.LowerHalf
}

// Resolve returns the part that has passed. Column failures confined to one
// half are preferred over row failures confined to one half. If the failures
// fit no reduced variant the most recent tolerated fault is returned.
func Resolve(s *session.Session) (*descriptor.Descriptor, error) {
	part := s.Part()
	hg := &s.HalfGood

	if hg.Count == 0 {
		return part, nil
	}

	for _, dim := range []descriptor.Dimension{descriptor.ColumnDimension, descriptor.RowDimension} {
		failing := hg.Confined(dim)
		if failing == descriptor.NoHalf {
			continue
		}
		if v := descriptor.HalfVariant(part, dim, good(failing)); v != nil {
			s.Logf("halfgood", "%s: %d failures in %s half of %ss. resolved to %s",
				part.Name, hg.Count, failing, dim, v.Name)
			return v, nil
		}
	}

	s.Logf("halfgood", "%s: %d failures fit no variant (%s)", part.Name, hg.Count, hg)
	if s.Tolerated == nil {
		return part, nil
	}
	return nil, s.Tolerated
}
