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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/environment"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/logger"
	"github.com/jetsetilly/dramtester/test"
)

func TestSelector(t *testing.T) {
	sel, err := environment.NewSelector(false, true, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sel.Family, descriptor.Medium)

	_, err = environment.NewSelector(true, true, false)
	test.ExpectSuccess(t, curated.Is(err, environment.BadSelector))
	test.ExpectEquality(t, err.Error(), "environment: exactly one family must be selected (narrow and medium)")

	_, err = environment.NewSelector(false, false, false)
	test.ExpectSuccess(t, curated.Is(err, environment.BadSelector))

	sel, err = environment.ParseFamily("20")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sel.Family, descriptor.Wide)
	_, err = environment.ParseFamily("24")
	test.ExpectFailure(t, err)
}

func TestEnvironment(t *testing.T) {
	sel, _ := environment.NewSelector(false, false, true)
	env := environment.NewEnvironment(sel, true, nil)
	test.ExpectEquality(t, env.String(), "20-pin with adapter")
	test.DemandImplements[logger.Permission](t, env, nil)
	test.ExpectSuccess(t, env.AllowLogging())
	env.Quiet = true
	test.ExpectFailure(t, env.AllowLogging())
}
