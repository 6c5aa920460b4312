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

// Package script builds simulated chips from Lua scripts. A script names the
// part in the socket and the faults of the part:
//
//	chip "4164"
//	stuck(10, 200, 1)
//	dead_columns(128, 255)
//
// The functions available to a script are:
//
//	chip(name)                    the part in the socket. "empty" or no
//	                              argument for an empty socket
//	stuck(row, col, value)        a cell that always reads value
//	stuck_region(r0, r1, c0, c1, value)
//	leaky(row, col, microseconds) a cell that loses its contents early
//	dead_rows(from, to)           rows that lose their contents within
//	                              microseconds
//	dead_columns(from, to)        columns that lose their contents within
//	                              microseconds
//	row_line(bit, level)          an address line stuck at the level
//	col_line(bit, level)
//	glitch(dimension, from, to)   a slow decoder. dimension is "row" or
//	                              "column"
//	counter_width(bits)           a refresh counter with fewer bits
//	ground_short(pin)             a socket pin shorted to ground
//	op_cost(nanoseconds)          the time taken by each bus operation
//	decay(enabled)                lose rows that are not refreshed
//
// Faults are added in the order they appear. chip() must be called before
// any other function.
package script

import (
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/dramtester/curated"
	"github.com/jetsetilly/dramtester/hardware/descriptor"
	"github.com/jetsetilly/dramtester/hardware/sim"
	"github.com/jetsetilly/dramtester/hardware/timing"
)

// ScriptError is the error pattern for all errors raised by a script.
const ScriptError = "script: %v"

// DeadRetention is the retention time of the cells of a dead row or column.
const DeadRetention = 50 * time.Microsecond

// EmptySocket is the name used by a script for an empty socket.
const EmptySocket = "empty"

type loader struct {
	clk  *timing.Virtual
	chip *sim.Chip
}

// Load runs the script and returns the chip it describes.
func Load(src string, clk *timing.Virtual) (*sim.Chip, error) {
	return run(clk, func(L *lua.LState) error {
		return L.DoString(src)
	})
}

// LoadFile runs the script in the file and returns the chip it describes.
func LoadFile(pth string, clk *timing.Virtual) (*sim.Chip, error) {
	if _, err := os.Stat(pth); err != nil {
		return nil, curated.Errorf(ScriptError, err)
	}
	return run(clk, func(L *lua.LState) error {
		return L.DoFile(pth)
	})
}

func run(clk *timing.Virtual, do func(L *lua.LState) error) (*sim.Chip, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// only the base library. scripts have no business with the filesystem
	L.Push(L.NewFunction(lua.OpenBase))
	L.Push(lua.LString(lua.BaseLibName))
	L.Call(1, 0)

	ld := &loader{clk: clk}
	for name, fn := range map[string]lua.LGFunction{
		"chip":          ld.chipFn,
		"stuck":         ld.stuck,
		"stuck_region":  ld.stuckRegion,
		"leaky":         ld.leaky,
		"dead_rows":     ld.deadRows,
		"dead_columns":  ld.deadColumns,
		"row_line":      ld.rowLine,
		"col_line":      ld.colLine,
		"glitch":        ld.glitch,
		"counter_width": ld.counterWidth,
		"ground_short":  ld.groundShort,
		"op_cost":       ld.opCost,
		"decay":         ld.decay,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	if err := do(L); err != nil {
		return nil, curated.Errorf(ScriptError, err)
	}
	if ld.chip == nil {
		return nil, curated.Errorf(ScriptError, "no chip in script")
	}
	return ld.chip, nil
}

// the chip created by the script. raises an error in the script if chip()
// has not been called
func (ld *loader) current(L *lua.LState) *sim.Chip {
	if ld.chip == nil {
		L.RaiseError("chip() must be called first")
	}
	return ld.chip
}

func (ld *loader) add(L *lua.LState, f sim.Fault) int {
	if err := ld.current(L).AddFault(f); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (ld *loader) chipFn(L *lua.LState) int {
	if ld.chip != nil {
		L.RaiseError("chip() has already been called")
	}
	name := L.OptString(1, EmptySocket)
	if name == EmptySocket {
		ld.chip = sim.NewEmpty(ld.clk)
		return 0
	}
	d, err := descriptor.Lookup(name)
	if err != nil {
		L.ArgError(1, err.Error())
	}
	ld.chip = sim.NewChip(d, ld.clk)
	return 0
}

func (ld *loader) stuck(L *lua.LState) int {
	return ld.add(L, sim.Stuck{
		Region: sim.Cell(L.CheckInt(1), L.CheckInt(2)),
		Value:  uint8(L.CheckInt(3)),
	})
}

func (ld *loader) stuckRegion(L *lua.LState) int {
	return ld.add(L, sim.Stuck{
		Region: sim.Region{
			RowFrom: L.CheckInt(1), RowTo: L.CheckInt(2),
			ColFrom: L.CheckInt(3), ColTo: L.CheckInt(4),
		},
		Value: uint8(L.CheckInt(5)),
	})
}

func (ld *loader) leaky(L *lua.LState) int {
	return ld.add(L, sim.Leaky{
		Region:    sim.Cell(L.CheckInt(1), L.CheckInt(2)),
		Retention: time.Duration(L.CheckInt(3)) * time.Microsecond,
	})
}

func (ld *loader) deadRows(L *lua.LState) int {
	return ld.add(L, sim.Leaky{
		Region:    sim.Rows(L.CheckInt(1), L.CheckInt(2)),
		Retention: DeadRetention,
	})
}

func (ld *loader) deadColumns(L *lua.LState) int {
	return ld.add(L, sim.Leaky{
		Region:    sim.Columns(L.CheckInt(1), L.CheckInt(2)),
		Retention: DeadRetention,
	})
}

func (ld *loader) line(L *lua.LState, dim descriptor.Dimension) int {
	level := L.OptInt(2, 0)
	if level != 0 && level != 1 {
		L.ArgError(2, "level must be 0 or 1")
	}
	return ld.add(L, sim.AddressLine{
		Dimension: dim,
		Bit:       L.CheckInt(1),
		Level:     uint8(level),
	})
}

func (ld *loader) rowLine(L *lua.LState) int {
	return ld.line(L, descriptor.RowDimension)
}

func (ld *loader) colLine(L *lua.LState) int {
	return ld.line(L, descriptor.ColumnDimension)
}

func (ld *loader) glitch(L *lua.LState) int {
	var dim descriptor.Dimension
	switch s := L.CheckString(1); s {
	case "row":
		dim = descriptor.RowDimension
	case "column", "col":
		dim = descriptor.ColumnDimension
	default:
		L.ArgError(1, fmt.Sprintf("unknown dimension %q", s))
	}
	return ld.add(L, sim.DecoderGlitch{
		Dimension: dim,
		From:      L.CheckInt(2),
		To:        L.CheckInt(3),
	})
}

func (ld *loader) counterWidth(L *lua.LState) int {
	return ld.add(L, sim.RefreshCounter{Bits: L.CheckInt(1)})
}

func (ld *loader) groundShort(L *lua.LState) int {
	return ld.add(L, sim.GroundShort{Pin: L.CheckInt(1)})
}

func (ld *loader) opCost(L *lua.LState) int {
	ld.current(L).SetOpCost(time.Duration(L.CheckInt(1)) * time.Nanosecond)
	return 0
}

func (ld *loader) decay(L *lua.LState) int {
	if L.OptBool(1, true) {
		ld.current(L).EnableDecay()
	}
	return 0
}
