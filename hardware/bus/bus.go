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

// Package bus defines the signal level interface to a memory part in the
// test socket. Implementations translate each operation to the electrical
// signals of the part: the simulated chip in the sim package and the serial
// pin driver in the bench package.
//
// All operations are synchronous. Strobes and enables are expressed as
// asserted or not asserted; the active level of the pin is the concern of the
// implementation.
package bus

import (
	"github.com/jetsetilly/dramtester/hardware/descriptor"
)

// Direction of the data pins, from the point of view of the tester.
type Direction int

// List of valid Direction values.
const (
	Output Direction = iota
	Input
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Config selects the pinout used to address the part.
type Config struct {
	Family    descriptor.Family
	Protocol  descriptor.SubProtocol
	DataWidth int
}

// ConfigFor returns the bus configuration for the descriptor.
func ConfigFor(d *descriptor.Descriptor) Config {
	return Config{
		Family:    d.Family,
		Protocol:  d.Protocol,
		DataWidth: d.DataWidth,
	}
}

// Bus is the device access primitive. The row and column addresses share the
// same multiplexed address pins and are latched by the RAS and CAS strobes.
type Bus interface {
	// Configure the pins for the family and sub-protocol. All strobes are
	// left unasserted
	Configure(cfg Config)

	SetRowAddress(row uint16)
	SetColumnAddress(col uint16)

	AssertRAS()
	DeassertRAS()
	AssertCAS()
	DeassertCAS()

	SetWriteEnable(active bool)
	SetOutputEnable(active bool)

	SetDataDirection(dir Direction)
	DriveData(v uint8)
	ReadData() uint8
}

// Faulty is implemented by buses that can fail for reasons unrelated to the
// part in the socket. Such failures are sticky and are checked at the end of
// each stage.
type Faulty interface {
	Err() error
}

// GroundShort is implemented by buses that can check the socket for pins
// shorted to ground before a part is tested. Returns the pin number of the
// first shorted pin or zero if there is no short.
type GroundShort interface {
	CheckGroundShort(family descriptor.Family) (int, error)
}

// Sampler is implemented by buses that can defer the result of a read.
// SampleData latches the data lines in the same way as ReadData. Samples
// returns the latched values in the order they were taken and clears them.
//
// Samples taken inside a critical section are not available until the
// critical section has ended.
type Sampler interface {
	SampleData()
	Samples() []uint8
}
