// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

// Intcode opcodes.
const (
	OpAdd  Cell = 1
	OpMul  Cell = 2
	OpIn   Cell = 3
	OpOut  Cell = 4
	OpJnz  Cell = 5
	OpJz   Cell = 6
	OpLt   Cell = 7
	OpEq   Cell = 8
	OpArb  Cell = 9
	OpHalt Cell = 99
)

// Mode is a parameter addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

// MaxParams is the maximum number of parameters of an instruction.
const MaxParams = 3

// Opcode describes an instruction.
type Opcode struct {
	Name   string
	Params int
	// Write is the index of the destination parameter, -1 if none.
	Write int
}

var opcodes = map[Cell]Opcode{
	OpAdd:  {"add", 3, 2},
	OpMul:  {"mul", 3, 2},
	OpIn:   {"in", 1, 0},
	OpOut:  {"out", 1, -1},
	OpJnz:  {"jnz", 2, -1},
	OpJz:   {"jz", 2, -1},
	OpLt:   {"lt", 3, 2},
	OpEq:   {"eq", 3, 2},
	OpArb:  {"arb", 1, -1},
	OpHalt: {"hlt", 0, -1},
}

var opcodeIndex = make(map[string]Cell)

func init() {
	for c, op := range opcodes {
		opcodeIndex[op.Name] = c
	}
}

// Lookup returns the description of the given opcode.
func Lookup(op Cell) (Opcode, bool) {
	o, ok := opcodes[op]
	return o, ok
}

// LookupName returns the opcode for the given mnemonic.
func LookupName(name string) (Cell, bool) {
	c, ok := opcodeIndex[name]
	return c, ok
}

// Decode splits an instruction into its opcode and parameter modes. Missing
// mode digits default to Position.
func Decode(ins Cell) (op Cell, modes [MaxParams]Mode) {
	if ins < 0 {
		return ins, modes
	}
	op = ins % 100
	ins /= 100
	for k := range modes {
		modes[k] = Mode(ins % 10)
		ins /= 10
	}
	return op, modes
}

// Encode builds an instruction from an opcode and parameter modes.
func Encode(op Cell, modes ...Mode) Cell {
	ins := op
	m := Cell(100)
	for _, md := range modes {
		ins += Cell(md) * m
		m *= 10
	}
	return ins
}
