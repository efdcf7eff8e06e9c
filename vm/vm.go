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

import (
	"io"

	"github.com/db47h/intcode/internal/ew"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// DefaultMemoryLimit is the default maximum number of memory cells an Instance
// will grow to. Writes beyond it fail with ErrOverflow.
const DefaultMemoryLimit = 1 << 26

// State is the lifecycle state of an Instance.
type State int

// Instance states.
const (
	Ready State = iota
	WaitingForInput
	Halted
)

var stateNames = [...]string{
	"ready",
	"waiting for input",
	"halted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "invalid state"
	}
	return stateNames[s]
}

// Tracer is the function prototype for instruction trace hooks. It is called
// before executing the instruction at pc.
type Tracer func(i *Instance, pc int)

// Instance represents an Intcode machine instance.
type Instance struct {
	mem      []Cell
	pc       int
	rb       Cell
	in       Cell
	hasIn    bool
	out      []Cell
	state    State
	insCount int64
	limit    int
	trace    Tracer
}

// Option interface
type Option func(*Instance) error

// Input presets the pending input value.
func Input(v Cell) Option {
	return func(i *Instance) error { i.SetInput(v); return nil }
}

// Patch overwrites the memory cell at addr before the first run. It is
// typically used to set the noun and verb cells of a program.
func Patch(addr int, v Cell) Option {
	return func(i *Instance) error { return i.Poke(addr, v) }
}

// MemoryLimit sets the maximum memory size in cells. The default is
// DefaultMemoryLimit.
func MemoryLimit(cells int) Option {
	return func(i *Instance) error {
		if cells < len(i.mem) {
			return errors.Errorf("memory limit %d smaller than program size %d", cells, len(i.mem))
		}
		i.limit = cells
		return nil
	}
}

// Trace installs a trace hook called before each instruction.
func Trace(t Tracer) Option {
	return func(i *Instance) error { i.trace = t; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode machine instance.
//
// The program is copied into the instance's memory, so that several instances
// can be created from the same program. Any address beyond the end of the
// program reads as 0; memory grows transparently when such an address is
// written to.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:   make([]Cell, len(program)),
		limit: DefaultMemoryLimit,
		state: Ready,
	}
	copy(i.mem, program)
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current state of the instance.
func (i *Instance) State() State {
	return i.state
}

// PC returns the address of the next instruction to execute.
func (i *Instance) PC() int {
	return i.pc
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// SetInput sets the pending input value. Setting an input before the previous
// one has been consumed overwrites it.
func (i *Instance) SetInput(v Cell) {
	i.in, i.hasIn = v, true
}

// HasInput reports whether an input value is pending.
func (i *Instance) HasInput() bool {
	return i.hasIn
}

// Outputs returns the output sequence without consuming it. The returned slice
// must not be modified.
func (i *Instance) Outputs() []Cell {
	return i.out
}

// DrainOutputs returns the output sequence and resets it.
func (i *Instance) DrainOutputs() []Cell {
	out := i.out
	i.out = nil
	return out
}

// Memory returns the instance memory. Note that value changes will be
// reflected in the instance's memory, but re-slicing will not affect it. Use
// Poke to write beyond the end of memory.
func (i *Instance) Memory() []Cell {
	return i.mem
}

// InstructionCount returns the number of instructions executed since the
// start of the last call to Execute. Instructions executed with Step are added
// to that count.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the instance memory to the specified io.Writer as a comma
// separated tape.
func (i *Instance) Dump(w io.Writer) error {
	return Tape(i.mem).write(ew.New(w))
}
