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

import "math"

// Peek returns the value at address addr. Addresses beyond the end of memory,
// as well as negative addresses, read as 0.
func (i *Instance) Peek(addr int) Cell {
	if addr < 0 || addr >= len(i.mem) {
		return 0
	}
	return i.mem[addr]
}

// Poke writes v at address addr, growing memory if needed.
func (i *Instance) Poke(addr int, v Cell) error {
	return i.store(Cell(addr), v)
}

// load returns the value at addr. It never grows memory.
func (i *Instance) load(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, ErrNegativeAddress
	}
	if addr >= Cell(len(i.mem)) {
		return 0, nil
	}
	return i.mem[addr], nil
}

// store writes v at addr. Memory is zero-extended up to and including addr.
func (i *Instance) store(addr, v Cell) error {
	if addr < 0 {
		return ErrNegativeAddress
	}
	if addr >= Cell(i.limit) {
		return ErrOverflow
	}
	if n := int(addr) + 1; n > len(i.mem) {
		i.mem = append(i.mem, make([]Cell, n-len(i.mem))...)
	}
	i.mem[addr] = v
	return nil
}

// param returns the raw value of parameter n (0 based) of the instruction at
// pc.
func (i *Instance) param(pc, n int) Cell {
	return i.Peek(pc + 1 + n)
}

// operand resolves the value of parameter n according to its mode.
func (i *Instance) operand(pc, n int, m Mode) (Cell, error) {
	p := i.param(pc, n)
	switch m {
	case Position:
		return i.load(p)
	case Immediate:
		return p, nil
	case Relative:
		a, err := add(i.rb, p)
		if err != nil {
			return 0, err
		}
		return i.load(a)
	}
	return 0, ErrInvalidMode
}

// dest resolves the destination address of parameter n according to its mode.
func (i *Instance) dest(pc, n int, m Mode) (Cell, error) {
	p := i.param(pc, n)
	switch m {
	case Position:
	case Immediate:
		return 0, ErrImmediateWrite
	case Relative:
		var err error
		if p, err = add(i.rb, p); err != nil {
			return 0, err
		}
	default:
		return 0, ErrInvalidMode
	}
	if p < 0 {
		return 0, ErrNegativeAddress
	}
	if p >= Cell(i.limit) {
		return 0, ErrOverflow
	}
	return p, nil
}

func add(a, b Cell) (Cell, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func mul(a, b Cell) (Cell, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	return p, nil
}
