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

// Execute runs the machine until it halts, needs input that is not available,
// or fails.
//
// When an input instruction finds no pending input, Execute returns nil with
// the instance in the WaitingForInput state and the PC pointing at that
// instruction. Set an input with SetInput and call Execute again to resume.
//
// On error, the PC points to the instruction that triggered it and the state is
// left as it was. Unknown opcodes are reported as a *DecodeError, other
// failures as a *Fault. Calling Execute on a halted instance returns
// ErrAlreadyHalted.
func (i *Instance) Execute() error {
	if i.state == Halted {
		return ErrAlreadyHalted
	}
	i.insCount = 0
	for {
		if ok, err := i.step(); !ok {
			return err
		}
	}
}

// Step executes a single instruction. It behaves exactly like Execute, except
// that it returns after at most one instruction. The instance is still in the
// Ready state if it can make further progress.
func (i *Instance) Step() error {
	if i.state == Halted {
		return ErrAlreadyHalted
	}
	_, err := i.step()
	return err
}

// step executes the instruction at PC and reports whether execution can
// continue.
func (i *Instance) step() (bool, error) {
	pc := i.pc
	ins := i.Peek(pc)
	op, m := Decode(ins)
	if i.trace != nil {
		i.trace(i, pc)
	}
	switch op {
	case OpAdd, OpMul, OpLt, OpEq:
		a, err := i.operand(pc, 0, m[0])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		b, err := i.operand(pc, 1, m[1])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		d, err := i.dest(pc, 2, m[2])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		var v Cell
		switch op {
		case OpAdd:
			v, err = add(a, b)
		case OpMul:
			v, err = mul(a, b)
		case OpLt:
			if a < b {
				v = 1
			}
		case OpEq:
			if a == b {
				v = 1
			}
		}
		if err != nil {
			return false, fault(pc, ins, err)
		}
		if err = i.store(d, v); err != nil {
			return false, fault(pc, ins, err)
		}
		i.pc += 4
	case OpIn:
		if !i.hasIn {
			i.state = WaitingForInput
			return false, nil
		}
		d, err := i.dest(pc, 0, m[0])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		if err = i.store(d, i.in); err != nil {
			return false, fault(pc, ins, err)
		}
		i.in, i.hasIn = 0, false
		i.pc += 2
	case OpOut:
		v, err := i.operand(pc, 0, m[0])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		i.out = append(i.out, v)
		i.pc += 2
	case OpJnz, OpJz:
		a, err := i.operand(pc, 0, m[0])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		b, err := i.operand(pc, 1, m[1])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		if (op == OpJnz) == (a != 0) {
			if b < 0 {
				return false, fault(pc, ins, ErrNegativeAddress)
			}
			if b >= Cell(i.limit) {
				return false, fault(pc, ins, ErrOverflow)
			}
			i.pc = int(b)
		} else {
			i.pc += 3
		}
	case OpArb:
		a, err := i.operand(pc, 0, m[0])
		if err != nil {
			return false, fault(pc, ins, err)
		}
		rb, err := add(i.rb, a)
		if err != nil {
			return false, fault(pc, ins, err)
		}
		if rb < 0 {
			return false, fault(pc, ins, ErrNegativeAddress)
		}
		i.rb = rb
		i.pc += 2
	case OpHalt:
		i.state = Halted
		return false, nil
	default:
		return false, &DecodeError{Opcode: op, Instruction: ins, PC: pc}
	}
	i.state = Ready
	i.insCount++
	return true, nil
}

func fault(pc int, ins Cell, err error) error {
	return &Fault{PC: pc, Instruction: ins, Err: err}
}
