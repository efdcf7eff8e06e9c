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
	"fmt"

	"github.com/pkg/errors"
)

// Errors reported by Execute.
var (
	ErrAlreadyHalted   = errors.New("machine is already halted")
	ErrOverflow        = errors.New("integer overflow")
	ErrNegativeAddress = errors.New("negative address")
	ErrImmediateWrite  = errors.New("immediate mode destination")
	ErrInvalidMode     = errors.New("invalid addressing mode")
)

// DecodeError is returned by Execute when it encounters an unknown opcode.
type DecodeError struct {
	Opcode      Cell
	Instruction Cell
	PC          int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d (%d) at position %d", e.Opcode, e.Instruction, e.PC)
}

// Fault is returned by Execute when a valid instruction cannot complete. Err
// is one of ErrOverflow, ErrNegativeAddress, ErrImmediateWrite or
// ErrInvalidMode.
type Fault struct {
	PC          int
	Instruction Cell
	Err         error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v: instruction %d at position %d", f.Err, f.Instruction, f.PC)
}

// Cause returns the underlying error.
func (f *Fault) Cause() error { return f.Err }

// Unwrap returns the underlying error.
func (f *Fault) Unwrap() error { return f.Err }
