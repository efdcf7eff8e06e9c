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

package asm

import (
	"bytes"
	"fmt"
	"io"
	"text/scanner"

	"github.com/db47h/intcode/internal/ew"
	"github.com/db47h/intcode/vm"
)

// ErrAsmEntry is a single assembly error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for k, entry := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", entry.Pos, entry.Msg)
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting tape and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Tape, error) {
	p := newParser()
	img, err := p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

var modePrefix = [...]string{"", "#", "@"}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction are written as plain
// numbers.
func Disassemble(i []vm.Cell, pc int, w io.Writer) (next int, err error) {
	out := ew.New(w)
	ins := i[pc]
	op, modes := vm.Decode(ins)
	o, ok := vm.Lookup(op)
	if ok {
		for k := 0; k < o.Params; k++ {
			if modes[k] > vm.Relative || (modes[k] == vm.Immediate && k == o.Write) {
				ok = false
			}
		}
	}
	if !ok {
		out.WriteInt(int64(ins))
		return pc + 1, out.Err
	}
	out.WriteString(o.Name)
	pc++
	for k := 0; k < o.Params; k++ {
		out.Write([]byte{' '})
		if pc >= len(i) {
			out.WriteString("???")
			continue
		}
		out.WriteString(modePrefix[modes[k]])
		out.WriteInt(int64(i[pc]))
		pc++
	}
	return pc, out.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (i[0]). It will return any write error.
func DisassembleAll(i []vm.Cell, base int, w io.Writer) error {
	out := ew.New(w)
	for pc := 0; pc < len(i); {
		fmt.Fprintf(out, "% 10d\t", base+pc)
		pc, _ = Disassemble(i, pc, out)
		out.Write([]byte{'\n'})
		if out.Err != nil {
			return out.Err
		}
	}
	return nil
}
