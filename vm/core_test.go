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

package vm_test

import (
	"fmt"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func setup(code string, opts ...vm.Option) *vm.Instance {
	i, err := vm.New(vm.MustParse(code), opts...)
	if err != nil {
		panic(err)
	}
	return i
}

func equal(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}

func check(t *testing.T, testName string, i *vm.Instance, pc int, state vm.State, mem C, out C) bool {
	t.Helper()
	err := i.Execute()
	if err != nil {
		t.Errorf("%s: %+v", testName, err)
		return false
	}
	if pc != i.PC() {
		t.Errorf("%v", fmt.Errorf("%s: Bad PC %d != %d", testName, i.PC(), pc))
		return false
	}
	if state != i.State() {
		t.Errorf("%s: Bad state %v != %v", testName, i.State(), state)
		return false
	}
	if mem != nil && !equal(mem, i.Memory()) {
		t.Errorf("%s: Memory error: expected %d, got %d", testName, mem, i.Memory())
		return false
	}
	if !equal(out, i.Outputs()) {
		t.Errorf("%s: Output error: expected %d, got %d", testName, out, i.Outputs())
		return false
	}
	return true
}

const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"

var tests = [...]struct {
	name string
	code string
	pc   int
	mem  C
	out  C
}{
	{"add", "1,0,0,0,99", 4, C{2, 0, 0, 0, 99}, nil},
	{"mul", "2,3,0,3,99", 4, C{2, 3, 0, 6, 99}, nil},
	{"mul2", "2,4,4,5,99,0", 4, C{2, 4, 4, 5, 99, 9801}, nil},
	{"add+mul", "1,1,1,4,99,5,6,0,99", 8, C{30, 1, 1, 4, 2, 5, 6, 0, 99}, nil},
	{"long", "1,9,10,3,2,3,11,0,99,30,40,50", 8, C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}, nil},
	{"immediate", "1101,100,-1,4,0", 4, C{1101, 100, -1, 4, 99}, nil},
	{"mixed modes", "1002,4,3,4,33", 4, C{1002, 4, 3, 4, 99}, nil},
	{"out", "4,3,99,42", 2, nil, C{42}},
	{"out immediate", "104,1125899906842624,99", 2, nil, C{1125899906842624}},
	{"16 digits", "1102,34915192,34915192,7,4,7,99,0", 6, nil, C{1219070632396864}},
	{"lt", "1107,1,2,7,4,7,99,-1", 6, C{1107, 1, 2, 7, 4, 7, 99, 1}, C{1}},
	{"lt false", "1107,2,2,7,4,7,99,-1", 6, C{1107, 2, 2, 7, 4, 7, 99, 0}, C{0}},
	{"eq", "1108,2,2,7,4,7,99,-1", 6, C{1108, 2, 2, 7, 4, 7, 99, 1}, C{1}},
	{"eq false", "1108,1,2,7,4,7,99,-1", 6, C{1108, 1, 2, 7, 4, 7, 99, 0}, C{0}},
	{"jnz", "1105,1,4,99,104,7,99", 6, nil, C{7}},
	{"jz", "1106,0,4,99,104,7,99", 6, nil, C{7}},
	{"arb", "109,5,204,-3,99", 4, nil, C{204}},
	{"arb twice", "109,5,109,-2,204,0,99", 6, nil, C{-2}},
	{"read past end", "4,100,99", 2, C{4, 100, 99}, C{0}},
	{"relative read past end", "109,50,204,50,99", 4, C{109, 50, 204, 50, 99}, C{0}},
	{"relative write grows", "109,10,21101,3,4,5,204,5,99", 8,
		C{109, 10, 21101, 3, 4, 5, 204, 5, 99, 0, 0, 0, 0, 0, 0, 7}, C{7}},
	{"quine", quine, 15, nil, C(vm.MustParse(quine))},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		i := setup(test.code)
		check(t, test.name, i, test.pc, vm.Halted, test.mem, test.out)
	}
}

const (
	eq8       = "3,9,8,9,10,9,4,9,99,-1,8"
	lt8       = "3,9,7,9,10,9,4,9,99,-1,8"
	eq8imm    = "3,3,1108,-1,8,3,4,3,99"
	lt8imm    = "3,3,1107,-1,8,3,4,3,99"
	jmpPos    = "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9"
	jmpImm    = "3,3,1105,-1,9,1101,0,0,12,4,12,99,1"
	compare8  = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
	echoInput = "3,0,4,0,99"
)

var inputTests = [...]struct {
	code string
	in   vm.Cell
	out  vm.Cell
}{
	{eq8, 8, 1},
	{eq8, 7, 0},
	{lt8, 7, 1},
	{lt8, 8, 0},
	{eq8imm, 8, 1},
	{eq8imm, 9, 0},
	{lt8imm, -3, 1},
	{lt8imm, 9, 0},
	{jmpPos, 0, 0},
	{jmpPos, 5, 1},
	{jmpImm, 0, 0},
	{jmpImm, -5, 1},
	{compare8, 7, 999},
	{compare8, 8, 1000},
	{compare8, 9, 1001},
	{echoInput, 7, 7},
}

func TestInput(t *testing.T) {
	for _, test := range inputTests {
		i := setup(test.code, vm.Input(test.in))
		name := fmt.Sprintf("%s <- %d", test.code, test.in)
		if err := i.Execute(); err != nil {
			t.Errorf("%s: %+v", name, err)
			continue
		}
		if i.State() != vm.Halted {
			t.Errorf("%s: expected halted, got %v", name, i.State())
		}
		if out := i.Outputs(); !equal(out, C{test.out}) {
			t.Errorf("%s: expected output %d, got %d", name, test.out, out)
		}
		if i.HasInput() {
			t.Errorf("%s: input not consumed", name)
		}
	}
}

func TestSuspendResume(t *testing.T) {
	i := setup(echoInput)
	if !check(t, "suspend", i, 0, vm.WaitingForInput, C{3, 0, 4, 0, 99}, nil) {
		return
	}
	// resuming without input must not make any progress
	if !check(t, "no input", i, 0, vm.WaitingForInput, C{3, 0, 4, 0, 99}, nil) {
		return
	}
	i.SetInput(42)
	check(t, "resume", i, 4, vm.Halted, C{42, 0, 4, 0, 99}, C{42})
}

func TestSuspendLoop(t *testing.T) {
	// sums inputs until it reads 0, then outputs the sum.
	code := "3,20,1006,20,12,1,20,21,21,1105,1,0,4,21,99"
	i := setup(code)
	for _, v := range (C{1, 2, 3, 4}) {
		if err := i.Execute(); err != nil {
			t.Fatalf("%+v", err)
		}
		if i.State() != vm.WaitingForInput || i.PC() != 0 {
			t.Fatalf("expected to wait for input at 0, got %v at %d", i.State(), i.PC())
		}
		i.SetInput(v)
	}
	check(t, "sum", i, 0, vm.WaitingForInput, nil, nil)
	i.SetInput(0)
	check(t, "sum", i, 14, vm.Halted, nil, C{10})
}

func TestJumps(t *testing.T) {
	for _, op := range []vm.Cell{vm.OpJnz, vm.OpJz} {
		for _, a := range (C{-7, -1, 0, 1, 42}) {
			for _, b := range (C{5, 9, 12}) {
				code := C{vm.Encode(op, vm.Immediate, vm.Immediate), a, b}
				for len(code) < 13 {
					code = append(code, vm.OpHalt)
				}
				i, err := vm.New(code)
				if err != nil {
					t.Fatal(err)
				}
				jump := (op == vm.OpJnz && a != 0) || (op == vm.OpJz && a == 0)
				pc := 3
				if jump {
					pc = int(b)
				}
				name := fmt.Sprintf("%d %d %d", code[0], a, b)
				check(t, name, i, pc, vm.Halted, nil, nil)
			}
		}
	}
}

func TestDecodeError(t *testing.T) {
	for _, ins := range (C{0, 10, 11, 42, 98, 100, 210, 1234, -5}) {
		i, err := vm.New(C{1, 0, 0, 0, ins, 0, 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		op, _ := vm.Decode(ins)
		err = i.Execute()
		de, ok := errors.Cause(err).(*vm.DecodeError)
		if !ok {
			t.Errorf("%d: expected *vm.DecodeError, got %v", ins, err)
			continue
		}
		if de.Opcode != op || de.Instruction != ins || de.PC != 4 {
			t.Errorf("%d: bad error %v", ins, de)
		}
		if i.PC() != 4 {
			t.Errorf("%d: bad PC %d", ins, i.PC())
		}
		if i.State() == vm.Halted {
			t.Errorf("%d: unexpected halt", ins)
		}
		if i.Peek(0) != 2 {
			t.Errorf("%d: first instruction not executed", ins)
		}
	}
}

func TestAlreadyHalted(t *testing.T) {
	i := setup("1,0,0,0,4,0,99")
	if !check(t, "first run", i, 6, vm.Halted, C{2, 0, 0, 0, 4, 0, 99}, C{2}) {
		return
	}
	for n := 0; n < 2; n++ {
		err := i.Execute()
		if err != vm.ErrAlreadyHalted {
			t.Fatalf("expected ErrAlreadyHalted, got %v", err)
		}
		if !equal(i.Memory(), C{2, 0, 0, 0, 4, 0, 99}) || !equal(i.Outputs(), C{2}) || i.PC() != 6 {
			t.Fatalf("state changed after halt: %d, %d, %d", i.Memory(), i.Outputs(), i.PC())
		}
	}
}

var faultTests = [...]struct {
	name  string
	code  string
	in    bool
	pc    int
	cause error
}{
	{"negative write", "1101,1,1,-1,99", false, 0, vm.ErrNegativeAddress},
	{"negative read", "1,-1,0,0,99", false, 0, vm.ErrNegativeAddress},
	{"immediate dest", "11101,1,1,4,99", false, 0, vm.ErrImmediateWrite},
	{"immediate input", "103,0,99", true, 0, vm.ErrImmediateWrite},
	{"bad mode", "301,0,0,0,99", false, 0, vm.ErrInvalidMode},
	{"add overflow", "1101,9223372036854775807,1,0,99", false, 0, vm.ErrOverflow},
	{"mul overflow", "1102,4611686018427387904,4,0,99", false, 0, vm.ErrOverflow},
	{"negative jump", "1101,1,1,0,1105,1,-4,99", false, 4, vm.ErrNegativeAddress},
	{"negative base", "109,-1,99", false, 0, vm.ErrNegativeAddress},
	{"memory limit", "1101,1,1,1000000000000,99", false, 0, vm.ErrOverflow},
}

func TestFault(t *testing.T) {
	for _, test := range faultTests {
		var opts []vm.Option
		if test.in {
			opts = append(opts, vm.Input(1))
		}
		i := setup(test.code, opts...)
		before := append(C(nil), vm.MustParse(test.code)...)
		err := i.Execute()
		f, ok := err.(*vm.Fault)
		if !ok {
			t.Errorf("%s: expected *vm.Fault, got %v", test.name, err)
			continue
		}
		if errors.Cause(err) != test.cause || f.PC != test.pc {
			t.Errorf("%s: bad fault %v", test.name, err)
		}
		if i.PC() != test.pc || i.State() == vm.Halted {
			t.Errorf("%s: bad PC/state: %d, %v", test.name, i.PC(), i.State())
		}
		if test.pc == 0 && !equal(i.Memory(), before) {
			t.Errorf("%s: memory modified: %d", test.name, i.Memory())
		}
		if i.HasInput() != test.in {
			t.Errorf("%s: input consumed", test.name)
		}
	}
}

func TestPeekPoke(t *testing.T) {
	i := setup("99")
	if v := i.Peek(10); v != 0 {
		t.Errorf("expected 0, got %d", v)
	}
	if len(i.Memory()) != 1 {
		t.Errorf("Peek grew memory to %d", len(i.Memory()))
	}
	if err := i.Poke(3, 7); err != nil {
		t.Fatal(err)
	}
	if !equal(i.Memory(), C{99, 0, 0, 7}) {
		t.Errorf("bad memory after poke: %d", i.Memory())
	}
	if err := i.Poke(-1, 7); errors.Cause(err) != vm.ErrNegativeAddress {
		t.Errorf("expected ErrNegativeAddress, got %v", err)
	}
}

func TestPatch(t *testing.T) {
	tape := vm.MustParse("1,0,0,0,99")
	i, err := vm.New(tape, vm.Patch(1, 4), vm.Patch(2, 4))
	if err != nil {
		t.Fatal(err)
	}
	check(t, "patch", i, 4, vm.Halted, C{198, 4, 4, 0, 99}, nil)
	if tape[0] != 1 {
		t.Errorf("program tape modified")
	}
}

func TestDrainOutputs(t *testing.T) {
	i := setup("104,1,3,0,104,2,99")
	if err := i.Execute(); err != nil {
		t.Fatal(err)
	}
	if out := i.DrainOutputs(); !equal(out, C{1}) {
		t.Fatalf("expected [1], got %d", out)
	}
	i.SetInput(0)
	check(t, "drain", i, 6, vm.Halted, nil, C{2})
}

func TestMemoryLimit(t *testing.T) {
	if _, err := vm.New(C{1, 2, 3}, vm.MemoryLimit(2)); err == nil {
		t.Error("expected error for limit smaller than program")
	}
	i := setup("1101,1,1,8,99", vm.MemoryLimit(8))
	err := i.Execute()
	if errors.Cause(err) != vm.ErrOverflow {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestTrace(t *testing.T) {
	var pcs []int
	i := setup("1101,1,1,0,104,3,99", vm.Trace(func(_ *vm.Instance, pc int) {
		pcs = append(pcs, pc)
	}))
	check(t, "trace", i, 6, vm.Halted, nil, C{3})
	if len(pcs) != 3 || pcs[0] != 0 || pcs[1] != 4 || pcs[2] != 6 {
		t.Errorf("bad trace %v", pcs)
	}
	if i.InstructionCount() != 2 {
		t.Errorf("bad instruction count %d", i.InstructionCount())
	}
}

func TestInstructionCount(t *testing.T) {
	i := setup("104,1,3,0,104,2,104,3,99")
	if err := i.Execute(); err != nil {
		t.Fatalf("%+v", err)
	}
	if n := i.InstructionCount(); n != 1 {
		t.Fatalf("expected 1 instruction, got %d", n)
	}
	i.SetInput(0)
	for exp := int64(2); exp <= 3; exp++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
		if n := i.InstructionCount(); n != exp {
			t.Fatalf("expected %d instructions after Step, got %d", exp, n)
		}
	}
	// Execute starts a new count
	if err := i.Execute(); err != nil {
		t.Fatalf("%+v", err)
	}
	if n := i.InstructionCount(); n != 1 || i.State() != vm.Halted {
		t.Fatalf("expected 1 instruction and halted, got %d, %v", n, i.State())
	}
}

func TestDecode(t *testing.T) {
	for _, test := range []struct {
		ins   vm.Cell
		op    vm.Cell
		modes [vm.MaxParams]vm.Mode
	}{
		{4, 4, [3]vm.Mode{0, 0, 0}},
		{99, 99, [3]vm.Mode{0, 0, 0}},
		{1002, 2, [3]vm.Mode{0, 1, 0}},
		{10102, 2, [3]vm.Mode{1, 0, 1}},
		{21108, 8, [3]vm.Mode{1, 1, 2}},
		{204, 4, [3]vm.Mode{2, 0, 0}},
	} {
		op, modes := vm.Decode(test.ins)
		if op != test.op || modes != test.modes {
			t.Errorf("Decode(%d) = %d, %v; expected %d, %v", test.ins, op, modes, test.op, test.modes)
		}
		if enc := vm.Encode(op, modes[:]...); enc != test.ins {
			t.Errorf("Encode(%d, %v) = %d", op, modes, enc)
		}
	}
}

func TestStep(t *testing.T) {
	i := setup("1101,1,1,0,3,0,104,3,99")
	for _, exp := range []struct {
		pc    int
		state vm.State
	}{
		{4, vm.Ready},
		{4, vm.WaitingForInput},
		{4, vm.WaitingForInput},
	} {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
		if i.PC() != exp.pc || i.State() != exp.state {
			t.Fatalf("expected %v at %d, got %v at %d", exp.state, exp.pc, i.State(), i.PC())
		}
	}
	i.SetInput(5)
	for n := 0; n < 3; n++ {
		if err := i.Step(); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	if i.State() != vm.Halted || i.PC() != 8 || !equal(i.Outputs(), C{3}) || i.Peek(0) != 5 {
		t.Fatalf("bad final state: %v at %d, outputs %d", i.State(), i.PC(), i.Outputs())
	}
	if err := i.Step(); err != vm.ErrAlreadyHalted {
		t.Fatalf("expected ErrAlreadyHalted, got %v", err)
	}
}
