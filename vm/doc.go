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

// Package vm implements an Intcode machine.
//
// An Instance interprets its memory as a program with an embedded data
// segment. Memory is a growable slice of 64 bits Cells, initialized from a
// Tape: reading beyond its end yields 0, writing beyond its end zero-extends
// it up to the written address.
//
// Instructions are decoded from a single Cell: the two least significant
// decimal digits are the opcode, the next three digits are the addressing
// modes of up to three parameters (0: position, 1: immediate, 2: relative).
//
//	opcode	asm	params	description
//	------	---	------	------------------------------------------------
//	1	add	a b d	d = a + b
//	2	mul	a b d	d = a * b
//	3	in	d	d = pending input, suspend if there is none
//	4	out	a	append a to the output sequence
//	5	jnz	a b	jump to b if a != 0
//	6	jz	a b	jump to b if a == 0
//	7	lt	a b d	d = 1 if a < b, else 0
//	8	eq	a b d	d = 1 if a == b, else 0
//	9	arb	a	add a to the relative base
//	99	hlt		halt
//
// The VM does no I/O of its own. An input instruction consumes a single
// pending value set with SetInput; if there is none, Execute returns with the
// instance in the WaitingForInput state and the PC still pointing at the input
// instruction. The caller then supplies a value and calls Execute again.
// Outputs accumulate until the caller drains them.
//
// This makes it easy to run several instances in lockstep, feeding the outputs
// of one to another, or to drive a single instance interactively. The package
// github.com/db47h/intcode/driver implements these patterns.
//
// An Instance must not be used concurrently from multiple goroutines.
package vm
