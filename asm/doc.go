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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	args	description
//	------	---	----	------------------------------------------------
//	1	add	a b d	d = a + b
//	2	mul	a b d	d = a * b
//	3	in	d	d = input
//	4	out	a	output a
//	5	jnz	a b	jump to b if a != 0
//	6	jz	a b	jump to b if a == 0
//	7	lt	a b d	d = 1 if a < b, else 0
//	8	eq	a b d	d = 1 if a == b, else 0
//	9	arb	a	adjust relative base by a
//	99	hlt		halt
//
// Arguments:
//
// Plain arguments use position mode. A '#' prefix selects immediate mode and a
// '@' prefix selects relative mode:
//
//	add #1 @-2 15	( mem[15] = 1 + mem[rb-2] )
//
// The destination argument (d) of an instruction cannot be in immediate mode.
// Arguments are either integers, in any format accepted by strconv.ParseInt
// with base 0, or label names.
//
// Data:
//
// Any integer or label found where an instruction is expected is written as is
// in the current cell. This is used to reserve data cells:
//
//	:count	0
//	:ptr	count
//
// Labels:
//
// A label definition is a name prefixed with ':'. Label names must start with a
// letter or '_'. Labels can be used before they are defined.
//
//	:loop
//		in	value
//		jz	value #done
//		out	value
//		jnz	#1 #loop
//	:done
//		hlt
//	:value 0
//
// Directives:
//
// The only supported directive is .org, which sets the address of the next
// assembled cell. Skipped cells are filled with 0:
//
//	.org 100
//	:buffer 0
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space. That is:
//
//	( this is a valid comment )
//	(this is not)
//
// Comments cannot be nested.
package asm
