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

// Command intcode runs Intcode programs.
//
// Usage:
//
//	intcode [global options] command [command options] [program]
//
// Global options:
//
//	--config FILE
//		  load configuration from FILE (default: intcode.toml if present)
//	--debug
//		  print error stack traces
//	--verbosity value, -v value
//		  log verbosity (0: warnings and errors only)
//	--log-file FILE
//		  write logs to FILE instead of stderr
//
// Commands:
//
//	run       run a program to completion and print its outputs
//	search    find the noun and verb for which a program leaves the target value in cell 0
//	amplify   find the phase settings that produce the highest signal from an amplifier chain
//	arcade    count blocks or play an arcade program
//	asm       assemble a source file into a tape
//	disasm    disassemble a tape
//
// run: inputs are given with -i and consumed in order each time the program
// reads. When they are exhausted the program fails, unless --interactive is
// set, in which case values are read from stdin. Outputs are printed as a comma
// separated list. --dump also prints the memory contents upon exit and --trace
// disassembles each instruction to stderr as it is executed.
//
// arcade: without quarters, the program is run to completion and the number of
// block tiles left on screen is printed. With --quarters 2, the game is played
// by an autopilot that keeps the paddle under the ball. --keyboard switches the
// terminal to raw mode and lets you play with the a, d and space keys.
//
// Command line flags override the values read from the configuration file:
//
//	[run]
//	program = "input.txt"
//	inputs = [1]
//	max-steps = 0
//
//	[amplify]
//	phases = [5, 6, 7, 8, 9]
//	feedback = true
//	parallel = 4
//
//	[arcade]
//	quarters = 2
//	visualize = false
//	delay = "1ms"
//
//	[log]
//	verbosity = 0
//	file = ""
//
// The program file, if not given on the command line, defaults to the program
// of the [run] section.
package main
