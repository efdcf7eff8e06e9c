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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
)

// console is a driver.Controller that returns queued values first, then
// prompts for values on the terminal.
type console struct {
	queue  []vm.Cell
	s      *bufio.Scanner
	prompt io.Writer
}

func newConsole(r io.Reader, prompt io.Writer, queue []vm.Cell) *console {
	return &console{queue: queue, s: bufio.NewScanner(r), prompt: prompt}
}

func (con *console) Input(ctx context.Context) (vm.Cell, error) {
	if len(con.queue) > 0 {
		v := con.queue[0]
		con.queue = con.queue[1:]
		return v, nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		io.WriteString(con.prompt, "input> ")
		if !con.s.Scan() {
			if err := con.s.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		line := strings.TrimSpace(con.s.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseInt(line, 0, 64)
		if err != nil {
			fmt.Fprintf(con.prompt, "invalid input %q\n", line)
			continue
		}
		return vm.Cell(v), nil
	}
}
