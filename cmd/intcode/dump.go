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
	"io"

	"github.com/db47h/intcode/internal/ew"
	"github.com/db47h/intcode/vm"
)

func writeCells(w io.Writer, a []vm.Cell) error {
	out := ew.New(w)
	for k, v := range a {
		if k > 0 {
			out.Write([]byte{','})
		}
		out.WriteInt(int64(v))
	}
	return out.Err
}

// dump writes the outputs of a program, if any, followed by a dump of its
// memory if mem is not nil.
func dump(w io.Writer, outputs []vm.Cell, mem []vm.Cell) error {
	out := ew.New(w)
	if len(outputs) > 0 {
		writeCells(out, outputs)
		out.Write([]byte{'\n'})
	}
	if mem != nil {
		writeCells(out, mem)
		out.Write([]byte{'\n'})
	}
	return out.Err
}
