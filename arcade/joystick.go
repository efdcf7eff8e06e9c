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

package arcade

import (
	"bufio"
	"context"
	"io"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Joystick is a driver.Controller that reads moves from a keyboard: 'a' moves
// left, 'd' moves right and space stays put.
type Joystick struct {
	r *bufio.Reader
	w io.Writer
}

// NewJoystick returns a new Joystick reading keys from r. Invalid keys are
// reported to w, if not nil.
func NewJoystick(r io.Reader, w io.Writer) *Joystick {
	return &Joystick{bufio.NewReader(r), w}
}

var keys = map[rune]vm.Cell{
	'a': -1,
	'd': 1,
	' ': 0,
}

// Input implements driver.Controller.
func (j *Joystick) Input(ctx context.Context) (vm.Cell, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		r, _, err := j.r.ReadRune()
		if err != nil {
			return 0, errors.Wrap(err, "joystick")
		}
		if v, ok := keys[r]; ok {
			return v, nil
		}
		if j.w != nil {
			io.WriteString(j.w, "INVALID INPUT!\r\n")
		}
	}
}
