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

package driver

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Result holds the final state of a batch run.
type Result struct {
	Memory  []vm.Cell
	Outputs []vm.Cell
}

// Run runs the program on a new instance until it halts. Each time the
// instance needs input, the next value from inputs is supplied. Running out of
// inputs before the program halts is an error.
func Run(ctx context.Context, tape vm.Tape, inputs []vm.Cell, opts ...Option) (*Result, error) {
	c := newConfig(opts)
	i, err := c.newVM(tape)
	if err != nil {
		return nil, err
	}
	if err = c.feed(ctx, i, inputs); err != nil {
		return nil, err
	}
	return &Result{Memory: i.Memory(), Outputs: i.Outputs()}, nil
}

func (c *config) feed(ctx context.Context, i *vm.Instance, inputs []vm.Cell) error {
	for {
		if err := c.resume(ctx, i); err != nil {
			return err
		}
		switch i.State() {
		case vm.Halted:
			c.log.Debugf("halted after %d inputs, %d outputs", len(inputs), len(i.Outputs()))
			return nil
		case vm.WaitingForInput:
			if len(inputs) == 0 {
				return errors.Wrapf(ErrInputExhausted, "position %d", i.PC())
			}
			i.SetInput(inputs[0])
			inputs = inputs[1:]
		}
	}
}

// NounAddr and VerbAddr are the addresses of the memory cells patched by
// FindNounVerb.
const (
	NounAddr = 1
	VerbAddr = 2
)

// FindNounVerb searches for the noun and verb in the range [0, 99] that, once
// written at NounAddr and VerbAddr before running the program, produce target
// at address 0 when the program halts. Programs that fail for a given noun and
// verb are skipped.
func FindNounVerb(ctx context.Context, tape vm.Tape, target vm.Cell, opts ...Option) (noun, verb vm.Cell, err error) {
	c := newConfig(opts)
	for noun = 0; noun < 100; noun++ {
		for verb = 0; verb < 100; verb++ {
			if err = ctx.Err(); err != nil {
				return 0, 0, errors.WithStack(err)
			}
			i, err := c.newVM(tape, vm.Patch(NounAddr, noun), vm.Patch(VerbAddr, verb))
			if err != nil {
				return 0, 0, err
			}
			if err = c.feed(ctx, i, nil); err != nil {
				c.log.Debugf("noun %d, verb %d: %v", noun, verb, err)
				continue
			}
			if i.Peek(0) == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Errorf("no noun and verb produce %d", target)
}
