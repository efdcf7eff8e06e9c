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

// Package driver runs Intcode programs on top of package vm.
//
// It implements the three ways of driving an instance that are used in
// practice:
//
//   - batch runs, where a program is run to completion with a list of inputs
//     (Run, FindNounVerb);
//   - chains of instances where the outputs of one instance are fed to the next
//     one, optionally looping back to the first (Amplify, MaxSignal);
//   - interactive sessions, where a single instance is resumed each time it
//     needs input, the input being decided from the outputs produced so far
//     (Session).
//
// All functions accept a context.Context that is checked between resumptions.
// Use the MaxSteps option to bound the number of instructions executed per
// resumption, which also allows cancellation of long running programs.
package driver

import (
	"context"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Errors returned by drivers.
var (
	ErrStepLimit      = errors.New("instruction limit reached")
	ErrInputExhausted = errors.New("program needs more input")
	ErrNoOutput       = errors.New("program produced no output")
	ErrDeadlock       = errors.New("all instances waiting for input")
)

type config struct {
	log      commonlog.Logger
	maxSteps int64
	parallel int
	vmOpts   []vm.Option
}

// Option configures a driver.
type Option func(*config)

// Logger sets the logger used by drivers. The default is the "intcode.driver"
// logger.
func Logger(l commonlog.Logger) Option {
	return func(c *config) { c.log = l }
}

// MaxSteps sets the maximum number of instructions executed each time an
// instance is resumed. 0, the default, means no limit.
func MaxSteps(n int64) Option {
	return func(c *config) { c.maxSteps = n }
}

// Parallel sets the maximum number of goroutines used by searches. The
// default is 1.
func Parallel(n int) Option {
	return func(c *config) { c.parallel = n }
}

// VMOptions sets options passed to vm.New for every instance created by a
// driver.
func VMOptions(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = append(c.vmOpts, opts...) }
}

func newConfig(opts []Option) *config {
	c := &config{parallel: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = commonlog.GetLogger("intcode.driver")
	}
	if c.parallel < 1 {
		c.parallel = 1
	}
	return c
}

// NewInstance creates a new instance of the program with the vm options set
// by VMOptions. It is meant for callers that drive an instance through a
// Session.
func NewInstance(tape vm.Tape, opts ...Option) (*vm.Instance, error) {
	return newConfig(opts).newVM(tape)
}

func (c *config) newVM(tape vm.Tape, opts ...vm.Option) (*vm.Instance, error) {
	return vm.New(tape, append(append([]vm.Option(nil), c.vmOpts...), opts...)...)
}

// resume runs i until it halts or waits for input.
func (c *config) resume(ctx context.Context, i *vm.Instance) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if c.maxSteps <= 0 {
		return i.Execute()
	}
	for n := int64(0); ; n++ {
		if n >= c.maxSteps {
			return errors.Wrapf(ErrStepLimit, "%d instructions executed, position %d", n, i.PC())
		}
		if n&1023 == 1023 {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}
		}
		if err := i.Step(); err != nil {
			return err
		}
		if i.State() != vm.Ready {
			return nil
		}
	}
}
