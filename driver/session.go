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

// OutputHandler consumes the outputs produced by an instance between two
// resumptions.
type OutputHandler interface {
	Output(out []vm.Cell) error
}

// OutputHandlerFunc adapts a function to the OutputHandler interface.
type OutputHandlerFunc func(out []vm.Cell) error

// Output calls f(out).
func (f OutputHandlerFunc) Output(out []vm.Cell) error { return f(out) }

// Controller provides input to an interactive session.
type Controller interface {
	Input(ctx context.Context) (vm.Cell, error)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(ctx context.Context) (vm.Cell, error)

// Input calls f(ctx).
func (f ControllerFunc) Input(ctx context.Context) (vm.Cell, error) { return f(ctx) }

// Session drives a single instance interactively: each time the instance
// suspends, its pending outputs are handed to an OutputHandler, then a
// Controller decides the next input.
type Session struct {
	i       *vm.Instance
	out     OutputHandler
	ctl     Controller
	c       *config
	resumes int
}

// NewSession returns a new session for instance i.
func NewSession(i *vm.Instance, out OutputHandler, ctl Controller, opts ...Option) *Session {
	return &Session{i: i, out: out, ctl: ctl, c: newConfig(opts)}
}

// Instance returns the instance driven by the session.
func (s *Session) Instance() *vm.Instance {
	return s.i
}

// Resumptions returns the number of times the instance has been resumed.
func (s *Session) Resumptions() int {
	return s.resumes
}

// Step resumes the instance once and hands its outputs to the output handler.
// If the instance is then waiting for input, the controller is queried and
// the input is set, ready for the next call to Step. It returns true once the
// instance has halted.
func (s *Session) Step(ctx context.Context) (done bool, err error) {
	if err = s.c.resume(ctx, s.i); err != nil {
		return false, err
	}
	s.resumes++
	if out := s.i.DrainOutputs(); len(out) > 0 && s.out != nil {
		if err = s.out.Output(out); err != nil {
			return false, errors.Wrap(err, "output handler")
		}
	}
	switch s.i.State() {
	case vm.Halted:
		s.c.log.Debugf("halted after %d resumptions", s.resumes)
		return true, nil
	case vm.WaitingForInput:
		if s.ctl == nil {
			return false, errors.Wrapf(ErrInputExhausted, "position %d", s.i.PC())
		}
		v, err := s.ctl.Input(ctx)
		if err != nil {
			return false, errors.Wrap(err, "controller")
		}
		s.i.SetInput(v)
	}
	return false, nil
}

// Run calls Step until the instance halts or an error occurs.
func (s *Session) Run(ctx context.Context) error {
	for {
		done, err := s.Step(ctx)
		if err != nil || done {
			return err
		}
	}
}
