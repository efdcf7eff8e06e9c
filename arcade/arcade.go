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

// Package arcade implements the screen and joystick of an Intcode arcade
// cabinet.
//
// The arcade program draws by outputting triples x, y, id where id is a Tile.
// The special triple -1, 0, score updates the score display. Between frames,
// the program reads the joystick position: -1 (left), 0 (neutral), 1 (right).
package arcade

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/db47h/intcode/driver"
	"github.com/db47h/intcode/vm"
)

// QuarterAddr is the address of the memory cell that holds the number of
// quarters inserted. Setting it to 2 enables free play.
const QuarterAddr = 0

// Config configures a game.
type Config struct {
	// Quarters to insert before starting the game. 0 leaves the program
	// unmodified.
	Quarters vm.Cell
	// If not nil, the screen is rendered to Render after each frame. Each frame
	// is written with a single call to Render.Write.
	Render io.Writer
	// Clear is written to Render before each frame.
	Clear string
}

// Play runs the arcade program on a new instance until it halts, displaying
// on s and reading the joystick from ctl. It returns true if all blocks have
// been broken.
func Play(ctx context.Context, tape vm.Tape, s *Screen, ctl driver.Controller, cfg Config, opts ...driver.Option) (won bool, err error) {
	if cfg.Quarters != 0 {
		opts = append(opts[:len(opts):len(opts)], driver.VMOptions(vm.Patch(QuarterAddr, cfg.Quarters)))
	}
	i, err := driver.NewInstance(tape, opts...)
	if err != nil {
		return false, err
	}
	out := driver.OutputHandler(s)
	if cfg.Render != nil {
		var frame bytes.Buffer
		out = driver.OutputHandlerFunc(func(o []vm.Cell) error {
			if err := s.Output(o); err != nil {
				return err
			}
			frame.Reset()
			frame.WriteString(cfg.Clear)
			s.Render(&frame)
			_, err := cfg.Render.Write(frame.Bytes())
			return err
		})
	}
	if err = driver.NewSession(i, out, ctl, opts...).Run(ctx); err != nil {
		return false, err
	}
	return s.Blocks() == 0, nil
}

// CountBlocks runs the arcade program without a joystick and returns the
// number of block tiles on screen when it halts.
func CountBlocks(ctx context.Context, tape vm.Tape, opts ...driver.Option) (int, error) {
	res, err := driver.Run(ctx, tape, nil, opts...)
	if err != nil {
		return 0, err
	}
	s := NewScreen()
	if err = s.Output(res.Outputs); err != nil {
		return 0, err
	}
	return s.Blocks(), nil
}

// Autopilot is a driver.Controller that moves the paddle toward the ball.
type Autopilot struct {
	Screen *Screen
	// Delay slows down the game. Useful when rendering.
	Delay time.Duration
}

// Input implements driver.Controller.
func (a *Autopilot) Input(ctx context.Context) (vm.Cell, error) {
	if a.Delay > 0 {
		t := time.NewTimer(a.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	}
	ball, paddle := a.Screen.Ball(), a.Screen.Paddle()
	switch {
	case ball.X < paddle.X:
		return -1, nil
	case ball.X > paddle.X:
		return 1, nil
	}
	return 0, nil
}
