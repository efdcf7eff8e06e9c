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
	"fmt"
	"io"
	"os"

	"github.com/db47h/intcode/arcade"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/driver"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// vt100 clear screen and cursor home
const clearScreen = "\x1b[2J\x1b[H"

var (
	runCommand = &cli.Command{
		Name:      "run",
		Usage:     "run a program to completion and print its outputs",
		ArgsUsage: "[program]",
		Action:    runProgram,
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{Name: "input", Aliases: []string{"i"}, Usage: "input `VALUE` (can be specified multiple times)"},
			&cli.Int64Flag{Name: "max-steps", Usage: "abort after `N` instructions per resumption (0: no limit)"},
			&cli.Int64Flag{Name: "noun", Usage: "set memory cell 1 to `VALUE` before running"},
			&cli.Int64Flag{Name: "verb", Usage: "set memory cell 2 to `VALUE` before running"},
			&cli.BoolFlag{Name: "interactive", Usage: "prompt for input once the -input values are exhausted"},
			&cli.BoolFlag{Name: "trace", Usage: "disassemble each instruction to stderr before executing it"},
			&cli.BoolFlag{Name: "dump", Usage: "dump memory upon exit"},
		},
	}

	searchCommand = &cli.Command{
		Name:      "search",
		Usage:     "find the noun and verb for which a program leaves the target value in cell 0",
		ArgsUsage: "[program]",
		Action:    search,
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "target", Value: 19690720, Usage: "target `VALUE`"},
		},
	}

	amplifyCommand = &cli.Command{
		Name:      "amplify",
		Usage:     "find the phase settings that produce the highest signal from an amplifier chain",
		ArgsUsage: "[program]",
		Action:    amplify,
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{Name: "phases", Aliases: []string{"p"}, Usage: "phase `SETTING` (can be specified multiple times)"},
			&cli.BoolFlag{Name: "feedback", Usage: "feedback loop mode"},
			&cli.IntFlag{Name: "parallel", Usage: "number of concurrent searches"},
			&cli.BoolFlag{Name: "sequence", Usage: "run the phase settings in the given order instead of searching"},
		},
	}

	arcadeCommand = &cli.Command{
		Name:      "arcade",
		Usage:     "count blocks or play an arcade program",
		ArgsUsage: "[program]",
		Action:    playArcade,
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "quarters", Usage: "insert `N` quarters and play (2 for free play)"},
			&cli.BoolFlag{Name: "visualize", Usage: "render the screen after each frame"},
			&cli.DurationFlag{Name: "delay", Usage: "autopilot delay between moves"},
			&cli.BoolFlag{Name: "keyboard", Usage: "play with the keyboard (a: left, d: right, space: stay)"},
		},
	}

	asmCommand = &cli.Command{
		Name:      "asm",
		Usage:     "assemble a source file into a tape",
		ArgsUsage: "source",
		Action:    assemble,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "save tape to `FILE` instead of stdout"},
		},
	}

	disasmCommand = &cli.Command{
		Name:      "disasm",
		Usage:     "disassemble a tape",
		ArgsUsage: "program",
		Action:    disassemble,
	}
)

func loadProgram(c *cli.Context) (vm.Tape, error) {
	name := c.Args().First()
	if name == "" {
		name = getConfig(c).Run.Program
	}
	if name == "" {
		return nil, errors.New("no program file specified")
	}
	log.Debugf("loading %s", name)
	return vm.Load(name)
}

func cells(v []int64) []vm.Cell {
	r := make([]vm.Cell, len(v))
	for k := range v {
		r[k] = vm.Cell(v[k])
	}
	return r
}

func tracer(w io.Writer) vm.Tracer {
	return func(i *vm.Instance, pc int) {
		fmt.Fprintf(w, "% 10d\t", pc)
		if mem := i.Memory(); pc < len(mem) {
			asm.Disassemble(mem, pc, w)
		}
		io.WriteString(w, "\n")
	}
}

func runProgram(c *cli.Context) error {
	cfg := getConfig(c)
	tape, err := loadProgram(c)
	if err != nil {
		return err
	}
	inputs := cfg.Run.Inputs
	if c.IsSet("input") {
		inputs = c.Int64Slice("input")
	}
	maxSteps := cfg.Run.MaxSteps
	if c.IsSet("max-steps") {
		maxSteps = c.Int64("max-steps")
	}
	var vmOpts []vm.Option
	if c.IsSet("noun") {
		vmOpts = append(vmOpts, vm.Patch(driver.NounAddr, vm.Cell(c.Int64("noun"))))
	}
	if c.IsSet("verb") {
		vmOpts = append(vmOpts, vm.Patch(driver.VerbAddr, vm.Cell(c.Int64("verb"))))
	}
	if c.Bool("trace") {
		vmOpts = append(vmOpts, vm.Trace(tracer(c.App.ErrWriter)))
	}
	opts := []driver.Option{
		driver.Logger(log),
		driver.MaxSteps(maxSteps),
	}

	w := bufio.NewWriter(c.App.Writer)
	defer w.Flush()

	if c.Bool("interactive") {
		i, err := vm.New(tape, vmOpts...)
		if err != nil {
			return err
		}
		con := newConsole(c.App.Reader, c.App.ErrWriter, cells(inputs))
		s := driver.NewSession(i, driver.OutputHandlerFunc(func(out []vm.Cell) error {
			writeCells(w, out)
			w.WriteByte('\n')
			return w.Flush()
		}), con, opts...)
		if err = s.Run(c.Context); err != nil {
			return err
		}
		if c.Bool("dump") {
			return dump(w, nil, i.Memory())
		}
		return nil
	}

	res, err := driver.Run(c.Context, tape, cells(inputs), append(opts, driver.VMOptions(vmOpts...))...)
	if err != nil {
		return err
	}
	var mem []vm.Cell
	if c.Bool("dump") {
		mem = res.Memory
	}
	return dump(w, res.Outputs, mem)
}

func search(c *cli.Context) error {
	tape, err := loadProgram(c)
	if err != nil {
		return err
	}
	noun, verb, err := driver.FindNounVerb(c.Context, tape, vm.Cell(c.Int64("target")), driver.Logger(log))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "noun: %d, verb: %d, answer: %d\n", noun, verb, 100*noun+verb)
	return err
}

func amplify(c *cli.Context) error {
	cfg := getConfig(c)
	tape, err := loadProgram(c)
	if err != nil {
		return err
	}
	feedback := cfg.Amplify.Feedback
	if c.IsSet("feedback") {
		feedback = c.Bool("feedback")
	}
	phases := cells(cfg.Amplify.Phases)
	if c.IsSet("phases") {
		phases = cells(c.Int64Slice("phases"))
	}
	if len(phases) == 0 {
		phases = []vm.Cell{0, 1, 2, 3, 4}
		if feedback {
			phases = []vm.Cell{5, 6, 7, 8, 9}
		}
	}
	parallel := cfg.Amplify.Parallel
	if c.IsSet("parallel") {
		parallel = c.Int("parallel")
	}
	opts := []driver.Option{driver.Logger(log), driver.Parallel(parallel)}

	if c.Bool("sequence") {
		signal, err := driver.Amplify(c.Context, tape, phases, feedback, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.App.Writer, "signal: %d\n", signal)
		return err
	}
	signal, best, err := driver.MaxSignal(c.Context, tape, phases, feedback, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "max signal: %d, phases: %s\n", signal, vm.Tape(best))
	return err
}

func playArcade(c *cli.Context) error {
	cfg := getConfig(c)
	tape, err := loadProgram(c)
	if err != nil {
		return err
	}
	quarters := cfg.Arcade.Quarters
	if c.IsSet("quarters") {
		quarters = c.Int64("quarters")
	}
	visualize := cfg.Arcade.Visualize
	if c.IsSet("visualize") {
		visualize = c.Bool("visualize")
	}
	delay := cfg.Arcade.Delay
	if c.IsSet("delay") {
		delay = c.Duration("delay")
	}
	keyboard := c.Bool("keyboard")

	if quarters == 0 && !keyboard {
		n, err := arcade.CountBlocks(c.Context, tape, driver.Logger(log))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.App.Writer, "blocks: %d\n", n)
		return err
	}

	s := arcade.NewScreen()
	var ctl driver.Controller = &arcade.Autopilot{Screen: s, Delay: delay}
	if keyboard {
		if f, ok := c.App.Reader.(*os.File); ok {
			if tearDown, err := setRawIO(f); err != nil {
				log.Warningf("raw terminal IO not available: %v", err)
			} else {
				defer tearDown()
			}
		}
		ctl = arcade.NewJoystick(c.App.Reader, c.App.ErrWriter)
		visualize = true
	}
	gc := arcade.Config{Quarters: vm.Cell(quarters)}
	if visualize {
		gc.Render = c.App.Writer
		gc.Clear = clearScreen
	}
	won, err := arcade.Play(c.Context, tape, s, ctl, gc, driver.Logger(log))
	if err != nil {
		return err
	}
	result := "game over"
	if won {
		result = "you win"
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s! score: %d\n", result, s.Score())
	return err
}

func assemble(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("no source file specified")
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	tape, err := asm.Assemble(name, f)
	if err != nil {
		return err
	}
	if out := c.String("output"); out != "" {
		log.Infof("writing %d cells to %s", len(tape), out)
		return tape.Save(out)
	}
	_, err = fmt.Fprintln(c.App.Writer, tape)
	return err
}

func disassemble(c *cli.Context) error {
	tape, err := loadProgram(c)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(c.App.Writer)
	if err = asm.DisassembleAll(tape, 0, w); err != nil {
		return err
	}
	return w.Flush()
}
