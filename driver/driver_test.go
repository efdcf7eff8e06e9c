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

package driver_test

import (
	"context"
	"testing"

	"github.com/db47h/intcode/driver"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type C []vm.Cell

const compare8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

func TestRun(t *testing.T) {
	ctx := context.Background()
	for _, test := range []struct {
		in  vm.Cell
		out vm.Cell
	}{{7, 999}, {8, 1000}, {9, 1001}} {
		res, err := driver.Run(ctx, vm.MustParse(compare8), C{test.in})
		require.NoError(t, err)
		assert.Equal(t, []vm.Cell{test.out}, res.Outputs)
	}

	res, err := driver.Run(ctx, vm.MustParse("1,0,0,0,99"), nil)
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{2, 0, 0, 0, 99}, res.Memory)
	assert.Empty(t, res.Outputs)
}

func TestRun_patch(t *testing.T) {
	res, err := driver.Run(context.Background(), vm.MustParse("1,0,0,0,99"), nil,
		driver.VMOptions(vm.Patch(1, 4), vm.Patch(2, 4)))
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(198), res.Memory[0])
}

func TestRun_errors(t *testing.T) {
	ctx := context.Background()

	_, err := driver.Run(ctx, vm.MustParse("3,0,3,0,99"), C{1})
	assert.Equal(t, driver.ErrInputExhausted, errors.Cause(err))

	_, err = driver.Run(ctx, vm.MustParse("1105,1,0"), nil, driver.MaxSteps(100))
	assert.Equal(t, driver.ErrStepLimit, errors.Cause(err))

	_, err = driver.Run(ctx, vm.MustParse("1,0,0,0,42"), nil)
	var de *vm.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, vm.Cell(42), de.Opcode)
	assert.Equal(t, 4, de.PC)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = driver.Run(cctx, vm.MustParse("99"), nil)
	assert.Equal(t, context.Canceled, errors.Cause(err))
	_, err = driver.Run(cctx, vm.MustParse("1105,1,0"), nil, driver.MaxSteps(1<<20))
	assert.Equal(t, context.Canceled, errors.Cause(err))
}

func TestFindNounVerb(t *testing.T) {
	ctx := context.Background()
	tape := vm.MustParse("1,0,0,0,99")

	noun, verb, err := driver.FindNounVerb(ctx, tape, 100)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(0), noun)
	assert.Equal(t, vm.Cell(4), verb)

	_, _, err = driver.FindNounVerb(ctx, tape, -1)
	assert.Error(t, err)
}

var amplifyTests = []struct {
	name     string
	code     string
	phases   C
	feedback bool
	signal   vm.Cell
}{
	{"serial 1", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", C{4, 3, 2, 1, 0}, false, 43210},
	{"serial 2", "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0", C{0, 1, 2, 3, 4}, false, 54321},
	{"serial 3", "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0", C{1, 0, 4, 3, 2}, false, 65210},
	{"feedback 1", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5", C{9, 8, 7, 6, 5}, true, 139629729},
	{"feedback 2", "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10", C{9, 7, 8, 5, 6}, true, 18216},
}

func TestAmplify(t *testing.T) {
	for _, test := range amplifyTests {
		t.Run(test.name, func(t *testing.T) {
			s, err := driver.Amplify(context.Background(), vm.MustParse(test.code), test.phases, test.feedback)
			require.NoError(t, err)
			assert.Equal(t, test.signal, s)
		})
	}
}

func TestMaxSignal(t *testing.T) {
	for _, test := range amplifyTests {
		t.Run(test.name, func(t *testing.T) {
			phases := C{0, 1, 2, 3, 4}
			if test.feedback {
				phases = C{5, 6, 7, 8, 9}
			}
			s, perm, err := driver.MaxSignal(context.Background(), vm.MustParse(test.code), phases, test.feedback, driver.Parallel(4))
			require.NoError(t, err)
			assert.Equal(t, test.signal, s)
			assert.Equal(t, []vm.Cell(test.phases), perm)
		})
	}
}

func TestAmplify_errors(t *testing.T) {
	ctx := context.Background()

	_, err := driver.Amplify(ctx, vm.MustParse("99"), nil, false)
	assert.Error(t, err)

	// reads the phase setting and halts
	_, err = driver.Amplify(ctx, vm.MustParse("3,0,99"), C{1, 2}, false)
	assert.Equal(t, driver.ErrNoOutput, errors.Cause(err))

	// waits for a third input that never comes
	_, err = driver.Amplify(ctx, vm.MustParse("3,0,3,0,3,0,99"), C{1, 2}, true)
	assert.Equal(t, driver.ErrDeadlock, errors.Cause(err))
}

// outputs 1, 2, 3, then reads a value. Halts if it is 0, else outputs it and
// starts over.
const triples = "104,1,104,2,104,3,3,30,1006,30,16,4,30,1105,1,0,99"

func TestSession(t *testing.T) {
	var outputs [][]vm.Cell
	inputs := C{5, 0}
	i, err := vm.New(vm.MustParse(triples))
	require.NoError(t, err)
	s := driver.NewSession(i,
		driver.OutputHandlerFunc(func(out []vm.Cell) error {
			outputs = append(outputs, out)
			return nil
		}),
		driver.ControllerFunc(func(context.Context) (vm.Cell, error) {
			v := inputs[0]
			inputs = inputs[1:]
			return v, nil
		}))
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, [][]vm.Cell{{1, 2, 3}, {5, 1, 2, 3}}, outputs)
	assert.Equal(t, vm.Halted, i.State())
	assert.Equal(t, 3, s.Resumptions())
	assert.Empty(t, inputs)
}

func TestSession_errors(t *testing.T) {
	ctx := context.Background()
	i, err := vm.New(vm.MustParse(triples))
	require.NoError(t, err)
	s := driver.NewSession(i, nil, nil)
	_, err = s.Step(ctx)
	assert.Equal(t, driver.ErrInputExhausted, errors.Cause(err))

	i, err = vm.New(vm.MustParse(triples))
	require.NoError(t, err)
	boom := errors.New("boom")
	s = driver.NewSession(i, driver.OutputHandlerFunc(func([]vm.Cell) error { return boom }), nil)
	_, err = s.Step(ctx)
	assert.Equal(t, boom, errors.Cause(err))

	i, err = vm.New(vm.MustParse(triples))
	require.NoError(t, err)
	s = driver.NewSession(i, nil, driver.ControllerFunc(func(context.Context) (vm.Cell, error) { return 0, boom }))
	assert.Equal(t, boom, errors.Cause(s.Run(ctx)))
}
