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
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Amplify runs a chain of instances of the same program, one per phase
// setting. Each instance first receives its phase setting as input, then the
// first instance receives 0. The outputs of each instance are fed as inputs to
// the next one.
//
// If feedback is true, the outputs of the last instance are fed back to the
// first one, and the instances are resumed in turn until they all halt.
//
// Amplify returns the last value output by the last instance.
func Amplify(ctx context.Context, tape vm.Tape, phases []vm.Cell, feedback bool, opts ...Option) (vm.Cell, error) {
	return newConfig(opts).amplify(ctx, tape, phases, feedback)
}

func (c *config) amplify(ctx context.Context, tape vm.Tape, phases []vm.Cell, feedback bool) (vm.Cell, error) {
	n := len(phases)
	if n == 0 {
		return 0, errors.New("no phase settings")
	}
	amps := make([]*vm.Instance, n)
	queues := make([][]vm.Cell, n)
	for k, p := range phases {
		var err error
		if amps[k], err = c.newVM(tape); err != nil {
			return 0, err
		}
		queues[k] = []vm.Cell{p}
	}
	queues[0] = append(queues[0], 0)

	var (
		signal  vm.Cell
		signals int
		halted  int
	)
	for halted < n {
		progress := false
		for k, amp := range amps {
			for amp.State() != vm.Halted {
				if amp.State() == vm.WaitingForInput {
					if len(queues[k]) == 0 {
						break
					}
					amp.SetInput(queues[k][0])
					queues[k] = queues[k][1:]
					progress = true
				}
				if err := c.resume(ctx, amp); err != nil {
					return 0, errors.Wrapf(err, "amplifier %d", k)
				}
				out := amp.DrainOutputs()
				if len(out) > 0 {
					progress = true
				}
				if k == n-1 {
					if len(out) > 0 {
						signal = out[len(out)-1]
						signals += len(out)
					}
					if !feedback {
						continue
					}
				}
				next := (k + 1) % n
				queues[next] = append(queues[next], out...)
			}
		}
		halted = 0
		for _, amp := range amps {
			if amp.State() == vm.Halted {
				halted++
			}
		}
		if halted < n && !progress {
			return 0, ErrDeadlock
		}
	}
	if signals == 0 {
		return 0, ErrNoOutput
	}
	return signal, nil
}

// MaxSignal runs Amplify with every permutation of the given phase settings and
// returns the highest signal along with the phase settings that produced it.
// When several permutations produce the same signal, the lexicographically
// smallest one is returned.
//
// Permutations are evaluated concurrently according to the Parallel option.
func MaxSignal(ctx context.Context, tape vm.Tape, phases []vm.Cell, feedback bool, opts ...Option) (vm.Cell, []vm.Cell, error) {
	c := newConfig(opts)
	if len(phases) == 0 {
		return 0, nil, errors.New("no phase settings")
	}
	var (
		mu   sync.Mutex
		best vm.Cell
		perm []vm.Cell
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	permutations(phases, func(p []vm.Cell) {
		p = append([]vm.Cell(nil), p...)
		g.Go(func() error {
			s, err := c.amplify(ctx, tape, p, feedback)
			if err != nil {
				return errors.Wrapf(err, "phases %v", p)
			}
			mu.Lock()
			defer mu.Unlock()
			if perm == nil || s > best || s == best && less(p, perm) {
				best, perm = s, p
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	c.log.Infof("max signal %d with phases %v", best, perm)
	return best, perm, nil
}

func less(a, b []vm.Cell) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// permutations calls fn for each permutation of s, using Heap's algorithm. fn
// must not retain its argument.
func permutations(s []vm.Cell, fn func([]vm.Cell)) {
	a := append([]vm.Cell(nil), s...)
	c := make([]int, len(a))
	fn(a)
	for i := 0; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			fn(a)
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}
