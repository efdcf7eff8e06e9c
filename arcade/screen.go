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
	"io"

	"github.com/db47h/intcode/internal/ew"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Tile is a tile id.
type Tile int

// Tile ids.
const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

var tileChars = [...]string{" ", "█", "░", "─", "o"}

func (t Tile) String() string {
	if t < 0 || int(t) >= len(tileChars) {
		return "?"
	}
	return tileChars[t]
}

// MaxCoord is the largest screen coordinate accepted by Screen.Output.
const MaxCoord = 1 << 12

// Point is a screen position.
type Point struct {
	X, Y int
}

// Screen is the arcade display. It implements driver.OutputHandler.
type Screen struct {
	tiles   map[Point]Tile
	width   int
	height  int
	score   vm.Cell
	ball    Point
	paddle  Point
	pending []vm.Cell
}

// NewScreen returns a new, empty, screen.
func NewScreen() *Screen {
	return &Screen{tiles: make(map[Point]Tile)}
}

// Output processes draw commands. Incomplete triples are kept until the next
// call.
func (s *Screen) Output(out []vm.Cell) error {
	s.pending = append(s.pending, out...)
	for len(s.pending) >= 3 {
		x, y, id := s.pending[0], s.pending[1], s.pending[2]
		s.pending = s.pending[3:]
		if x == -1 && y == 0 {
			s.score = id
			continue
		}
		if x < 0 || y < 0 || x > MaxCoord || y > MaxCoord {
			return errors.Errorf("invalid screen position %d,%d", x, y)
		}
		t := Tile(id)
		if t < Empty || t > Ball {
			return errors.Errorf("invalid tile id %d at %d,%d", id, x, y)
		}
		p := Point{int(x), int(y)}
		s.tiles[p] = t
		switch t {
		case Ball:
			s.ball = p
		case Paddle:
			s.paddle = p
		}
		if p.X >= s.width {
			s.width = p.X + 1
		}
		if p.Y >= s.height {
			s.height = p.Y + 1
		}
	}
	return nil
}

// Score returns the current score.
func (s *Screen) Score() vm.Cell { return s.score }

// Ball returns the last known ball position.
func (s *Screen) Ball() Point { return s.ball }

// Paddle returns the last known paddle position.
func (s *Screen) Paddle() Point { return s.paddle }

// Size returns the screen size.
func (s *Screen) Size() (width, height int) { return s.width, s.height }

// Tile returns the tile at position p.
func (s *Screen) Tile(p Point) Tile { return s.tiles[p] }

// Blocks returns the number of block tiles on screen.
func (s *Screen) Blocks() int {
	n := 0
	for _, t := range s.tiles {
		if t == Block {
			n++
		}
	}
	return n
}

// Render writes the score and the screen contents to w.
func (s *Screen) Render(w io.Writer) error {
	out := ew.New(w)
	out.WriteString("CURRENT SCORE: ")
	out.WriteInt(int64(s.score))
	out.WriteString("\n")
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			out.WriteString(s.tiles[Point{x, y}].String())
		}
		out.WriteString("\n")
	}
	out.WriteString("\n")
	return out.Err
}
