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

package asm

import (
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

func isLabel(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || i > 0 && (unicode.IsDigit(r) || r == '.' || r == '-')) {
			return false
		}
	}
	return true
}

var pow10 = [...]vm.Cell{100, 1000, 10000}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i      []vm.Cell
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	errs   ErrAsm
	org    bool
	ins    int       // address of the current instruction
	op     vm.Opcode // current instruction
	argn   int       // index of the next argument
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < 10 {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, p.pc+1-len(p.i))...)
	}
	p.i[p.pc] = v
	p.pc++
}

func (p *parser) pending() bool {
	return p.argn < p.op.Params
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	if !isLabel(name) {
		p.error(pos, "Invalid label name: "+strconv.Quote(name))
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(pos, "Label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.labelSite = labelSite{pos, p.pc}
		return
	}
	p.labels[name] = &label{labelSite{pos, p.pc}, nil}
}

// operand handles an instruction argument or a data cell.
func (p *parser) operand(s string, pos scanner.Position) {
	mode := vm.Position
	switch s[0] {
	case '#':
		mode, s = vm.Immediate, s[1:]
	case '@':
		mode, s = vm.Relative, s[1:]
	}
	if p.pending() {
		if mode == vm.Immediate && p.argn == p.op.Write {
			p.error(pos, "Immediate mode destination: "+p.s.TokenText())
		}
		p.i[p.ins] += vm.Cell(mode) * pow10[p.argn]
		p.argn++
	} else if mode != vm.Position {
		p.error(pos, "Addressing mode on data: "+p.s.TokenText())
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		p.write(vm.Cell(n))
		return
	}
	if !isLabel(s) {
		p.error(pos, "Invalid operand: "+p.s.TokenText())
		p.write(0)
		return
	}
	p.useLabel(s, pos)
	p.write(0)
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		pos := p.s.Position
		if tok != scanner.Ident {
			p.error(pos, "Unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		switch {
		case s == "(":
			// skip comments
			for tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")") {
				tok = p.s.Scan()
			}
			if tok == scanner.EOF {
				p.error(pos, "Unterminated comment")
				return nil, p.errs
			}
		case p.org:
			p.org = false
			n, err := strconv.ParseInt(s, 0, 64)
			if err != nil || n < 0 {
				p.error(pos, "Invalid .org address: "+s)
				break
			}
			p.pc = int(n)
		case s[0] == ':':
			if p.pending() {
				p.error(pos, "Unexpected label definition as argument: "+s)
				break
			}
			p.defineLabel(s[1:], pos)
		case s[0] == '.':
			if p.pending() {
				p.error(pos, "Unexpected directive as argument: "+s)
				break
			}
			switch s {
			case ".org":
				p.org = true
			default:
				p.error(pos, "Unknown dot directive: "+s)
			}
		default:
			if op, ok := vm.LookupName(s); ok {
				if p.pending() {
					p.error(pos, "Unexpected opcode as argument: "+s)
					break
				}
				p.op, _ = vm.Lookup(op)
				p.ins, p.argn = p.pc, 0
				p.write(op)
				break
			}
			p.operand(s, pos)
		}
	}
	if p.pending() {
		p.error(p.s.Pos(), "Missing argument for "+p.op.Name)
	}
	if p.org {
		p.error(p.s.Pos(), "Missing .org address")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i, nil
}
