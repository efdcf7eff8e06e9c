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

package vm

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/ew"
	"github.com/pkg/errors"
)

// Tape is an Intcode program: the initial contents of memory.
type Tape []Cell

// Parse reads a comma separated list of decimal integers from r. Surrounding
// white space is ignored, both around the whole tape and around each value.
func Parse(r io.Reader) (Tape, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return ParseString(string(b))
}

// ParseString parses a tape from its textual representation.
func ParseString(s string) (Tape, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty tape")
	}
	fields := strings.Split(s, ",")
	t := make(Tape, len(fields))
	for k, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", k)
		}
		t[k] = Cell(n)
	}
	return t, nil
}

// MustParse is like ParseString but panics on error.
func MustParse(s string) Tape {
	t, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Load loads a tape from file fileName.
func Load(fileName string) (Tape, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	t, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return t, nil
}

// Save writes the tape to file fileName.
func (t Tape) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "flush failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	out := ew.New(w)
	t.write(out)
	out.Write([]byte{'\n'})
	return errors.Wrap(out.Err, "save failed")
}

func (t Tape) write(w *ew.ErrWriter) error {
	for k, v := range t {
		if k > 0 {
			w.Write([]byte{','})
		}
		w.WriteInt(int64(v))
	}
	return w.Err
}

func (t Tape) String() string {
	var b strings.Builder
	t.write(ew.New(&b))
	return b.String()
}
