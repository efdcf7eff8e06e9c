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

// Package ew provides an io.Writer wrapper that latches the first write error.
package ew

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer. Once a write fails, all subsequent writes are
// no-ops returning the same error.
type ErrWriter struct {
	w   io.Writer
	Err error
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteString writes s.
func (w *ErrWriter) WriteString(s string) (n int, err error) {
	return w.Write([]byte(s))
}

// WriteInt writes the decimal representation of v.
func (w *ErrWriter) WriteInt(v int64) (n int, err error) {
	var b [20]byte
	return w.Write(strconv.AppendInt(b[:0], v, 10))
}

// New returns w as an *ErrWriter, wrapping it if needed.
func New(w io.Writer) *ErrWriter {
	if e, ok := w.(*ErrWriter); ok {
		return e
	}
	return &ErrWriter{w, nil}
}
