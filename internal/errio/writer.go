// This file is part of hackvm - https://github.com/hackvm/translator
//
// Copyright 2026 The hackvm Authors
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

// Package errio provides a line writer that latches I/O errors.
package errio

import (
	"io"

	"github.com/pkg/errors"
)

// Writer is a simple wrapper to track io errors. Once a write fails,
// every later call keeps returning the same error, so emitters can write
// unchecked and callers check Err once at the end.
type Writer struct {
	w   io.Writer
	Err error
}

// NewWriter returns a new Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	if w.Err != nil {
		return
	}
	io.WriteString(w, s)
	io.WriteString(w, "\n")
}
