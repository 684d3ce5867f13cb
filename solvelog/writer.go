// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solvelog

import (
	"bytes"
	"fmt"
	"io"
)

// A Writer writes trials as run summary lines that a Reader parses
// back into the same Results.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewWriter returns a writer that writes run summaries to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes res as one line.
func (w *Writer) Write(res *Result) error {
	w.buf.Reset()
	fmt.Fprintf(&w.buf, "Input %s_%d.txt - %s - %s - %s Labeling: %dms Constraints: %dms Backtracks: %d\n",
		Marker, res.Dimension,
		res.Key.Variable, res.Key.Value, res.Key.Order,
		res.LabelingMS, res.ConstraintsMS, res.Backtracks)
	_, err := w.w.Write(w.buf.Bytes())
	return err
}
