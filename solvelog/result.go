// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solvelog reads the run summaries that a constraint solver
// benchmark sweep prints to its log.
//
// Only lines carrying the "dimension" marker at a fixed offset are run
// summaries; everything else in the log is ignored. A summary line
// looks like
//
//	Input dimension_25.txt - ffc - indomain - up Labeling: 120ms Constraints: 14ms Backtracks: 3
//
// and encodes one trial: the problem dimension, the labeling options
// (variable selection, value selection and ordering heuristics), and
// three measurements.
//
// The Reader is structured like bufio.Scanner. Per-line problems are
// reported as records rather than errors so a caller can skip them
// and keep reading.
package solvelog

import "fmt"

// A Key identifies one experiment configuration: the variable
// selection, value selection and ordering heuristics passed to the
// labeling predicate. Keys are comparable and may be used as map keys.
type Key struct {
	Variable string
	Value    string
	Order    string
}

// Less reports whether k sorts before o, comparing Variable, Value
// and Order lexicographically in that order.
func (k Key) Less(o Key) bool {
	if k.Variable != o.Variable {
		return k.Variable < o.Variable
	}
	if k.Value != o.Value {
		return k.Value < o.Value
	}
	return k.Order < o.Order
}

// Label returns the three fields joined by commas, as used in plot
// legends.
func (k Key) Label() string {
	return k.Variable + "," + k.Value + "," + k.Order
}

func (k Key) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.Variable, k.Value, k.Order)
}

// A Result is a single trial parsed from a run summary line.
type Result struct {
	Key Key

	// Dimension is the problem size of the input file.
	Dimension int

	// LabelingMS and ConstraintsMS are the labeling and constraint
	// propagation times in milliseconds.
	LabelingMS    int
	ConstraintsMS int

	// Backtracks is the number of backtracks during labeling.
	Backtracks int

	// fileName and line record where this Result was read from.
	fileName string
	line     int
}

// Pos returns the file name and line number of a Result that was read
// by a Reader. For Results that were not read from a file, it returns
// "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A Record is a single record read from a log. It is either a *Result
// or a *MalformedRecordError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*MalformedRecordError)(nil)

// A MalformedRecordError reports a marked line whose fields do not
// follow the summary grammar. It is not fatal: the Reader moves on to
// the next line.
type MalformedRecordError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *MalformedRecordError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *MalformedRecordError) Error() string {
	if e.FileName == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A MalformedInputError reports a line too short to hold the marker.
// Such a line is never a run summary.
type MalformedInputError struct {
	Len int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("line of %d bytes is shorter than the marker region", e.Len)
}
