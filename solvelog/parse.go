// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solvelog

import (
	"bytes"
	"errors"
	"strconv"
)

const (
	// Marker is the literal that identifies a run summary line.
	Marker = "dimension"

	markerOffset = 6
	markerEnd    = markerOffset + len(Marker)

	// dimensionOffset skips the marker and the one separator
	// character that follows it.
	dimensionOffset = markerEnd + 1
)

// Configurations using these heuristics can be excluded with
// Options.ExcludeSentinels.
const (
	SentinelVariable = "leftmost"
	SentinelValue    = "enum"
)

// Lines that parse but are excluded by Options.
var (
	ErrOutOfRange = errors.New("dimension outside the inclusive window")
	ErrSentinel   = errors.New("sentinel heuristic excluded")
)

// Options selects which trials a Reader accepts.
type Options struct {
	// MinDimension and MaxDimension bound the accepted dimensions,
	// inclusive.
	MinDimension int
	MaxDimension int

	// ExcludeSentinels drops trials whose variable heuristic is
	// SentinelVariable or whose value heuristic is SentinelValue.
	ExcludeSentinels bool
}

// DefaultOptions accepts every dimension of the table sweep and keeps
// sentinel heuristics.
var DefaultOptions = Options{
	MinDimension: 8,
	MaxDimension: 100,
}

func (o *Options) inWindow(dim int) bool {
	return dim >= o.MinDimension && dim <= o.MaxDimension
}

// MatchLine reports whether line carries the run summary marker.
// A line too short to hold the marker returns a *MalformedInputError;
// callers treat that as a non-match.
func MatchLine(line []byte) (bool, error) {
	if len(line) < markerEnd {
		return false, &MalformedInputError{Len: len(line)}
	}
	return string(line[markerOffset:markerEnd]) == Marker, nil
}

// ParseLine parses a line already accepted by MatchLine.
//
// It returns ErrOutOfRange or ErrSentinel if opts excludes the trial,
// and a *MalformedRecordError (without position) if the line does not
// follow the grammar. A nil opts means DefaultOptions.
func ParseLine(line []byte, opts *Options) (*Result, error) {
	res := new(Result)
	if err := parseRecord(line, opts, res); err != nil {
		return nil, err
	}
	return res, nil
}

func malformed(msg string) *MalformedRecordError {
	return &MalformedRecordError{Msg: msg}
}

// parseRecord fills res from line. The dimension is checked against
// the window before any of the heuristics are extracted.
func parseRecord(line []byte, opts *Options, res *Result) error {
	if opts == nil {
		opts = &DefaultOptions
	}
	if len(line) < dimensionOffset {
		return malformed("line too short for dimension")
	}
	// The prefix before the marker is arbitrary and may hold a '.'.
	dot := bytes.IndexByte(line[dimensionOffset:], '.')
	if dot < 0 {
		return malformed("missing '.' after dimension")
	}
	dot += dimensionOffset
	dim, err := atoi(line[dimensionOffset:dot])
	if err != nil {
		return malformed("parsing dimension: " + err.Error())
	}
	if !opts.inWindow(dim) {
		return ErrOutOfRange
	}
	res.Dimension = dim

	c := cursor{line: line, pos: dot + 1}
	variable, err := c.field("variable")
	if err != nil {
		return err
	}
	if opts.ExcludeSentinels && variable == SentinelVariable {
		return ErrSentinel
	}
	value, err := c.field("value")
	if err != nil {
		return err
	}
	if opts.ExcludeSentinels && value == SentinelValue {
		return ErrSentinel
	}
	order, err := c.field("order")
	if err != nil {
		return err
	}
	res.Key = Key{variable, value, order}

	if res.LabelingMS, err = c.millis("labeling time"); err != nil {
		return err
	}
	if res.ConstraintsMS, err = c.millis("constraint time"); err != nil {
		return err
	}
	res.Backtracks, err = c.rest("backtracks")
	return err
}

// cursor walks a summary line left to right. Every delimiter is
// followed by one separator character, which is skipped with it.
type cursor struct {
	line []byte
	pos  int
}

func (c *cursor) skipPast(delim byte) bool {
	i := bytes.IndexByte(c.line[c.pos:], delim)
	if i < 0 || c.pos+i+2 > len(c.line) {
		return false
	}
	c.pos += i + 2
	return true
}

// field reads the heuristic following the next '-', up to a space.
func (c *cursor) field(name string) (string, error) {
	if !c.skipPast('-') {
		return "", malformed("missing '-' before " + name)
	}
	n := bytes.IndexByte(c.line[c.pos:], ' ')
	if n < 0 {
		return "", malformed("missing space after " + name)
	}
	if n == 0 {
		return "", malformed("empty " + name)
	}
	f := string(c.line[c.pos : c.pos+n])
	c.pos += n
	return f, nil
}

var msSuffix = []byte("ms")

// millis reads the duration following the next ':', up to "ms".
func (c *cursor) millis(name string) (int, error) {
	if !c.skipPast(':') {
		return 0, malformed("missing ':' before " + name)
	}
	n := bytes.Index(c.line[c.pos:], msSuffix)
	if n < 0 {
		return 0, malformed("missing 'ms' after " + name)
	}
	v, err := atoi(bytes.TrimSpace(c.line[c.pos : c.pos+n]))
	if err != nil {
		return 0, malformed("parsing " + name + ": " + err.Error())
	}
	c.pos += n + len(msSuffix)
	return v, nil
}

// rest reads the count following the last ':' to the end of the line.
func (c *cursor) rest(name string) (int, error) {
	i := bytes.LastIndexByte(c.line[c.pos:], ':')
	if i < 0 || c.pos+i+2 > len(c.line) {
		return 0, malformed("missing ':' before " + name)
	}
	c.pos += i + 2
	v, err := atoi(bytes.TrimSpace(c.line[c.pos:]))
	if err != nil {
		return 0, malformed("parsing " + name + ": " + err.Error())
	}
	c.pos = len(c.line)
	return v, nil
}

var errNegative = errors.New("negative value")

// atoi parses a non-negative decimal integer.
func atoi(x []byte) (int, error) {
	v, err := strconv.Atoi(string(x))
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			return 0, ne.Err
		}
		return 0, err
	}
	if v < 0 {
		return 0, errNegative
	}
	return v, nil
}
