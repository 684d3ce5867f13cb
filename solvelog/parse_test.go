// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solvelog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const sampleLine = "Input dimension_25.txt - ffc - indomain - up Labeling: 120ms Constraints: 14ms Backtracks: 3"

func TestMatchLine(t *testing.T) {
	for _, test := range []struct {
		line  string
		match bool
		short bool
	}{
		{"", false, true},
		{"Input dimens", false, true},
		{"Input dimension", true, false},
		{sampleLine, true, false},
		{"Input dimensiom_25.txt - a - b - c", false, false},
		{"% Run: dimension_25.txt", false, false},
	} {
		ok, err := MatchLine([]byte(test.line))
		assert.Equal(t, test.match, ok, "line %q", test.line)
		if test.short {
			var ie *MalformedInputError
			assert.True(t, errors.As(err, &ie), "line %q: want *MalformedInputError, got %v", test.line, err)
		} else {
			assert.NoError(t, err, "line %q", test.line)
		}
	}
}

func TestParseLine(t *testing.T) {
	res, err := ParseLine([]byte(sampleLine), nil)
	require.NoError(t, err)
	assert.Equal(t, Key{"ffc", "indomain", "up"}, res.Key)
	assert.Equal(t, 25, res.Dimension)
	assert.Equal(t, 120, res.LabelingMS)
	assert.Equal(t, 14, res.ConstraintsMS)
	assert.Equal(t, 3, res.Backtracks)
}

func TestParseLineTolerance(t *testing.T) {
	// Trailing white space and a carriage return after the
	// backtrack count are not part of the number.
	res, err := ParseLine([]byte(sampleLine+" \r"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Backtracks)

	// Heuristics may contain '-' and ':' once they are delimited.
	res, err = ParseLine([]byte("Input dimension_9.txt - first-fail - in:split - down Labeling: 1ms Constraints: 2ms Backtracks: 0"), nil)
	require.NoError(t, err)
	assert.Equal(t, Key{"first-fail", "in:split", "down"}, res.Key)
	assert.Equal(t, 9, res.Dimension)
}

func TestParseLinePrefix(t *testing.T) {
	// The six bytes before the marker are not interpreted, even when
	// they hold a '.'.
	for _, prefix := range []string{"Input ", "[1.5] ", "......"} {
		res, err := ParseLine([]byte(prefix+sampleLine[6:]), nil)
		if assert.NoError(t, err, "prefix %q", prefix) {
			assert.Equal(t, 25, res.Dimension, "prefix %q", prefix)
			assert.Equal(t, Key{"ffc", "indomain", "up"}, res.Key, "prefix %q", prefix)
		}
	}
}

func TestParseLineBacktracksAfterLastColon(t *testing.T) {
	res, err := ParseLine([]byte("Input dimension_25.txt - a - b - c Labeling: 1ms Constraints: 2ms Search: Backtracks: 7"), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Backtracks)
}

func TestMalformedRecordErrorPosition(t *testing.T) {
	_, err := ParseLine([]byte("Input dimension_25 - a - b - c"), nil)
	require.Error(t, err)
	assert.Equal(t, "missing '.' after dimension", err.Error())

	err = &MalformedRecordError{FileName: "output.txt", Line: 4, Msg: "empty value"}
	assert.Equal(t, "output.txt:4: empty value", err.Error())
}

func TestParseLineMalformed(t *testing.T) {
	for _, test := range []struct {
		line, msg string
	}{
		{"Input dimension", "line too short for dimension"},
		{"Input dimension_25 - a - b - c Labeling: 1ms Constraints: 1ms Backtracks: 1", "missing '.' after dimension"},
		{"Input dimension_x5.txt - a - b - c Labeling: 1ms Constraints: 1ms Backtracks: 1", "parsing dimension: invalid syntax"},
		{"Input dimension_25.txt a b c", "missing '-' before variable"},
		{"Input dimension_25.txt - a - b - c", "missing space after order"},
		{"Input dimension_25.txt - a -  - c Labeling: 1ms", "empty value"},
		{"Input dimension_25.txt - a - b - c Labeling 1ms", "missing ':' before labeling time"},
		{"Input dimension_25.txt - a - b - c Labeling: 1s Constraints: 1s", "missing 'ms' after labeling time"},
		{"Input dimension_25.txt - a - b - c Labeling: 1ms Constraints: xms Backtracks: 1", "parsing constraint time: invalid syntax"},
		{"Input dimension_25.txt - a - b - c Labeling: 1ms Constraints: 1ms Backtracks", "missing ':' before backtracks"},
		{"Input dimension_25.txt - a - b - c Labeling: 1ms Constraints: 1ms Backtracks: -4", "parsing backtracks: negative value"},
	} {
		_, err := ParseLine([]byte(test.line), nil)
		var me *MalformedRecordError
		if assert.True(t, errors.As(err, &me), "line %q: got %v", test.line, err) {
			assert.Equal(t, test.msg, me.Msg, "line %q", test.line)
		}
	}
}

func lineAt(dim int, variable, value string) []byte {
	var buf bytes.Buffer
	NewWriter(&buf).Write(&Result{
		Key:       Key{variable, value, "up"},
		Dimension: dim,
	})
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func TestParseLineWindow(t *testing.T) {
	opts := &Options{MinDimension: 25, MaxDimension: 100}
	for _, test := range []struct {
		dim  int
		want error
	}{
		{24, ErrOutOfRange},
		{25, nil},
		{100, nil},
		{101, ErrOutOfRange},
	} {
		_, err := ParseLine(lineAt(test.dim, "ffc", "indomain"), opts)
		assert.Equal(t, test.want, err, "dimension %d", test.dim)
	}

	// The window is checked before the heuristics are read.
	_, err := ParseLine([]byte("Input dimension_7.txt garbage"), opts)
	assert.Equal(t, ErrOutOfRange, err)
}

func TestParseLineSentinels(t *testing.T) {
	for _, exclude := range []bool{false, true} {
		opts := &Options{MinDimension: 8, MaxDimension: 100, ExcludeSentinels: exclude}
		for _, line := range [][]byte{
			lineAt(25, SentinelVariable, "indomain"),
			lineAt(25, "ffc", SentinelValue),
		} {
			res, err := ParseLine(line, opts)
			if exclude {
				assert.Equal(t, ErrSentinel, err, "line %q", line)
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err, "line %q", line)
				assert.NotNil(t, res)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	heuristic := rapid.StringMatching(`[a-z][a-z0-9_:-]{0,11}`)
	rapid.Check(t, func(t *rapid.T) {
		want := &Result{
			Key: Key{
				Variable: heuristic.Draw(t, "variable"),
				Value:    heuristic.Draw(t, "value"),
				Order:    heuristic.Draw(t, "order"),
			},
			Dimension:     rapid.IntRange(1, 10000).Draw(t, "dimension"),
			LabelingMS:    rapid.IntRange(0, 1<<30).Draw(t, "labeling"),
			ConstraintsMS: rapid.IntRange(0, 1<<30).Draw(t, "constraints"),
			Backtracks:    rapid.IntRange(0, 1<<30).Draw(t, "backtracks"),
		}
		var buf bytes.Buffer
		if err := NewWriter(&buf).Write(want); err != nil {
			t.Fatal(err)
		}
		line := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
		if ok, err := MatchLine(line); !ok || err != nil {
			t.Fatalf("MatchLine(%q) = %v, %v", line, ok, err)
		}
		got, err := ParseLine(line, &Options{MinDimension: 1, MaxDimension: 10000})
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if *got != *want {
			t.Fatalf("ParseLine(%q) = %+v, want %+v", line, got, want)
		}
	})
}
