// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solvelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1 << 20

// A Reader reads run summaries from a solver log.
//
// Its API is modeled on bufio.Scanner. To construct a new Reader,
// either call NewReader, or call Reset on a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	opts Options
	rec  Record

	fileName string
	line     int

	stats Stats
}

// Stats counts what a Reader did with the lines it consumed.
type Stats struct {
	Lines      int // lines read
	Short      int // lines too short to hold the marker
	Marked     int // lines carrying the marker
	Results    int // trials returned as *Result
	OutOfRange int // trials outside the dimension window
	Sentinel   int // trials dropped by the sentinel filter
	Malformed  int // marked lines returned as *MalformedRecordError
}

var noResult = &MalformedRecordError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader for the log in r. fileName is used in
// error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, opts Options) *Reader {
	reader := new(Reader)
	reader.opts = opts
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. It does
// NOT reset Stats or Options, which carry across files.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLineSize)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.rec = nil
}

// SetOptions replaces the filtering options for subsequent lines.
func (r *Reader) SetOptions(opts Options) {
	r.opts = opts
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an I/O error occurs, it returns
// false, in which case the caller should use the Err method to check
// for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		r.stats.Lines++
		line := r.s.Bytes()
		ok, err := MatchLine(line)
		if err != nil {
			r.stats.Short++
			continue
		}
		if !ok {
			continue
		}
		r.stats.Marked++

		res := &Result{fileName: r.fileName, line: r.line}
		err = parseRecord(line, &r.opts, res)
		var me *MalformedRecordError
		switch {
		case err == nil:
			r.stats.Results++
			r.rec = res
			return true
		case err == ErrOutOfRange:
			r.stats.OutOfRange++
		case err == ErrSentinel:
			r.stats.Sentinel++
		case errors.As(err, &me):
			me.FileName, me.Line = r.fileName, r.line
			r.stats.Malformed++
			r.rec = me
			return true
		default:
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
			return false
		}
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Result returns the record that was just read by Scan. This is
// either a *Result or a *MalformedRecordError. Malformed records are
// non-fatal, so the caller can continue to call Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Stats returns the counters accumulated since the Reader was created.
func (r *Reader) Stats() Stats {
	return r.stats
}
