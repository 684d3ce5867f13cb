// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned rows of tabular markup,
// such as the body of a LaTeX tabular environment.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table collects rows and writes them with every column padded to a
// common width. Rows may also be raw lines (rules, headers spanning
// columns) that are written as is.
//
// Row and Raw return the Table so callers can chain them.
type Table struct {
	// Sep separates adjacent cells. The zero value means " & ".
	Sep string
	// EOL ends every cell row. The zero value means ` \\`.
	EOL string

	rows  []row
	align []Align
}

type row struct {
	cells []string
	raw   string
	isRaw bool
}

// Align is the alignment of a column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	case Right:
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row appends a row of cells.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, row{cells: cells})
	return t
}

// Raw appends a line that is not split into cells.
func (t *Table) Raw(line string) *Table {
	t.rows = append(t.rows, row{raw: line, isRaw: true})
	return t
}

// SetAlign sets the alignment of column col. Columns default to Left.
func (t *Table) SetAlign(col int, a Align) {
	for len(t.align) < col+1 {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
}

func (t *Table) alignOf(col int) Align {
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

// Format lays out table t and writes it to w.
func (t *Table) Format(w io.Writer) error {
	sep, eol := t.Sep, t.EOL
	if sep == "" {
		sep = " & "
	}
	if eol == "" {
		eol = ` \\`
	}

	var ws []int
	for _, r := range t.rows {
		for col, c := range r.cells {
			if col >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c); n > ws[col] {
				ws[col] = n
			}
		}
	}

	var b strings.Builder
	for _, r := range t.rows {
		b.Reset()
		if r.isRaw {
			b.WriteString(r.raw)
		} else {
			for col, c := range r.cells {
				if col > 0 {
					b.WriteString(sep)
				}
				if col == len(r.cells)-1 && t.alignOf(col) == Left {
					// No trailing padding before the row end.
					b.WriteString(c)
					continue
				}
				b.WriteString(t.alignOf(col).pad(c, ws[col]))
			}
			b.WriteString(eol)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
