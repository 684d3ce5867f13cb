// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a Align, w int, want string) {
		t.Helper()
		got := a.pad(s, w)
		if got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", Left, 6, "abc   ")
	check("abc", Center, 6, " abc  ")
	check("abc", Center, 7, "  abc  ")
	check("abc", Right, 6, "   abc")
	check("abcdef", Right, 3, "abcdef")
	check("☃", Right, 4, "   ☃")
}

func TestTable(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var gotBuf strings.Builder
		if err := tab.Format(&gotBuf); err != nil {
			t.Fatal(err)
		}
		got := gotBuf.String()
		if want != got {
			t.Errorf("want:\n%sgot:\n%s", want, got)
		}
		tab = Table{}
	}

	// Basic test.
	tab.Row("a", "b", "c").Row("d", "e", "f")
	check("a & b & c \\\\\nd & e & f \\\\\n")

	// Padding. The last left-aligned column is not padded.
	tab.Row("a", "b", "c").Row("long", "e", "long")
	check("a    & b & c \\\\\nlong & e & long \\\\\n")

	// Right-aligned numbers.
	tab.SetAlign(1, Right)
	tab.Row("x", "0.25").Row("yy", "12")
	check("x  & 0.25 \\\\\nyy &   12 \\\\\n")

	// Raw lines do not take part in the layout.
	tab.Raw(`\hline`).Row("a", "b").Raw(`\multicolumn{2}{c}{wide header}`)
	check("\\hline\na & b \\\\\n\\multicolumn{2}{c}{wide header}\n")

	// Custom separators.
	tab.Sep, tab.EOL = " | ", " |"
	tab.Row("a", "bb").Row("cc", "d")
	check("a  | bb |\ncc | d |\n")
}
