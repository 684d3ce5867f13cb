// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	if d := Diff("same", "a\nb\n", "a\nb\n"); d != "" {
		t.Errorf("equal inputs: got diff %q", d)
	}
	d := Diff("table.txt", "a\nb\n", "a\nc\n")
	if d == "" {
		t.Fatal("different inputs: got empty diff")
	}
	if !strings.Contains(d, "table.txt") {
		t.Errorf("diff does not name the artifact:\n%s", d)
	}
}
