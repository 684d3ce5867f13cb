// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteCSV writes t as CSV with a header row. Means are written at
// full precision.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	header := []string{"variable", "value", "order"}
	for _, d := range t.Dimensions {
		header = append(header, strconv.Itoa(d))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{r.Key.Variable, r.Key.Value, r.Key.Order}
		for _, m := range r.Means {
			rec = append(rec, strof(m))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGraphCSV writes the points of every series of g in long form,
// one row per point.
func WriteGraphCSV(w io.Writer, g *Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "value", "order", "dimension", g.Kind.BaseName()}); err != nil {
		return err
	}
	for _, s := range g.Series {
		for _, p := range s.Points {
			rec := []string{s.Key.Variable, s.Key.Value, s.Key.Order, strconv.Itoa(p.X), strof(p.Y)}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
