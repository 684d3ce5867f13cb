// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cspbench/cspstat/internal/texttab"
)

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeTeX(s string) string {
	return texEscaper.Replace(s)
}

// formatCoord formats a plot coordinate the way a C++ stream with
// default precision does.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// formatCell formats a table mean with two significant digits.
func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', 2, 64)
}

// WritePGFPlot writes g as a tikzpicture holding one pgfplots axis,
// with an \addplot and a legend entry per series.
func WritePGFPlot(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\begin{tikzpicture}\n")
	fmt.Fprintf(bw, "\\begin{axis}[\n")
	fmt.Fprintf(bw, "\taxis lines = left,\n")
	fmt.Fprintf(bw, "\txlabel = {Dimension $x*x$},\n")
	fmt.Fprintf(bw, "\tylabel = {%s},\n", g.Kind.AxisLabel())
	fmt.Fprintf(bw, "\tlegend columns=4,\n")
	fmt.Fprintf(bw, "\tlegend style={at={(0.5,-0.2)},anchor=north},\n")
	fmt.Fprintf(bw, "\tenlarge x limits=-1,\n")
	fmt.Fprintf(bw, "\twidth=11cm,\n")
	fmt.Fprintf(bw, "\theight=10cm,\n")
	fmt.Fprintf(bw, "]\n")
	for _, s := range g.Series {
		fmt.Fprintf(bw, "\\addplot[\n\tcolor=%s,\n\tmark=%s,\n\t]\n", s.Color, s.Mark)
		fmt.Fprintf(bw, "\tcoordinates {\n\t")
		for _, p := range s.Points {
			fmt.Fprintf(bw, "(%d,%s)", p.X, formatCoord(p.Y))
		}
		fmt.Fprintf(bw, "};\n")
		fmt.Fprintf(bw, "\\addlegendentry{%s}\n", escapeTeX(s.Label()))
	}
	fmt.Fprintf(bw, "\\end{axis}\n")
	fmt.Fprintf(bw, "\\end{tikzpicture}\n")
	return bw.Flush()
}

// WriteTabular writes t as a LaTeX table environment.
func WriteTabular(w io.Writer, t *Table) error {
	ndim := len(t.Dimensions)

	colspec := []string{"p{3.5em} p{3em} p{2.5em}"}
	for range t.Dimensions {
		colspec = append(colspec, "p{2.5em}")
	}
	header := []string{"VAR", "VAL", "ORD"}
	for _, d := range t.Dimensions {
		header = append(header, strconv.Itoa(d))
	}

	var tab texttab.Table
	for col := 3; col < 3+ndim; col++ {
		tab.SetAlign(col, texttab.Right)
	}
	tab.Raw(`\begin{table}`)
	tab.Raw(`\centering`)
	tab.Raw(`\begin{tabular}{ ` + colspec[0] + ` || ` + strings.Join(colspec[1:], " | ") + ` }`)
	tab.Raw(fmt.Sprintf(`\multicolumn{3}{c||}{Variables} & \multicolumn{%d}{c}{Dimensions} \\ [1ex]`, ndim))
	tab.Raw(`\hline`)
	tab.Raw(strings.Join(header, " & ") + ` \\ [1ex]`)
	tab.Raw(`\hline\hline`)
	for _, r := range t.Rows {
		cells := []string{escapeTeX(r.Key.Variable), escapeTeX(r.Key.Value), escapeTeX(r.Key.Order)}
		for _, m := range r.Means {
			cells = append(cells, formatCell(m))
		}
		tab.Row(cells...)
	}
	tab.Raw(`\hline`)
	tab.Raw(`\end{tabular}`)
	tab.Raw("\t\\caption{}")
	tab.Raw("\t\\label{tab:labeling}")
	tab.Raw(`\end{table}`)
	return tab.Format(w)
}
