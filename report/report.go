// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders aggregated trials as plot series and tables.
//
// Rendering happens in two steps. BuildGraph and BuildTable reduce
// the aggregator's entries to means and fail with a
// *trialmath.InsufficientSampleError if any entry has incomplete trial
// groups; nothing is written in that case. The Write functions then
// emit pgfplots and tabular markup for LaTeX, or CSV, HTML and chart
// images.
package report

import (
	"errors"

	"github.com/cspbench/cspstat/solvelog"
	"github.com/cspbench/cspstat/trialagg"
	"github.com/cspbench/cspstat/trialmath"
)

// Style assigns colors and marks to plot series.
type Style struct {
	// Palette is the sequence of xcolor names cycled through by
	// series index.
	Palette []string
	// Marks is the sequence of pgfplots marks. The mark advances
	// each time the whole palette has been used.
	Marks []string
}

// DefaultStyle is the palette and mark set of the published figures.
var DefaultStyle = Style{
	Palette: []string{
		"red", "green", "blue", "cyan", "magenta", "yellow",
		"black", "gray", "darkgray", "lightgray",
		"brown", "lime", "olive", "orange", "pink", "purple",
		"teal", "violet",
	},
	Marks: []string{"circle", "square"},
}

// DefaultDimensions are the dimensions of the standard sweep.
var DefaultDimensions = []int{8, 9, 10, 11, 12, 25, 50, 75, 100}

var errEmptyStyle = errors.New("report: style needs at least one color and one mark")

// Color returns the color of the i'th series.
func (s Style) Color(i int) string {
	return s.Palette[i%len(s.Palette)]
}

// Mark returns the mark of the i'th series.
func (s Style) Mark(i int) string {
	return s.Marks[(i/len(s.Palette))%len(s.Marks)]
}

// A Series is the plot of one configuration.
type Series struct {
	Key    solvelog.Key
	Color  string
	Mark   string
	Points []trialmath.Point
}

// Label returns the legend text of s.
func (s *Series) Label() string {
	return s.Key.Label()
}

// A Graph is one plot: a series per configuration for one Kind.
type Graph struct {
	Kind   trialagg.Kind
	Series []Series
}

// BuildGraph reduces entries to one series each for kind k. Series
// are styled by their position in entries.
func BuildGraph(entries []*trialagg.Entry, k trialagg.Kind, style Style) (*Graph, error) {
	if len(style.Palette) == 0 || len(style.Marks) == 0 {
		return nil, errEmptyStyle
	}
	g := &Graph{Kind: k, Series: make([]Series, 0, len(entries))}
	for i, e := range entries {
		points, err := trialmath.GroupMeans(e, k)
		if err != nil {
			return nil, err
		}
		g.Series = append(g.Series, Series{
			Key:    e.Key,
			Color:  style.Color(i),
			Mark:   style.Mark(i),
			Points: points,
		})
	}
	return g, nil
}

// BuildGraphs builds the graph of every Kind, in trialagg.Kinds order.
func BuildGraphs(entries []*trialagg.Entry, style Style) ([]*Graph, error) {
	var graphs []*Graph
	for _, k := range trialagg.Kinds {
		g, err := BuildGraph(entries, k, style)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// A Row is one configuration of a table: the mean labeling time in
// seconds at each of the table's dimensions.
type Row struct {
	Key   solvelog.Key
	Means []float64
}

// A Table compares mean labeling times across dimensions.
type Table struct {
	Dimensions []int
	Rows       []Row
}

// BuildTable reduces entries to one row each, in key order whatever
// the order of entries.
func BuildTable(entries []*trialagg.Entry, dims []int) (*Table, error) {
	sorted := append([]*trialagg.Entry(nil), entries...)
	trialagg.SortEntries(sorted)

	t := &Table{Dimensions: dims, Rows: make([]Row, 0, len(sorted))}
	for _, e := range sorted {
		means, err := trialmath.DimensionMeans(e, trialagg.Labeling, dims)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, Row{e.Key, means})
	}
	return t, nil
}
