// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialagg groups trials by configuration key.
//
// An Aggregator owns one Entry per distinct solvelog.Key. Each Entry
// keeps three parallel sequences of (dimension, value) samples, one
// per measurement Kind, in the order trials were ingested. Repeated
// trials at the same dimension are kept as repeated samples; later
// stages average them positionally, so arrival order matters.
package trialagg

import (
	"fmt"
	"sort"

	"github.com/cspbench/cspstat/solvelog"
)

// A Sample is one measurement of one trial.
type Sample struct {
	Dimension int
	Value     int
}

// An Entry is the accumulated samples of one configuration.
//
// Labeling, Constraints and Backtracks always have the same length:
// every ingested trial appends one sample to each.
type Entry struct {
	Key solvelog.Key

	Labeling    []Sample
	Constraints []Sample
	Backtracks  []Sample
}

// Samples returns the sequence of e for kind k.
func (e *Entry) Samples(k Kind) []Sample {
	switch k {
	case Labeling:
		return e.Labeling
	case Constraints:
		return e.Constraints
	case Backtracks:
		return e.Backtracks
	}
	panic(fmt.Sprintf("unknown kind %d", k))
}

// Len returns the number of trials in e.
func (e *Entry) Len() int {
	return len(e.Labeling)
}

// Order selects the iteration order of Aggregator.Entries.
type Order int

const (
	// OrderSorted lists entries by solvelog.Key.Less.
	OrderSorted Order = iota
	// OrderInsertion lists entries in the order their keys were
	// first seen.
	OrderInsertion
)

var orderNames = map[string]Order{
	"sorted":    OrderSorted,
	"insertion": OrderInsertion,
}

// ParseOrder returns the Order called name ("sorted" or "insertion").
func ParseOrder(name string) (Order, error) {
	o, ok := orderNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown entry order %q (want sorted or insertion)", name)
	}
	return o, nil
}

func (o Order) String() string {
	switch o {
	case OrderSorted:
		return "sorted"
	case OrderInsertion:
		return "insertion"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// An Aggregator maps configuration keys to entries. It is not safe
// for concurrent use.
type Aggregator struct {
	order   Order
	entries map[solvelog.Key]*Entry
	seen    []*Entry // in first-seen order
}

// New returns an empty Aggregator whose Entries are listed in order.
func New(order Order) *Aggregator {
	return &Aggregator{order: order, entries: make(map[solvelog.Key]*Entry)}
}

// Ingest adds trial r to the entry for r.Key, creating the entry if
// this is the first trial with that key.
func (a *Aggregator) Ingest(r *solvelog.Result) {
	e, ok := a.entries[r.Key]
	if !ok {
		e = &Entry{Key: r.Key}
		a.entries[r.Key] = e
		a.seen = append(a.seen, e)
	}
	e.Labeling = append(e.Labeling, Sample{r.Dimension, r.LabelingMS})
	e.Constraints = append(e.Constraints, Sample{r.Dimension, r.ConstraintsMS})
	e.Backtracks = append(e.Backtracks, Sample{r.Dimension, r.Backtracks})
}

// Lookup returns the entry for key k, if any.
func (a *Aggregator) Lookup(k solvelog.Key) (*Entry, bool) {
	e, ok := a.entries[k]
	return e, ok
}

// Len returns the number of distinct keys ingested.
func (a *Aggregator) Len() int {
	return len(a.seen)
}

// Entries returns all entries in the Aggregator's order. The entries
// are shared with a; callers must not modify them.
func (a *Aggregator) Entries() []*Entry {
	out := append([]*Entry(nil), a.seen...)
	if a.order == OrderSorted {
		SortEntries(out)
	}
	return out
}

// SortEntries sorts entries by key.
func SortEntries(entries []*Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Less(entries[j].Key)
	})
}
