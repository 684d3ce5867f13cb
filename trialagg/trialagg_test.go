// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialagg

import (
	"testing"

	"github.com/cspbench/cspstat/solvelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trial(variable, value, order string, dim, lab, con, bt int) *solvelog.Result {
	return &solvelog.Result{
		Key:           solvelog.Key{Variable: variable, Value: value, Order: order},
		Dimension:     dim,
		LabelingMS:    lab,
		ConstraintsMS: con,
		Backtracks:    bt,
	}
}

func keys(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Key.Label())
	}
	return out
}

func TestIngestSameKey(t *testing.T) {
	a := New(OrderSorted)
	const n = 7
	for i := 0; i < n; i++ {
		a.Ingest(trial("ffc", "step", "up", 10+i%2, 100*i, 10*i, i))
	}
	require.Equal(t, 1, a.Len())

	e, ok := a.Lookup(solvelog.Key{Variable: "ffc", Value: "step", Order: "up"})
	require.True(t, ok)
	require.Equal(t, n, e.Len())
	for _, k := range Kinds {
		require.Len(t, e.Samples(k), n, "kind %v", k)
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, Sample{10 + i%2, 100 * i}, e.Labeling[i])
		assert.Equal(t, Sample{10 + i%2, 10 * i}, e.Constraints[i])
		assert.Equal(t, Sample{10 + i%2, i}, e.Backtracks[i])
	}
}

func TestEntriesOrder(t *testing.T) {
	ingest := func(a *Aggregator) {
		a.Ingest(trial("occurrence", "step", "up", 8, 1, 1, 1))
		a.Ingest(trial("ffc", "step", "up", 8, 1, 1, 1))
		a.Ingest(trial("ffc", "enum", "up", 8, 1, 1, 1))
		a.Ingest(trial("ffc", "step", "down", 8, 1, 1, 1))
		a.Ingest(trial("occurrence", "step", "up", 9, 1, 1, 1))
	}

	a := New(OrderInsertion)
	ingest(a)
	assert.Equal(t, []string{
		"occurrence,step,up",
		"ffc,step,up",
		"ffc,enum,up",
		"ffc,step,down",
	}, keys(a.Entries()))

	a = New(OrderSorted)
	ingest(a)
	assert.Equal(t, []string{
		"ffc,enum,up",
		"ffc,step,down",
		"ffc,step,up",
		"occurrence,step,up",
	}, keys(a.Entries()))

	// Entries returns a copy of the listing.
	entries := a.Entries()
	entries[0] = nil
	assert.NotNil(t, a.Entries()[0])
}

func TestParseOrder(t *testing.T) {
	for _, o := range []Order{OrderSorted, OrderInsertion} {
		got, err := ParseOrder(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOrder("random")
	assert.Error(t, err)
}

func TestKind(t *testing.T) {
	assert.Equal(t, 1000.0, Labeling.Divisor())
	assert.Equal(t, 1000.0, Constraints.Divisor())
	assert.Equal(t, 1.0, Backtracks.Divisor())
	assert.Equal(t, []string{"labelingTimes", "constraintsTimes", "backtracks"},
		[]string{Labeling.BaseName(), Constraints.BaseName(), Backtracks.BaseName()})
}
