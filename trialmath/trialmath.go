// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialmath reduces repeated trials to means.
//
// Every configuration is run TrialsPerGroup times per dimension, and
// those repetitions arrive consecutively. Grouping is therefore purely
// positional: samples [3i, 3i+3) form group i, whatever their
// dimensions say.
package trialmath

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/cspbench/cspstat/solvelog"
	"github.com/cspbench/cspstat/trialagg"
)

// TrialsPerGroup is the number of repetitions of each trial.
const TrialsPerGroup = 3

// A Point is the mean of one group of trials.
type Point struct {
	// X is the dimension of the first trial in the group.
	X int
	// Y is the mean of the group in reporting units.
	Y float64
}

// An InsufficientSampleError reports an entry whose samples cannot be
// split into complete groups. It points at a data collection problem
// upstream, so rendering stops.
type InsufficientSampleError struct {
	Key   solvelog.Key
	Kind  trialagg.Kind
	Count int // number of samples of Kind
	Msg   string
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("configuration %s: %d %s samples: %s", e.Key, e.Count, e.Kind, e.Msg)
}

// GroupMeans averages the samples of kind k in e in consecutive
// groups of TrialsPerGroup and converts them with k.Divisor.
func GroupMeans(e *trialagg.Entry, k trialagg.Kind) ([]Point, error) {
	samples := e.Samples(k)
	if len(samples)%TrialsPerGroup != 0 {
		return nil, &InsufficientSampleError{e.Key, k, len(samples),
			fmt.Sprintf("not a multiple of %d", TrialsPerGroup)}
	}
	points := make([]Point, 0, len(samples)/TrialsPerGroup)
	for i := 0; i < len(samples); i += TrialsPerGroup {
		group := samples[i : i+TrialsPerGroup]
		points = append(points, Point{group[0].Dimension, mean(group, k.Divisor())})
	}
	return points, nil
}

// DimensionMeans returns one mean per expected dimension for the
// samples of kind k in e. The samples are first sorted by dimension;
// then the Nth dimension in dims takes samples [3N, 3N+3), which must
// all have that dimension.
func DimensionMeans(e *trialagg.Entry, k trialagg.Kind, dims []int) ([]float64, error) {
	samples := SortByDimension(e.Samples(k))
	if want := TrialsPerGroup * len(dims); len(samples) != want {
		return nil, &InsufficientSampleError{e.Key, k, len(samples),
			fmt.Sprintf("want %d (%d per dimension)", want, TrialsPerGroup)}
	}
	means := make([]float64, len(dims))
	for n, dim := range dims {
		group := samples[TrialsPerGroup*n : TrialsPerGroup*(n+1)]
		for _, s := range group {
			if s.Dimension != dim {
				return nil, &InsufficientSampleError{e.Key, k, len(samples),
					fmt.Sprintf("group %d has a trial at dimension %d, want dimension %d", n, s.Dimension, dim)}
			}
		}
		means[n] = mean(group, k.Divisor())
	}
	return means, nil
}

// SortByDimension returns a copy of samples sorted by dimension.
// Samples with equal dimensions keep their relative order.
func SortByDimension(samples []trialagg.Sample) []trialagg.Sample {
	out := append([]trialagg.Sample(nil), samples...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Dimension < out[j].Dimension
	})
	return out
}

func mean(group []trialagg.Sample, divisor float64) float64 {
	xs := make([]float64, len(group))
	for i, s := range group {
		xs[i] = float64(s.Value)
	}
	return stats.Mean(xs) / divisor
}
