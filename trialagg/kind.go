// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialagg

import "fmt"

// A Kind is one of the three measurements recorded per trial.
type Kind int

const (
	Labeling Kind = iota
	Constraints
	Backtracks
)

// Kinds lists every Kind in the order samples are appended.
var Kinds = []Kind{Labeling, Constraints, Backtracks}

// Divisor converts a raw sample of kind k to its reported unit.
// Times are recorded in milliseconds and reported in seconds.
func (k Kind) Divisor() float64 {
	if k == Backtracks {
		return 1
	}
	return 1000
}

// BaseName is the artifact file name, without extension, for plots
// of kind k.
func (k Kind) BaseName() string {
	switch k {
	case Labeling:
		return "labelingTimes"
	case Constraints:
		return "constraintsTimes"
	case Backtracks:
		return "backtracks"
	}
	return k.String()
}

// AxisLabel is the y axis label for plots of kind k.
func (k Kind) AxisLabel() string {
	if k == Backtracks {
		return "Number of Backtracks"
	}
	return "Time (s)"
}

func (k Kind) String() string {
	switch k {
	case Labeling:
		return "labeling"
	case Constraints:
		return "constraints"
	case Backtracks:
		return "backtracks"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
