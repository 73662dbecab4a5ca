// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import "math"

// Mode is how MatchCull combines two matched y values.
type Mode int

const (
	// Difference is a - b.
	Difference Mode = iota
	// Absolute is |a - b|.
	Absolute
	// Relative is |a - b| / b. Pairs with b == 0 are dropped.
	Relative
)

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "abs"
	case Relative:
		return "rel"
	}
	return "diff"
}

// MatchCull pairs every point of a with every point of b that has
// exactly the same x value and returns the series of combined y
// values at those x values.
//
// Points are visited with a in the outer loop and b in the inner
// loop, and the result is in that order. Matching uses exact float
// equality, so a and b should come from the same sampling grid.
func MatchCull(a, b Series, mode Mode) Series {
	var xs, ys []float64
	for i, ax := range a.X {
		for j, bx := range b.X {
			if ax != bx {
				continue
			}
			ay, by := a.Y[i], b.Y[j]
			var v float64
			switch mode {
			case Difference:
				v = ay - by
			case Absolute:
				v = math.Abs(ay - by)
			case Relative:
				if by == 0 {
					continue
				}
				v = math.Abs(ay-by) / by
			default:
				panic("data: unknown mode")
			}
			xs = append(xs, ax)
			ys = append(ys, v)
		}
	}
	return NewSeries(xs, ys)
}
