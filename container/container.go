// Package container implements the three statement containers the
// solver keeps one of per variable pair: a read-mostly OverlapMap for
// pairs that only ever get queried, a StaticList for pairs on the path
// to the hypothesis, and a DynamicList for the hypothesis pair itself.
// All three normalize their raw statements into a sorted,
// non-overlapping list via the rule engine and the boundary sweep.
package container

import (
	"github.com/lattice-ware/qualreason/rules"
	"github.com/lattice-ware/qualreason/statement"
)

// Container is the shape shared by all three container kinds.
type Container interface {
	Len() int
	Statements() []statement.Statement
}

// HypothesisBounds is the bounded-search state StaticList narrows
// against: the hypothesis's own range, and the xMin/xMax limits
// DynamicList already maintains across solve phases. Sharing the same
// state (rather than giving StaticList its own copy) mirrors the
// reference solver, where every container consults one hypothesis
// singleton's x_min/x_max.
type HypothesisBounds interface {
	HypothesisRange() (loX, hiX, loY, hiY float64)
	XMin() float64
	XMax() float64
	SetXMin(float64)
	SetXMax(float64)
}

// sliceRange returns list[lo:hi], clamped to a valid range. Boundary
// segments with no occupying statement are skipped during
// normalization, so index bookkeeping can occasionally overshoot the
// list actually built; clamping keeps that harmless instead of panicking.
func sliceRange(list []statement.Statement, lo, hi int) []statement.Statement {
	if lo < 0 {
		lo = 0
	}
	if hi > len(list) {
		hi = len(list)
	}
	if hi < lo {
		return nil
	}
	return list[lo:hi]
}

// overlapRange finds the [lower,upper) slice of a sorted, normalized
// statement list whose members overlap [lo,hi].
func overlapRange(ss []statement.Statement, lo, hi float64) (int, int) {
	index := 0
	for index < len(ss) && ss[index].BeginX < lo {
		index++
	}

	lower := index
	for i := index - 1; i >= 0; i-- {
		if !ss[i].Overlaps(lo, hi) {
			break
		}
		lower = i
	}

	upper := index - 1
	for i := index; i < len(ss); i++ {
		if ss[i].BeginX > hi {
			break
		}
		upper = i
	}

	if upper < lower {
		return -1, -1
	}
	return lower, upper + 1
}

// strengthenHeightSides runs the left-and-right sweep over a sorted,
// normalized list until fixed point: replace a neighbor on strict
// improvement and step back one index, otherwise advance. Terminates
// because every replacement strictly tightens a finite partial order.
func strengthenHeightSides(list []statement.Statement) {
	i := 0
	for i < len(list) {
		changed := false
		if i < len(list)-1 {
			if r, ok := rules.StrengthenLeft(list[i], list[i+1]); ok {
				list[i+1] = r
				changed = true
			}
		}
		if i > 0 {
			if r, ok := rules.StrengthenRight(list[i-1], list[i]); ok {
				list[i-1] = r
				changed = true
			}
		}
		if changed {
			// Step back to recheck the pair that may have just changed;
			// clamp at 0 instead of wrapping, since there is no statement
			// to the left of the first one.
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
}
