// Package rules implements the six pure inference rules of the qualitative
// calculus. Every rule takes one or more statements and returns either a
// new statement or "no conclusion" — modeled as a (statement.Statement,
// bool) pair rather than a nullable type. No rule performs I/O or touches
// shared state.
package rules

import (
	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/statement"
)

// Join extends a and b along x. Requires a.BeginX <= b.BeginX <= a.EndX <=
// b.EndX — a and b must be contiguous or overlapping, left-to-right.
func Join(a, b statement.Statement) (statement.Statement, bool) {
	if !(a.BeginX <= b.BeginX && b.BeginX <= a.EndX && a.EndX <= b.EndX) {
		return statement.Statement{}, false
	}
	return statement.Statement{
		BeginX: min(a.BeginX, b.BeginX),
		EndX:   max(a.EndX, b.EndX),
		Q:      quality.Add(a.Q, b.Q),
		BeginY: min(a.BeginY, b.BeginY),
		EndY:   max(a.EndY, b.EndY),
	}, true
}

// StrengthenLeft tightens b's y-range using a's, when b's x-start lies
// inside a's x-range. The result is rejected unless it is strictly
// stronger than b.
func StrengthenLeft(a, b statement.Statement) (statement.Statement, bool) {
	if !(a.BeginX <= b.BeginX && b.BeginX <= a.EndX) {
		return statement.Statement{}, false
	}

	var lo, hi float64
	var q quality.Quality
	switch {
	case b.Q == quality.Cons && a.BeginY < b.EndY:
		lo, hi, q = max(a.BeginY, b.BeginY), min(a.EndY, b.EndY), quality.Cons
	case b.Q == quality.Mono && b.BeginY < a.BeginY && a.BeginY < b.EndY:
		lo, hi, q = a.BeginY, b.EndY, quality.Mono
	case b.Q == quality.Anti && b.BeginY < a.EndY && a.EndY < b.EndY:
		lo, hi, q = b.BeginY, a.EndY, quality.Anti
	default:
		return statement.Statement{}, false
	}

	candidate := statement.Statement{BeginX: b.BeginX, EndX: b.EndX, Q: q, BeginY: lo, EndY: hi}
	if candidate == b || !candidate.StrongerAs(b, nil) {
		return statement.Statement{}, false
	}
	return candidate, true
}

// StrengthenRight is the mirror of StrengthenLeft: it tightens a's
// y-range using b's, when a's x-end lies inside b's x-range. Unlike
// StrengthenLeft's independent per-quality branches, the Cons/Mono cases
// here are gated by one shared overlap test and Anti only applies when
// that test fails — the two sides of the mirror aren't symmetric.
func StrengthenRight(a, b statement.Statement) (statement.Statement, bool) {
	if !(b.BeginX <= a.EndX && a.EndX <= b.EndX) {
		return statement.Statement{}, false
	}

	var lo, hi float64
	var q quality.Quality
	switch {
	case a.BeginY < b.EndY && a.Q == quality.Cons:
		lo, hi, q = max(a.BeginY, b.BeginY), min(a.EndY, b.EndY), quality.Cons
	case a.BeginY < b.EndY && a.Q == quality.Mono && b.EndY < a.EndY:
		lo, hi, q = a.BeginY, b.EndY, quality.Mono
	case a.BeginY >= b.EndY && a.Q == quality.Anti && a.BeginY < b.BeginY && b.BeginY < a.EndY:
		lo, hi, q = b.BeginY, a.EndY, quality.Anti
	default:
		return statement.Statement{}, false
	}

	candidate := statement.Statement{BeginX: a.BeginX, EndX: a.EndX, Q: q, BeginY: lo, EndY: hi}
	if candidate == a || !candidate.StrongerAs(a, nil) {
		return statement.Statement{}, false
	}
	return candidate, true
}

// StrengthenMulti is the canonical refinement over a set of statements
// that all cover [lo,hi]: the y-range narrows to the intersection of
// evidence, the quality reduces via quality.Min. Callers must ensure
// every member of ss overlaps [lo,hi].
func StrengthenMulti(lo, hi float64, ss []statement.Statement) (statement.Statement, bool) {
	if len(ss) == 0 {
		return statement.Statement{}, false
	}

	beginY, endY, q := ss[0].BeginY, ss[0].EndY, ss[0].Q
	for _, s := range ss[1:] {
		beginY = max(beginY, s.BeginY)
		endY = min(endY, s.EndY)
		q = quality.Min(q, s.Q)
	}
	return statement.Statement{BeginX: lo, EndX: hi, Q: q, BeginY: beginY, EndY: endY}, true
}

// JoinMulti reduces Join across a contiguous, x-sorted chain. It reports
// "no conclusion" if list is empty or any adjacent pair has a positive
// gap.
func JoinMulti(list []statement.Statement) (statement.Statement, bool) {
	if len(list) == 0 {
		return statement.Statement{}, false
	}

	acc := list[0]
	for i := 1; i < len(list); i++ {
		if list[i-1].DistanceTo(list[i]) > 0 {
			return statement.Statement{}, false
		}
		joined, ok := Join(acc, list[i])
		if !ok {
			return statement.Statement{}, false
		}
		acc = joined
	}
	return acc, true
}

// Transitivity composes a:(X->Y) with b:(Y->Z) across the shared hop
// variable Y. It requires a's y-range to be contained in b's x-range —
// the portion of Y that b actually covers.
func Transitivity(a, b statement.Statement) (statement.Statement, bool) {
	if !(a.BeginY >= b.BeginX && a.EndY <= b.EndX) {
		return statement.Statement{}, false
	}
	return statement.Statement{
		BeginX: a.BeginX,
		EndX:   a.EndX,
		Q:      quality.Times(a.Q, b.Q),
		BeginY: b.BeginY,
		EndY:   b.EndY,
	}, true
}

// Fact reports whether hypothesis h is proven by candidate statement s.
// ok mirrors the "s != no conclusion" precondition of the nullable
// result that produced s — Fact is false whenever ok is false.
func Fact(h, s statement.Statement, ok bool) bool {
	if !ok {
		return false
	}
	if !s.Enveloping(h.BeginX, h.EndX) {
		return false
	}
	if s.BeginY < h.BeginY || s.EndY > h.EndY {
		return false
	}
	return quality.StrongerAs(s.Q, h.Q)
}
