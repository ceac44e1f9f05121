// Package boundary builds the sorted endpoint index containers use to
// walk occupied x-segments and to binary-search for statements
// overlapping a query range.
package boundary

import (
	"sort"

	"github.com/lattice-ware/qualreason/statement"
)

// Map is the derived structure over a set of statements: a sorted list
// of distinct x endpoints, plus, per endpoint, the set of statements
// whose x-range strictly contains it as the left boundary of some
// segment.
type Map struct {
	bounds []float64
	at     map[float64][]statement.Statement
}

// Build runs the boundary sweep over ss. No statement is mutated.
func Build(ss []statement.Statement) *Map {
	open := make(map[statement.Statement]struct{})
	at := make(map[float64]map[statement.Statement]struct{})

	ensure := func(b float64) {
		if _, ok := at[b]; !ok {
			at[b] = make(map[statement.Statement]struct{})
		}
	}

	boundSet := make(map[float64]struct{})
	for _, s := range ss {
		ensure(s.BeginX)
		ensure(s.EndX)
		at[s.BeginX][s] = struct{}{}
		at[s.EndX][s] = struct{}{}
		boundSet[s.BeginX] = struct{}{}
		boundSet[s.EndX] = struct{}{}
	}

	bounds := make([]float64, 0, len(boundSet))
	for b := range boundSet {
		bounds = append(bounds, b)
	}
	sort.Float64s(bounds)

	for _, b := range bounds {
		// s is "closing" at b when it was already open — that is where it
		// ends; it leaves the running set instead of being merged in.
		for s := range open {
			if _, closing := at[b][s]; closing {
				delete(at[b], s)
				delete(open, s)
			}
		}
		for s := range open {
			at[b][s] = struct{}{}
		}
		for s := range at[b] {
			open[s] = struct{}{}
		}
	}

	flat := make(map[float64][]statement.Statement, len(at))
	for b, set := range at {
		list := make([]statement.Statement, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Less(list[j]) })
		flat[b] = list
	}

	return &Map{bounds: bounds, at: flat}
}

// Boundaries returns the sorted distinct endpoints.
func (m *Map) Boundaries() []float64 {
	return m.bounds
}

// At returns the statements occupying the segment starting at boundary b.
func (m *Map) At(b float64) []statement.Statement {
	return m.at[b]
}

// OverlapIndex returns the half-open [left,right) range of boundary
// indices overlapped by [lo,hi], mirroring bisect_left/bisect_right with
// a one-step left expansion so a statement opened before lo but still
// spanning it is included.
func (m *Map) OverlapIndex(lo, hi float64) (int, int) {
	left := sort.Search(len(m.bounds), func(i int) bool { return m.bounds[i] >= lo })
	if left > 0 {
		left--
	}
	right := sort.Search(len(m.bounds), func(i int) bool { return m.bounds[i] > hi })
	return left, right
}
