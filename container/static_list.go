package container

import (
	"github.com/lattice-ware/qualreason/boundary"
	"github.com/lattice-ware/qualreason/rules"
	"github.com/lattice-ware/qualreason/statement"
)

// StaticList is the container for every (A,B) pair that lies on the
// path to the hypothesis but is not itself the hypothesis pair. It
// normalizes eagerly at construction and runs one height-sides sweep.
type StaticList struct {
	normalized []statement.Statement
}

// NewStaticList builds and normalizes a StaticList from a raw statement
// set.
func NewStaticList(ss []statement.Statement) *StaticList {
	bmap := boundary.Build(ss)
	bounds := bmap.Boundaries()

	var normalized []statement.Statement
	for i := 0; i < len(bounds)-1; i++ {
		point := bounds[i]
		occupying := bmap.At(point)
		if len(occupying) == 0 {
			continue
		}
		st, ok := rules.StrengthenMulti(point, bounds[i+1], occupying)
		if ok {
			normalized = append(normalized, st)
		}
	}

	sl := &StaticList{normalized: normalized}
	sl.StrengthenHeightSides()
	return sl
}

// StrengthenHeightSides runs the left-right fixed-point sweep over the
// normalized list.
func (sl *StaticList) StrengthenHeightSides() {
	strengthenHeightSides(sl.normalized)
}

// Len reports the size of the normalized list.
func (sl *StaticList) Len() int {
	return len(sl.normalized)
}

// Statements returns the normalized list.
func (sl *StaticList) Statements() []statement.Statement {
	return sl.normalized
}

// TransitiveBuilder is the callback a solver implements to compose one
// hop's statement with the tightest cover from the next hop's
// OverlapMap and register the result under (a,c). StaticList only
// drives the iteration; the solver owns lookup, composition and
// bookkeeping — keeping this package free of any dependency on the
// solver or the dependency graph.
type TransitiveBuilder interface {
	CreateTransitive(st statement.Statement, next *OverlapMap, a, c string) (statement.Statement, bool)
}

// IntervalHeightAndTransitives drives the transitive build for one
// (a,b)->(b,c) hop: only the normalized statements overlapping the
// hypothesis's x-range are offered to builder, which looks up the
// tightest cover in next and composes via Transitivity. If the
// composed result at either edge of that window still falls short of
// the hypothesis's y-range, the scan walks outward — left from the
// window's start, right from its end — narrowing bounds's xMin/xMax as
// it goes, the same bounded-search bookkeeping DynamicList uses, so a
// solve phase never has to explore the whole path.
func (sl *StaticList) IntervalHeightAndTransitives(builder TransitiveBuilder, next *OverlapMap, a, c string, bounds HypothesisBounds) {
	loX, hiX, loY, hiY := bounds.HypothesisRange()

	begin, end := overlapRange(sl.normalized, loX, hiX)
	if begin == -1 {
		return
	}
	if end > len(sl.normalized) {
		end = len(sl.normalized)
	}

	var correctLeft, correctRight bool
	for i := begin; i < end; i++ {
		st, ok := builder.CreateTransitive(sl.normalized[i], next, a, c)
		if !ok {
			continue
		}
		if i == begin && st.ContainsPoint(loX) {
			correctLeft = st.BeginY > loY || st.EndY < hiY
		}
		if i == end-1 && st.ContainsPoint(hiX) {
			correctRight = st.BeginY > loY || st.EndY < hiY
		}
	}

	if correctLeft {
		sl.searchLeft(builder, next, a, c, begin, loY, hiY, bounds)
	}
	if correctRight {
		sl.searchRight(builder, next, a, c, end, loY, hiY, bounds)
	}
}

func (sl *StaticList) searchLeft(builder TransitiveBuilder, next *OverlapMap, a, c string, begin int, loY, hiY float64, bounds HypothesisBounds) {
	for i := begin - 1; i >= 0; i-- {
		st := sl.normalized[i]
		if st.EndX < bounds.XMin() {
			break
		}
		newSt, ok := builder.CreateTransitive(st, next, a, c)
		if !ok {
			continue
		}
		if newSt.BeginY <= loY && newSt.EndY >= hiY {
			bounds.SetXMin(st.EndX)
			break
		}
	}
}

func (sl *StaticList) searchRight(builder TransitiveBuilder, next *OverlapMap, a, c string, end int, loY, hiY float64, bounds HypothesisBounds) {
	for i := end; i < len(sl.normalized); i++ {
		st := sl.normalized[i]
		if st.BeginX > bounds.XMax() {
			break
		}
		newSt, ok := builder.CreateTransitive(st, next, a, c)
		if !ok {
			continue
		}
		if newSt.BeginY <= loY && newSt.EndY >= hiY {
			bounds.SetXMax(st.BeginX)
			break
		}
	}
}
