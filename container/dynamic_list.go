package container

import (
	"math"

	"github.com/lattice-ware/qualreason/boundary"
	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/rules"
	"github.com/lattice-ware/qualreason/statement"
)

// DynamicList is the container for the hypothesis pair (A,B) only. It
// owns the staged raw set, the normalized list, and the bounded-search
// state (xMin, xMax, ovMin, ovMax) that lets buildNecessaryStatements
// avoid exploring the whole boundary map on every solve phase.
type DynamicList struct {
	hypothesis statement.Statement
	staged     []statement.Statement
	normalized []statement.Statement

	xMin, xMax   float64
	ovMin, ovMax int
}

// NewDynamicList returns a DynamicList for hyp, staged with the raw
// statement set ss.
func NewDynamicList(hyp statement.Statement, ss []statement.Statement) *DynamicList {
	return &DynamicList{
		hypothesis: hyp,
		staged:     append([]statement.Statement(nil), ss...),
		xMin:       math.Inf(-1),
		xMax:       math.Inf(1),
		ovMin:      -1,
		ovMax:      -1,
	}
}

// Add stages a raw statement. No-op when ok is false.
func (dl *DynamicList) Add(s statement.Statement, ok bool) bool {
	if !ok {
		return false
	}
	dl.staged = append(dl.staged, s)
	return true
}

// Reset re-stages the current normalized list as the raw input for the
// next solve phase, clearing the normalized list and overlap indices.
// The bounded-search limits xMin/xMax persist across a reset — they
// narrow monotonically across the lifetime of a hypothesis check.
func (dl *DynamicList) Reset() {
	dl.staged = append([]statement.Statement(nil), dl.normalized...)
	dl.normalized = nil
	dl.ovMin, dl.ovMax = -1, -1
}

// Solve runs one solve phase: an empty staged set is immediately
// unproven, otherwise the boundary map is rebuilt, the necessary
// statements are assembled, and the hypothesis is checked against the
// slimmest joined cover of the overlapping region.
func (dl *DynamicList) Solve() bool {
	if len(dl.staged) == 0 {
		return false
	}

	bmap := boundary.Build(dl.staged)
	dl.staged = nil
	dl.buildNecessaryStatements(bmap)

	overlapping := sliceRange(dl.normalized, dl.ovMin, dl.ovMax)
	joined, ok := rules.JoinMulti(overlapping)
	return rules.Fact(dl.hypothesis, joined, ok)
}

// Len reports the size of the normalized list.
func (dl *DynamicList) Len() int {
	return len(dl.normalized)
}

// HypothesisRange returns the hypothesis's x- and y-range, the window
// StaticList narrows its own bounded search against.
func (dl *DynamicList) HypothesisRange() (loX, hiX, loY, hiY float64) {
	return dl.hypothesis.BeginX, dl.hypothesis.EndX, dl.hypothesis.BeginY, dl.hypothesis.EndY
}

// XMin and XMax expose the bounded-search limits so StaticList can
// share the same monotonically narrowing state DynamicList keeps
// across solve phases, instead of re-deriving its own.
func (dl *DynamicList) XMin() float64 { return dl.xMin }
func (dl *DynamicList) XMax() float64 { return dl.xMax }

// SetXMin and SetXMax narrow the shared bounded-search limits. Callers
// only ever tighten these, never widen them.
func (dl *DynamicList) SetXMin(x float64) { dl.xMin = x }
func (dl *DynamicList) SetXMax(x float64) { dl.xMax = x }

// Statements returns the normalized list.
func (dl *DynamicList) Statements() []statement.Statement {
	return dl.normalized
}

type searchDir struct {
	left, right bool
}

type correctBounds struct {
	lower, upper bool
}

func (c correctBounds) empty() bool {
	return !c.lower && !c.upper
}

// searchDirection is the direction table of §4.5.1: which side of an
// exceeding-height statement still needs to be searched, and which of
// its y-bounds a correction must satisfy before the search can stop.
func searchDirection(s statement.Statement, loY, hiY float64) (searchDir, correctBounds) {
	var d searchDir
	var c correctBounds

	switch s.Q {
	case quality.Mono:
		if s.BeginY < loY {
			d.right, c.lower = true, true
		}
		if s.EndY > hiY {
			d.left, c.upper = true, true
		}
	case quality.Anti:
		if s.BeginY < loY {
			d.left, c.lower = true, true
		}
		if s.EndY > hiY {
			d.right, c.upper = true, true
		}
	case quality.Cons:
		if s.BeginY < loY || s.EndY > hiY {
			d.left, d.right = true, true
			c.lower, c.upper = true, true
		}
	}
	return d, c
}

// buildNecessaryStatements locates the boundary segments overlapping
// the hypothesis x-range, strengthens each into the normalized list,
// and — if any result's y-range exceeds the hypothesis's — walks
// outward left and/or right, prepending or appending further
// strengthened segments until every violated bound is corrected or the
// boundary map runs out. It finishes with one StrengthenHeightSides
// sweep regardless of whether any exceeding statement was found.
func (dl *DynamicList) buildNecessaryStatements(bmap *boundary.Map) {
	loX, hiX := dl.hypothesis.BeginX, dl.hypothesis.EndX
	loY, hiY := dl.hypothesis.BeginY, dl.hypothesis.EndY

	bounds := bmap.Boundaries()
	begin, end := bmap.OverlapIndex(loX, hiX)
	if end > len(bounds) {
		end = len(bounds)
	}

	var exceeding []statement.Statement
	dl.ovMin, dl.ovMax = 0, end-begin

	for i := begin; i < end; i++ {
		point := bounds[i]
		occupying := bmap.At(point)
		if len(occupying) == 0 {
			continue
		}
		st, ok := rules.StrengthenMulti(point, bounds[i+1], occupying)
		if !ok {
			continue
		}
		if st.ExceedsHeight(loY, hiY) {
			exceeding = append(exceeding, st)
		}
		dl.normalized = append(dl.normalized, st)
	}

	if len(exceeding) > 0 {
		leftDir, correctLeft := searchDirection(exceeding[0], loY, hiY)
		rightDir, correctRight := searchDirection(exceeding[len(exceeding)-1], loY, hiY)

		if len(dl.normalized) > 0 && exceeding[0] == dl.normalized[0] && leftDir.left {
			dl.searchLeft(bmap, begin, loY, hiY, correctLeft)
		}
		if len(dl.normalized) > 0 && exceeding[len(exceeding)-1] == dl.normalized[len(dl.normalized)-1] && rightDir.right {
			dl.searchRight(bmap, end, loY, hiY, correctRight)
		}
	}

	strengthenHeightSides(dl.normalized)
}

func (dl *DynamicList) searchLeft(bmap *boundary.Map, begin int, loY, hiY float64, correct correctBounds) {
	bounds := bmap.Boundaries()
	for i := begin - 1; i >= 0; i-- {
		point := bounds[i]
		occupying := bmap.At(point)
		if len(occupying) == 0 {
			continue
		}
		next := bounds[i+1]
		if next < dl.xMin {
			break
		}
		st, ok := rules.StrengthenMulti(point, next, occupying)
		if !ok {
			continue
		}

		dl.normalized = append([]statement.Statement{st}, dl.normalized...)
		dl.ovMin++
		dl.ovMax++

		if correct.upper && st.EndY <= hiY {
			correct.upper = false
		}
		if correct.lower && st.BeginY >= loY {
			correct.lower = false
		}
		if correct.empty() {
			dl.xMin = st.EndX
			break
		}
	}
}

func (dl *DynamicList) searchRight(bmap *boundary.Map, end int, loY, hiY float64, correct correctBounds) {
	bounds := bmap.Boundaries()
	for i := end; i < len(bounds)-1; i++ {
		point := bounds[i]
		if point > dl.xMax {
			break
		}
		occupying := bmap.At(point)
		if len(occupying) == 0 {
			continue
		}
		st, ok := rules.StrengthenMulti(point, bounds[i+1], occupying)
		if !ok {
			continue
		}

		dl.normalized = append(dl.normalized, st)

		if correct.upper && st.EndY <= hiY {
			correct.upper = false
		}
		if correct.lower && st.BeginY >= loY {
			correct.lower = false
		}
		if correct.empty() {
			dl.xMax = st.BeginX
			break
		}
	}
}
