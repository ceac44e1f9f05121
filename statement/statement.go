// Package statement defines the immutable Statement record — a
// qualitative influence claim over an x-range/y-range pair — and the
// geometric predicates the rule engine and containers build on.
package statement

import (
	"errors"
	"fmt"

	"github.com/lattice-ware/qualreason/quality"
)

// ErrBadRange is returned when a statement's begin exceeds its end on
// either axis.
var ErrBadRange = errors.New("statement: begin exceeds end")

// Statement is the 5-tuple (BeginX, EndX, Q, BeginY, EndY). It is
// immutable once constructed and safe to copy, compare, and use as a map
// key.
type Statement struct {
	BeginX, EndX float64
	Q            quality.Quality
	BeginY, EndY float64
}

// New validates and constructs a Statement. It never silently reorders
// swapped endpoints — callers must supply ordered bounds.
func New(beginX, endX float64, q quality.Quality, beginY, endY float64) (Statement, error) {
	if beginX > endX || beginY > endY {
		return Statement{}, fmt.Errorf("%w: x=[%v,%v] y=[%v,%v]", ErrBadRange, beginX, endX, beginY, endY)
	}
	return Statement{BeginX: beginX, EndX: endX, Q: q, BeginY: beginY, EndY: endY}, nil
}

// Overlaps reports whether s's x-range overlaps [lo,hi].
func (s Statement) Overlaps(lo, hi float64) bool {
	return lo <= s.EndX && hi >= s.BeginX
}

// OverlapsY reports whether s's y-range overlaps [lo,hi].
func (s Statement) OverlapsY(lo, hi float64) bool {
	return lo <= s.EndY && hi >= s.BeginY
}

// EnvelopedBy reports whether [lo,hi] envelops s's x-range.
func (s Statement) EnvelopedBy(lo, hi float64) bool {
	return lo <= s.BeginX && hi >= s.EndX
}

// Enveloping reports whether s's x-range envelops [lo,hi].
func (s Statement) Enveloping(lo, hi float64) bool {
	return lo >= s.BeginX && hi <= s.EndX
}

// ContainsPoint reports whether p lies within s's x-range.
func (s Statement) ContainsPoint(p float64) bool {
	return s.BeginX <= p && p <= s.EndX
}

// ExceedsHeight reports whether s's y-range extends beyond [lo,hi].
func (s Statement) ExceedsHeight(lo, hi float64) bool {
	return s.BeginY < lo || s.EndY > hi
}

// DistanceTo returns 0 when s and other's x-ranges overlap, else the gap
// between them.
func (s Statement) DistanceTo(other Statement) float64 {
	if s.Overlaps(other.BeginX, other.EndX) {
		return 0
	}
	if s.BeginX < other.BeginX {
		return other.BeginX - s.EndX
	}
	return s.BeginX - other.EndX
}

// StrongerAs reports whether s subsumes t: s's quality dominates t's, s's
// x-range covers t's, and s's y-range is contained in t's — or, when a
// height window is supplied, s's y-range lies within that window instead.
func (s Statement) StrongerAs(t Statement, heightWindow *[2]float64) bool {
	if !quality.StrongerAs(s.Q, t.Q) || s.BeginX > t.BeginX || s.EndX < t.EndX {
		return false
	}
	if s.BeginY >= t.BeginY && s.EndY <= t.EndY {
		return true
	}
	return heightWindow != nil && heightWindow[0] <= s.BeginY && heightWindow[1] >= s.EndY
}

// Less is the total order used to keep normalized lists sorted: primary
// by BeginX ascending, secondary by quality.StrongerAs descending
// (stronger statements sort first among equal BeginX).
func (s Statement) Less(other Statement) bool {
	if s.BeginX != other.BeginX {
		return s.BeginX < other.BeginX
	}
	if s.Q == other.Q {
		return false
	}
	return quality.StrongerAs(s.Q, other.Q)
}

// String renders s for diagnostics and test failure messages.
func (s Statement) String() string {
	return fmt.Sprintf("Statement(x=[%g,%g], %s, y=[%g,%g])", s.BeginX, s.EndX, s.Q, s.BeginY, s.EndY)
}
