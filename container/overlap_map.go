package container

import (
	"github.com/lattice-ware/qualreason/boundary"
	"github.com/lattice-ware/qualreason/rules"
	"github.com/lattice-ware/qualreason/statement"
)

// OverlapMap is the read-mostly container for a variable pair where the
// second variable is the hypothesis target but the first is not the
// hypothesis source. It stays un-normalized until Initiate is called.
type OverlapMap struct {
	raw        []statement.Statement
	normalized []statement.Statement
	initiated  bool
}

// NewOverlapMap returns an empty, un-initiated OverlapMap.
func NewOverlapMap() *OverlapMap {
	return &OverlapMap{}
}

// Add stages a raw statement and invalidates normalization. It is a
// no-op when ok is false, mirroring the nullable result of a rule
// application.
func (m *OverlapMap) Add(s statement.Statement, ok bool) bool {
	if !ok {
		return false
	}
	m.raw = append(m.raw, s)
	m.initiated = false
	return true
}

// Initiate builds the normalized, non-overlapping statement list from
// the staged raw set. Idempotent.
func (m *OverlapMap) Initiate() {
	if m.initiated {
		return
	}
	m.normalized = nil

	bmap := boundary.Build(m.raw)
	bounds := bmap.Boundaries()
	for i := 0; i < len(bounds)-1; i++ {
		point := bounds[i]
		occupying := bmap.At(point)
		if len(occupying) == 0 {
			continue
		}
		st, ok := rules.StrengthenMulti(point, bounds[i+1], occupying)
		if ok {
			m.normalized = append(m.normalized, st)
		}
	}
	m.initiated = true
}

// Slimmest returns the tightest single statement enveloping [lo,hi],
// built by joining the normalized statements that overlap it.
func (m *OverlapMap) Slimmest(lo, hi float64) (statement.Statement, bool) {
	m.Initiate()
	lower, upper := overlapRange(m.normalized, lo, hi)
	if lower == -1 {
		return statement.Statement{}, false
	}
	return rules.JoinMulti(m.normalized[lower:upper])
}

// Len reports the number of raw staged statements.
func (m *OverlapMap) Len() int {
	return len(m.raw)
}

// Statements returns the normalized list, initiating first if needed.
func (m *OverlapMap) Statements() []statement.Statement {
	m.Initiate()
	return m.normalized
}
