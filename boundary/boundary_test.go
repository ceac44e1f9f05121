package boundary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ware/qualreason/boundary"
	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/statement"
)

func mustNew(t *testing.T, bx, ex float64, q quality.Quality, by, ey float64) statement.Statement {
	t.Helper()
	s, err := statement.New(bx, ex, q, by, ey)
	require.NoError(t, err)
	return s
}

func TestBuildAdjacentSegments(t *testing.T) {
	s1 := mustNew(t, 0, 3, quality.Mono, 0, 1)
	s2 := mustNew(t, 3, 6, quality.Mono, 0, 1)

	m := boundary.Build([]statement.Statement{s1, s2})

	assert.Equal(t, []float64{0, 3, 6}, m.Boundaries())
	assert.Equal(t, []statement.Statement{s1}, m.At(0))
	assert.Equal(t, []statement.Statement{s2}, m.At(3))
	assert.Empty(t, m.At(6))
}

func TestBuildOverlappingSegments(t *testing.T) {
	s1 := mustNew(t, 0, 5, quality.Mono, 0, 1)
	s2 := mustNew(t, 2, 8, quality.Anti, 0, 1)

	m := boundary.Build([]statement.Statement{s1, s2})

	assert.Equal(t, []float64{0, 2, 5, 8}, m.Boundaries())
	assert.Equal(t, []statement.Statement{s1}, m.At(0))
	assert.ElementsMatch(t, []statement.Statement{s1, s2}, m.At(2))
	assert.Equal(t, []statement.Statement{s2}, m.At(5))
	assert.Empty(t, m.At(8))
}

func TestOverlapIndex(t *testing.T) {
	s1 := mustNew(t, 0, 5, quality.Mono, 0, 1)
	s2 := mustNew(t, 2, 8, quality.Anti, 0, 1)
	m := boundary.Build([]statement.Statement{s1, s2})

	left, right := m.OverlapIndex(3, 6)
	assert.Equal(t, 1, left)
	assert.Equal(t, 3, right)
}

func TestOverlapIndexBeforeAllBounds(t *testing.T) {
	s1 := mustNew(t, 5, 10, quality.Mono, 0, 1)
	m := boundary.Build([]statement.Statement{s1})

	left, right := m.OverlapIndex(-5, -1)
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, right)
}

func TestBuildEmpty(t *testing.T) {
	m := boundary.Build(nil)
	assert.Empty(t, m.Boundaries())
}
