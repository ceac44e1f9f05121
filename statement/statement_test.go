package statement_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/statement"
)

func mustNew(t *testing.T, bx, ex float64, q quality.Quality, by, ey float64) statement.Statement {
	t.Helper()
	s, err := statement.New(bx, ex, q, by, ey)
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadRange(t *testing.T) {
	_, err := statement.New(5, 0, quality.Mono, 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, statement.ErrBadRange))

	_, err = statement.New(0, 5, quality.Mono, 3, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, statement.ErrBadRange))
}

func TestPredicates(t *testing.T) {
	s := mustNew(t, 2, 5, quality.Mono, 0, 1)

	assert.True(t, s.Overlaps(4, 10))
	assert.False(t, s.Overlaps(6, 10))
	assert.True(t, s.EnvelopedBy(0, 10))
	assert.False(t, s.EnvelopedBy(3, 4))
	assert.True(t, s.Enveloping(3, 4))
	assert.False(t, s.Enveloping(0, 10))
	assert.True(t, s.ContainsPoint(2))
	assert.True(t, s.ContainsPoint(5))
	assert.False(t, s.ContainsPoint(1.9))
	assert.True(t, s.ExceedsHeight(0.2, 0.8))
	assert.False(t, s.ExceedsHeight(-1, 2))
}

func TestDistanceTo(t *testing.T) {
	a := mustNew(t, 0, 2, quality.Mono, 0, 1)
	b := mustNew(t, 2, 4, quality.Mono, 0, 1)
	assert.Equal(t, 0.0, a.DistanceTo(b), "touching ranges overlap")

	c := mustNew(t, 5, 6, quality.Mono, 0, 1)
	assert.Equal(t, 3.0, a.DistanceTo(c))
	assert.Equal(t, 3.0, c.DistanceTo(a))
}

func TestStrongerAs(t *testing.T) {
	strong := mustNew(t, 0, 10, quality.Cons, 2, 4)
	weak := mustNew(t, 2, 5, quality.Mono, 1, 5)
	assert.True(t, strong.StrongerAs(weak, nil))
	assert.False(t, weak.StrongerAs(strong, nil))

	// y-range not contained, but satisfied by an externally supplied window
	narrow := mustNew(t, 0, 10, quality.Cons, 0, 1)
	window := [2]float64{0, 5}
	assert.True(t, narrow.StrongerAs(weak, &window))
	assert.False(t, narrow.StrongerAs(weak, nil))
}

func TestLessOrdering(t *testing.T) {
	a := mustNew(t, 0, 1, quality.Cons, 0, 1)
	b := mustNew(t, 0, 1, quality.Mono, 0, 1)
	c := mustNew(t, 1, 2, quality.Mono, 0, 1)

	assert.True(t, a.Less(b), "stronger quality sorts first at equal BeginX")
	assert.False(t, b.Less(a))
	assert.True(t, b.Less(c), "earlier BeginX sorts first")
}

func TestReflexiveStrongerAs(t *testing.T) {
	for _, q := range []quality.Quality{quality.Mono, quality.Anti, quality.Cons, quality.Arb} {
		s := mustNew(t, 0, 1, q, 0, 1)
		assert.True(t, quality.StrongerAs(s.Q, s.Q))
	}
}
