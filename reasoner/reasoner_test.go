package reasoner_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/reasoner"
)

func tuple(influencing string, bx, ex float64, q quality.Quality, by, ey float64, influenced string) reasoner.Tuple {
	return reasoner.Tuple{
		Influencing: influencing,
		BeginX:      bx,
		EndX:        ex,
		Q:           q,
		BeginY:      by,
		EndY:        ey,
		Influenced:  influenced,
	}
}

func TestSolveTrivialFact(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.AddMany([]reasoner.Tuple{
		tuple("a", 0, 5, quality.Mono, 2, 4, "b"),
		tuple("a", 2, 3, quality.Mono, 0, 3, "b"),
	}))

	ok, err := s.Solve(tuple("a", 0, 5, quality.Mono, 2, 3, "b"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolveStrengtheningNeeded(t *testing.T) {
	model := []reasoner.Tuple{
		tuple("a", 0, 2, quality.Mono, 3, 3.5, "b"),
		tuple("a", 2, 3.3, quality.Mono, 2.1, 3.2, "b"),
		tuple("a", 3, 4.5, quality.Mono, 1.4, 2.2, "b"),
		tuple("a", 4, 5.1, quality.Mono, 1.2, 2, "b"),
		tuple("a", 5, 7, quality.Mono, 1.1, 1.9, "b"),
		tuple("a", 7, 8, quality.Mono, 1.7, 3, "b"),
		tuple("a", 7.9, 9, quality.Mono, 1, 2, "b"),
		tuple("a", 8.6, 10.8, quality.Mono, 1.5, 1.8, "b"),
		tuple("a", 8.6, 10.7, quality.Mono, 1.6, 2.2, "b"),
		tuple("a", 0, 2.5, quality.Mono, 1, 2, "b"),
		tuple("a", 10, 11, quality.Mono, 1.3, 1.9, "b"),
	}

	s := reasoner.New()
	require.NoError(t, s.AddMany(model))

	ok, err := s.Solve(tuple("a", 5, 7, quality.Mono, 1.7, 1.8, "b"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolveChainedTransitivity(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.AddMany([]reasoner.Tuple{
		tuple("a", 0, 1, quality.Mono, 0, 1, "b"),
		tuple("b", 0, 1, quality.Mono, 0, 1, "d"),
		tuple("d", 0, 1, quality.Mono, 0, 1, "c"),
		tuple("a", 0, 1, quality.Mono, 0, 1, "c"),
		tuple("d", 0, 1, quality.Mono, 0, 1, "e"),
		tuple("b", 0, 1, quality.Mono, 0, 1, "e"),
	}))

	ok, err := s.Solve(tuple("a", 0, 1, quality.Mono, 0, 1, "e"))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestSolvePeriodicACSignal models a sine-derived time->voltage relation
// over one period — MONO through the rising half, ANTI on the two
// falling halves either side — composed with a resistor's linear
// voltage->current map, the way the reference implementation's demo
// builds a qualitative model of an AC circuit.
func TestSolvePeriodicACSignal(t *testing.T) {
	const resistance = 300.0
	peakVoltage := 230.0 * math.Sqrt2
	peakCurrent := peakVoltage / resistance

	s := reasoner.New()
	require.NoError(t, s.AddMany([]reasoner.Tuple{
		tuple("time", -math.Pi, -math.Pi/2, quality.Anti, -peakVoltage, 0, "voltage"),
		tuple("time", -math.Pi/2, math.Pi/2, quality.Mono, -peakVoltage, peakVoltage, "voltage"),
		tuple("time", math.Pi/2, math.Pi, quality.Anti, 0, peakVoltage, "voltage"),
		tuple("voltage", -peakVoltage, peakVoltage, quality.Mono, -peakCurrent, peakCurrent, "current"),
	}))

	ok, err := s.Solve(tuple("time", -math.Pi/2, math.Pi/2, quality.Mono, -peakCurrent, peakCurrent, "current"))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestSolveMonotonePiecewiseLinearAlwaysProven is the §8 property-based
// check: a random statement set built from a strictly increasing
// piecewise-linear function always proves its own sign-consistent (MONO)
// envelope hypothesis. Seeded for determinism, not a fuzzer — the model
// sizes here don't warrant one.
func TestSolveMonotonePiecewiseLinearAlwaysProven(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		segments := 3 + rng.Intn(5)
		ys := make([]float64, segments+1)
		ys[0] = rng.Float64() * 10
		for i := 1; i <= segments; i++ {
			ys[i] = ys[i-1] + rng.Float64()*5 + 0.1
		}

		s := reasoner.New()
		for i := 0; i < segments; i++ {
			x0, x1 := float64(i), float64(i+1)
			require.NoError(t, s.Add(tuple("a", x0, x1, quality.Mono, ys[i], ys[i+1], "b")))
		}

		ok, err := s.Solve(tuple("a", 0, float64(segments), quality.Mono, ys[0], ys[segments], "b"))
		require.NoError(t, err)
		assert.True(t, ok, "trial %d: sign-consistent hypothesis over a monotone piecewise-linear model must be proven", trial)
	}
}

func TestSolveReflexiveRejection(t *testing.T) {
	s := reasoner.New()
	ok, err := s.Solve(tuple("a", 0, 10, quality.Anti, 1, 5, "a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveReflexiveAccepted(t *testing.T) {
	s := reasoner.New()
	ok, err := s.Solve(tuple("a", 0, 10, quality.Mono, 1, 5, "a"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolveUnreachableTarget(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.Add(tuple("a", 0, 1, quality.Mono, 0, 1, "b")))

	ok, err := s.Solve(tuple("a", 0, 1, quality.Mono, 0, 1, "c"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddRejectsCycle(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.Add(tuple("a", 0, 1, quality.Mono, 0, 1, "b")))
	require.NoError(t, s.Add(tuple("b", 0, 1, quality.Mono, 0, 1, "c")))

	err := s.Add(tuple("c", 0, 1, quality.Mono, 0, 1, "a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, reasoner.ErrCycle))
}

func TestRemoveRejectsAbsentStatement(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.Add(tuple("a", 0, 1, quality.Mono, 0, 1, "b")))

	err := s.Remove(tuple("a", 5, 6, quality.Mono, 0, 1, "b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, reasoner.ErrNotStaged))
}

func TestRemoveThenSolveFalse(t *testing.T) {
	s := reasoner.New()
	st := tuple("a", 0, 1, quality.Mono, 0, 1, "b")
	require.NoError(t, s.Add(st))
	require.NoError(t, s.Remove(st))

	ok, err := s.Solve(tuple("a", 0, 1, quality.Mono, 0, 1, "b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiscardIsIdempotent(t *testing.T) {
	s := reasoner.New()
	st := tuple("a", 0, 1, quality.Mono, 0, 1, "b")
	s.Discard(st)
	require.NoError(t, s.Add(st))
	s.Discard(st)
	s.Discard(st)

	ok, err := s.Solve(tuple("a", 0, 1, quality.Mono, 0, 1, "b"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveBadRangeIsFatal(t *testing.T) {
	s := reasoner.New()
	_, err := s.Solve(tuple("a", 5, 1, quality.Mono, 0, 1, "b"))
	require.Error(t, err)
}

func TestLenAfterSolve(t *testing.T) {
	s := reasoner.New()
	require.NoError(t, s.AddMany([]reasoner.Tuple{
		tuple("a", 0, 5, quality.Mono, 2, 4, "b"),
		tuple("a", 2, 3, quality.Mono, 0, 3, "b"),
	}))

	_, err := s.Solve(tuple("a", 0, 5, quality.Mono, 2, 3, "b"))
	require.NoError(t, err)
	assert.NotZero(t, s.Len())
}
