// Package bench generates synthetic statement models and times the
// solver against them, mirroring benchmark.py/transitive.py's
// altitude-pressure, angle-intensity and transitivity-depth benchmarks
// generalized into parameterized Go generators.
package bench

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/reasoner"
)

const offset = 0.1

// GenerateChain builds a transitive chain of n hops between "a" and "c",
// each hop made of three parallel variables alternating Mono/Anti
// quality, mirroring create_transitive_test's width-3 construction. Each
// hop spans amountPerStep unit cells along x; seed drives no randomness
// in the chain itself (its structure is fully determined by n), but is
// accepted for a uniform generator signature with GenerateDense.
func GenerateChain(n int, _ int64) []reasoner.Tuple {
	const width = 3
	const amountPerStep = 12

	var model []reasoner.Tuple
	prev := make([]string, width)

	hopQuality := func(hop, lane int) quality.Quality {
		if hop%2 == 0 {
			if lane%2 == 0 {
				return quality.Mono
			}
			return quality.Anti
		}
		if lane%2 == 0 {
			return quality.Anti
		}
		return quality.Mono
	}

	yRange := func(q quality.Quality, j int) (float64, float64) {
		if q == quality.Mono {
			return float64(j) - offset, float64(j+1) + offset
		}
		return float64(amountPerStep-1-j) - offset, float64(amountPerStep-j) + offset
	}

	for lane := 0; lane < width; lane++ {
		q := hopQuality(0, lane)
		v := fmt.Sprintf("b(0,%d)", lane)
		prev[lane] = v
		for j := 0; j < amountPerStep; j++ {
			lo, hi := yRange(q, j)
			model = append(model, reasoner.Tuple{
				Influencing: "a",
				BeginX:      float64(j) - offset,
				EndX:        float64(j+1) + offset,
				Q:           q,
				BeginY:      lo,
				EndY:        hi,
				Influenced:  v,
			})
		}
	}

	for hop := 1; hop < n; hop++ {
		for lane := 0; lane < width; lane++ {
			q := hopQuality(hop, lane)
			v := fmt.Sprintf("b(%d,%d)", hop, lane)
			for j := 0; j < amountPerStep; j++ {
				lo, hi := yRange(q, j)
				model = append(model, reasoner.Tuple{
					Influencing: prev[lane],
					BeginX:      float64(j) - offset,
					EndX:        float64(j+1) + offset,
					Q:           q,
					BeginY:      lo,
					EndY:        hi,
					Influenced:  v,
				})
			}
			prev[lane] = v
		}
	}

	for lane := 0; lane < width; lane++ {
		q := hopQuality(n, lane)
		v := prev[lane]
		for j := 0; j < amountPerStep; j++ {
			lo, hi := yRange(q, j)
			model = append(model, reasoner.Tuple{
				Influencing: v,
				BeginX:      float64(j) - offset,
				EndX:        float64(j+1) + offset,
				Q:           q,
				BeginY:      lo,
				EndY:        hi,
				Influenced:  "c",
			})
		}
	}

	return model
}

// ChainHypothesis returns the hypothesis matching a model built by
// GenerateChain(n, ...): a constant influence of "a" over "c" across the
// chain's full per-hop span.
func ChainHypothesis(n int) reasoner.Tuple {
	const amountPerStep = 12
	return reasoner.Tuple{
		Influencing: "a",
		BeginX:      0,
		EndX:        amountPerStep,
		Q:           quality.Cons,
		BeginY:      0,
		EndY:        amountPerStep,
		Influenced:  "c",
	}
}

// GenerateDense builds a model of vars independent variables v0, v1, ...
// each contributing perPair randomly-placed, randomly-qualified
// statements to its own (v_i, "target") pair, for exercising the
// DynamicList's overlap-heavy normalization path the way
// altitude_pressure/angle_intensity's dense windowed models do.
func GenerateDense(vars, perPair int, seed int64) []reasoner.Tuple {
	rng := rand.New(rand.NewSource(seed))
	qualities := [...]quality.Quality{quality.Mono, quality.Anti, quality.Cons, quality.Arb}

	var model []reasoner.Tuple
	for v := 0; v < vars; v++ {
		for i := 0; i < perPair; i++ {
			lo := rng.Float64() * 100
			width := rng.Float64()*10 + 1
			yLo := rng.Float64() * 50
			yWidth := rng.Float64()*5 + 0.5
			model = append(model, reasoner.Tuple{
				Influencing: fmt.Sprintf("v%d", v),
				BeginX:      lo,
				EndX:        lo + width,
				Q:           qualities[rng.Intn(len(qualities))],
				BeginY:      yLo,
				EndY:        yLo + yWidth,
				Influenced:  "target",
			})
		}
	}
	return model
}

// Stats reports wall-clock timing across a repeated Run.
type Stats struct {
	Min, Mean, Max time.Duration
	Result         bool
}

// Run stages model into a freshly constructed Solver and solves hyp,
// repeat times, reporting min/mean/max wall time. A new Solver is built
// every iteration: the solver mutates its container and dependency-graph
// state on each Solve, so timing a single shared instance across
// iterations would measure a progressively pruned, non-representative
// graph instead of a cold solve.
func Run(model []reasoner.Tuple, hyp reasoner.Tuple, repeat int) (Stats, error) {
	if repeat <= 0 {
		repeat = 1
	}

	var stats Stats
	var total time.Duration
	stats.Min = time.Duration(math.MaxInt64)

	for i := 0; i < repeat; i++ {
		s := reasoner.New()
		if err := s.AddMany(model); err != nil {
			return Stats{}, err
		}

		start := time.Now()
		result, err := s.Solve(hyp)
		elapsed := time.Since(start)
		if err != nil {
			return Stats{}, err
		}

		if elapsed < stats.Min {
			stats.Min = elapsed
		}
		if elapsed > stats.Max {
			stats.Max = elapsed
		}
		total += elapsed
		stats.Result = result
	}

	stats.Mean = total / time.Duration(repeat)
	return stats, nil
}
