// Package ingest converts a two-column-per-influence CSV of numeric
// samples into the staged statement tuples reasoner.Solver consumes. It
// is a collaborator of the solver, not part of its contract — only the
// produced reasoner.Tuple stream matters downstream.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/reasoner"
)

// ErrMalformedCSV is returned, wrapping the offending row number, when a
// row has an odd column count or an unparseable float.
var ErrMalformedCSV = errors.New("ingest: malformed csv row")

type point struct {
	x, y float64
}

type influence struct {
	a, b   string
	points []point
}

// ReadModel parses r as a two-column-per-influence CSV — variable names
// in row 1, numeric (x,y) sample pairs in every row below — and
// converts each influence's samples into a sequence of statement tuples
// by sliding a window of width granularity along x with step
// 2/3*granularity, deriving a quality from the aggregate slope sign
// across the window and centering a statement of height granularity on
// the window's mean y. Adjacent statement heights are stretched to meet
// when a gap appears between consecutive windows.
func ReadModel(r io.Reader, granularity float64) ([]reasoner.Tuple, error) {
	influences, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	var model []reasoner.Tuple
	for _, inf := range influences {
		model = append(model, buildStatements(inf, granularity)...)
	}
	return model, nil
}

func readCSV(r io.Reader) ([]influence, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var influences []influence
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, rowNum+1, err)
		}
		if len(row)%2 != 0 {
			return nil, fmt.Errorf("%w: row %d: odd column count", ErrMalformedCSV, rowNum+1)
		}

		if rowNum == 0 {
			for j := 0; j < len(row); j += 2 {
				influences = append(influences, influence{a: row[j], b: row[j+1]})
			}
			rowNum++
			continue
		}

		for j := 0; j < len(row); j += 2 {
			idx := j / 2
			if idx >= len(influences) {
				return nil, fmt.Errorf("%w: row %d: more column groups than header", ErrMalformedCSV, rowNum+1)
			}
			x, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, rowNum+1, err)
			}
			y, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, rowNum+1, err)
			}
			influences[idx].points = append(influences[idx].points, point{x, y})
		}
		rowNum++
	}

	for i := range influences {
		sort.Slice(influences[i].points, func(x, y int) bool {
			return influences[i].points[x].x < influences[i].points[y].x
		})
	}
	return influences, nil
}

func buildStatements(inf influence, granularity float64) []reasoner.Tuple {
	if len(inf.points) == 0 {
		return nil
	}

	xs := make([]float64, len(inf.points))
	ys := make([]float64, len(inf.points))
	for i, p := range inf.points {
		xs[i] = p.x
		ys[i] = p.y
	}
	greatestEnd := xs[len(xs)-1]
	halfHeight := granularity / 2

	var statements []reasoner.Tuple
	current := xs[0]
	for {
		end := current + granularity
		building := true
		if end > greatestEnd {
			end = greatestEnd
			building = false
		}

		first := sort.SearchFloat64s(xs, current)
		last := sortedUpperBound(xs, end)
		if first == last {
			if last+2 < len(xs) {
				last += 2
			} else {
				last = len(xs)
			}
		}
		if first == last-1 {
			if last+1 < len(xs) {
				last++
			} else {
				last = len(xs)
			}
		}

		q := windowQuality(ys[first:last])
		mean := floats.Sum(ys[first:last]) / float64(last-first)

		statements = append(statements, reasoner.Tuple{
			Influencing: inf.a,
			BeginX:      current,
			EndX:        end,
			Q:           q,
			BeginY:      mean - halfHeight,
			EndY:        mean + halfHeight,
			Influenced:  inf.b,
		})

		if !building {
			break
		}
		current += 2.0 / 3.0 * granularity
	}

	stretchAdjacent(statements, granularity)
	return statements
}

// windowQuality derives Q from the sign of every pairwise slope across
// the window's y-samples: positive and negative slopes both present
// yields Arb, only-positive yields Mono, only-negative yields Anti,
// neither yields Cons.
func windowQuality(ys []float64) quality.Quality {
	q := quality.Cons
	for i := 0; i < len(ys); i++ {
		if q == quality.Arb {
			break
		}
		for j := i + 1; j < len(ys); j++ {
			switch {
			case ys[i] < ys[j]:
				if q == quality.Cons || q == quality.Mono {
					q = quality.Mono
				} else if q == quality.Anti {
					q = quality.Arb
				}
			case ys[i] > ys[j]:
				if q == quality.Cons || q == quality.Anti {
					q = quality.Anti
				} else if q == quality.Mono {
					q = quality.Arb
				}
			}
			if q == quality.Arb {
				break
			}
		}
	}
	return q
}

// stretchAdjacent widens a statement's y-range toward its neighbor by
// half a granularity when a gap separates the two windows, so the
// sequence has no height discontinuity between adjacent windows.
func stretchAdjacent(statements []reasoner.Tuple, granularity float64) {
	halfHeight := granularity / 2
	for i := 0; i < len(statements)-1; i++ {
		cur := &statements[i]
		next := statements[i+1]
		switch {
		case cur.EndY < next.BeginY:
			cur.EndY = next.BeginY + halfHeight
		case cur.BeginY > next.EndY:
			cur.BeginY = next.EndY - halfHeight
		}
	}
}

func sortedUpperBound(xs []float64, v float64) int {
	return sort.Search(len(xs), func(i int) bool { return xs[i] > v })
}
