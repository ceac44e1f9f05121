// Package render draws one sub-plot per influence pair in a solver
// snapshot, each statement as a quality-colored rectangle, mirroring the
// reference implementation's matplotlib-based plot_statements/_plot_axis
// with gonum.org/v1/plot's vector graphics stack instead.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/reasoner"
	"github.com/lattice-ware/qualreason/statement"
)

// ErrEmptySnapshot is returned when the snapshot has no influence pairs
// to lay a subplot out for.
var ErrEmptySnapshot = errors.New("render: snapshot has no influence pairs")

// qualityColors fixes one color per Quality value, used to fill every
// statement rectangle.
var qualityColors = map[quality.Quality]color.RGBA{
	quality.Mono: {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	quality.Anti: {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	quality.Cons: {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	quality.Arb:  {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
}

var hypothesisColor = color.RGBA{R: 0xe3, G: 0x00, B: 0x00, A: 0xff}

// Render lays out one sub-plot per influence pair present in snapshot,
// stacked in a single column the way the reference implementation stacks
// its matplotlib subplots. Every statement becomes a filled rectangle
// spanning [BeginX,EndX]x[BeginY,EndY] colored by quality. When
// hypothesis is non-nil and its pair matches a subplot, it is drawn on
// top as an unfilled dashed outline. Render never mutates snapshot.
func Render(snapshot reasoner.Snapshot, hypothesis *reasoner.Tuple, w, h vg.Length) (*vgimg.Canvas, error) {
	pairs := sortedPairs(snapshot)
	if len(pairs) == 0 {
		return nil, ErrEmptySnapshot
	}

	plots := make([][]*plot.Plot, len(pairs))
	for i, p := range pairs {
		sp, err := buildSubplot(p, snapshot.Pairs[p], hypothesis)
		if err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{sp}
	}

	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(plots), Cols: 1,
		PadTop: vg.Points(5), PadBottom: vg.Points(5),
		PadLeft: vg.Points(5), PadRight: vg.Points(5),
		PadY: vg.Points(10),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, row := range plots {
		for j, sp := range row {
			sp.Draw(canvases[i][j])
		}
	}
	return img, nil
}

func buildSubplot(p reasoner.Pair, statements []statement.Statement, hypothesis *reasoner.Tuple) (*plot.Plot, error) {
	sp := plot.New()
	sp.X.Label.Text = p.Influencing
	sp.Y.Label.Text = p.Influenced

	matches := hypothesis != nil && hypothesis.Influencing == p.Influencing && hypothesis.Influenced == p.Influenced
	minX, maxX, minY, maxY := bounds(statements, hypothesis, matches)

	offsetX := maxX - minX
	if offsetX == 0 {
		offsetX = 10
	}
	offsetY := maxY - minY
	if offsetY == 0 {
		offsetY = 10
	}
	marginX, marginY := offsetX/30, offsetY/6
	sp.X.Min, sp.X.Max = minX-marginX, maxX+marginX
	sp.Y.Min, sp.Y.Max = minY-marginY, maxY+marginY

	for _, st := range statements {
		poly, err := rectanglePolygon(st.BeginX, st.EndX, st.BeginY, st.EndY, qualityColors[st.Q], true)
		if err != nil {
			return nil, err
		}
		sp.Add(poly)
	}

	if matches {
		poly, err := rectanglePolygon(hypothesis.BeginX, hypothesis.EndX, hypothesis.BeginY, hypothesis.EndY, hypothesisColor, false)
		if err != nil {
			return nil, err
		}
		sp.Add(poly)
	}

	return sp, nil
}

func bounds(statements []statement.Statement, hypothesis *reasoner.Tuple, matches bool) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, st := range statements {
		minX, maxX = math.Min(minX, st.BeginX), math.Max(maxX, st.EndX)
		minY, maxY = math.Min(minY, st.BeginY), math.Max(maxY, st.EndY)
	}
	if matches {
		minX, maxX = math.Min(minX, hypothesis.BeginX), math.Max(maxX, hypothesis.EndX)
		minY, maxY = math.Min(minY, hypothesis.BeginY), math.Max(maxY, hypothesis.EndY)
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = 0, 0, 0, 0
	}
	return minX, maxX, minY, maxY
}

// rectanglePolygon draws the rectangle [x0,x1]x[y0,y1] either filled
// (the normal quality-colored statement) or outlined only with a dashed
// stroke (the hypothesis overlay).
func rectanglePolygon(x0, x1, y0, y1 float64, col color.Color, filled bool) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building rectangle: %w", err)
	}

	if filled {
		poly.Color = col
		poly.LineStyle.Color = col
		poly.LineStyle.Width = vg.Points(0.5)
		return poly, nil
	}

	poly.Color = nil
	poly.LineStyle.Color = col
	poly.LineStyle.Width = vg.Points(1.25)
	poly.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return poly, nil
}

func sortedPairs(snapshot reasoner.Snapshot) []reasoner.Pair {
	pairs := make([]reasoner.Pair, 0, len(snapshot.Pairs))
	for p := range snapshot.Pairs {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Influencing != pairs[j].Influencing {
			return pairs[i].Influencing < pairs[j].Influencing
		}
		return pairs[i].Influenced < pairs[j].Influenced
	})
	return pairs
}
