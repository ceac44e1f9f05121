package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lattice-ware/qualreason/quality"
	"github.com/lattice-ware/qualreason/reasoner"
)

// tupleYAML is the YAML-shaped form of a reasoner.Tuple — kept distinct
// from reasoner.Tuple itself, since config-file shape and solver options
// are never the same type.
type tupleYAML struct {
	Influencing string  `yaml:"influencing"`
	BeginX      float64 `yaml:"begin_x"`
	EndX        float64 `yaml:"end_x"`
	Quality     string  `yaml:"quality"`
	BeginY      float64 `yaml:"begin_y"`
	EndY        float64 `yaml:"end_y"`
	Influenced  string  `yaml:"influenced"`
}

// modelFile is the on-disk YAML shape loaded by --model: a list of
// staged statements plus the hypothesis to solve or render against.
type modelFile struct {
	Statements []tupleYAML `yaml:"statements"`
	Hypothesis *tupleYAML  `yaml:"hypothesis"`
}

func (t tupleYAML) toTuple() (reasoner.Tuple, error) {
	q, err := quality.Parse(t.Quality)
	if err != nil {
		return reasoner.Tuple{}, fmt.Errorf("quality %q for %s->%s: %w", t.Quality, t.Influencing, t.Influenced, err)
	}
	return reasoner.Tuple{
		Influencing: t.Influencing,
		BeginX:      t.BeginX,
		EndX:        t.EndX,
		Q:           q,
		BeginY:      t.BeginY,
		EndY:        t.EndY,
		Influenced:  t.Influenced,
	}, nil
}

// loadModelFile reads and decodes a YAML model file from path.
func loadModelFile(path string) (modelFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return modelFile{}, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	var mf modelFile
	if err := yaml.NewDecoder(f).Decode(&mf); err != nil {
		return modelFile{}, fmt.Errorf("decode model: %w", err)
	}
	return mf, nil
}

// loadTuples converts every staged statement in mf into a reasoner.Tuple.
func loadTuples(mf modelFile) ([]reasoner.Tuple, error) {
	tuples := make([]reasoner.Tuple, 0, len(mf.Statements))
	for _, t := range mf.Statements {
		tuple, err := t.toTuple()
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, tuple)
	}
	return tuples, nil
}

// loadHypothesis converts mf's hypothesis, failing if none is set.
func loadHypothesis(mf modelFile) (reasoner.Tuple, error) {
	if mf.Hypothesis == nil {
		return reasoner.Tuple{}, fmt.Errorf("model file has no hypothesis")
	}
	return mf.Hypothesis.toTuple()
}
