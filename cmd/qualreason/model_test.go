package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const sampleModel = `
statements:
  - influencing: a
    begin_x: 0
    end_x: 5
    quality: mono
    begin_y: 0
    end_y: 5
    influenced: b
hypothesis:
  influencing: a
  begin_x: 0
  end_x: 5
  quality: mono
  begin_y: 0
  end_y: 5
  influenced: b
`

func TestLoadModelFileRoundTrips(t *testing.T) {
	path := writeModelFile(t, sampleModel)

	mf, err := loadModelFile(path)
	require.NoError(t, err)
	require.Len(t, mf.Statements, 1)
	require.NotNil(t, mf.Hypothesis)

	tuples, err := loadTuples(mf)
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "a", tuples[0].Influencing)
	assert.Equal(t, "b", tuples[0].Influenced)

	hyp, err := loadHypothesis(mf)
	require.NoError(t, err)
	assert.Equal(t, "a", hyp.Influencing)
}

func TestLoadHypothesisMissingIsError(t *testing.T) {
	path := writeModelFile(t, "statements: []\n")
	mf, err := loadModelFile(path)
	require.NoError(t, err)

	_, err = loadHypothesis(mf)
	assert.Error(t, err)
}

func TestLoadTuplesRejectsBadQuality(t *testing.T) {
	path := writeModelFile(t, `
statements:
  - influencing: a
    begin_x: 0
    end_x: 1
    quality: not-a-quality
    begin_y: 0
    end_y: 1
    influenced: b
`)
	mf, err := loadModelFile(path)
	require.NoError(t, err)

	_, err = loadTuples(mf)
	assert.Error(t, err)
}

func TestLoadModelFileMissingPathIsError(t *testing.T) {
	_, err := loadModelFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
