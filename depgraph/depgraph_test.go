package depgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ware/qualreason/depgraph"
)

func TestAddRejectsCycle(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", true))
	require.NoError(t, g.Add("b", "c", true))

	err := g.Add("c", "a", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, depgraph.ErrCycle))

	// the rejected edge must not have been left in the graph
	assert.Empty(t, g.GetPre("a"))
}

func TestAddWithoutCheckAllowsCycle(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", false))
	require.NoError(t, g.Add("b", "a", false))

	assert.Equal(t, []string{"b"}, g.GetPre("a"))
}

func TestAddIdempotent(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", true))
	require.NoError(t, g.Add("a", "b", true))
	assert.Equal(t, []string{"a"}, g.GetPre("b"))
}

func TestGetPre(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "c", true))
	require.NoError(t, g.Add("b", "c", true))

	assert.Equal(t, []string{"a", "b"}, g.GetPre("c"))
	assert.Empty(t, g.GetPre("a"))
}

func TestRemoveNode(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", true))
	require.NoError(t, g.Add("b", "c", true))

	g.RemoveNode("b")

	assert.Empty(t, g.GetPre("b"))
	assert.Empty(t, g.GetPre("c"))
}

func TestSetupPrunesAndOrders(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", true))
	require.NoError(t, g.Add("b", "c", true))
	require.NoError(t, g.Add("c", "d", true))
	require.NoError(t, g.Add("a", "x", true))
	require.NoError(t, g.Add("x", "y", true))

	order := g.Setup("a", "c")

	assert.Equal(t, []string{"b"}, order)
	assert.Empty(t, g.GetPre("y"))
	assert.Empty(t, g.GetPre("x"))
}

func TestSetupDiamond(t *testing.T) {
	g := depgraph.New()
	require.NoError(t, g.Add("a", "b", true))
	require.NoError(t, g.Add("a", "c", true))
	require.NoError(t, g.Add("b", "d", true))
	require.NoError(t, g.Add("c", "d", true))

	order := g.Setup("a", "d")

	assert.ElementsMatch(t, []string{"b", "c"}, order)
}
