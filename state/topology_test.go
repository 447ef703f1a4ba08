package state

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyAddRemove(t *testing.T) {
	topo := NewTopology(4)
	require.NoError(t, topo.AddEdge(0, 1))
	require.NoError(t, topo.AddEdge(2, 1))

	assert.True(t, topo.HasEdge(1, 0))
	assert.True(t, topo.HasEdge(1, 2))
	assert.False(t, topo.HasEdge(0, 2))
	assert.Equal(t, []NodeId{0, 2}, topo.Neighbours(1))
	assert.Equal(t, []Edge{{0, 1}, {1, 2}}, topo.Edges())

	require.NoError(t, topo.RemoveEdge(1, 0))
	assert.False(t, topo.HasEdge(0, 1))
	assert.Empty(t, topo.Neighbours(0))

	err := topo.RemoveEdge(0, 1)
	assert.ErrorIs(t, err, ErrNonexistentEdge)
	assert.Equal(t, []Edge{{1, 2}}, topo.Edges())
}

func TestTopologyRejectsInvalidEdges(t *testing.T) {
	topo := NewTopology(3)
	assert.ErrorIs(t, topo.AddEdge(1, 1), ErrInvalidTopology)
	assert.ErrorIs(t, topo.AddEdge(0, 3), ErrInvalidTopology)
	assert.ErrorIs(t, topo.AddEdge(-1, 2), ErrInvalidTopology)
	assert.ErrorIs(t, topo.RemoveEdge(0, 7), ErrInvalidTopology)
	assert.Empty(t, topo.Edges())
	assert.False(t, topo.HasEdge(0, 7))
	assert.Nil(t, topo.Neighbours(9))
}

func TestRandomTopologyExtremes(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	full := RandomTopology(6, 1.0, rng)
	assert.Len(t, full.Edges(), 15)
	for i := 0; i < 6; i++ {
		assert.Len(t, full.Neighbours(NodeId(i)), 5)
	}

	empty := RandomTopology(6, 0, rng)
	assert.Empty(t, empty.Edges())
	assert.Equal(t, 6, empty.Len())
}

func TestRandomTopologyIsReproducible(t *testing.T) {
	a := RandomTopology(12, 0.4, rand.New(rand.NewPCG(42, 7)))
	b := RandomTopology(12, 0.4, rand.New(rand.NewPCG(42, 7)))
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestTopologyFromEdges(t *testing.T) {
	topo, err := TopologyFromEdges(3, []Edge{{0, 1}, {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, []NodeId{1}, topo.Neighbours(2))

	_, err = TopologyFromEdges(3, []Edge{{0, 5}})
	assert.ErrorIs(t, err, ErrInvalidTopology)
}
