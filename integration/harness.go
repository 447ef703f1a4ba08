//go:build integration

package integration

import (
	"math/rand/v2"
	"testing"

	"github.com/encodeous/dsdv/core"
	"github.com/encodeous/dsdv/state"
	"github.com/stretchr/testify/require"
)

// distances returns the hop count from src to every node, -1 if the node cannot be reached.
func distances(topo *state.Topology, src state.NodeId) []int {
	dist := make([]int, topo.Len())
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []state.NodeId{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, neigh := range topo.Neighbours(cur) {
			if dist[neigh] == -1 {
				dist[neigh] = dist[cur] + 1
				queue = append(queue, neigh)
			}
		}
	}
	return dist
}

func randomSimulation(t *testing.T, seed uint64) *core.Simulation {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	cfg := state.DefaultSimCfg()
	cfg.Seed = seed
	cfg.Nodes = state.DefaultMinNodes + rng.IntN(state.DefaultMaxNodes-state.DefaultMinNodes+1)
	cfg.EdgeProbability = 0.2 + rng.Float64()*0.6
	sim, err := core.NewSimulation(cfg, nil)
	require.NoError(t, err)
	return sim
}

// requireShortestRoutes checks that every route follows live links and has the minimum hop count.
func requireShortestRoutes(t *testing.T, sim *core.Simulation) {
	t.Helper()
	for src := range sim.Nodes {
		dist := distances(sim.Topology, state.NodeId(src))
		for dst := range sim.Nodes {
			path := sim.GetRoute(state.NodeId(src), state.NodeId(dst))
			if dist[dst] == -1 {
				require.Nil(t, path, "%d -> %d is partitioned", src, dst)
				continue
			}
			require.Len(t, path, dist[dst]+1, "%d -> %d", src, dst)
			for i := 1; i < len(path); i++ {
				require.True(t, sim.Topology.HasEdge(path[i-1], path[i]), "%d -> %d uses %v", src, dst, path)
			}
			route := sim.Nodes[src].Route(state.NodeId(dst))
			require.Equal(t, state.Hops(dist[dst]), route.Hops)
		}
	}
}
