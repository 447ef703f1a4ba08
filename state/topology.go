package state

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Topology is an undirected graph over the fixed node universe 0..n-1.
type Topology struct {
	adj []map[NodeId]struct{}
}

func NewTopology(n int) *Topology {
	adj := make([]map[NodeId]struct{}, n)
	for i := range adj {
		adj[i] = make(map[NodeId]struct{})
	}
	return &Topology{adj: adj}
}

// RandomTopology includes every unordered pair as an edge independently with probability p.
func RandomTopology(n int, p float64, rng *rand.Rand) *Topology {
	t := NewTopology(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				t.adj[i][NodeId(j)] = struct{}{}
				t.adj[j][NodeId(i)] = struct{}{}
			}
		}
	}
	return t
}

// TopologyFromEdges builds a topology over n nodes with exactly the given edges.
func TopologyFromEdges(n int, edges []Edge) (*Topology, error) {
	t := NewTopology(n)
	for _, e := range edges {
		if err := t.AddEdge(e.V1, e.V2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Topology) Len() int {
	return len(t.adj)
}

func (t *Topology) Contains(id NodeId) bool {
	return id >= 0 && int(id) < len(t.adj)
}

func (t *Topology) checkEndpoints(u, v NodeId) error {
	if !t.Contains(u) || !t.Contains(v) {
		return fmt.Errorf("%w: edge (%s, %s) is outside of 0..%d", ErrInvalidTopology, u, v, len(t.adj)-1)
	}
	if u == v {
		return fmt.Errorf("%w: edge (%s, %s) is a self loop", ErrInvalidTopology, u, v)
	}
	return nil
}

func (t *Topology) AddEdge(u, v NodeId) error {
	if err := t.checkEndpoints(u, v); err != nil {
		return err
	}
	t.adj[u][v] = struct{}{}
	t.adj[v][u] = struct{}{}
	return nil
}

// RemoveEdge deletes the edge (u, v), returning ErrNonexistentEdge if it was not present.
func (t *Topology) RemoveEdge(u, v NodeId) error {
	if err := t.checkEndpoints(u, v); err != nil {
		return err
	}
	if !t.HasEdge(u, v) {
		return fmt.Errorf("%w: (%s, %s)", ErrNonexistentEdge, u, v)
	}
	delete(t.adj[u], v)
	delete(t.adj[v], u)
	return nil
}

func (t *Topology) HasEdge(u, v NodeId) bool {
	if !t.Contains(u) || !t.Contains(v) {
		return false
	}
	_, ok := t.adj[u][v]
	return ok
}

// Neighbours returns the neighbours of id in ascending order.
func (t *Topology) Neighbours(id NodeId) []NodeId {
	if !t.Contains(id) {
		return nil
	}
	neighs := make([]NodeId, 0, len(t.adj[id]))
	for n := range t.adj[id] {
		neighs = append(neighs, n)
	}
	slices.Sort(neighs)
	return neighs
}

// Edges returns every edge once, as sorted pairs in ascending order.
func (t *Topology) Edges() []Edge {
	edges := make([]Edge, 0)
	for u := range t.adj {
		for v := range t.adj[u] {
			if NodeId(u) < v {
				edges = append(edges, Edge{V1: NodeId(u), V2: v})
			}
		}
	}
	SortPairs(edges)
	return edges
}
