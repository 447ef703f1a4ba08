package core

import (
	"testing"

	"github.com/encodeous/dsdv/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line topology 0 - 1 - 2 with an isolated node 3
func lineTopology(t *testing.T) *state.Topology {
	topo, err := state.TopologyFromEdges(4, []state.Edge{{V1: 0, V2: 1}, {V1: 1, V2: 2}})
	require.NoError(t, err)
	return topo
}

func TestInitialize(t *testing.T) {
	topo := lineTopology(t)
	n := NewRoutingNode(1, nil)
	n.Initialize(topo)

	expected := map[state.NodeId]state.Route{
		0: {Nh: 0, Hops: 1, Seqno: 0},
		1: {Nh: 1, Hops: 0, Seqno: 0},
		2: {Nh: 2, Hops: 1, Seqno: 0},
		3: {Nh: state.NoHop, Hops: state.INF, Seqno: state.NeverAdvertised},
	}
	if diff := cmp.Diff(expected, n.Table()); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
	assert.Equal(t, `0 via (nh: 0, hops: 1, seqno: 0)
1 via (nh: 1, hops: 0, seqno: 0)
2 via (nh: 2, hops: 1, seqno: 0)
3 via (nh: -, hops: inf, seqno: -1)`, n.StringTable())
}

func TestSelfRouteAfterInitialize(t *testing.T) {
	topo := lineTopology(t)
	for i := 0; i < topo.Len(); i++ {
		n := NewRoutingNode(state.NodeId(i), nil)
		n.Initialize(topo)
		self := n.Route(n.Id)
		assert.Equal(t, n.Id, self.Nh)
		assert.Equal(t, state.Hops(0), self.Hops)
	}
}

func TestUpdateLearnsThroughNeighbour(t *testing.T) {
	topo := lineTopology(t)
	n0 := NewRoutingNode(0, nil)
	n1 := NewRoutingNode(1, nil)
	n0.Initialize(topo)
	n1.Initialize(topo)

	assert.True(t, n0.Update(n1.Advertise(), 1))
	assert.Equal(t, state.Route{Nh: 1, Hops: 2, Seqno: 0}, n0.Route(2))
	// the direct route to 1 is not replaced by 1's own self entry
	assert.Equal(t, state.Route{Nh: 1, Hops: 1, Seqno: 0}, n0.Route(1))
	// an unreachable destination stays unreachable
	assert.Equal(t, state.Unreachable(state.NeverAdvertised), n0.Route(3))

	// a second identical advertisement changes nothing
	assert.False(t, n0.Update(n1.Advertise(), 1))
}

func TestUpdateNeverInstallsRouteToSelf(t *testing.T) {
	n := NewRoutingNode(0, nil)
	n.Initialize(lineTopology(t))
	changed := n.Update(map[state.NodeId]state.Route{
		0: {Nh: 1, Hops: 0, Seqno: 0},
	}, 1)
	assert.False(t, changed)
	assert.Equal(t, state.Route{Nh: 0, Hops: 0, Seqno: 0}, n.Route(0))
}

func TestFreshnessBeatsShortness(t *testing.T) {
	fresh := map[state.NodeId]state.Route{3: {Nh: 9, Hops: 1, Seqno: 3}} // installs (3, hop 2)
	short := map[state.NodeId]state.Route{3: {Nh: 9, Hops: 0, Seqno: 2}} // installs (2, hop 1)
	expected := state.Route{Nh: 2, Hops: 2, Seqno: 3}

	n := NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))
	n.Update(fresh, 2)
	n.Update(short, 0)
	assert.Equal(t, expected, n.Route(3))

	n = NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))
	n.Update(short, 0)
	n.Update(fresh, 2)
	assert.Equal(t, expected, n.Route(3))
}

func TestShortnessWinsOnSeqnoTie(t *testing.T) {
	long := map[state.NodeId]state.Route{3: {Nh: 9, Hops: 2, Seqno: 5}}  // installs hop 3
	short := map[state.NodeId]state.Route{3: {Nh: 9, Hops: 1, Seqno: 5}} // installs hop 2

	n := NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))
	assert.True(t, n.Update(long, 0))
	assert.True(t, n.Update(short, 2))
	assert.Equal(t, state.Route{Nh: 2, Hops: 2, Seqno: 5}, n.Route(3))

	n = NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))
	assert.True(t, n.Update(short, 2))
	assert.False(t, n.Update(long, 0))
	assert.Equal(t, state.Route{Nh: 2, Hops: 2, Seqno: 5}, n.Route(3))
}

func TestUpdateRejectsStale(t *testing.T) {
	n := NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))
	n.Update(map[state.NodeId]state.Route{3: {Nh: 9, Hops: 4, Seqno: 6}}, 0)
	assert.False(t, n.Update(map[state.NodeId]state.Route{3: {Nh: 9, Hops: 0, Seqno: 5}}, 2))
	assert.Equal(t, state.Route{Nh: 0, Hops: 5, Seqno: 6}, n.Route(3))
}

func TestInvalidate(t *testing.T) {
	n := NewRoutingNode(0, nil)
	n.Initialize(lineTopology(t))
	before := n.Route(1)

	n.Invalidate(1)
	after := n.Route(1)
	assert.Equal(t, state.NoHop, after.Nh)
	assert.Equal(t, state.INF, after.Hops)
	assert.Greater(t, after.Seqno, before.Seqno)
	assert.Equal(t, state.Route{Nh: 0, Hops: 0, Seqno: 0}, n.Route(0))
}

func TestPoisonPropagatesAsUnreachable(t *testing.T) {
	n := NewRoutingNode(2, nil)
	n.Initialize(lineTopology(t))
	changed := n.Update(map[state.NodeId]state.Route{0: state.Unreachable(1)}, 1)
	assert.True(t, changed)
	// a poisoned entry never keeps a next hop
	assert.Equal(t, state.Unreachable(1), n.Route(0))

	// an equally fresh poison does not replace it again
	assert.False(t, n.Update(map[state.NodeId]state.Route{0: state.Unreachable(1)}, 1))
}

func TestSelfSeqnoBump(t *testing.T) {
	n := NewRoutingNode(1, nil)
	n.Initialize(lineTopology(t))

	changed := n.Update(map[state.NodeId]state.Route{1: state.Unreachable(1)}, 0)
	assert.True(t, changed)
	assert.Equal(t, state.Route{Nh: 1, Hops: 0, Seqno: 2}, n.Route(1))

	// older news about ourselves is ignored
	assert.False(t, n.Update(map[state.NodeId]state.Route{1: state.Unreachable(1)}, 0))
	assert.Equal(t, state.Seqno(2), n.Route(1).Seqno)
}
