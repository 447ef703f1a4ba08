package state

const (
	INF = Hops(^uint16(0))
	// INFM is the largest hop count that still describes a reachable destination.
	INFM = INF - 1

	// NoHop marks a route without a next hop.
	NoHop = NodeId(-1)

	// NeverAdvertised is the sequence number of a destination nobody has told us about yet.
	NeverAdvertised = Seqno(-1)
)

var (
	DefaultEdgeProbability = 0.6
	DefaultPackets         = 30
	// DefaultRoundFactor bounds the broadcast loop to RoundFactor * nodes rounds.
	DefaultRoundFactor = 10
	DefaultMinNodes    = 4
	DefaultMaxNodes    = 25
	DefaultFailLink    = Pair[NodeId, NodeId]{V1: 0, V2: 1}
)
