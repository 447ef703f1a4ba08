package core

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/encodeous/dsdv/state"
)

// RoutingNode holds the DSDV routing table of a single node.
// It must only be used from the goroutine driving its simulation.
type RoutingNode struct {
	Id    state.NodeId
	table map[state.NodeId]state.Route
	log   *slog.Logger
}

func NewRoutingNode(id state.NodeId, log *slog.Logger) *RoutingNode {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RoutingNode{
		Id:    id,
		table: make(map[state.NodeId]state.Route),
		log:   log,
	}
}

func (n *RoutingNode) trace(event RouterEvent, desc string, args ...any) {
	n.log.Debug(fmt.Sprintf("%s %s", event.String(), desc), append([]any{"node", n.Id}, args...)...)
}

// Initialize fills the table for every node in topo: ourselves at distance 0,
// direct neighbours at distance 1 and everything else unreachable.
func (n *RoutingNode) Initialize(topo *state.Topology) {
	clear(n.table)
	for i := 0; i < topo.Len(); i++ {
		dst := state.NodeId(i)
		switch {
		case dst == n.Id:
			n.table[dst] = state.Route{Nh: n.Id, Hops: 0, Seqno: 0}
		case topo.HasEdge(n.Id, dst):
			n.table[dst] = state.Route{Nh: dst, Hops: 1, Seqno: 0}
		default:
			n.table[dst] = state.Unreachable(state.NeverAdvertised)
		}
	}
}

// Update applies a full table advertised by the neighbour from. A destination is replaced when the
// advertisement is fresher, or equally fresh and strictly shorter once the link to from is added.
// Returns true if any entry changed.
func (n *RoutingNode) Update(advertised map[state.NodeId]state.Route, from state.NodeId) bool {
	changed := false
	for dst, adv := range advertised {
		if dst == n.Id {
			// we are the only source of fresh sequence numbers for ourselves, so out-rank whatever
			// stale or poisoned state the neighbour still carries
			self := n.table[n.Id]
			if adv.Seqno > self.Seqno {
				self.Seqno = adv.Seqno + 1
				n.table[n.Id] = self
				n.trace(SelfSeqnoBumped, "heard a fresher seqno for ourselves", "from", from, "seqno", self.Seqno)
				changed = true
			}
			continue
		}
		cur, ok := n.table[dst]
		if !ok {
			cur = state.Unreachable(state.NeverAdvertised)
		}
		hops := state.AddHop(adv.Hops)
		fresher := adv.Seqno > cur.Seqno
		if !fresher && !(adv.Seqno == cur.Seqno && hops < cur.Hops) {
			continue
		}
		route := state.Route{Nh: from, Hops: hops, Seqno: adv.Seqno}
		if hops == state.INF {
			route.Nh = state.NoHop
		}
		n.table[dst] = route
		changed = true
		switch {
		case hops == state.INF:
			n.trace(RouteRetracted, "destination is unreachable", "dst", dst, "from", from, "route", route)
		case fresher:
			n.trace(RouteFresher, "installed fresher route", "dst", dst, "old", cur, "new", route)
		default:
			n.trace(RouteImproved, "installed shorter route", "dst", dst, "old", cur, "new", route)
		}
	}
	return changed
}

// Invalidate poisons the route to dst after the direct link to it broke. The sequence
// number is bumped so that the retraction out-ranks older advertisements for dst.
func (n *RoutingNode) Invalidate(dst state.NodeId) {
	prev, ok := n.table[dst]
	if !ok {
		prev = state.Unreachable(state.NeverAdvertised)
	}
	n.table[dst] = state.Unreachable(prev.Seqno + 1)
	n.trace(RouteInvalidated, "link broke", "dst", dst, "seqno", prev.Seqno+1)
}

// Route returns the entry for dst. Destinations outside the universe are reported as unreachable.
func (n *RoutingNode) Route(dst state.NodeId) state.Route {
	r, ok := n.table[dst]
	if !ok {
		return state.Unreachable(state.NeverAdvertised)
	}
	return r
}

// Advertise returns the live table as sent to neighbours. Callers must not modify it.
func (n *RoutingNode) Advertise() map[state.NodeId]state.Route {
	return n.table
}

// Table returns a copy of the routing table
func (n *RoutingNode) Table() map[state.NodeId]state.Route {
	return maps.Clone(n.table)
}

// StringTable renders the table sorted by destination, one entry per line
func (n *RoutingNode) StringTable() string {
	dsts := slices.Sorted(maps.Keys(n.table))
	lines := make([]string, 0, len(dsts))
	for _, dst := range dsts {
		lines = append(lines, fmt.Sprintf("%s via %s", dst, n.table[dst]))
	}
	return strings.Join(lines, "\n")
}
