package state

import (
	"fmt"
	"strconv"
)

type NodeId int

type Hops uint16

type Seqno int64

func (n NodeId) String() string {
	if n == NoHop {
		return "-"
	}
	return strconv.Itoa(int(n))
}

func (h Hops) String() string {
	if h == INF {
		return "inf"
	}
	return strconv.Itoa(int(h))
}

// Route is a single routing table entry, keyed by destination in the owning table.
type Route struct {
	Nh    NodeId // next hop node
	Hops  Hops
	Seqno Seqno
}

func (r Route) Reachable() bool {
	return r.Hops != INF && r.Nh != NoHop
}

func (r Route) String() string {
	return fmt.Sprintf("(nh: %s, hops: %s, seqno: %d)", r.Nh, r.Hops, r.Seqno)
}

// Unreachable returns the entry used for a destination we hold no path to.
func Unreachable(seqno Seqno) Route {
	return Route{
		Nh:    NoHop,
		Hops:  INF,
		Seqno: seqno,
	}
}

// AddHop extends a hop count by one link, saturating at INFM and keeping INF sticky.
func AddHop(h Hops) Hops {
	if h == INF {
		return INF
	}
	return min(INFM, h+1)
}
