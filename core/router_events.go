package core

type RouterEvent int

// trace events

const (
	RouteImproved RouterEvent = iota
	RouteFresher
	RouteRetracted
	RouteInvalidated
	SelfSeqnoBumped
)

// warn events

const (
	NonexistentLink RouterEvent = iota + 1000
	NoConvergence
)

func (e RouterEvent) String() string {
	switch e {
	case RouteImproved:
		return "RouteImproved"
	case RouteFresher:
		return "RouteFresher"
	case RouteRetracted:
		return "RouteRetracted"
	case RouteInvalidated:
		return "RouteInvalidated"
	case SelfSeqnoBumped:
		return "SelfSeqnoBumped"
	case NonexistentLink:
		return "NonexistentLink"
	case NoConvergence:
		return "NoConvergence"
	default:
		return "Unknown"
	}
}
