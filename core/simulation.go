package core

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/encodeous/dsdv/perf"
	"github.com/encodeous/dsdv/state"
	"github.com/rs/xid"
)

// Result summarises one experiment. Pdr and Delay are measured after the link failure.
type Result struct {
	RunId       xid.ID
	Nodes       int
	PdrBefore   float64
	DelayBefore float64
	Pdr         float64
	Delay       float64
	Overhead    int
	Convergence time.Duration
	// Rounds is the number of broadcast rounds needed to re-converge after the failure
	Rounds     int
	LinkFailed bool
}

// Simulation drives the DSDV nodes of one topology. State access must be done only on a single Goroutine
type Simulation struct {
	Cfg             state.SimCfg
	Topology        *state.Topology
	Nodes           []*RoutingNode
	ControlMessages int
	rng             *rand.Rand
	log             *slog.Logger
}

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSimulation validates cfg, builds the topology (explicit graph or random) and initializes every node.
func NewSimulation(cfg state.SimCfg, log *slog.Logger) (*Simulation, error) {
	err := state.SimConfigValidator(&cfg)
	if err != nil {
		return nil, err
	}
	rng := newRng(cfg.Seed)
	var topo *state.Topology
	if len(cfg.Graph) != 0 {
		edges, err := state.ParseGraph(cfg.Graph, cfg.Nodes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", state.ErrInvalidTopology, err)
		}
		topo, err = state.TopologyFromEdges(cfg.Nodes, edges)
		if err != nil {
			return nil, err
		}
	} else {
		topo = state.RandomTopology(cfg.Nodes, cfg.EdgeProbability, rng)
	}
	return newSimulation(topo, cfg, rng, log), nil
}

// NewSimulationFromTopology runs cfg over a caller supplied topology, ignoring cfg.Nodes, cfg.Graph and cfg.EdgeProbability.
func NewSimulationFromTopology(topo *state.Topology, cfg state.SimCfg, log *slog.Logger) (*Simulation, error) {
	cfg.Nodes = topo.Len()
	cfg.Graph = nil
	err := state.SimConfigValidator(&cfg)
	if err != nil {
		return nil, err
	}
	return newSimulation(topo, cfg, newRng(cfg.Seed), log), nil
}

func newSimulation(topo *state.Topology, cfg state.SimCfg, rng *rand.Rand, log *slog.Logger) *Simulation {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Simulation{
		Cfg:      cfg,
		Topology: topo,
		Nodes:    make([]*RoutingNode, topo.Len()),
		rng:      rng,
		log:      log,
	}
	for i := range s.Nodes {
		s.Nodes[i] = NewRoutingNode(state.NodeId(i), log)
		s.Nodes[i].Initialize(topo)
	}
	return s
}

// BroadcastUpdates exchanges full tables along every edge, round after round, until a whole
// round changes nothing. Every exchange counts as one control message.
// Returns the number of rounds executed, including the final quiet one.
func (s *Simulation) BroadcastUpdates() (int, error) {
	maxRounds := s.Cfg.MaxRounds()
	sent := s.ControlMessages
	defer func() {
		perf.ControlMessages.Add(float64(s.ControlMessages - sent))
	}()
	for round := 1; round <= maxRounds; round++ {
		converged := true
		for _, node := range s.Nodes {
			for _, neigh := range s.Topology.Neighbours(node.Id) {
				if s.Nodes[neigh].Update(node.Advertise(), node.Id) {
					converged = false
				}
				s.ControlMessages++
			}
		}
		if converged {
			perf.BroadcastRounds.Add(float64(round))
			s.log.Debug("routing tables converged", "rounds", round, "messages", s.ControlMessages)
			return round, nil
		}
	}
	s.log.Warn(NoConvergence.String(), "rounds", maxRounds, "messages", s.ControlMessages)
	return maxRounds, fmt.Errorf("%w after %d rounds", state.ErrNonConvergence, maxRounds)
}

// FailLink removes the edge (u, v) and invalidates the routes both endpoints hold for each other.
// Nothing is changed if the edge does not exist.
func (s *Simulation) FailLink(u, v state.NodeId) error {
	err := state.FailLinkValidator(state.Edge{V1: u, V2: v}, s.Topology.Len())
	if err != nil {
		return err
	}
	err = s.Topology.RemoveEdge(u, v)
	if err != nil {
		return err
	}
	s.Nodes[u].Invalidate(v)
	s.Nodes[v].Invalidate(u)
	s.log.Debug("link failed", "u", u, "v", v)
	return nil
}

// GetRoute follows next hops from src towards dst. It returns nil if a hop is missing
// or the chain loops back onto a node it already visited.
func (s *Simulation) GetRoute(src, dst state.NodeId) []state.NodeId {
	if !s.Topology.Contains(src) || !s.Topology.Contains(dst) {
		return nil
	}
	path := []state.NodeId{src}
	visited := make(map[state.NodeId]struct{}, len(s.Nodes))
	cur := src
	for cur != dst {
		if _, ok := visited[cur]; ok {
			return nil // routing loop
		}
		visited[cur] = struct{}{}
		route := s.Nodes[cur].Route(dst)
		if !route.Reachable() || !s.Topology.Contains(route.Nh) {
			return nil
		}
		path = append(path, route.Nh)
		cur = route.Nh
	}
	return path
}

// DeliverPackets sends count packets between random distinct node pairs and returns the
// delivery ratio and the mean path length (in nodes) of the delivered packets.
func (s *Simulation) DeliverPackets(count int) (pdr float64, delay float64) {
	n := len(s.Nodes)
	if count < 1 || n < 2 {
		return 0, math.Inf(1)
	}
	delivered := 0
	total := 0
	for range count {
		src := s.rng.IntN(n)
		dst := s.rng.IntN(n - 1)
		if dst >= src {
			dst++
		}
		route := s.GetRoute(state.NodeId(src), state.NodeId(dst))
		if route != nil {
			delivered++
			total += len(route)
		}
	}
	pdr = float64(delivered) / float64(count)
	if delivered == 0 {
		return pdr, math.Inf(1)
	}
	return pdr, float64(total) / float64(delivered)
}

// Run converges the network, fails the link fail, re-converges and measures delivery before and after.
// A failure edge missing from the topology is logged and the run continues without a failure.
func (s *Simulation) Run(fail state.Edge) (res Result, err error) {
	defer func() {
		if err != nil {
			perf.FailedRuns.Add(1)
		}
		perf.RunsPerSecond.Add(1)
	}()
	res = Result{
		RunId: xid.New(),
		Nodes: len(s.Nodes),
	}
	log := s.log.With("run", res.RunId.String(), "nodes", res.Nodes)

	if _, err = s.BroadcastUpdates(); err != nil {
		return res, err
	}
	res.PdrBefore, res.DelayBefore = s.DeliverPackets(s.Cfg.Packets)

	start := time.Now()
	err = s.FailLink(fail.V1, fail.V2)
	if err != nil {
		if !errors.Is(err, state.ErrNonexistentEdge) {
			return res, err
		}
		log.Warn(NonexistentLink.String(), "edge", fail, "err", err)
	} else {
		res.LinkFailed = true
	}
	res.Rounds, err = s.BroadcastUpdates()
	res.Convergence = time.Since(start)
	perf.ConvergenceLatency.Add(float64(res.Convergence.Microseconds()))
	if err != nil {
		return res, err
	}

	res.Pdr, res.Delay = s.DeliverPackets(s.Cfg.Packets)
	res.Overhead = s.ControlMessages
	log.Info("run complete",
		"pdr", res.Pdr,
		"delay", res.Delay,
		"overhead", res.Overhead,
		"convergence", res.Convergence,
		"failed", res.LinkFailed)
	return res, nil
}
