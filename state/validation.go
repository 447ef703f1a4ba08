package state

import (
	"fmt"
	"math"
)

func SimConfigValidator(cfg *SimCfg) error {
	if cfg.Nodes < 2 {
		return fmt.Errorf("%w: node count must be at least 2, got %d", ErrInvalidTopology, cfg.Nodes)
	}
	if math.IsNaN(cfg.EdgeProbability) || cfg.EdgeProbability < 0 || cfg.EdgeProbability > 1 {
		return fmt.Errorf("%w: edge probability must be within [0, 1], got %v", ErrInvalidTopology, cfg.EdgeProbability)
	}
	if cfg.Packets < 1 {
		return fmt.Errorf("packet count must be at least 1, got %d", cfg.Packets)
	}
	if cfg.RoundFactor < 0 {
		return fmt.Errorf("round factor must not be negative, got %d", cfg.RoundFactor)
	}
	return FailLinkValidator(cfg.Fail, cfg.Nodes)
}

func FailLinkValidator(fail Edge, nodes int) error {
	if fail.V1 == fail.V2 {
		return fmt.Errorf("%w: failure edge endpoints must differ, got (%s, %s)", ErrInvalidTopology, fail.V1, fail.V2)
	}
	if fail.V1 < 0 || int(fail.V1) >= nodes || fail.V2 < 0 || int(fail.V2) >= nodes {
		return fmt.Errorf("%w: failure edge (%s, %s) is outside of 0..%d", ErrInvalidTopology, fail.V1, fail.V2, nodes-1)
	}
	return nil
}

// SweepConfigValidator checks the sweep range together with the per-run settings it will be applied to.
func SweepConfigValidator(sweep *SweepCfg, sim *SimCfg) error {
	if sweep.MinNodes < 2 {
		return fmt.Errorf("%w: sweep must start at 2 or more nodes, got %d", ErrInvalidTopology, sweep.MinNodes)
	}
	if sweep.MaxNodes < sweep.MinNodes {
		return fmt.Errorf("sweep range is empty: min %d > max %d", sweep.MinNodes, sweep.MaxNodes)
	}
	if sweep.Workers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", sweep.Workers)
	}
	if len(sim.Graph) != 0 {
		return fmt.Errorf("an explicit graph cannot be swept over node counts")
	}
	run := *sim
	run.Nodes = sweep.MinNodes
	return SimConfigValidator(&run)
}
