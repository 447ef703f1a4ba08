package core

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/encodeous/dsdv/state"
	"golang.org/x/sync/errgroup"
)

// Sweep runs one fresh simulation per node count in [sweep.MinNodes, sweep.MaxNodes]. Runs are
// independent and execute on a bounded worker pool; results are ordered by node count.
// The run with n nodes is seeded with sim.Seed + n.
func Sweep(ctx context.Context, sim state.SimCfg, sweep state.SweepCfg, log *slog.Logger) ([]Result, error) {
	err := state.SweepConfigValidator(&sweep, &sim)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	workers := sweep.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, sweep.MaxNodes-sweep.MinNodes+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for n := sweep.MinNodes; n <= sweep.MaxNodes; n++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg := sim
			cfg.Nodes = n
			cfg.Seed = sim.Seed + uint64(n)
			s, err := NewSimulation(cfg, log)
			if err != nil {
				return fmt.Errorf("nodes=%d: %w", n, err)
			}
			res, err := s.Run(cfg.Fail)
			if err != nil {
				return fmt.Errorf("nodes=%d: %w", n, err)
			}
			results[n-sweep.MinNodes] = res
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("sweep complete", "runs", len(results), "min", sweep.MinNodes, "max", sweep.MaxNodes)
	return results, nil
}
