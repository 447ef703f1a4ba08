package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/encodeous/dsdv/core"
	"github.com/encodeous/dsdv/state"
	"github.com/spf13/cobra"
)

// simFlags are shared by every command that constructs simulations
type simFlags struct {
	nodes       int
	probability float64
	seed        uint64
	packets     int
	roundFactor int
	fail        string
}

func (f *simFlags) register(cmd *cobra.Command) {
	def := state.DefaultSimCfg()
	cmd.Flags().IntVarP(&f.nodes, "nodes", "n", def.Nodes, "number of nodes")
	cmd.Flags().Float64VarP(&f.probability, "probability", "p", def.EdgeProbability, "probability of an edge between any two nodes")
	cmd.Flags().Uint64Var(&f.seed, "seed", def.Seed, "random seed for topology and packet sampling")
	cmd.Flags().IntVar(&f.packets, "packets", def.Packets, "packets sent per delivery measurement")
	cmd.Flags().IntVar(&f.roundFactor, "round-factor", def.RoundFactor, "broadcast rounds allowed per node before giving up")
	cmd.Flags().StringVar(&f.fail, "fail", "0,1", "link to fail, as u,v")
}

func parseEdge(s string) (state.Edge, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return state.Edge{}, fmt.Errorf("invalid edge %q, expected u,v", s)
	}
	u, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return state.Edge{}, fmt.Errorf("invalid edge %q: %w", s, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return state.Edge{}, fmt.Errorf("invalid edge %q: %w", s, err)
	}
	return state.Edge{V1: state.NodeId(u), V2: state.NodeId(v)}, nil
}

// loadConfig reads the config file if one was given, then lets explicitly set flags override it.
func (f *simFlags) loadConfig(cmd *cobra.Command) (*state.FileCfg, error) {
	cfg := state.DefaultFileCfg()
	if configPath != "" {
		read, err := state.ReadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *read
	}
	flags := cmd.Flags()
	if flags.Changed("nodes") {
		cfg.Nodes = f.nodes
	}
	if flags.Changed("probability") {
		cfg.EdgeProbability = f.probability
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("packets") {
		cfg.Packets = f.packets
	}
	if flags.Changed("round-factor") {
		cfg.RoundFactor = f.roundFactor
	}
	if flags.Changed("fail") {
		edge, err := parseEdge(f.fail)
		if err != nil {
			return nil, err
		}
		cfg.Fail = edge
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	return &cfg, nil
}

func newLogger(cfg *state.FileCfg) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return core.NewLogger(os.Stderr, level, "dsdv", cfg.LogPath)
}
