package state

import (
	"os"

	"github.com/goccy/go-yaml"
)

// SimCfg describes a single simulation run
type SimCfg struct {
	Nodes           int     `yaml:"nodes"`
	EdgeProbability float64 `yaml:"edge_probability"`
	Seed            uint64  `yaml:"seed"`
	Packets         int     `yaml:"packets"`
	RoundFactor     int     `yaml:"round_factor,omitempty"` // broadcast rounds allowed per node before giving up
	Fail            Edge    `yaml:"fail"`
	// Graph optionally replaces the random topology, see ParseGraph for the syntax
	Graph []string `yaml:"graph,omitempty"`
}

// SweepCfg describes a series of runs over a range of node counts
type SweepCfg struct {
	MinNodes int `yaml:"min_nodes"`
	MaxNodes int `yaml:"max_nodes"`
	Workers  int `yaml:"workers,omitempty"`
}

// FileCfg is the on-disk layout of a simulation config
type FileCfg struct {
	SimCfg  `yaml:",inline"`
	Sweep   SweepCfg `yaml:"sweep,omitempty"`
	LogPath string   `yaml:"log_path,omitempty"` // if not empty, logs are also written to this file
}

func DefaultSimCfg() SimCfg {
	return SimCfg{
		Nodes:           5,
		EdgeProbability: DefaultEdgeProbability,
		Seed:            1,
		Packets:         DefaultPackets,
		RoundFactor:     DefaultRoundFactor,
		Fail:            DefaultFailLink,
	}
}

func DefaultFileCfg() FileCfg {
	return FileCfg{
		SimCfg: DefaultSimCfg(),
		Sweep: SweepCfg{
			MinNodes: DefaultMinNodes,
			MaxNodes: DefaultMaxNodes,
		},
	}
}

// ReadConfig loads a config file on top of the defaults
func ReadConfig(path string) (*FileCfg, error) {
	cfg := DefaultFileCfg()
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *SimCfg) MaxRounds() int {
	factor := c.RoundFactor
	if factor <= 0 {
		factor = DefaultRoundFactor
	}
	return factor * c.Nodes
}
