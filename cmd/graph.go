package cmd

import (
	"fmt"

	"github.com/encodeous/dsdv/core"
	"github.com/spf13/cobra"
)

var graphFlags simFlags

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Prints the edges of the topology a config produces",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := graphFlags.loadConfig(cmd)
		if err != nil {
			return err
		}
		sim, err := core.NewSimulation(cfg.SimCfg, nil)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range sim.Topology.Edges() {
			fmt.Fprintf(out, "%s, %s\n", e.V1, e.V2)
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphFlags.register(graphCmd)
}
