package cmd

import (
	"fmt"

	"github.com/encodeous/dsdv/core"
	"github.com/encodeous/dsdv/report"
	"github.com/spf13/cobra"
)

var (
	runFlags   simFlags
	showTables bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single link failure experiment",
	Long: `Converges the network, fails one link, re-converges and reports delivery ratio,
average path length, control message overhead and convergence time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runFlags.loadConfig(cmd)
		if err != nil {
			return err
		}
		log, closer, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		sim, err := core.NewSimulation(cfg.SimCfg, log)
		if err != nil {
			return err
		}
		log.Debug("topology built", "nodes", sim.Topology.Len(), "edges", len(sim.Topology.Edges()))
		res, err := sim.Run(cfg.Fail)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		report.WriteTable(out, []core.Result{res})
		if showTables {
			for _, node := range sim.Nodes {
				fmt.Fprintf(out, "\nnode %s\n%s\n", node.Id, node.StringTable())
			}
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runFlags.register(runCmd)
	runCmd.Flags().BoolVarP(&showTables, "tables", "t", false, "print every node's final routing table")
}
