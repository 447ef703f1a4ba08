package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/encodeous/dsdv/core"
	"github.com/encodeous/dsdv/report"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	sweepFlags   simFlags
	sweepMin     int
	sweepMax     int
	sweepWorkers int
	sweepDb      string
	sweepPlots   string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the experiment once per node count and report the trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := sweepFlags.loadConfig(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("min") {
			cfg.Sweep.MinNodes = sweepMin
		}
		if flags.Changed("max") {
			cfg.Sweep.MaxNodes = sweepMax
		}
		if flags.Changed("workers") {
			cfg.Sweep.Workers = sweepWorkers
		}
		log, closer, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		var rec *report.Recorder
		if sweepDb != "" {
			rec = report.NewRecorder(sweepDb)
			err = rec.Init()
			if err != nil {
				return err
			}
			atexit.Register(func() {
				if err := rec.Close(); err != nil {
					log.Error("failed to close result database", "err", err)
				}
			})
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		results, err := core.Sweep(ctx, cfg.SimCfg, cfg.Sweep, log)
		if err != nil {
			return err
		}
		report.WriteTable(cmd.OutOrStdout(), results)

		if rec != nil {
			for _, res := range results {
				if err = rec.Write(res); err != nil {
					return err
				}
			}
			if err = rec.Flush(); err != nil {
				return err
			}
			log.Info("results recorded", "db", rec.Filename())
		}
		if sweepPlots != "" {
			err = os.MkdirAll(sweepPlots, 0755)
			if err != nil {
				return err
			}
			files, err := report.PlotAll(results, sweepPlots)
			if err != nil {
				return err
			}
			log.Info("charts written", "files", files)
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepFlags.register(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepMin, "min", 4, "smallest node count")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 25, "largest node count")
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "j", 0, "parallel runs, 0 uses GOMAXPROCS")
	sweepCmd.Flags().StringVar(&sweepDb, "db", "", "record results into <db>.sqlite3")
	sweepCmd.Flags().StringVar(&sweepPlots, "plots", "", "write PNG charts into this directory")
}
