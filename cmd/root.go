package cmd

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	configPath string
	logPath    string
	verbose    bool
	debugAddr  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dsdvsim",
	Short: "DSDV routing convergence simulator",
	Long: `dsdvsim simulates the Destination-Sequenced Distance Vector routing protocol over a mesh.
It measures how routing tables re-converge after a link failure, and what that costs in
control messages, packet delivery ratio and path length.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugAddr != "" {
			// serves /debug/vars and /debug/metrics
			go func() {
				slog.Warn("debug server stopped", "err", http.ListenAndServe(debugAddr, nil))
			}()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "simulation config (yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "also write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output, includes router trace events")
	rootCmd.PersistentFlags().StringVar(&debugAddr, "debug-addr", "", "serve expvar metrics on this address, e.g. 127.0.0.1:6060")
	rootCmd.SetOut(os.Stdout)
}
