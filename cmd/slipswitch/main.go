package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	cfgFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "slipswitch",
	Short: "Cycle-accurate simulator for an iSLIP-scheduled crossbar switch",
	Long: `Slipswitch models an input-buffered crossbar switch with virtual output
queues, matched each time slot by the iSLIP parallel iterative scheduler. It
drives the switch with generated traffic either slot by slot or from a
discrete-event simulation, and reports delivery and drop counts.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"scenario file (defaults apply when omitted)")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
