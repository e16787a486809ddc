// Package main provides the intmm command line tool: multiply integer
// matrices stored as YAML, compare the naive and blocked strategies, and
// report what the current build and CPU support.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	log.SetPrefix("[intmm] ")
	log.SetFlags(log.LstdFlags)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intmm",
		Short: "Dense int64 matrix multiplication with selectable acceleration",
		Long: `intmm multiplies dense int64 matrices with either the naive reference
kernel or the blocked, cache-tiled kernel. Both produce identical results;
acceleration only changes speed.

Matrices are YAML documents:

  rows: 2
  cols: 2
  grid: [1, 2, 3, 4]`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("accel", "", "Acceleration mode: auto, on, off (overrides config and INTMM_ACCELERATION)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intmm v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(newMultiplyCmd(), newBenchCmd(), newInfoCmd())
	return rootCmd
}
