package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csotherden/gorgonia-intmm/intmm"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the strategies, CPU features and acceleration state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mul, err := multiplierFromFlags(cmd)
			if err != nil {
				return err
			}
			info := intmm.Info()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arch:          %s\n", info.GOARCH)
			fmt.Fprintf(out, "cpu features:  %s\n", strings.Join(info.Features, " "))
			fmt.Fprintf(out, "strategies:    %s\n", strings.Join(intmm.Strategies(), ", "))
			fmt.Fprintf(out, "accel built:   %v\n", info.AccelerationBuilt)
			fmt.Fprintf(out, "kernel width:  %d\n", info.MicroKernelWidth)
			fmt.Fprintf(out, "active:        %s\n", mul.Strategy().Name())
			return nil
		},
	}
}
