package main

import (
	"fmt"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/csotherden/gorgonia-intmm/intmm"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the naive and blocked kernels on random matrices and check they agree",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	cmd.Flags().Int("m", 256, "Rows of A")
	cmd.Flags().Int("k", 256, "Cols of A / rows of B")
	cmd.Flags().Int("n", 256, "Cols of B")
	cmd.Flags().Int("iterations", 3, "Products per strategy")
	cmd.Flags().Int64("seed", 1, "Random seed")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	m, _ := cmd.Flags().GetInt("m")
	k, _ := cmd.Flags().GetInt("k")
	n, _ := cmd.Flags().GetInt("n")
	iterations, _ := cmd.Flags().GetInt("iterations")
	seed, _ := cmd.Flags().GetInt64("seed")
	if m < 0 || k < 0 || n < 0 || iterations < 1 {
		return fmt.Errorf("bench: dimensions must be >= 0 and iterations >= 1")
	}

	mul, err := multiplierFromFlags(cmd)
	if err != nil {
		return err
	}
	sel := mul.Selector()
	initial := sel.Enabled()
	defer func() { _ = sel.Enable(initial) }()

	r := rand.New(rand.NewSource(seed))
	a := make([]int64, m*k)
	b := make([]int64, k*n)
	for i := range a {
		a[i] = r.Int63n(2001) - 1000
	}
	for i := range b {
		b[i] = r.Int63n(2001) - 1000
	}

	modes := []bool{false}
	if sel.Supported() {
		modes = append(modes, true)
	} else {
		log.Printf("acceleration not built in, timing naive strategy only")
	}

	var reference []int64
	out := cmd.OutOrStdout()
	for _, accelerated := range modes {
		if err := sel.Enable(accelerated); err != nil {
			return err
		}
		name := mul.Strategy().Name()

		var best time.Duration
		var result []int64
		for i := 0; i < iterations; i++ {
			start := time.Now()
			result, err = mul.Multiply(m, k, n, a, b)
			if err != nil {
				return err
			}
			if d := time.Since(start); best == 0 || d < best {
				best = d
			}
		}

		if reference == nil {
			reference = result
		} else if !slices.Equal(reference, result) {
			return fmt.Errorf("bench: %s result differs from %s", name, intmm.NaiveName)
		}
		fmt.Fprintf(out, "%-8s %dx%dx%d best of %d: %v\n", name, m, k, n, iterations, best)
	}
	return nil
}
