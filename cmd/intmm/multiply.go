package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/csotherden/gorgonia-intmm/config"
	"github.com/csotherden/gorgonia-intmm/intmm"
)

func newMultiplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multiply A.yaml B.yaml",
		Short: "Multiply two matrices and print the product as YAML",
		Args:  cobra.ExactArgs(2),
		RunE:  runMultiply,
	}
	cmd.Flags().StringP("output", "o", "", "Write the product to this file instead of stdout")
	return cmd
}

func runMultiply(cmd *cobra.Command, args []string) error {
	mul, err := multiplierFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := readMatrix(args[0])
	if err != nil {
		return err
	}
	b, err := readMatrix(args[1])
	if err != nil {
		return err
	}

	c, err := mul.MultiplyMatrix(a, b)
	if err != nil {
		return fmt.Errorf("multiply %s x %s: %w", args[0], args[1], err)
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// readMatrix decodes and validates a YAML matrix file.
func readMatrix(path string) (intmm.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intmm.Matrix{}, fmt.Errorf("failed to read matrix: %w", err)
	}
	var m intmm.Matrix
	if err := yaml.Unmarshal(data, &m); err != nil {
		return intmm.Matrix{}, fmt.Errorf("failed to parse matrix %s: %w", path, err)
	}
	if m.Grid == nil {
		m.Grid = []int64{}
	}
	if err := m.Validate(); err != nil {
		return intmm.Matrix{}, fmt.Errorf("matrix %s: %w", path, err)
	}
	return m, nil
}

// multiplierFromFlags resolves config file, environment and --accel into a
// Multiplier with its own Selector.
func multiplierFromFlags(cmd *cobra.Command) (*intmm.Multiplier, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvVars(cfg)
	if accel, _ := cmd.Flags().GetString("accel"); accel != "" {
		cfg.Acceleration = accel
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return intmm.NewMultiplier(opts...), nil
}
